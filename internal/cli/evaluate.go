package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/classifier"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/dataset"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/engine"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/evaluation"
)

func newEvaluateCmd() *cobra.Command {
	var (
		configPath  string
		logLevel    string
		datasetFile string
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run the baselines on the processed dataset and print metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, ".")
			if err != nil {
				return err
			}
			log := newLogger(logLevel)

			path := cfg.Dataset.ProcessedFile
			if datasetFile != "" {
				path = datasetFile
			}
			records, err := dataset.ReadJSONLFile(path)
			if err != nil {
				return fmt.Errorf("load dataset %s (run prepare first): %w", path, err)
			}
			log.Info("dataset loaded", "samples", len(records), "path", path)

			train, test := evaluation.TrainTestSplit(records, cfg.Training.TestSplit, cfg.Training.RandomSeed)
			log.Info("split", "train", len(train), "test", len(test),
				"seed", cfg.Training.RandomSeed, "testSplit", cfg.Training.TestSplit)

			testCodes := make([]string, len(test))
			testLabels := make([]string, len(test))
			for i, r := range test {
				testCodes[i] = r.SourceCode
				testLabels[i] = r.Label
			}

			var results []evaluation.NamedMetrics

			if cfg.Baselines.RuleBased.Enabled {
				log.Info("running rule-based baseline")
				eng := engine.New(cfg, log).WithoutCache()
				preds := evaluation.PredictRuleBased(eng, test)
				results = append(results, evaluation.NamedMetrics{
					Name:    "Rule-Based",
					Metrics: evaluation.Compute(testLabels, preds, dataset.LabelInsecure),
				})
			}

			if cfg.Baselines.SimpleClassifier.Enabled {
				log.Info("training tf-idf + logistic regression",
					"maxFeatures", cfg.Baselines.SimpleClassifier.MaxFeatures)
				trainCodes := make([]string, len(train))
				trainLabels := make([]string, len(train))
				for i, r := range train {
					trainCodes[i] = r.SourceCode
					trainLabels[i] = r.Label
				}
				clf := classifier.New(cfg.Baselines.SimpleClassifier.MaxFeatures, cfg.Training.RandomSeed)
				if cfg.Baselines.SimpleClassifier.LearningRate > 0 {
					clf.LearningRate = cfg.Baselines.SimpleClassifier.LearningRate
				}
				if cfg.Baselines.SimpleClassifier.Epochs > 0 {
					clf.Epochs = cfg.Baselines.SimpleClassifier.Epochs
				}
				if err := clf.Train(trainCodes, trainLabels); err != nil {
					return err
				}
				preds, err := clf.Predict(testCodes)
				if err != nil {
					return err
				}
				results = append(results, evaluation.NamedMetrics{
					Name:    "TF-IDF + LogReg",
					Metrics: evaluation.Compute(testLabels, preds, dataset.LabelInsecure),
				})
			}

			evaluation.PrintResults(cmd.OutOrStdout(), results, stdoutIsTTY())
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: trace|debug|info|warn|error")
	cmd.Flags().StringVar(&datasetFile, "dataset", "", "Processed JSONL dataset path (overrides config)")
	return cmd
}
