package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/dataset"
)

func newPrepareCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		outFile    string
	)
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Load, merge, and save benchmark datasets as JSONL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, ".")
			if err != nil {
				return err
			}
			log := newLogger(logLevel)

			cryptoapi, err := dataset.LoadCryptoAPIBench(filepath.Join(cfg.Dataset.RawDir, "cryptoapi_bench"), log)
			if err != nil {
				return err
			}
			owasp, err := dataset.LoadOWASPBenchmark(filepath.Join(cfg.Dataset.RawDir, "owasp_benchmark"), true, log)
			if err != nil {
				return err
			}

			all := append(cryptoapi, owasp...)
			if len(all) == 0 {
				log.Warn("no samples loaded; place datasets under the raw dir or run fetch first",
					"rawDir", cfg.Dataset.RawDir)
				return nil
			}
			secure, insecure := dataset.LabelCounts(all)
			log.Info("datasets merged",
				"total", len(all),
				"cryptoapi_bench", len(cryptoapi),
				"owasp_benchmark", len(owasp),
				"secure", secure,
				"insecure", insecure)

			dest := cfg.Dataset.ProcessedFile
			if outFile != "" {
				dest = outFile
			}
			if err := dataset.WriteJSONLFile(dest, all); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d samples to %s\n", len(all), dest)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: trace|debug|info|warn|error")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Output JSONL path (overrides config)")
	return cmd
}

func newFetchCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		url        string
		dest       string
	)
	cmd := &cobra.Command{
		Use:   "fetch [dataset...]",
		Short: "Download benchmark datasets into the raw data directory",
		Long:  "Downloads dataset archives (cryptoapi_bench, owasp_benchmark) and unpacks them under the configured raw directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, ".")
			if err != nil {
				return err
			}
			log := newLogger(logLevel)
			if dest == "" {
				dest = cfg.Dataset.RawDir
			}
			names := args
			if len(names) == 0 {
				names = []string{"cryptoapi_bench", "owasp_benchmark"}
			}
			if url != "" && len(names) != 1 {
				return fmt.Errorf("--url requires exactly one dataset name")
			}

			fetcher := dataset.NewFetcher(log)
			for _, name := range names {
				if err := fetcher.Fetch(cmd.Context(), name, url, dest); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: trace|debug|info|warn|error")
	cmd.Flags().StringVar(&url, "url", "", "Override archive URL (single dataset only)")
	cmd.Flags().StringVar(&dest, "dest", "", "Destination directory (default: config rawDir)")
	return cmd
}
