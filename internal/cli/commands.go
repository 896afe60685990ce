package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/config"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/engine"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/model"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/report"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/tui"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newScanCmd())
	root.AddCommand(newPrepareCmd())
	root.AddCommand(newFetchCmd())
	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newInitCmd())
}

func newLogger(level string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:  "cryptoscan",
		Level: hclog.LevelFromString(level),
	})
}

func loadConfig(configPath, startDir string) (config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	cfg, _, err := config.Load(startDir)
	return cfg, err
}

func stdoutIsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func newScanCmd() *cobra.Command {
	var (
		format        string
		outputFile    string
		failOn        string
		useTUI        bool
		writeBaseline string
		baseline      string
		workers       int
		configPath    string
		logLevel      string
	)
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan Java sources for cryptographic API misuse",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadConfig(configPath, path)
			if err != nil {
				return err
			}

			eng := engine.New(cfg, newLogger(logLevel))
			result, err := eng.Scan(cmd.Context(), model.ScanRequest{
				Path:     path,
				Workers:  workers,
				Baseline: baseline,
			})
			if err != nil {
				return err
			}

			if useTUI && stdoutIsTTY() {
				return tui.Run(result.Findings)
			}
			switch format {
			case "json":
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				if outputFile != "" {
					return os.WriteFile(outputFile, data, 0o644)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			case "sarif":
				if outputFile != "" {
					f, err := os.Create(outputFile)
					if err != nil {
						return err
					}
					defer f.Close()
					if err := report.WriteSARIF(f, result, eng.Catalog()); err != nil {
						return err
					}
				} else if err := report.WriteSARIF(cmd.OutOrStdout(), result, eng.Catalog()); err != nil {
					return err
				}
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "Findings: %d (elapsed %s)\n", len(result.Findings), result.Elapsed)
				for _, f := range result.Findings {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s [%s] %s:%d %s\n", f.RuleID, f.Severity, f.File, f.Line, f.Message)
				}
				for _, fr := range result.Files {
					if fr.Error != "" {
						fmt.Fprintf(cmd.OutOrStdout(), "! %s: %s\n", fr.File, fr.Error)
					}
					for _, w := range fr.Warnings {
						fmt.Fprintf(cmd.OutOrStdout(), "~ %s:%d %s\n", fr.File, w.Line, w.Kind)
					}
				}
			}

			if writeBaseline != "" {
				if err := engine.WriteBaseline(writeBaseline, result.Findings); err != nil {
					return err
				}
			}
			if failOn != "" {
				threshold := model.ParseSeverity(failOn)
				for _, f := range result.Findings {
					if model.SeverityGTE(f.Severity, threshold) {
						return fmt.Errorf("fail-on threshold met: %s", f.Severity)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json|sarif")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Fail if a finding of severity or higher is found (low|medium|high|critical)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Browse findings interactively")
	cmd.Flags().StringVar(&writeBaseline, "write-baseline", "", "Write a baseline file with finding fingerprints")
	cmd.Flags().StringVar(&baseline, "baseline", "", "Suppress findings present in a baseline file")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel file workers (0 = NumCPU)")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level: trace|debug|info|warn|error")
	return cmd
}
