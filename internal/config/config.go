package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const FileName = ".cryptoscan.yaml"

type IgnoreRule struct {
	Rule   string `yaml:"rule"`
	Path   string `yaml:"path"`
	Reason string `yaml:"reason"`
}

type DatasetConfig struct {
	RawDir        string `yaml:"rawDir"`
	ProcessedFile string `yaml:"processedFile"`
}

type TrainingConfig struct {
	TestSplit  float64 `yaml:"testSplit"`
	RandomSeed int64   `yaml:"randomSeed"`
}

type RuleBasedConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ClassifierConfig struct {
	Enabled      bool    `yaml:"enabled"`
	MaxFeatures  int     `yaml:"maxFeatures"`
	LearningRate float64 `yaml:"learningRate"`
	Epochs       int     `yaml:"epochs"`
}

type BaselinesConfig struct {
	RuleBased        RuleBasedConfig  `yaml:"ruleBased"`
	SimpleClassifier ClassifierConfig `yaml:"simpleClassifier"`
}

type Config struct {
	SeverityThreshold string          `yaml:"severityThreshold"`
	Workers           int             `yaml:"workers"`
	Rules             []string        `yaml:"rules"` // allowlist; empty = all
	Ignore            []IgnoreRule    `yaml:"ignore"`
	Dataset           DatasetConfig   `yaml:"dataset"`
	Training          TrainingConfig  `yaml:"training"`
	Baselines         BaselinesConfig `yaml:"baselines"`
}

func Default() Config {
	return Config{
		SeverityThreshold: "low",
		Workers:           0, // 0 = NumCPU
		Dataset: DatasetConfig{
			RawDir:        "data/raw",
			ProcessedFile: "data/processed/dataset.jsonl",
		},
		Training: TrainingConfig{TestSplit: 0.2, RandomSeed: 42},
		Baselines: BaselinesConfig{
			RuleBased: RuleBasedConfig{Enabled: true},
			SimpleClassifier: ClassifierConfig{
				Enabled:      true,
				MaxFeatures:  5000,
				LearningRate: 0.1,
				Epochs:       200,
			},
		},
	}
}

// Load searches startDir and its parents for a config file and overlays it
// on the defaults. Environment variables override last.
func Load(startDir string) (Config, string, error) {
	cfg := Default()
	dir := startDir
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			b, err := os.ReadFile(candidate)
			if err != nil {
				return cfg, candidate, err
			}
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, candidate, err
			}
			applyEnv(&cfg)
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached root
			break
		}
		dir = parent
	}
	applyEnv(&cfg)
	return cfg, "", nil
}

// LoadFile reads a specific config path, skipping the upward search.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func Save(path string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CRYPTOSCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("CRYPTOSCAN_SEVERITY_THRESHOLD"); v != "" {
		cfg.SeverityThreshold = v
	}
	if v := os.Getenv("CRYPTOSCAN_DATASET_FILE"); v != "" {
		cfg.Dataset.ProcessedFile = v
	}
}
