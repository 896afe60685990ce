package engine

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/model"
)

type baseline struct {
	GeneratedAt  time.Time       `json:"generatedAt"`
	Fingerprints map[string]bool `json:"fingerprints"`
}

func loadBaseline(path string) (baseline, error) {
	var b baseline
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	var fp []string
	if err := json.Unmarshal(data, &fp); err == nil {
		m := make(map[string]bool, len(fp))
		for _, f := range fp {
			m[f] = true
		}
		b.Fingerprints = m
		return b, nil
	}
	// try full struct
	if err := json.Unmarshal(data, &b); err != nil {
		return b, err
	}
	if b.Fingerprints == nil {
		b.Fingerprints = map[string]bool{}
	}
	return b, nil
}

func filterByBaseline(findings []model.Finding, b baseline) []model.Finding {
	if len(b.Fingerprints) == 0 {
		return findings
	}
	var out []model.Finding
	for _, f := range findings {
		if f.Fingerprint != "" && b.Fingerprints[f.Fingerprint] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// WriteBaseline records the fingerprints of known findings so later scans
// can suppress them.
func WriteBaseline(path string, findings []model.Finding) error {
	if path == "" {
		return nil
	}
	b := baseline{GeneratedAt: time.Now().UTC(), Fingerprints: map[string]bool{}}
	for _, f := range findings {
		if f.Fingerprint != "" {
			b.Fingerprints[f.Fingerprint] = true
		}
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
