package dataset

import (
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// cryptoCWEs are the OWASP Benchmark categories that concern cryptographic
// misuse: broken algorithm, reversible hash, weak randomness, weak PRNG.
var cryptoCWEs = map[string]bool{
	"327": true,
	"328": true,
	"330": true,
	"338": true,
}

var reTestNumber = regexp.MustCompile(`BenchmarkTest(\d+)`)

// LoadOWASPBenchmark loads BenchmarkTest*.java files from a BenchmarkJava
// clone. Ground truth comes from the expectedresults CSV shipped with the
// benchmark; when the CSV is missing the loader falls back to filename
// heuristics. With cryptoOnly set, test cases outside the crypto CWEs are
// dropped.
func LoadOWASPBenchmark(dir string, cryptoOnly bool, log hclog.Logger) ([]Record, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Warn("owasp benchmark directory not found", "dir", dir)
		return nil, nil
	}

	labels, cwes := loadExpectedResults(dir, log)

	var records []Record
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasPrefix(d.Name(), "BenchmarkTest") || !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}
		testNum := extractTestNumber(d.Name())
		if testNum == "" {
			return nil
		}
		cwe := cwes[testNum]
		if cryptoOnly && len(cwes) > 0 && cwe != "" && !cryptoCWEs[cwe] {
			return nil
		}
		label := ""
		if vulnerable, ok := labels[testNum]; ok {
			label = LabelSecure
			if vulnerable {
				label = LabelInsecure
			}
		} else {
			label = inferLabel(d.Name())
		}
		if label == "" {
			return nil
		}
		b, err := os.ReadFile(path)
		if err != nil {
			log.Warn("could not read file", "file", path, "error", err)
			return nil
		}
		records = append(records, Record{
			SourceCode: string(b),
			Label:      label,
			CWE:        cwe,
			Dataset:    "owasp_benchmark",
			Filename:   d.Name(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("owasp benchmark loaded", "samples", len(records), "dir", dir)
	return records, nil
}

// loadExpectedResults parses the first expectedresults*.csv found under dir.
// Typical columns: "# test name", "category", "real vulnerability", "CWE".
func loadExpectedResults(dir string, log hclog.Logger) (map[string]bool, map[string]string) {
	labels := map[string]bool{}
	cwes := map[string]string{}

	var csvPath string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || csvPath != "" {
			return nil
		}
		name := strings.ToLower(d.Name())
		if strings.HasPrefix(name, "expectedresults") && strings.HasSuffix(name, ".csv") {
			csvPath = path
		}
		return nil
	})
	if csvPath == "" {
		log.Info("no expected-results csv found, using filename heuristics")
		return labels, cwes
	}
	log.Info("loading owasp labels", "csv", csvPath)

	f, err := os.Open(csvPath)
	if err != nil {
		log.Warn("could not open expected-results csv", "error", err)
		return labels, cwes
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil || len(rows) == 0 {
		log.Warn("could not parse expected-results csv", "error", err)
		return labels, cwes
	}

	header := rows[0]
	nameCol, vulnCol, cweCol := -1, -1, -1
	for i, h := range header {
		switch key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "#"))); key {
		case "test name":
			nameCol = i
		case "real vulnerability":
			vulnCol = i
		case "cwe":
			cweCol = i
		}
	}
	if nameCol < 0 || vulnCol < 0 {
		log.Warn("expected-results csv missing required columns")
		return labels, cwes
	}

	for _, row := range rows[1:] {
		if nameCol >= len(row) || vulnCol >= len(row) {
			continue
		}
		testNum := extractTestNumber(row[nameCol])
		if testNum == "" {
			continue
		}
		labels[testNum] = strings.EqualFold(strings.TrimSpace(row[vulnCol]), "true")
		if cweCol >= 0 && cweCol < len(row) {
			cwes[testNum] = strings.TrimSpace(row[cweCol])
		}
	}
	return labels, cwes
}

func extractTestNumber(name string) string {
	m := reTestNumber.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}
