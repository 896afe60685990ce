package dataset

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// LoadCryptoAPIBench walks a CryptoAPI-Bench clone for .java files and
// infers labels from the benchmark's filename convention. Files whose label
// cannot be inferred are skipped.
func LoadCryptoAPIBench(dir string, log hclog.Logger) ([]Record, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Warn("cryptoapi-bench directory not found", "dir", dir)
		return nil, nil
	}

	var records []Record
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}
		label := inferLabel(d.Name())
		if label == "" {
			log.Debug("no label inferred, skipping", "file", d.Name())
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
			Dataset:    "cryptoapi_bench",
			Filename:   d.Name(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("cryptoapi-bench loaded", "samples", len(records), "dir", dir)
	return records, nil
}

// inferLabel maps a benchmark filename to a label. Insecure markers are
// checked first because they are the more specific convention.
func inferLabel(filename string) string {
	name := strings.ToLower(filename)
	for _, pat := range []string{"incorrect", "misuse", "insecure", "bad", "broken", "weak"} {
		if strings.Contains(name, pat) {
			return LabelInsecure
		}
	}
	for _, pat := range []string{"correct", "secure", "good", "safe", "proper"} {
		if strings.Contains(name, pat) {
			return LabelSecure
		}
	}
	return ""
}
