package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	LabelSecure   = "secure"
	LabelInsecure = "insecure"
)

// Record is the unified labeled sample shared by every loader. One record
// per JSON line.
type Record struct {
	SourceCode string `json:"source_code"`
	Label      string `json:"label"`
	CWE        string `json:"cwe,omitempty"`
	Dataset    string `json:"dataset"`
	Filename   string `json:"filename,omitempty"`
}

// ReadJSONL decodes one record per line, skipping blank lines.
func ReadJSONL(r io.Reader) ([]Record, error) {
	var records []Record
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := s.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func ReadJSONLFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSONL(f)
}

func WriteJSONL(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func WriteJSONLFile(path string, records []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSONL(f, records)
}

// LabelCounts tallies records per label for distribution logging.
func LabelCounts(records []Record) (secure, insecure int) {
	for _, r := range records {
		switch r.Label {
		case LabelSecure:
			secure++
		case LabelInsecure:
			insecure++
		}
	}
	return
}
