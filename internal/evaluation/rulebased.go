package evaluation

import (
	"fmt"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/dataset"
	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/engine"
)

// PredictRuleBased derives a binary label per record from the rule engine:
// a non-empty finding set means insecure. Records that cannot be decoded
// count as secure (no findings) per the error policy.
func PredictRuleBased(eng *engine.Engine, records []dataset.Record) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		name := rec.Filename
		if name == "" {
			name = fmt.Sprintf("record-%d.java", i)
		}
		res := eng.ScanSource(name, rec.SourceCode)
		if len(res.Findings) > 0 {
			out[i] = dataset.LabelInsecure
		} else {
			out[i] = dataset.LabelSecure
		}
	}
	return out
}
