package evaluation

import "math"

// Metrics are the standard binary classification scores, rounded to four
// places to keep printed tables stable.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Compute scores predictions against ground truth with posLabel as the
// positive class. Zero denominators score zero rather than erroring, the
// usual convention when a class is absent.
func Compute(yTrue, yPred []string, posLabel string) Metrics {
	n := len(yTrue)
	if n == 0 || n != len(yPred) {
		return Metrics{}
	}
	var tp, fp, fn, correct int
	for i := 0; i < n; i++ {
		if yTrue[i] == yPred[i] {
			correct++
		}
		switch {
		case yPred[i] == posLabel && yTrue[i] == posLabel:
			tp++
		case yPred[i] == posLabel:
			fp++
		case yTrue[i] == posLabel:
			fn++
		}
	}
	m := Metrics{Accuracy: float64(correct) / float64(n)}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	m.Accuracy = round4(m.Accuracy)
	m.Precision = round4(m.Precision)
	m.Recall = round4(m.Recall)
	m.F1 = round4(m.F1)
	return m
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
