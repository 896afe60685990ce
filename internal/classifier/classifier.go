package classifier

import (
	"errors"
	"fmt"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/dataset"
)

// SimpleClassifier is the TF-IDF + logistic regression baseline. It treats
// each snippet as a bag of tokens and predicts secure/insecure, entirely
// independent of the rule engine.
type SimpleClassifier struct {
	LearningRate float64
	Epochs       int

	vec     *Vectorizer
	model   *logisticRegression
	seed    int64
	trained bool
}

func New(maxFeatures int, seed int64) *SimpleClassifier {
	return &SimpleClassifier{
		LearningRate: 0.1,
		Epochs:       200,
		vec:          NewVectorizer(maxFeatures),
		seed:         seed,
	}
}

func (c *SimpleClassifier) Train(codes, labels []string) error {
	if len(codes) != len(labels) {
		return fmt.Errorf("codes (%d) and labels (%d) must have the same length", len(codes), len(labels))
	}
	if len(codes) == 0 {
		return errors.New("empty training set")
	}
	xs := c.vec.FitTransform(codes)
	ys := make([]float64, len(labels))
	for i, l := range labels {
		if l == dataset.LabelInsecure {
			ys[i] = 1
		}
	}
	c.model = newLogisticRegression(c.LearningRate, c.Epochs, c.seed)
	c.model.train(xs, ys, c.vec.VocabSize())
	c.trained = true
	return nil
}

func (c *SimpleClassifier) Predict(codes []string) ([]string, error) {
	if !c.trained {
		return nil, errors.New("classifier has not been trained yet")
	}
	out := make([]string, len(codes))
	for i, code := range codes {
		if c.model.predict(c.vec.Transform(code)) >= 0.5 {
			out[i] = dataset.LabelInsecure
		} else {
			out[i] = dataset.LabelSecure
		}
	}
	return out, nil
}

// PredictProba returns per-class probabilities keyed by label.
func (c *SimpleClassifier) PredictProba(codes []string) ([]map[string]float64, error) {
	if !c.trained {
		return nil, errors.New("classifier has not been trained yet")
	}
	out := make([]map[string]float64, len(codes))
	for i, code := range codes {
		p := c.model.predict(c.vec.Transform(code))
		out[i] = map[string]float64{
			dataset.LabelInsecure: p,
			dataset.LabelSecure:   1 - p,
		}
	}
	return out, nil
}
