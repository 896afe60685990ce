package classifier

import (
	"math"
	"math/rand"
	"sort"
)

// logisticRegression is a binary classifier trained with seeded SGD so that
// identical inputs always produce identical weights.
type logisticRegression struct {
	learningRate float64
	epochs       int
	seed         int64

	weights []float64
	bias    float64
}

func newLogisticRegression(learningRate float64, epochs int, seed int64) *logisticRegression {
	return &logisticRegression{learningRate: learningRate, epochs: epochs, seed: seed}
}

// train fits on sparse vectors with targets in {0, 1}.
func (m *logisticRegression) train(xs []Vector, ys []float64, dim int) {
	m.weights = make([]float64, dim)
	m.bias = 0

	rng := rand.New(rand.NewSource(m.seed))
	order := make([]int, len(xs))
	for i := range order {
		order[i] = i
	}

	for epoch := 0; epoch < m.epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, idx := range order {
			p := m.predict(xs[idx])
			g := p - ys[idx]
			for j, x := range xs[idx] {
				m.weights[j] -= m.learningRate * g * x
			}
			m.bias -= m.learningRate * g
		}
	}
}

// predict returns the probability of the positive class. The dot product
// accumulates in index order; summing in map order would make the low bits
// of the result vary between runs.
func (m *logisticRegression) predict(x Vector) float64 {
	idx := make([]int, 0, len(x))
	for j := range x {
		if j < len(m.weights) {
			idx = append(idx, j)
		}
	}
	sort.Ints(idx)
	z := m.bias
	for _, j := range idx {
		z += m.weights[j] * x[j]
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
