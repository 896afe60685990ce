package evaluation

import (
	"math"
	"math/rand"
	"sort"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/dataset"
)

// TrainTestSplit shuffles with a fixed seed and splits stratified by label,
// so every run over the same dataset produces the same partition.
func TrainTestSplit(records []dataset.Record, testFrac float64, seed int64) (train, test []dataset.Record) {
	if testFrac <= 0 {
		return records, nil
	}
	if testFrac >= 1 {
		return nil, records
	}

	byLabel := map[string][]int{}
	for i, r := range records {
		byLabel[r.Label] = append(byLabel[r.Label], i)
	}
	labels := make([]string, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	rng := rand.New(rand.NewSource(seed))
	for _, l := range labels {
		idx := byLabel[l]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		nTest := int(math.Round(testFrac * float64(len(idx))))
		for k, i := range idx {
			if k < nTest {
				test = append(test, records[i])
			} else {
				train = append(train, records[i])
			}
		}
	}
	return train, test
}
