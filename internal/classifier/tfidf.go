package classifier

import (
	"math"
	"sort"
	"strings"
)

// Vector is a sparse feature vector indexed by vocabulary position.
type Vector map[int]float64

// Vectorizer turns code snippets into TF-IDF vectors. Tokens keep interior
// dots so qualified API names like javax.crypto.Cipher survive as single
// features; unigrams and bigrams are both emitted. Vocabulary selection is
// deterministic: highest document frequency first, ties broken
// lexicographically.
type Vectorizer struct {
	MaxFeatures int

	vocab  map[string]int
	idf    []float64
	fitted bool
}

func NewVectorizer(maxFeatures int) *Vectorizer {
	return &Vectorizer{MaxFeatures: maxFeatures}
}

func (v *Vectorizer) Fitted() bool { return v.fitted }

func (v *Vectorizer) VocabSize() int { return len(v.vocab) }

func (v *Vectorizer) Fit(docs []string) {
	df := map[string]int{}
	for _, doc := range docs {
		seen := map[string]bool{}
		for _, f := range features(doc) {
			if !seen[f] {
				seen[f] = true
				df[f]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}

	n := float64(len(docs))
	v.vocab = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	for i, t := range terms {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	v.fitted = true
}

// Transform computes the sublinear-TF, L2-normalized vector for one doc.
// The norm accumulates in index order so repeated calls are bit-identical.
func (v *Vectorizer) Transform(doc string) Vector {
	counts := map[int]float64{}
	for _, f := range features(doc) {
		if idx, ok := v.vocab[f]; ok {
			counts[idx]++
		}
	}
	order := make([]int, 0, len(counts))
	for idx := range counts {
		order = append(order, idx)
	}
	sort.Ints(order)
	vec := make(Vector, len(counts))
	var norm float64
	for _, idx := range order {
		w := (1 + math.Log(counts[idx])) * v.idf[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

func (v *Vectorizer) FitTransform(docs []string) []Vector {
	v.Fit(docs)
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// features yields lowercased unigrams and adjacent bigrams.
func features(doc string) []string {
	toks := tokenize(doc)
	out := make([]string, 0, 2*len(toks))
	out = append(out, toks...)
	for i := 0; i+1 < len(toks); i++ {
		out = append(out, toks[i]+" "+toks[i+1])
	}
	return out
}

// tokenize splits on word characters, keeping interior dots.
func tokenize(doc string) []string {
	var toks []string
	i := 0
	for i < len(doc) {
		c := doc[i]
		if !isWordByte(c) {
			i++
			continue
		}
		start := i
		for i < len(doc) && (isWordByte(doc[i]) || doc[i] == '.') {
			i++
		}
		tok := strings.Trim(doc[start:i], ".")
		if tok != "" {
			toks = append(toks, strings.ToLower(tok))
		}
	}
	return toks
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
