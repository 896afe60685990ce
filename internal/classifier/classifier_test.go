package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nags-N/Crypto-Misuse-Detection-Agent/internal/dataset"
)

func separableSet() (codes, labels []string) {
	insecure := []string{
		`MessageDigest md = MessageDigest.getInstance("MD5");`,
		`MessageDigest.getInstance("MD5").digest(input);`,
		`byte[] h = MessageDigest.getInstance("MD5").digest();`,
		`Cipher c = Cipher.getInstance("DES/ECB/PKCS5Padding");`,
		`Cipher.getInstance("DES/ECB/PKCS5Padding").init(mode, key);`,
		`Cipher des = Cipher.getInstance("DES/ECB/PKCS5Padding");`,
	}
	secure := []string{
		`MessageDigest md = MessageDigest.getInstance("SHA-256");`,
		`MessageDigest.getInstance("SHA-256").digest(input);`,
		`byte[] h = MessageDigest.getInstance("SHA-256").digest();`,
		`Cipher c = Cipher.getInstance("AES/GCM/NoPadding");`,
		`Cipher.getInstance("AES/GCM/NoPadding").init(mode, key);`,
		`Cipher aes = Cipher.getInstance("AES/GCM/NoPadding");`,
	}
	for _, s := range insecure {
		codes = append(codes, s)
		labels = append(labels, dataset.LabelInsecure)
	}
	for _, s := range secure {
		codes = append(codes, s)
		labels = append(labels, dataset.LabelSecure)
	}
	return codes, labels
}

func TestClassifier_LearnsSeparableSet(t *testing.T) {
	codes, labels := separableSet()
	c := New(1000, 42)
	require.NoError(t, c.Train(codes, labels))

	preds, err := c.Predict(codes)
	require.NoError(t, err)
	require.Len(t, preds, len(labels))
	for i := range labels {
		assert.Equal(t, labels[i], preds[i], "sample %d: %s", i, codes[i])
	}
}

func TestClassifier_SameSeedSamePredictions(t *testing.T) {
	codes, labels := separableSet()

	a := New(1000, 7)
	b := New(1000, 7)
	require.NoError(t, a.Train(codes, labels))
	require.NoError(t, b.Train(codes, labels))

	pa, err := a.PredictProba(codes)
	require.NoError(t, err)
	pb, err := b.PredictProba(codes)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestClassifier_PredictProbaSumsToOne(t *testing.T) {
	codes, labels := separableSet()
	c := New(1000, 42)
	require.NoError(t, c.Train(codes, labels))

	probs, err := c.PredictProba([]string{codes[0], "something entirely different"})
	require.NoError(t, err)
	for _, p := range probs {
		assert.InDelta(t, 1.0, p[dataset.LabelSecure]+p[dataset.LabelInsecure], 1e-9)
	}
}

func TestClassifier_TrainErrors(t *testing.T) {
	c := New(100, 1)
	assert.Error(t, c.Train([]string{"a", "b"}, []string{"secure"}))
	assert.Error(t, c.Train(nil, nil))

	_, err := c.Predict([]string{"x"})
	assert.Error(t, err, "predict before training must fail")
}

func TestVectorizer_VocabCapAndDeterminism(t *testing.T) {
	docs := []string{"alpha beta gamma", "alpha beta", "alpha"}

	v := NewVectorizer(2)
	v.Fit(docs)
	// alpha (df 3) and "alpha beta" bigram vs beta (both df 2): ties break
	// lexicographically, so "alpha" and "alpha beta" win the two slots.
	require.Equal(t, 2, v.VocabSize())

	w := NewVectorizer(2)
	w.Fit(docs)
	assert.Equal(t, v.Transform("alpha beta gamma"), w.Transform("alpha beta gamma"))
}

func TestVectorizer_TransformIsL2Normalized(t *testing.T) {
	v := NewVectorizer(0)
	v.Fit([]string{"cipher getinstance aes", "cipher getinstance des"})
	vec := v.Transform("cipher des")
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestVectorizer_UnknownTokensIgnored(t *testing.T) {
	v := NewVectorizer(0)
	v.Fit([]string{"alpha beta"})
	assert.Empty(t, v.Transform("zeta eta theta"))
}

func TestTokenize_KeepsQualifiedNames(t *testing.T) {
	toks := tokenize(`javax.crypto.Cipher.getInstance("AES");`)
	assert.Contains(t, toks, "javax.crypto.cipher.getinstance")
	assert.Contains(t, toks, "aes")
}
