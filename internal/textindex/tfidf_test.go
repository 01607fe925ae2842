package textindex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndexVectorsAreNormalized(t *testing.T) {
	docs := []string{
		"compute thrust turbojet engine",
		"compute lift coefficient airfoil",
		"binary search tree traversal",
	}
	idx := BuildIndex(docs, 0)

	require.Len(t, idx.Vectors, 3)
	for i, vec := range idx.Vectors {
		var norm float64
		for _, w := range vec {
			norm += w * w
		}
		assert.InDelta(t, 1.0, norm, 1e-9, "vector %d should be L2-normalized", i)
	}
}

func TestSmoothedIDF(t *testing.T) {
	// "compute" appears in 2 of 3 docs, "thrust" in 1 of 3.
	docs := []string{
		"compute thrust",
		"compute lift",
		"graph traversal",
	}
	idx := BuildIndex(docs, 0)
	v := idx.Vectorizer

	// idf(t) = ln((1+n)/(1+df)) + 1
	wantCompute := math.Log(4.0/3.0) + 1
	wantThrust := math.Log(4.0/2.0) + 1

	iCompute, ok := v.vocab["compute"]
	require.True(t, ok)
	iThrust, ok := v.vocab["thrust"]
	require.True(t, ok)

	assert.InDelta(t, wantCompute, v.idf[iCompute], 1e-9)
	assert.InDelta(t, wantThrust, v.idf[iThrust], 1e-9)
}

func TestCosineSimilarity(t *testing.T) {
	docs := []string{
		"orbital velocity satellite",
		"orbital velocity satellite",
		"database index btree",
	}
	idx := BuildIndex(docs, 0)

	// Identical documents have similarity 1; disjoint ones 0.
	assert.InDelta(t, 1.0, CosineSimilarity(idx.Vectors[0], idx.Vectors[1]), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity(idx.Vectors[0], idx.Vectors[2]), 1e-9)
}

func TestTransformMatchesCorpus(t *testing.T) {
	docs := []string{
		"thrust engine turbojet",
		"lift airfoil wing",
	}
	idx := BuildIndex(docs, 0)

	query := idx.Vectorizer.Transform("thrust engine")
	sims := idx.Similarities(query)

	require.Len(t, sims, 2)
	assert.Greater(t, sims[0], sims[1])
	assert.Equal(t, 0.0, sims[1])
}

func TestTransformUnknownTermsDropped(t *testing.T) {
	idx := BuildIndex([]string{"thrust engine"}, 0)
	query := idx.Vectorizer.Transform("quantum entanglement")
	assert.Empty(t, query)
}

func TestMaxFeaturesCap(t *testing.T) {
	// "common" appears three times total, everything else once. A cap of
	// 2 keeps "common" plus the alphabetically first of the singletons.
	docs := []string{
		"common alpha",
		"common beta",
		"common gamma",
	}
	idx := BuildIndex(docs, 2)

	v := idx.Vectorizer
	assert.Equal(t, 2, v.VocabSize())
	_, hasCommon := v.vocab["common"]
	_, hasAlpha := v.vocab["alpha"]
	assert.True(t, hasCommon)
	assert.True(t, hasAlpha)
}

func TestZeroMaxFeaturesMeansNoCap(t *testing.T) {
	docs := []string{"alpha beta gamma delta epsilon"}
	idx := BuildIndex(docs, 0)
	assert.Equal(t, 5, idx.Vectorizer.VocabSize())
}

func TestEmptyDocumentYieldsEmptyVector(t *testing.T) {
	docs := []string{"thrust engine", "the of is"}
	idx := BuildIndex(docs, 0)

	require.Len(t, idx.Vectors, 2)
	assert.Empty(t, idx.Vectors[1])

	query := idx.Vectorizer.Transform("thrust")
	sims := idx.Similarities(query)
	assert.Equal(t, 0.0, sims[1])
}
