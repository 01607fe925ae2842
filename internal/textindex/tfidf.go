package textindex

import (
	"math"
	"sort"
	"strings"
)

// Vector is a sparse term-weight vector keyed by vocabulary index.
// Vectors produced by the index are L2-normalized, so cosine similarity
// reduces to a dot product.
type Vector map[int]float64

// Vectorizer holds a fitted TF-IDF vocabulary and its inverse document
// frequencies. Immutable after fitting.
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// Index pairs a fitted vectorizer with one vector per input document, in
// input order.
type Index struct {
	Vectorizer *Vectorizer
	Vectors    []Vector
}

// BuildIndex preprocesses every raw document and fits a TF-IDF vector
// space over the resulting corpus. maxFeatures caps the vocabulary at
// the most frequent terms; zero means no cap.
func BuildIndex(docs []string, maxFeatures int) *Index {
	processed := make([][]string, len(docs))
	for i, d := range docs {
		processed[i] = tokenize(Preprocess(d))
	}

	v := fit(processed, maxFeatures)

	vectors := make([]Vector, len(processed))
	for i, tokens := range processed {
		vectors[i] = v.vectorize(tokens)
	}

	return &Index{Vectorizer: v, Vectors: vectors}
}

// Transform preprocesses a query and maps it into the fitted vector
// space. Terms outside the vocabulary are dropped.
func (v *Vectorizer) Transform(text string) Vector {
	return v.vectorize(tokenize(Preprocess(text)))
}

// VocabSize returns the number of terms in the fitted vocabulary.
func (v *Vectorizer) VocabSize() int {
	return len(v.vocab)
}

// CosineSimilarity returns the cosine of the angle between two
// L2-normalized sparse vectors, in [0, 1] for non-negative weights.
func CosineSimilarity(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for i, w := range a {
		dot += w * b[i]
	}
	return dot
}

// Similarities ranks every index vector against the query vector.
// Result order matches document order.
func (idx *Index) Similarities(query Vector) []float64 {
	sims := make([]float64, len(idx.Vectors))
	for i, v := range idx.Vectors {
		sims[i] = CosineSimilarity(query, v)
	}
	return sims
}

func tokenize(processed string) []string {
	if processed == "" {
		return nil
	}
	return strings.Fields(processed)
}

// fit builds the vocabulary and IDF weights over tokenized documents
// using smoothed inverse document frequency:
//
//	idf(t) = ln((1 + n) / (1 + df(t))) + 1
func fit(docs [][]string, maxFeatures int) *Vectorizer {
	df := make(map[string]int)
	totals := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			totals[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}

	if maxFeatures > 0 && len(terms) > maxFeatures {
		// Keep the most frequent terms, ties broken alphabetically.
		sort.Slice(terms, func(i, j int) bool {
			if totals[terms[i]] != totals[terms[j]] {
				return totals[terms[i]] > totals[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, t := range terms {
		vocab[t] = i
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	return &Vectorizer{vocab: vocab, idf: idf}
}

// vectorize computes the L2-normalized TF-IDF weights for a token list.
func (v *Vectorizer) vectorize(tokens []string) Vector {
	vec := make(Vector)
	for _, t := range tokens {
		if i, ok := v.vocab[t]; ok {
			vec[i]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
