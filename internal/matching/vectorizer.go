package matching

import (
	"math"
	"strings"
	"unicode"
)

// tokenize lowercases the input and splits it into alphanumeric tokens.
// Punctuation, symbols and whitespace are all treated as separators, so
// "Milk 3% 1L" becomes ["milk", "3", "1l"].
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// termsOf expands tokens into vector-space terms: every unigram plus every
// adjacent bigram, so multi-word phrases are weighted as units and not just
// bags of words.
func termsOf(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	terms := make([]string, 0, 2*len(tokens)-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// vector is a sparse term-weight vector.
type vector map[string]float64

// norm returns the Euclidean norm of the vector.
func (v vector) norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// cosine returns the cosine similarity of two vectors, in [0, 1] for
// non-negative weights. Zero vectors yield similarity 0.
func cosine(a, b vector) float64 {
	na, nb := a.norm(), b.norm()
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	return dot / (na * nb)
}

// vectorizer builds TF-IDF vectors over a small per-call corpus: the query
// plus every inventory name of one store. The model is deliberately rebuilt
// per call — the vocabulary depends on the specific query and that store's
// current inventory — and is a pure function of its inputs, so callers can
// cache results if profiling ever shows it matters.
type vectorizer struct {
	idf map[string]float64
}

// newVectorizer computes smoothed inverse document frequencies over the
// given documents (each a term slice).
func newVectorizer(docs [][]string) *vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, term := range doc {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	n := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}

	return &vectorizer{idf: idf}
}

// vectorOf returns the TF-IDF vector for a document.
func (v *vectorizer) vectorOf(doc []string) vector {
	if len(doc) == 0 {
		return vector{}
	}

	counts := make(map[string]int, len(doc))
	for _, term := range doc {
		counts[term]++
	}

	vec := make(vector, len(counts))
	total := float64(len(doc))
	for term, count := range counts {
		vec[term] = float64(count) / total * v.idf[term]
	}
	return vec
}
