// Package matching decides whether a free-text shopping item "means" one of
// a store's inventory entries, using per-call TF-IDF cosine similarity with
// a substring fallback.
package matching

import (
	"strings"

	"github.com/nexttoyou/nexttoyou/internal/catalog/domain"
)

const (
	// DefaultThreshold is the minimum cosine similarity for an accepted
	// match. Values between 0.2 and 0.3 work well empirically.
	DefaultThreshold = 0.25

	// FallbackConfidence is the fixed confidence reported by the substring
	// fallback path. It sits below any plausible threshold so a fallback
	// match is recognizable downstream.
	FallbackConfidence = 0.1
)

// Match is an accepted inventory match: the selected entry, the query it
// answered, and the similarity score. Fallback marks matches produced by the
// best-effort substring path when vectorization was impossible.
type Match struct {
	Entry      domain.InventoryEntry
	Query      string
	Confidence float64
	Fallback   bool
}

// Matcher matches query strings against store inventories.
// It is stateless and safe for concurrent use.
type Matcher struct {
	threshold float64
}

// NewMatcher creates a matcher with the given similarity threshold.
// A non-positive threshold falls back to DefaultThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Threshold returns the configured similarity threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Match finds the inventory entry most similar to the query. It returns
// false when no entry clears the threshold, when the inventory is empty, or
// when the query shares no vocabulary with any entry. It never fails: all
// degenerate inputs degrade to "no match".
//
// Ties are broken deterministically: the first entry in catalog order wins.
func (m *Matcher) Match(query string, inventory []domain.InventoryEntry) (Match, bool) {
	if len(inventory) == 0 {
		return Match{}, false
	}

	queryTerms := termsOf(tokenize(query))

	docs := make([][]string, len(inventory))
	anyDocTerms := false
	for i, entry := range inventory {
		docs[i] = termsOf(tokenize(entry.Name))
		if len(docs[i]) > 0 {
			anyDocTerms = true
		}
	}

	if len(queryTerms) == 0 || !anyDocTerms {
		// Vocabulary empty after normalization: vectorization cannot be
		// performed, fall back to plain case-insensitive containment.
		return m.substringFallback(query, inventory)
	}

	corpus := make([][]string, 0, len(docs)+1)
	corpus = append(corpus, queryTerms)
	corpus = append(corpus, docs...)
	v := newVectorizer(corpus)

	queryVec := v.vectorOf(queryTerms)

	best := -1
	bestSim := 0.0
	for i := range inventory {
		sim := cosine(queryVec, v.vectorOf(docs[i]))
		// Strictly greater keeps the first entry on ties.
		if sim > bestSim {
			bestSim = sim
			best = i
		}
	}

	if best < 0 || bestSim <= m.threshold {
		return Match{}, false
	}

	return Match{
		Entry:      inventory[best],
		Query:      query,
		Confidence: bestSim,
	}, true
}

// substringFallback is the best-effort escape hatch when no vector space can
// be built. The first entry whose name contains the trimmed query (or vice
// versa), case-insensitively, wins with a fixed low confidence.
func (m *Matcher) substringFallback(query string, inventory []domain.InventoryEntry) (Match, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Match{}, false
	}

	for _, entry := range inventory {
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		if name == "" {
			continue
		}
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return Match{
				Entry:      entry,
				Query:      query,
				Confidence: FallbackConfidence,
				Fallback:   true,
			}, true
		}
	}

	return Match{}, false
}
