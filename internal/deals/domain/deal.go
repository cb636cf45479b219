// Package domain holds the proximity deal result model and its ordering
// policy.
package domain

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/nexttoyou/nexttoyou/internal/catalog/domain"
)

// MatchedItem is one inventory entry selected for a requested item,
// annotated with the query it answered and the match confidence.
type MatchedItem struct {
	Entry      domain.InventoryEntry
	Query      string
	Confidence float64
}

// DealResult is one qualifying store: its identity, rounded distance, and
// every requested item it matched.
type DealResult struct {
	StoreID        uuid.UUID
	StoreName      string
	Category       string
	DistanceMeters int
	Items          []MatchedItem
}

// CheapestPrice returns the lowest price among the matched items.
func (d DealResult) CheapestPrice() float64 {
	cheapest := math.Inf(1)
	for _, item := range d.Items {
		if item.Entry.Price < cheapest {
			cheapest = item.Entry.Price
		}
	}
	return cheapest
}

// SortResults orders deals by cheapest matched price ascending, then by
// distance ascending. The sort is stable.
func SortResults(results []DealResult) {
	sort.SliceStable(results, func(i, j int) bool {
		pi, pj := results[i].CheapestPrice(), results[j].CheapestPrice()
		if pi != pj {
			return pi < pj
		}
		return results[i].DistanceMeters < results[j].DistanceMeters
	})
}
