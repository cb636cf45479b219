// Package queries implements the read-side operations of the proximity deal
// finder.
package queries

import (
	"context"
	"log/slog"
	"math"

	catalogDomain "github.com/nexttoyou/nexttoyou/internal/catalog/domain"
	"github.com/nexttoyou/nexttoyou/internal/deals/domain"
	"github.com/nexttoyou/nexttoyou/internal/geo"
	"github.com/nexttoyou/nexttoyou/internal/matching"
)

// FindDealsQuery asks which nearby stores carry the requested items.
type FindDealsQuery struct {
	Origin       geo.Coordinate
	Items        []string
	RadiusMeters float64
}

// FindDealsHandler handles the FindDealsQuery.
type FindDealsHandler struct {
	storeRepo catalogDomain.Repository
	matcher   *matching.Matcher
	logger    *slog.Logger
}

// NewFindDealsHandler creates a new FindDealsHandler.
func NewFindDealsHandler(storeRepo catalogDomain.Repository, matcher *matching.Matcher, logger *slog.Logger) *FindDealsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if matcher == nil {
		matcher = matching.NewMatcher(0)
	}
	return &FindDealsHandler{
		storeRepo: storeRepo,
		matcher:   matcher,
		logger:    logger,
	}
}

// Handle finds every store within the radius that matches at least one
// requested item, ranked by cheapest matched price and then distance.
//
// Degenerate inputs degrade, they never fail: an empty item list or an
// empty catalog yields an empty result, and a non-positive radius admits
// only stores at distance exactly zero.
func (h *FindDealsHandler) Handle(ctx context.Context, q FindDealsQuery) ([]domain.DealResult, error) {
	if len(q.Items) == 0 {
		return nil, nil
	}

	stores, err := h.storeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var results []domain.DealResult
	for _, store := range stores {
		dist := geo.Distance(q.Origin, store.Location)
		if dist > q.RadiusMeters {
			continue
		}

		var items []domain.MatchedItem
		for _, item := range q.Items {
			match, ok := h.matcher.Match(item, store.Inventory)
			if !ok {
				continue
			}
			items = append(items, domain.MatchedItem{
				Entry:      match.Entry,
				Query:      match.Query,
				Confidence: match.Confidence,
			})
		}

		if len(items) == 0 {
			continue
		}

		results = append(results, domain.DealResult{
			StoreID:        store.ID,
			StoreName:      store.Name,
			Category:       store.Category,
			DistanceMeters: int(math.Round(dist)),
			Items:          items,
		})
	}

	domain.SortResults(results)

	h.logger.Debug("deal search completed",
		"requested_items", len(q.Items),
		"radius_m", q.RadiusMeters,
		"stores_matched", len(results),
	)

	return results, nil
}
