// Package service contains the dashboard pipeline: cached loading, filtering,
// trend smoothing and the row shaping behind the table and export views.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dingeldeiner/whitebook/internal/cache"
	"github.com/dingeldeiner/whitebook/internal/domain"
	"github.com/dingeldeiner/whitebook/internal/repo"
)

// ListingService loads listing snapshots through a cache keyed by column set.
// A snapshot is queried from the store once per distinct set and then served
// from memory until it expires or is invalidated.
type ListingService struct {
	repo   repo.ListingRepo
	cache  *cache.Cache[domain.Snapshot]
	logger *slog.Logger
	now    func() time.Time
}

// NewListingService constructs a ListingService backed by r and c.
func NewListingService(r repo.ListingRepo, c *cache.Cache[domain.Snapshot], logger *slog.Logger) *ListingService {
	return &ListingService{repo: r, cache: c, logger: logger, now: time.Now}
}

// Load returns the snapshot for cols. Column order does not matter: the same
// set in any order shares one cached snapshot.
func (s *ListingService) Load(ctx context.Context, cols []domain.Column) (domain.Snapshot, error) {
	if len(cols) == 0 {
		return domain.Snapshot{}, fmt.Errorf("service.ListingService.Load: %w: no columns requested", domain.ErrValidation)
	}
	key := domain.ColumnSetKey(cols)

	snap, hit, err := s.cache.Get(ctx, key, func(ctx context.Context) (domain.Snapshot, error) {
		start := time.Now()
		listings, err := s.repo.Fetch(ctx, cols)
		if err != nil {
			return domain.Snapshot{}, err
		}
		snap := domain.Snapshot{
			ID:       uuid.New(),
			Columns:  slices.Clone(cols),
			Listings: listings,
			LoadedAt: s.now().UTC(),
		}
		s.logger.Info("snapshot loaded",
			"snapshot_id", snap.ID,
			"columns", key,
			"rows", len(listings),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return snap, nil
	})
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("service.ListingService.Load: %w", err)
	}
	if hit {
		s.logger.Debug("snapshot cache hit", "snapshot_id", snap.ID, "columns", key)
	}
	return snap, nil
}

// Invalidate drops every cached snapshot; the next Load queries the store.
func (s *ListingService) Invalidate() {
	s.cache.InvalidateAll()
	s.logger.Info("snapshot cache invalidated")
}
