package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dingeldeiner/whitebook/internal/domain"
	"github.com/dingeldeiner/whitebook/internal/repo"
	"github.com/dingeldeiner/whitebook/internal/service"
)

// mockListingRepo is a hand-written test double for repo.ListingRepo.
// It counts Fetch calls so cache behaviour can be asserted.
type mockListingRepo struct {
	mu    sync.Mutex
	calls int
	fetch func(ctx context.Context, cols []domain.Column) ([]domain.Listing, error)
}

func (m *mockListingRepo) Fetch(ctx context.Context, cols []domain.Column) ([]domain.Listing, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.fetch(ctx, cols)
}

func (m *mockListingRepo) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// compile-time check: mockListingRepo must satisfy repo.ListingRepo.
var _ repo.ListingRepo = (*mockListingRepo)(nil)

// mockLoader is a hand-written test double for service.SnapshotLoader.
type mockLoader struct {
	load func(ctx context.Context, cols []domain.Column) (domain.Snapshot, error)
}

func (m *mockLoader) Load(ctx context.Context, cols []domain.Column) (domain.Snapshot, error) {
	return m.load(ctx, cols)
}

var _ service.SnapshotLoader = (*mockLoader)(nil)

// ---- helpers ---------------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

const firstPosted = int64(1675300000)

// fleet returns 40 listings. Listing i has:
//
//	make      Toyota / Honda / Ford by i%3
//	year      2010 + i%10
//	km        30000 + 5000*i
//	price     30000 - 300*i
//	posted    firstPosted + i days, last seen three days later
//	location  inside the map bounds for even i, outside for odd i
func fleet() []domain.Listing {
	makes := []string{"Toyota", "Honda", "Ford"}
	models := map[string]string{"Toyota": "RAV4", "Honda": "Civic", "Ford": "F-150"}
	out := make([]domain.Listing, 40)
	for i := range out {
		mk := makes[i%3]
		posted := firstPosted + int64(i)*86400
		postedAt := time.Unix(posted, 0).UTC()
		seenAt := postedAt.Add(72 * time.Hour)
		lat := 53.5
		if i%2 == 1 {
			lat = 40
		}
		out[i] = domain.Listing{
			Make:         ptr(mk),
			Model:        ptr(models[mk]),
			BodyType:     ptr("SUV"),
			Year:         ptr(2010 + i%10),
			Kilometers:   ptr(30000 + 5000*i),
			Price:        ptr(30000 - 300*float64(i)),
			DatePosted:   &postedAt,
			DatePostedS:  ptr(posted),
			Timestamp:    &seenAt,
			TimeOnMarket: ptr(seenAt.Sub(postedAt)),
			Latitude:     ptr(lat),
			Longitude:    ptr(-113.5),
			Sold:         ptr(i%4 == 0),
		}
	}
	return out
}

func snapshotOf(listings []domain.Listing) domain.Snapshot {
	return domain.Snapshot{
		ID:       uuid.New(),
		Columns:  domain.DashboardColumns,
		Listings: listings,
		LoadedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func staticLoader(snap domain.Snapshot) *mockLoader {
	return &mockLoader{
		load: func(_ context.Context, _ []domain.Column) (domain.Snapshot, error) { return snap, nil },
	}
}
