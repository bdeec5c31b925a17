package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dingeldeiner/whitebook/internal/domain"
	"github.com/dingeldeiner/whitebook/internal/filter"
)

// DashboardService runs the render pipeline: load from cache, filter, smooth.
// Any stage failing fails the whole render; there are no partial dashboards.
type DashboardService struct {
	loader SnapshotLoader
	logger *slog.Logger
}

// NewDashboardService constructs a DashboardService reading snapshots from loader.
func NewDashboardService(loader SnapshotLoader, logger *slog.Logger) *DashboardService {
	return &DashboardService{loader: loader, logger: logger}
}

// Render returns the dashboard for sels.
func (s *DashboardService) Render(ctx context.Context, sels domain.SelectionSet) (domain.Dashboard, error) {
	v, err := loadView(ctx, s.loader, sels)
	if err != nil {
		return domain.Dashboard{}, fmt.Errorf("service.DashboardService.Render: %w", err)
	}

	overTime, byMileage, err := smoothTrends(ctx, v.listings)
	if err != nil {
		s.logger.Warn("dashboard render failed",
			"query", v.predicate.String(),
			"records", len(v.listings),
			"error", err,
		)
		return domain.Dashboard{}, fmt.Errorf("service.DashboardService.Render: %w", err)
	}

	return domain.Dashboard{
		SnapshotID:     v.snapshot.ID,
		LoadedAt:       v.snapshot.LoadedAt,
		RecordCount:    len(v.listings),
		Filters:        v.filters,
		Query:          v.predicate.String(),
		PriceOverTime:  overTime,
		PriceByMileage: byMileage,
		Map:            mapPoints(v.listings),
	}, nil
}

func smoothTrends(ctx context.Context, listings []domain.Listing) (overTime, byMileage domain.Trend, err error) {
	_, span := tracer.Start(ctx, "dashboard.smooth")
	span.SetAttributes(attribute.Int("listings.matched", len(listings)))
	defer func() { endSpan(span, err) }()

	if overTime, err = priceOverTime.estimate(listings); err != nil {
		return domain.Trend{}, domain.Trend{}, err
	}
	if byMileage, err = priceByMileage.estimate(listings); err != nil {
		return domain.Trend{}, domain.Trend{}, err
	}
	return overTime, byMileage, nil
}

// Facets returns the options for every multi-select filter plus the range
// defaults. Options come from the whole snapshot, not the filtered view.
// Models are listed only when makes holds exactly one distinct make.
func (s *DashboardService) Facets(ctx context.Context, makes []string) (domain.Facets, error) {
	snap, err := s.loader.Load(ctx, domain.DashboardColumns)
	if err != nil {
		return domain.Facets{}, fmt.Errorf("service.DashboardService.Facets: %w", err)
	}

	f := domain.Facets{
		BodyTypes:     distinct(snap.Listings, domain.ColumnBodyType, nil),
		Makes:         distinct(snap.Listings, domain.ColumnMake, nil),
		Drivetrains:   distinct(snap.Listings, domain.ColumnDrivetrain, nil),
		Transmissions: distinct(snap.Listings, domain.ColumnTransmission, nil),
		FuelTypes:     distinct(snap.Listings, domain.ColumnFuelType, nil),
		Defaults:      rangeDefaults(snap.Listings),
	}
	if filter.ModelFacetActive(domain.SelectionSet{domain.OneOf(domain.ColumnMake, makes...)}) {
		mk := makes[0]
		f.Models = distinct(snap.Listings, domain.ColumnModel, func(l domain.Listing) bool {
			v, ok := l.Text(domain.ColumnMake)
			return ok && v == mk
		})
	}
	return f, nil
}

// Listings returns one page of the filtered view, in snapshot order.
func (s *DashboardService) Listings(ctx context.Context, sels domain.SelectionSet, page domain.PaginationParams) (domain.ListingPage, error) {
	v, err := loadView(ctx, s.loader, sels)
	if err != nil {
		return domain.ListingPage{}, fmt.Errorf("service.DashboardService.Listings: %w", err)
	}
	start, end := page.Window(len(v.listings))
	return domain.ListingPage{
		Listings: v.listings[start:end],
		Total:    len(v.listings),
		Params:   page,
	}, nil
}

// distinct returns the sorted unique non-missing values of c among the
// listings accepted by keep (all listings when keep is nil).
func distinct(listings []domain.Listing, c domain.Column, keep func(domain.Listing) bool) []string {
	seen := make(map[string]struct{})
	for _, l := range listings {
		if keep != nil && !keep(l) {
			continue
		}
		if v, ok := l.Text(c); ok {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
