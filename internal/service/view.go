package service

import (
	"context"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dingeldeiner/whitebook/internal/domain"
	"github.com/dingeldeiner/whitebook/internal/filter"
)

var tracer = otel.Tracer("github.com/dingeldeiner/whitebook/internal/service")

// SnapshotLoader is the loading half of ListingService.
type SnapshotLoader interface {
	Load(ctx context.Context, cols []domain.Column) (domain.Snapshot, error)
}

// Fallback bounds for range inputs the request leaves open. The upper Year
// bound is the newest model year in the snapshot.
const (
	defaultYearMin       = 1960
	defaultKilometersMin = 20000
	defaultKilometersMax = 300000
	defaultPriceMin      = 1500
	defaultPriceMax      = 100000
)

// view is the filtered state shared by every dashboard surface.
type view struct {
	snapshot  domain.Snapshot
	predicate filter.Predicate
	filters   []string
	listings  []domain.Listing
}

// loadView loads the dashboard snapshot, fills open range bounds and applies
// the resulting filter.
func loadView(ctx context.Context, loader SnapshotLoader, sels domain.SelectionSet) (view, error) {
	ctx, span := tracer.Start(ctx, "dashboard.load")
	snap, err := loader.Load(ctx, domain.DashboardColumns)
	endSpan(span, err)
	if err != nil {
		return view{}, err
	}

	_, span = tracer.Start(ctx, "dashboard.filter")
	defer span.End()

	p, desc, err := filter.Build(withRangeDefaults(sels, rangeDefaults(snap.Listings)))
	if err != nil {
		recordError(span, err)
		return view{}, err
	}
	listings := p.Apply(snap.Listings)
	span.SetAttributes(
		attribute.Int("listings.total", len(snap.Listings)),
		attribute.Int("listings.matched", len(listings)),
	)
	return view{snapshot: snap, predicate: p, filters: desc, listings: listings}, nil
}

// rangeDefaults derives the bounds used for open Year, Kilometers and Price inputs.
func rangeDefaults(listings []domain.Listing) domain.RangeDefaults {
	yearMax := math.Inf(-1)
	for _, l := range listings {
		if y, ok := l.Number(domain.ColumnYear); ok {
			yearMax = math.Max(yearMax, y)
		}
	}
	if math.IsInf(yearMax, -1) {
		yearMax = defaultYearMin
	}
	return domain.RangeDefaults{
		YearMin:       defaultYearMin,
		YearMax:       yearMax,
		KilometersMin: defaultKilometersMin,
		KilometersMax: defaultKilometersMax,
		PriceMin:      defaultPriceMin,
		PriceMax:      defaultPriceMax,
	}
}

// withRangeDefaults returns sels in facet order with every range bound set.
// Columns outside the facet order are dropped.
func withRangeDefaults(sels domain.SelectionSet, d domain.RangeDefaults) domain.SelectionSet {
	bounds := map[domain.Column][2]float64{
		domain.ColumnYear:       {d.YearMin, d.YearMax},
		domain.ColumnKilometers: {d.KilometersMin, d.KilometersMax},
		domain.ColumnPrice:      {d.PriceMin, d.PriceMax},
	}

	out := make(domain.SelectionSet, 0, len(domain.FacetOrder))
	for _, c := range domain.FacetOrder {
		sel := sels.Get(c)
		b, ranged := bounds[c]
		if !ranged {
			out = append(out, sel)
			continue
		}
		lo, hi := sel.Min, sel.Max
		if sel.Kind != domain.Range {
			lo, hi = nil, nil
		}
		if lo == nil {
			lo = &b[0]
		}
		if hi == nil {
			hi = &b[1]
		}
		out = append(out, domain.Between(c, lo, hi))
	}
	return out
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		recordError(span, err)
	}
	span.End()
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
