package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/dingeldeiner/whitebook/internal/domain"
	"github.com/dingeldeiner/whitebook/internal/lowess"
)

const (
	// smoothingFraction is the share of samples in each local fit.
	smoothingFraction = 0.2
	// timeGridStep evaluates the price-over-time curve every four hours.
	timeGridStep = 4 * 60 * 60
	// mileageGridStep evaluates the price-by-mileage curve every 5000 km.
	mileageGridStep = 5000
)

// trendSpec describes one smoothed curve: which column is x and how it is labelled.
type trendSpec struct {
	title  string
	xLabel string
	x      domain.Column
	step   float64
}

var (
	priceOverTime = trendSpec{
		title:  "Market Overview (Average Price vs Time)",
		xLabel: "Time",
		x:      domain.ColumnDatePostedS,
		step:   timeGridStep,
	}
	priceByMileage = trendSpec{
		title:  "Average Price By Mileage",
		xLabel: "Kilometers",
		x:      domain.ColumnKilometers,
		step:   mileageGridStep,
	}
)

// estimate smooths Price against t.x over a grid running from the smallest
// to the largest observed x, upper bound excluded.
// Fewer than two usable samples or an empty grid yield domain.ErrLowSampleSize.
func (t trendSpec) estimate(listings []domain.Listing) (domain.Trend, error) {
	points := make([]lowess.Point, 0, len(listings))
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range listings {
		x, ok := l.Number(t.x)
		if !ok {
			continue
		}
		lo, hi = math.Min(lo, x), math.Max(hi, x)
		y, ok := l.Number(domain.ColumnPrice)
		if !ok {
			y = math.NaN()
		}
		points = append(points, lowess.Point{X: x, Y: y})
	}

	grid := lowess.Grid(lo, hi, t.step)
	ys, err := lowess.Smooth(points, grid, smoothingFraction)
	if err != nil {
		if errors.Is(err, lowess.ErrTooFewPoints) || errors.Is(err, lowess.ErrEmptyGrid) {
			return domain.Trend{}, fmt.Errorf("%w: %s: %d listings: %v", domain.ErrLowSampleSize, t.title, len(points), err)
		}
		return domain.Trend{}, fmt.Errorf("%s: %w", t.title, err)
	}

	return domain.Trend{
		Title:  t.title,
		XLabel: t.xLabel,
		YLabel: "Price",
		X:      grid,
		Y:      ys,
	}, nil
}

// mapPoints returns the located listings inside domain.MapBounds.
func mapPoints(listings []domain.Listing) []domain.GeoPoint {
	points := make([]domain.GeoPoint, 0, len(listings))
	for _, l := range listings {
		if l.Latitude == nil || l.Longitude == nil {
			continue
		}
		p := domain.GeoPoint{Lat: *l.Latitude, Lon: *l.Longitude}
		if domain.MapBounds.Contains(p) {
			points = append(points, p)
		}
	}
	return points
}
