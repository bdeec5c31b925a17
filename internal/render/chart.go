// Package render draws the dashboard's static PNG charts and encodes the
// filtered view as CSV or XLSX. It knows nothing about HTTP or the store.
package render

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

// Accent is the stroke colour of every trend line.
var Accent = drawing.ColorFromHex("ff6969")

const (
	trendWidth  = 900
	trendHeight = 420
	mapWidth    = 600
	mapHeight   = 640
)

// PriceOverTime draws t as a line over calendar dates. X values are epoch seconds.
func PriceOverTime(w io.Writer, t domain.Trend) error {
	return trend(w, t, func(v any) string {
		if f, ok := v.(float64); ok {
			return time.Unix(int64(f), 0).UTC().Format("2006-01-02")
		}
		return ""
	})
}

// PriceByMileage draws t as a line over kilometers.
func PriceByMileage(w io.Writer, t domain.Trend) error {
	return trend(w, t, wholeNumber)
}

func trend(w io.Writer, t domain.Trend, xFormat chart.ValueFormatter) error {
	if len(t.X) == 0 || len(t.X) != len(t.Y) {
		return fmt.Errorf("render: %s: %w: %d x values for %d y values", t.Title, domain.ErrLowSampleSize, len(t.X), len(t.Y))
	}

	xr := padded(t.X, 0)
	yr := padded(t.Y, 0.05)
	ch := chart.Chart{
		Title:      t.Title,
		Width:      trendWidth,
		Height:     trendHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 10}},
		XAxis: chart.XAxis{
			Name:           t.XLabel,
			ValueFormatter: xFormat,
			Range:          &chart.ContinuousRange{Min: xr[0], Max: xr[1]},
		},
		YAxis: chart.YAxis{
			Name:           t.YLabel,
			ValueFormatter: wholeNumber,
			Range:          &chart.ContinuousRange{Min: yr[0], Max: yr[1]},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    t.Title,
				XValues: t.X,
				YValues: t.Y,
				Style: chart.Style{
					StrokeColor: Accent,
					StrokeWidth: 3,
				},
			},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render: %s: %w", t.Title, err)
	}
	return nil
}

// Map plots points as dots on a longitude/latitude frame fixed to
// domain.MapBounds. Points outside the bounds are not drawn. An empty point
// set still yields the framed map.
func Map(w io.Writer, points []domain.GeoPoint) error {
	b := domain.MapBounds
	frame := chart.ContinuousSeries{
		Name:    "bounds",
		XValues: []float64{b.MinLon, b.MaxLon, b.MaxLon, b.MinLon, b.MinLon},
		YValues: []float64{b.MinLat, b.MinLat, b.MaxLat, b.MaxLat, b.MinLat},
		Style: chart.Style{
			StrokeColor: chart.ColorAlternateGray,
			StrokeWidth: 1,
		},
	}
	series := []chart.Series{frame}

	var lons, lats []float64
	for _, p := range points {
		if !b.Contains(p) {
			continue
		}
		lons = append(lons, p.Lon)
		lats = append(lats, p.Lat)
	}
	if len(lons) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "listings",
			XValues: lons,
			YValues: lats,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    3,
				DotColor:    Accent.WithAlpha(160),
			},
		})
	}

	ch := chart.Chart{
		Width:      mapWidth,
		Height:     mapHeight,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 10}},
		XAxis: chart.XAxis{
			Name:  "Longitude",
			Range: &chart.ContinuousRange{Min: b.MinLon, Max: b.MaxLon},
		},
		YAxis: chart.YAxis{
			Name:  "Latitude",
			Range: &chart.ContinuousRange{Min: b.MinLat, Max: b.MaxLat},
		},
		Series: series,
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render: map: %w", err)
	}
	return nil
}

// padded returns [min, max] of vs widened by frac of the span on each side.
// A zero span is widened by one unit so the axis always has extent.
func padded(vs []float64, frac float64) [2]float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if hi <= lo {
		return [2]float64{lo - 1, hi + 1}
	}
	pad := (hi - lo) * frac
	return [2]float64{lo - pad, hi + pad}
}

func wholeNumber(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(math.Round(f), 'f', 0, 64)
	}
	return ""
}
