package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trend is a smoothed curve evaluated on a regular grid.
// X and Y are aligned; for the time trend X holds epoch seconds.
type Trend struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
}

// GeoPoint is one listing location on the map.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// BoundingBox is an open latitude/longitude rectangle.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Contains reports whether p lies strictly inside b.
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.Lat > b.MinLat && p.Lat < b.MaxLat && p.Lon > b.MinLon && p.Lon < b.MaxLon
}

// MapBounds frames the listings map (Alberta and its borders).
var MapBounds = BoundingBox{MinLat: 48, MaxLat: 61, MinLon: -121, MaxLon: -109}

// Dashboard is the full result of one render: the filtered view's count and
// description plus both trend curves and the map points.
type Dashboard struct {
	SnapshotID     uuid.UUID
	LoadedAt       time.Time
	RecordCount    int
	Filters        []string
	Query          string
	PriceOverTime  Trend
	PriceByMileage Trend
	Map            []GeoPoint
}

// RangeDefaults are the bounds substituted for absent min/max inputs.
type RangeDefaults struct {
	YearMin       float64
	YearMax       float64
	KilometersMin float64
	KilometersMax float64
	PriceMin      float64
	PriceMax      float64
}

// Facets lists the options offered by each multi-select filter.
// Models is nil unless exactly one make was supplied.
type Facets struct {
	BodyTypes     []string
	Makes         []string
	Models        []string
	Drivetrains   []string
	Transmissions []string
	FuelTypes     []string
	Defaults      RangeDefaults
}
