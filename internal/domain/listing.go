// Package domain contains the core data types for the whitebook dashboard.
// It is imported by every other internal package (repo, filter, service,
// render, handler) and depends on nothing beyond the standard library and uuid.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Listing is one used-vehicle listing as observed by the scraper.
// Every field is optional: nil is the single missing-value marker, whether the
// store held NULL, the literal "null", or the column was not selected.
type Listing struct {
	Make         *string
	Model        *string
	Trim         *string
	Colour       *string
	BodyType     *string
	Drivetrain   *string
	Transmission *string
	FuelType     *string

	Year       *int
	Kilometers *int
	Doors      *int
	Seats      *int
	Price      *float64

	// DatePosted is the first-seen time and Timestamp the most-recent-seen time.
	DatePosted *time.Time
	Timestamp  *time.Time

	// DatePostedS is the raw epoch-seconds form of DatePosted, kept for the
	// time-grid computation. Set once on load and never modified.
	DatePostedS *int64

	// TimeOnMarket is Timestamp minus DatePosted. Nil unless both are present.
	TimeOnMarket *time.Duration

	Latitude  *float64
	Longitude *float64

	Sold *bool
}

// Text returns the value of a categorical column.
// ok is false when the value is missing or c is not a text column.
func (l Listing) Text(c Column) (string, bool) {
	var p *string
	switch c {
	case ColumnMake:
		p = l.Make
	case ColumnModel:
		p = l.Model
	case ColumnTrim:
		p = l.Trim
	case ColumnColour:
		p = l.Colour
	case ColumnBodyType:
		p = l.BodyType
	case ColumnDrivetrain:
		p = l.Drivetrain
	case ColumnTransmission:
		p = l.Transmission
	case ColumnFuelType:
		p = l.FuelType
	}
	if p == nil {
		return "", false
	}
	return *p, true
}

// Number returns the value of a numeric column as a float64.
// Date_Posted_S is numeric (epoch seconds); Date_Posted and Timestamp are not.
// ok is false when the value is missing or c is not numeric.
func (l Listing) Number(c Column) (float64, bool) {
	switch c {
	case ColumnYear:
		return intValue(l.Year)
	case ColumnKilometers:
		return intValue(l.Kilometers)
	case ColumnDoors:
		return intValue(l.Doors)
	case ColumnSeats:
		return intValue(l.Seats)
	case ColumnPrice:
		return floatValue(l.Price)
	case ColumnLatitude:
		return floatValue(l.Latitude)
	case ColumnLongitude:
		return floatValue(l.Longitude)
	case ColumnDatePostedS:
		if l.DatePostedS == nil {
			return 0, false
		}
		return float64(*l.DatePostedS), true
	}
	return 0, false
}

func intValue(p *int) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return float64(*p), true
}

func floatValue(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// Snapshot is one loaded, immutable collection of listings for a column set.
// ID changes every time the store is queried, so clients can tell a reload
// from a cache hit.
type Snapshot struct {
	ID       uuid.UUID
	Columns  []Column
	Listings []Listing
	LoadedAt time.Time
}
