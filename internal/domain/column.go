package domain

import (
	"slices"
	"strings"
)

// Column names a field of the vehicles table, or a field derived from it on load.
// Values match the store's column names exactly because they are written into
// the SELECT list verbatim.
type Column string

const (
	ColumnMake         Column = "Make"
	ColumnModel        Column = "Model"
	ColumnTrim         Column = "Trim"
	ColumnColour       Column = "Colour"
	ColumnBodyType     Column = "Body_Type"
	ColumnDrivetrain   Column = "Drivetrain"
	ColumnTransmission Column = "Transmission"
	ColumnFuelType     Column = "Fuel_Type"
	ColumnYear         Column = "Year"
	ColumnKilometers   Column = "Kilometers"
	ColumnPrice        Column = "Price"
	ColumnDoors        Column = "Doors"
	ColumnSeats        Column = "Seats"
	ColumnDatePosted   Column = "Date_Posted"
	ColumnTimestamp    Column = "Timestamp"
	ColumnLatitude     Column = "Latitude"
	ColumnLongitude    Column = "Longitude"
	ColumnSold         Column = "Sold"

	// Derived on load; never part of a SELECT list.
	ColumnDatePostedS  Column = "Date_Posted_S"
	ColumnTimeOnMarket Column = "Time_On_Market"
)

// Kind describes how a stored column's raw value is decoded.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindEpoch
	KindBool
)

// storedColumns is the registry of columns that exist in the vehicles table.
// Anything outside it is rejected before a query is built.
var storedColumns = map[Column]Kind{
	ColumnMake:         KindText,
	ColumnModel:        KindText,
	ColumnTrim:         KindText,
	ColumnColour:       KindText,
	ColumnBodyType:     KindText,
	ColumnDrivetrain:   KindText,
	ColumnTransmission: KindText,
	ColumnFuelType:     KindText,
	ColumnYear:         KindInt,
	ColumnKilometers:   KindInt,
	ColumnDoors:        KindInt,
	ColumnSeats:        KindInt,
	ColumnPrice:        KindFloat,
	ColumnLatitude:     KindFloat,
	ColumnLongitude:    KindFloat,
	ColumnDatePosted:   KindEpoch,
	ColumnTimestamp:    KindEpoch,
	ColumnSold:         KindBool,
}

// DashboardColumns is the column list the dashboard loads, in store order.
var DashboardColumns = []Column{
	ColumnPrice, ColumnDatePosted, ColumnYear, ColumnMake, ColumnModel, ColumnTrim,
	ColumnColour, ColumnBodyType, ColumnDoors, ColumnSeats, ColumnDrivetrain,
	ColumnTransmission, ColumnFuelType, ColumnKilometers, ColumnSold, ColumnTimestamp,
	ColumnLatitude, ColumnLongitude,
}

// Kind returns the decode kind of a stored column.
// ok is false for derived and unknown columns.
func (c Column) Kind() (kind Kind, ok bool) {
	kind, ok = storedColumns[c]
	return kind, ok
}

// ColumnSetKey returns a canonical key for a set of columns: sorted,
// de-duplicated and comma-joined. Two requests for the same set in a
// different order share one key.
func ColumnSetKey(cols []Column) string {
	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, string(c))
	}
	slices.Sort(names)
	names = slices.Compact(names)
	return strings.Join(names, ",")
}
