package domain

// ExportHeader names the cells of every ExportRow, in order.
var ExportHeader = []string{
	"Make", "Model", "Trim", "Colour", "Body_Type", "Drivetrain", "Transmission", "Fuel_Type",
	"Year", "Kilometers", "Price", "Doors", "Seats",
	"Date_Posted", "Timestamp", "Days_On_Market",
	"Latitude", "Longitude", "Sold",
}

// ExportRow is one listing flattened to display strings, aligned with
// ExportHeader. Missing values are empty strings.
type ExportRow []string
