package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

// exportTimeLayout formats Date_Posted and Timestamp cells (UTC).
const exportTimeLayout = "2006-01-02 15:04:05"

// ExportService flattens the filtered view into export rows.
type ExportService struct {
	loader SnapshotLoader
}

// NewExportService constructs an ExportService reading snapshots from loader.
func NewExportService(loader SnapshotLoader) *ExportService {
	return &ExportService{loader: loader}
}

// Export returns one ExportRow per listing matching sels, in snapshot order.
func (s *ExportService) Export(ctx context.Context, sels domain.SelectionSet) ([]domain.ExportRow, error) {
	v, err := loadView(ctx, s.loader, sels)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, len(v.listings))
	for i, l := range v.listings {
		rows[i] = exportRow(l)
	}
	return rows, nil
}

func exportRow(l domain.Listing) domain.ExportRow {
	days := ""
	if l.TimeOnMarket != nil {
		days = strconv.FormatFloat(l.TimeOnMarket.Hours()/24, 'f', 1, 64)
	}
	return domain.ExportRow{
		str(l.Make), str(l.Model), str(l.Trim), str(l.Colour),
		str(l.BodyType), str(l.Drivetrain), str(l.Transmission), str(l.FuelType),
		integer(l.Year), integer(l.Kilometers), float(l.Price, 2), integer(l.Doors), integer(l.Seats),
		timestamp(l.DatePosted), timestamp(l.Timestamp), days,
		float(l.Latitude, -1), float(l.Longitude, -1), boolean(l.Sold),
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func integer(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func float(p *float64, prec int) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', prec, 64)
}

func timestamp(p *time.Time) string {
	if p == nil {
		return ""
	}
	return p.UTC().Format(exportTimeLayout)
}

func boolean(p *bool) string {
	if p == nil {
		return ""
	}
	return strconv.FormatBool(*p)
}
