package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

// SheetName is the worksheet holding exported listings.
const SheetName = "Listings"

// numericExportColumns are written to XLSX as numbers rather than text.
var numericExportColumns = map[string]bool{
	"Year": true, "Kilometers": true, "Price": true, "Doors": true, "Seats": true,
	"Days_On_Market": true, "Latitude": true, "Longitude": true,
}

// CSV writes domain.ExportHeader followed by rows.
func CSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(domain.ExportHeader); err != nil {
		return fmt.Errorf("render.CSV: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("render.CSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("render.CSV: %w", err)
	}
	return nil
}

// XLSX writes rows as a single-sheet workbook with a bold, frozen header row.
// Numeric columns are stored as numbers; empty cells stay blank.
func XLSX(w io.Writer, rows []domain.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("render.XLSX: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("render.XLSX: header style: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("render.XLSX: %w", err)
	}
	if err := sw.SetPanes(&excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("render.XLSX: freeze header: %w", err)
	}

	header := make([]any, len(domain.ExportHeader))
	for i, h := range domain.ExportHeader {
		header[i] = h
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: bold}); err != nil {
		return fmt.Errorf("render.XLSX: header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("render.XLSX: %w", err)
		}
		if err := sw.SetRow(cell, xlsxValues(r)); err != nil {
			return fmt.Errorf("render.XLSX: row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("render.XLSX: flush: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("render.XLSX: write: %w", err)
	}
	return nil
}

func xlsxValues(r domain.ExportRow) []any {
	out := make([]any, len(r))
	for i, v := range r {
		if v == "" {
			out[i] = nil
			continue
		}
		if i < len(domain.ExportHeader) && numericExportColumns[domain.ExportHeader[i]] {
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				out[i] = n
				continue
			}
		}
		out[i] = v
	}
	return out
}
