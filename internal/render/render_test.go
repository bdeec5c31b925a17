package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/dingeldeiner/whitebook/internal/domain"
	"github.com/dingeldeiner/whitebook/internal/render"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func timeTrend() domain.Trend {
	return domain.Trend{
		Title:  "Market Overview (Average Price vs Time)",
		XLabel: "Time",
		YLabel: "Price",
		X:      []float64{1675300000, 1675314400, 1675328800, 1675343200},
		Y:      []float64{31000, 30500, 30900, 29800},
	}
}

func TestPriceOverTime_WritesPNG(t *testing.T) {
	var buf bytes.Buffer

	err := render.PriceOverTime(&buf, timeTrend())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestPriceByMileage_FlatCurveStillRenders(t *testing.T) {
	var buf bytes.Buffer
	tr := domain.Trend{
		Title: "Average Price By Mileage", XLabel: "Kilometers", YLabel: "Price",
		X: []float64{20000, 25000, 30000},
		Y: []float64{18000, 18000, 18000},
	}

	err := render.PriceByMileage(&buf, tr)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestTrend_EmptyCurveIsLowSampleSize(t *testing.T) {
	var buf bytes.Buffer

	err := render.PriceByMileage(&buf, domain.Trend{Title: "Average Price By Mileage"})

	assert.ErrorIs(t, err, domain.ErrLowSampleSize)
	assert.Zero(t, buf.Len())
}

func TestMap_WritesPNG(t *testing.T) {
	var buf bytes.Buffer
	points := []domain.GeoPoint{
		{Lat: 53.55, Lon: -113.49},
		{Lat: 51.05, Lon: -114.07},
		{Lat: 40.0, Lon: -100.0},
	}

	err := render.Map(&buf, points)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestMap_NoPointsStillDrawsFrame(t *testing.T) {
	var buf bytes.Buffer

	err := render.Map(&buf, nil)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

// ---- export ----------------------------------------------------------------

func exportRows() []domain.ExportRow {
	row := func(mk, price, note string) domain.ExportRow {
		r := make(domain.ExportRow, len(domain.ExportHeader))
		r[0] = mk
		r[2] = note
		r[10] = price
		return r
	}
	return []domain.ExportRow{
		row("Toyota", "27995.00", "XLE, AWD"),
		row("Honda", "", "EX"),
	}
}

func TestCSV_HeaderThenRows(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, render.CSV(&buf, exportRows()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(domain.ExportHeader, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], `Toyota,,"XLE, AWD",`), "cells with commas are quoted")
}

func TestCSV_NoRowsStillHasHeader(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, render.CSV(&buf, nil))

	assert.Equal(t, strings.Join(domain.ExportHeader, ",")+"\n", buf.String())
}

func TestXLSX_Workbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.XLSX(&buf, exportRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{render.SheetName}, f.GetSheetList())

	rows, err := f.GetRows(render.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.ExportHeader, rows[0])
	assert.Equal(t, "Toyota", rows[1][0])
	assert.Equal(t, "XLE, AWD", rows[1][2])

	price, err := f.GetCellValue(render.SheetName, "K2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "27995", price, "prices are stored as numbers")
}
