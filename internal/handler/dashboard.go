package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type trendJSON struct {
	Title  string      `json:"title"`
	XLabel string      `json:"x_label"`
	YLabel string      `json:"y_label"`
	Points []pointJSON `json:"points"`
}

type geoPointJSON struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type dashboardResponse struct {
	SnapshotID     string         `json:"snapshot_id"`
	LoadedAt       time.Time      `json:"loaded_at"`
	RecordCount    int            `json:"record_count"`
	Summary        string         `json:"summary"`
	Filters        []string       `json:"filters"`
	Query          string         `json:"query"`
	PriceOverTime  trendJSON      `json:"price_over_time"`
	PriceByMileage trendJSON      `json:"price_by_mileage"`
	Map            []geoPointJSON `json:"map"`
}

// GetDashboard handles GET /dashboard.
// It runs the full pipeline for the selection query parameters and returns
// the record count, filter description, both trend curves and the map points.
func (s *Server) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sels, err := parseSelections(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	d, err := s.dashboards.Render(r.Context(), sels)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("X-Snapshot-Id", d.SnapshotID.String())
	writeJSON(w, http.StatusOK, dashboardToResponse(d))
}

func dashboardToResponse(d domain.Dashboard) dashboardResponse {
	points := make([]geoPointJSON, len(d.Map))
	for i, p := range d.Map {
		points[i] = geoPointJSON{Lat: p.Lat, Lon: p.Lon}
	}
	filters := d.Filters
	if filters == nil {
		filters = []string{}
	}
	return dashboardResponse{
		SnapshotID:     d.SnapshotID.String(),
		LoadedAt:       d.LoadedAt,
		RecordCount:    d.RecordCount,
		Summary:        recordSummary(d.RecordCount),
		Filters:        filters,
		Query:          d.Query,
		PriceOverTime:  trendToResponse(d.PriceOverTime),
		PriceByMileage: trendToResponse(d.PriceByMileage),
		Map:            points,
	}
}

func trendToResponse(t domain.Trend) trendJSON {
	points := make([]pointJSON, len(t.X))
	for i := range t.X {
		points[i] = pointJSON{X: t.X[i], Y: t.Y[i]}
	}
	return trendJSON{Title: t.Title, XLabel: t.XLabel, YLabel: t.YLabel, Points: points}
}

// recordSummary is the count line shown above the charts.
func recordSummary(n int) string {
	return strconv.Itoa(n) + " records found."
}
