package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"

	"github.com/dingeldeiner/whitebook/internal/domain"
	"github.com/dingeldeiner/whitebook/internal/render"
)

// GetPriceTimeChart handles GET /charts/price-time.png.
func (s *Server) GetPriceTimeChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, func(w io.Writer, d domain.Dashboard) error {
		return render.PriceOverTime(w, d.PriceOverTime)
	})
}

// GetPriceMileageChart handles GET /charts/price-mileage.png.
func (s *Server) GetPriceMileageChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, func(w io.Writer, d domain.Dashboard) error {
		return render.PriceByMileage(w, d.PriceByMileage)
	})
}

// GetMapChart handles GET /charts/map.png.
func (s *Server) GetMapChart(w http.ResponseWriter, r *http.Request) {
	s.serveChart(w, r, func(w io.Writer, d domain.Dashboard) error {
		return render.Map(w, d.Map)
	})
}

// serveChart renders the dashboard for the request's selections and draws one
// chart from it. The image is buffered so a drawing failure still produces a
// JSON error instead of a truncated PNG. A chart is only served when the whole
// dashboard renders.
func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, draw func(io.Writer, domain.Dashboard) error) {
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

	var buf bytes.Buffer
	if err := draw(&buf, d); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Snapshot-Id", d.SnapshotID.String())
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client went away; nothing to report.
	buf.WriteTo(w)
}
