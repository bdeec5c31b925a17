package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dingeldeiner/whitebook/internal/domain"
	"github.com/dingeldeiner/whitebook/internal/render"
)

// exportFormats maps ?format= values to their encoder and content type.
var exportFormats = map[string]struct {
	contentType string
	encode      func(*bytes.Buffer, []domain.ExportRow) error
}{
	"csv": {
		contentType: "text/csv; charset=utf-8",
		encode: func(b *bytes.Buffer, rows []domain.ExportRow) error {
			return render.CSV(b, rows)
		},
	},
	"xlsx": {
		contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		encode: func(b *bytes.Buffer, rows []domain.ExportRow) error {
			return render.XLSX(b, rows)
		},
	},
}

// GetExport handles GET /export.
// It returns the filtered view as a downloadable file: CSV by default, or an
// XLSX workbook with ?format=xlsx. The selection parameters apply as on /dashboard.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = "csv"
	}
	enc, ok := exportFormats[format]
	if !ok {
		s.writeError(w, r, fmt.Errorf("%w: format must be csv or xlsx, got %q", domain.ErrValidation, format))
		return
	}

	sels, err := parseSelections(q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rows, err := s.export.Export(r.Context(), sels)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := enc.encode(&buf, rows); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", enc.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="listings.%s"`, format))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client went away; nothing to report.
	buf.WriteTo(w)
}
