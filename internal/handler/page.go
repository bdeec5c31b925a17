package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dingeldeiner/whitebook/internal/domain"
	"github.com/dingeldeiner/whitebook/web"
)

type pageOption struct {
	Value    string
	Selected bool
}

type pageFacet struct {
	Name    string
	Label   string
	Options []pageOption
}

type pageRange struct {
	Label            string
	MinName, MaxName string
	Min, Max         string
}

type pageLinks struct {
	PriceTime    template.URL
	PriceMileage template.URL
	Map          template.URL
	CSV          template.URL
	XLSX         template.URL
}

type pageData struct {
	Facets     []pageFacet
	Ranges     []pageRange
	Summary    string
	Filters    []string
	Error      string
	Charts     pageLinks
	SnapshotID string
	LoadedAt   string
}

var facetLabels = map[string]string{
	"body_type":    "Body Type",
	"make":         "Make",
	"model":        "Model",
	"drivetrain":   "Drivetrain",
	"transmission": "Transmission",
	"fuel_type":    "Fuel Type",
}

var rangeLabels = map[domain.Column]string{
	domain.ColumnYear:       "Year",
	domain.ColumnKilometers: "Kilometers",
	domain.ColumnPrice:      "Price",
}

// GetPage handles GET /, the server-rendered dashboard.
// The filter form submits back to / with the same query parameters the JSON
// endpoints take; chart images and export links carry them along.
// On failure the error replaces the charts and the page is served with the
// error's status code.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := http.StatusOK
	var data pageData

	fail := func(err error) {
		code, body := classify(err)
		if status == http.StatusOK {
			status = code
			data.Error = body.Error.Message
		}
		if code >= http.StatusInternalServerError {
			s.logger.ErrorContext(r.Context(), "page render failed", "status", code, "error", err)
		}
	}

	sels, err := parseSelections(q)
	if err != nil {
		fail(err)
	}

	facets, err := s.dashboards.Facets(r.Context(), sels.Get(domain.ColumnMake).Values)
	if err != nil {
		fail(err)
	} else {
		data.Facets = pageFacets(facets, q)
		data.Ranges = pageRanges(facets.Defaults, q)
	}

	if status == http.StatusOK {
		d, err := s.dashboards.Render(r.Context(), sels)
		if err != nil {
			fail(err)
		} else {
			data.Summary = recordSummary(d.RecordCount)
			data.Filters = d.Filters
			data.SnapshotID = d.SnapshotID.String()
			data.LoadedAt = d.LoadedAt.Format(time.RFC1123)
			data.Charts = pageChartLinks(q)
		}
	}

	var buf bytes.Buffer
	if err := web.Dashboard.Execute(&buf, data); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	//nolint:errcheck // client went away; nothing to report.
	buf.WriteTo(w)
}

func pageFacets(f domain.Facets, q url.Values) []pageFacet {
	options := []struct {
		name   string
		values []string
	}{
		{"body_type", f.BodyTypes},
		{"make", f.Makes},
		{"model", f.Models},
		{"drivetrain", f.Drivetrains},
		{"transmission", f.Transmissions},
		{"fuel_type", f.FuelTypes},
	}

	out := make([]pageFacet, 0, len(options))
	for _, o := range options {
		// Model is only offered for a single make.
		if o.name == "model" && f.Models == nil {
			continue
		}
		selected := make(map[string]bool)
		for _, v := range q[o.name] {
			selected[v] = true
		}
		pf := pageFacet{Name: o.name, Label: facetLabels[o.name]}
		for _, v := range o.values {
			pf.Options = append(pf.Options, pageOption{Value: v, Selected: selected[v]})
		}
		out = append(out, pf)
	}
	return out
}

func pageRanges(d domain.RangeDefaults, q url.Values) []pageRange {
	defaults := map[domain.Column][2]float64{
		domain.ColumnYear:       {d.YearMin, d.YearMax},
		domain.ColumnKilometers: {d.KilometersMin, d.KilometersMax},
		domain.ColumnPrice:      {d.PriceMin, d.PriceMax},
	}
	out := make([]pageRange, 0, len(rangeParams))
	for _, p := range rangeParams {
		b := defaults[p.column]
		out = append(out, pageRange{
			Label:   rangeLabels[p.column],
			MinName: p.min,
			MaxName: p.max,
			Min:     valueOr(q, p.min, b[0]),
			Max:     valueOr(q, p.max, b[1]),
		})
	}
	return out
}

// pageChartLinks builds the chart and export URLs for the current selections.
// Only non-empty selection parameters are forwarded.
func pageChartLinks(q url.Values) pageLinks {
	fwd := url.Values{}
	for _, p := range facetParams {
		for _, v := range q[p.name] {
			if v != "" {
				fwd.Add(p.name, v)
			}
		}
	}
	for _, p := range rangeParams {
		for _, name := range []string{p.min, p.max} {
			if v := q.Get(name); v != "" {
				fwd.Set(name, v)
			}
		}
	}

	link := func(path string, extra ...string) template.URL {
		v := url.Values{}
		for k, vs := range fwd {
			v[k] = vs
		}
		for i := 0; i+1 < len(extra); i += 2 {
			v.Set(extra[i], extra[i+1])
		}
		if len(v) == 0 {
			return template.URL(path)
		}
		return template.URL(path + "?" + v.Encode())
	}
	return pageLinks{
		PriceTime:    link("/charts/price-time.png"),
		PriceMileage: link("/charts/price-mileage.png"),
		Map:          link("/charts/map.png"),
		CSV:          link("/export", "format", "csv"),
		XLSX:         link("/export", "format", "xlsx"),
	}
}

func valueOr(q url.Values, name string, fallback float64) string {
	if v := q.Get(name); v != "" {
		return v
	}
	return strconv.FormatFloat(fallback, 'f', -1, 64)
}
