package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dingeldeiner/whitebook/internal/domain"
	"github.com/dingeldeiner/whitebook/internal/handler"
)

// ---- mock DashboardServicer ------------------------------------------------

// mockDashboardServicer is a hand-written test double for handler.DashboardServicer.
// Each method is a function field; set only the ones your test needs.
type mockDashboardServicer struct {
	render   func(ctx context.Context, sels domain.SelectionSet) (domain.Dashboard, error)
	facets   func(ctx context.Context, makes []string) (domain.Facets, error)
	listings func(ctx context.Context, sels domain.SelectionSet, page domain.PaginationParams) (domain.ListingPage, error)
}

func (m *mockDashboardServicer) Render(ctx context.Context, sels domain.SelectionSet) (domain.Dashboard, error) {
	return m.render(ctx, sels)
}
func (m *mockDashboardServicer) Facets(ctx context.Context, makes []string) (domain.Facets, error) {
	return m.facets(ctx, makes)
}
func (m *mockDashboardServicer) Listings(ctx context.Context, sels domain.SelectionSet, page domain.PaginationParams) (domain.ListingPage, error) {
	return m.listings(ctx, sels, page)
}

// compile-time check: mockDashboardServicer must satisfy handler.DashboardServicer.
var _ handler.DashboardServicer = (*mockDashboardServicer)(nil)

// ---- mock ExportServicer ---------------------------------------------------

type mockExportServicer struct {
	export func(ctx context.Context, sels domain.SelectionSet) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, sels domain.SelectionSet) ([]domain.ExportRow, error) {
	return m.export(ctx, sels)
}

// compile-time check: mockExportServicer must satisfy handler.ExportServicer.
var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server around the mocks and returns its router.
func newHTTPHandler(d handler.DashboardServicer, e handler.ExportServicer) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.Handler(handler.NewServer(d, e, logger))
}

// get performs a GET against h and returns the recorder.
func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

var fixtureSnapshotID = uuid.MustParse("6f1c2b4e-8a3d-4c9e-9b7a-2d5e8f1a3c6b")

func dashboardFixture() domain.Dashboard {
	return domain.Dashboard{
		SnapshotID:  fixtureSnapshotID,
		LoadedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		RecordCount: 3,
		Filters:     []string{"Toyota", "Year > 2015"},
		Query:       "(Make == 'Toyota') and Year >= 2015",
		PriceOverTime: domain.Trend{
			Title: "Market Overview (Average Price vs Time)", XLabel: "Time", YLabel: "Price",
			X: []float64{1675300000, 1675314400, 1675328800},
			Y: []float64{30000, 29900, 29850},
		},
		PriceByMileage: domain.Trend{
			Title: "Average Price By Mileage", XLabel: "Kilometers", YLabel: "Price",
			X: []float64{20000, 25000},
			Y: []float64{25000, 24000},
		},
		Map: []domain.GeoPoint{{Lat: 53.5, Lon: -113.5}},
	}
}

func facetsFixture() domain.Facets {
	return domain.Facets{
		BodyTypes:     []string{"SUV", "Sedan"},
		Makes:         []string{"Honda", "Toyota"},
		Drivetrains:   []string{"AWD", "FWD"},
		Transmissions: []string{"Automatic"},
		FuelTypes:     []string{"Gas"},
		Defaults: domain.RangeDefaults{
			YearMin: 1960, YearMax: 2024,
			KilometersMin: 20000, KilometersMax: 300000,
			PriceMin: 1500, PriceMax: 100000,
		},
	}
}

func staticDashboards() *mockDashboardServicer {
	return &mockDashboardServicer{
		render: func(context.Context, domain.SelectionSet) (domain.Dashboard, error) { return dashboardFixture(), nil },
		facets: func(context.Context, []string) (domain.Facets, error) { return facetsFixture(), nil },
	}
}

// ---- routing ---------------------------------------------------------------

func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	rec := get(t, newHTTPHandler(nil, nil), "/healthz")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
}

func TestRouter_UnknownPath_JSON404(t *testing.T) {
	rec := get(t, newHTTPHandler(nil, nil), "/trips")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", decodeError(t, rec).Error.Code)
}

func TestRouter_WriteMethod_405(t *testing.T) {
	rec := httptest.NewRecorder()
	newHTTPHandler(nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dashboard", nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "method_not_allowed", decodeError(t, rec).Error.Code)
}
