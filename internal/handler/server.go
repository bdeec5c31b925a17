// Package handler implements the HTTP surface of the dashboard: JSON
// endpoints, PNG charts, exports and the HTML page. All handlers are methods
// on Server; routes are registered in Handler (routes.go).
package handler

import (
	"context"
	"log/slog"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

// DashboardServicer defines the pipeline operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without a store or a cache.
type DashboardServicer interface {
	Render(ctx context.Context, sels domain.SelectionSet) (domain.Dashboard, error)
	Facets(ctx context.Context, makes []string) (domain.Facets, error)
	Listings(ctx context.Context, sels domain.SelectionSet, page domain.PaginationParams) (domain.ListingPage, error)
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, sels domain.SelectionSet) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	dashboards DashboardServicer
	export     ExportServicer
	logger     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(dashboards DashboardServicer, export ExportServicer, logger *slog.Logger) *Server {
	return &Server{dashboards: dashboards, export: export, logger: logger}
}
