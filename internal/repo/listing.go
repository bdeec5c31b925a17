// Package repo contains all read access to the listings store.
// The store is either Postgres (pgx) or MariaDB/MySQL (gorm); both open one
// connection per Fetch, run a single SELECT and close it again.
// No filtering or business logic lives here, only SQL and row decoding.
package repo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

// CutoffEpoch excludes listings first seen before this instant (epoch seconds).
const CutoffEpoch = 1675221580

// Supported values for NewListingRepo's driver argument.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// ListingRepo reads listings from the store.
// The service layer depends on this interface, not on a concrete driver.
type ListingRepo interface {
	// Fetch selects exactly cols from the vehicles table for every listing
	// posted after CutoffEpoch, normalizing null sentinels and deriving
	// Date_Posted_S and Time_On_Market.
	// Returns domain.ErrConnection when the store is unreachable and
	// domain.ErrQuery when the column list or query is rejected.
	Fetch(ctx context.Context, cols []domain.Column) ([]domain.Listing, error)
}

// NewListingRepo returns the ListingRepo for driver, connecting with dsn.
func NewListingRepo(driver, dsn string) (ListingRepo, error) {
	switch driver {
	case DriverMySQL:
		return NewMySQLListingRepo(dsn), nil
	case DriverPostgres:
		return NewPostgresListingRepo(dsn), nil
	}
	return nil, fmt.Errorf("repo.NewListingRepo: unsupported driver %q", driver)
}

// buildSelect returns the read query for cols, quoting each identifier with
// quote. Only stored columns are accepted; derived or unknown names yield
// domain.ErrQuery without touching the store.
func buildSelect(cols []domain.Column, quote func(string) string) (string, error) {
	if len(cols) == 0 {
		return "", fmt.Errorf("%w: empty column list", domain.ErrQuery)
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		if _, ok := c.Kind(); !ok {
			return "", fmt.Errorf("%w: unknown column %q", domain.ErrQuery, c)
		}
		names[i] = quote(string(c))
	}
	return "SELECT " + strings.Join(names, ", ") +
		" FROM vehicles WHERE " + quote(string(domain.ColumnDatePosted)) +
		" > " + strconv.Itoa(CutoffEpoch), nil
}

func quoteBacktick(name string) string { return "`" + name + "`" }

func quoteDouble(name string) string { return `"` + name + `"` }
