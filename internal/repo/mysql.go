package repo

import (
	"context"
	"errors"
	"fmt"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

// MySQL server error numbers that indicate a malformed read query.
const (
	errBadFieldError = 1054 // ER_BAD_FIELD_ERROR: unknown column
	errNoSuchTable   = 1146 // ER_NO_SUCH_TABLE
)

// mysqlListingRepo is the MariaDB/MySQL implementation of ListingRepo.
type mysqlListingRepo struct {
	open func() (*gorm.DB, error)
}

// NewMySQLListingRepo constructs a ListingRepo that opens a fresh gorm
// session against dsn for every Fetch and closes it afterwards.
func NewMySQLListingRepo(dsn string) ListingRepo {
	return &mysqlListingRepo{
		open: func() (*gorm.DB, error) {
			return gorm.Open(mysql.Open(dsn), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Silent),
			})
		},
	}
}

// Fetch runs the listings SELECT as a raw query and decodes the untyped rows.
func (r *mysqlListingRepo) Fetch(ctx context.Context, cols []domain.Column) ([]domain.Listing, error) {
	q, err := buildSelect(cols, quoteBacktick)
	if err != nil {
		return nil, fmt.Errorf("repo.ListingRepo.Fetch: %w", err)
	}

	// gorm.Open pings the server, so an unreachable store fails here.
	db, err := r.open()
	if err != nil {
		return nil, fmt.Errorf("repo.ListingRepo.Fetch: %w: %w", domain.ErrConnection, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("repo.ListingRepo.Fetch: %w: %w", domain.ErrConnection, err)
	}
	defer sqlDB.Close()

	rows, err := db.WithContext(ctx).Raw(q).Rows()
	if err != nil {
		return nil, fmt.Errorf("repo.ListingRepo.Fetch: %w", classifyMySQLError(err))
	}
	defer rows.Close()

	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}

	var listings []domain.Listing
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("repo.ListingRepo.Fetch: scan: %w", classifyMySQLError(err))
		}
		l, err := decodeListing(cols, values)
		if err != nil {
			return nil, fmt.Errorf("repo.ListingRepo.Fetch: decode: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ListingRepo.Fetch: rows: %w", classifyMySQLError(err))
	}

	return listings, nil
}

// classifyMySQLError maps server error packets to query errors and transport
// failures to connection errors.
func classifyMySQLError(err error) error {
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case errBadFieldError, errNoSuchTable:
			return fmt.Errorf("%w: %s", domain.ErrQuery, myErr.Message)
		}
		return fmt.Errorf("%w: %w", domain.ErrQuery, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrConnection, err)
}
