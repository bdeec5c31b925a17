package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dingeldeiner/whitebook/internal/domain"
)

// pgConn is the subset of *pgx.Conn used by the Postgres store.
// Accepting this interface lets tests substitute a fake connection.
type pgConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close(ctx context.Context) error
}

// pgListingRepo is the Postgres implementation of ListingRepo.
type pgListingRepo struct {
	connect func(ctx context.Context) (pgConn, error)
}

// NewPostgresListingRepo constructs a ListingRepo that opens a fresh pgx
// connection to connString for every Fetch.
func NewPostgresListingRepo(connString string) ListingRepo {
	return &pgListingRepo{
		connect: func(ctx context.Context) (pgConn, error) {
			conn, err := pgx.Connect(ctx, connString)
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
	}
}

// Fetch runs the listings SELECT over a short-lived connection.
func (r *pgListingRepo) Fetch(ctx context.Context, cols []domain.Column) ([]domain.Listing, error) {
	q, err := buildSelect(cols, quoteDouble)
	if err != nil {
		return nil, fmt.Errorf("repo.ListingRepo.Fetch: %w", err)
	}

	conn, err := r.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.ListingRepo.Fetch: %w: %w", domain.ErrConnection, err)
	}
	defer conn.Close(ctx)

	rows, err := conn.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ListingRepo.Fetch: %w", classifyPgError(err))
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("repo.ListingRepo.Fetch: values: %w", classifyPgError(err))
		}
		l, err := decodeListing(cols, values)
		if err != nil {
			return nil, fmt.Errorf("repo.ListingRepo.Fetch: decode: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ListingRepo.Fetch: rows: %w", classifyPgError(err))
	}

	return listings, nil
}

// classifyPgError tags server-side rejections (undefined column, missing
// table, syntax) as query errors and everything else as connection errors.
func classifyPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%w: %s (SQLSTATE %s)", domain.ErrQuery, pgErr.Message, pgErr.Code)
	}
	return fmt.Errorf("%w: %w", domain.ErrConnection, err)
}
