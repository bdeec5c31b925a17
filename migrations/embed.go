// Package migrations embeds the fixture schema for the vehicles table.
// The production table is owned by the scraper; these files are applied by
// goose only against the integration-test database.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
