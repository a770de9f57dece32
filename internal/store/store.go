// Package store is the data-access layer over the farmer_crm schema.
//
// It contains the raw SQL queries and methods to fetch or persist
// farmer, field, crop, and conversation data, abstracting SQL logic
// away from callers. Rows are mapped into normalized, JSON-tagged
// records with placeholder defaults for columns the live schema lacks.
//
// Failure contract: every operation catches connectivity and statement
// failures at its own boundary, logs a diagnostic, and returns the
// operation's empty value together with a classified *errs.StoreError.
// Not-found is not a failure; it is a nil record or an empty slice
// with a nil error. No operation panics or retries.
package store

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avaagri/farmcrm/internal/sqlerr"
)

// Querier is the connection capability the store needs. It is
// satisfied by *pgxpool.Pool; tests substitute a scripted fake.
//
// Each Query/QueryRow call acquires a pooled session and releases it
// when the rows are closed, on every path.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store exposes the entity-oriented read and write operations.
//
// Exactly one Store (over one pool) should exist per process; the pool
// is injected rather than looked up globally so tests can substitute
// doubles.
type Store struct {
	db  Querier
	log zerolog.Logger
}

// New constructs a Store over the given connection source.
func New(db Querier, log zerolog.Logger) *Store {
	return &Store{db: db, log: log}
}

// fail classifies, logs, and returns the operation failure.
func (s *Store) fail(op, table string, err error) error {
	serr := sqlerr.Classify(op, table, err)
	s.log.Error().
		Err(err).
		Str("operation", op).
		Str("table", table).
		Str("kind", string(serr.Kind)).
		Msg("store operation failed")
	return serr
}

// displayName joins the manager name parts, trimmed of surrounding
// whitespace, falling back to "Unknown" when either part is missing.
func displayName(first, last string) string {
	if first == "" || last == "" {
		return unknownName
	}
	return strings.TrimSpace(first + " " + last)
}

// firstNonEmpty returns the first non-empty value, or "".
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// truncateMessage caps text at max runes, appending an ellipsis marker
// when it was longer.
func truncateMessage(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// numericToDecimal converts a nullable numeric column into a decimal,
// defaulting to zero on NULL or NaN.
func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.NaN || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

// textValue unwraps a nullable text column, defaulting to "".
func textValue(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

// textPtr unwraps a nullable text column into a pointer, nil on NULL.
func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	v := t.String
	return &v
}

// datePtr renders a nullable date column as YYYY-MM-DD, nil on NULL.
func datePtr(d pgtype.Date) *string {
	if !d.Valid {
		return nil
	}
	v := d.Time.Format("2006-01-02")
	return &v
}
