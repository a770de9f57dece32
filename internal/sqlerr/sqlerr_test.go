package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/avaagri/farmcrm/internal/errs"
)

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(pgx.ErrNoRows))
	assert.True(t, IsNotFound(fmt.Errorf("query: %w", pgx.ErrNoRows)))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestClassifyConnectivity(t *testing.T) {
	cases := []error{
		&pgconn.PgError{Code: "08006"}, // connection failure
		&pgconn.PgError{Code: "53300"}, // too many connections
		&pgconn.PgError{Code: "57P01"}, // admin shutdown
		context.DeadlineExceeded,
		context.Canceled,
		&net.OpError{Op: "dial", Err: errors.New("connection refused")},
		errors.New("failed to connect to `host=db user=crm`"),
	}
	for _, err := range cases {
		got := Classify("op", "farmers", err)
		assert.Equal(t, errs.KindConnectivity, got.Kind, "error: %v", err)
	}
}

func TestClassifyStatement(t *testing.T) {
	cases := []error{
		&pgconn.PgError{Code: "42601"}, // syntax error
		&pgconn.PgError{Code: "42P01"}, // undefined table
		&pgconn.PgError{Code: "23505"}, // unique violation
		&pgconn.PgError{Code: "23503"}, // foreign key violation
		&pgconn.PgError{Code: "22P02"}, // invalid text representation
	}
	for _, err := range cases {
		got := Classify("op", "farmers", err)
		assert.Equal(t, errs.KindStatement, got.Kind, "error: %v", err)
	}
}

func TestClassifyOther(t *testing.T) {
	got := Classify("op", "farmers", errors.New("something unexpected"))
	assert.Equal(t, errs.KindOther, got.Kind)
}

func TestClassifyPreservesContext(t *testing.T) {
	cause := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	got := Classify("save_conversation", "incoming_messages", cause)

	assert.Equal(t, "save_conversation", got.Op)
	assert.Equal(t, "incoming_messages", got.Table)
	assert.ErrorIs(t, got, &errs.StoreError{})

	var pgErr *pgconn.PgError
	assert.ErrorAs(t, got, &pgErr)
}
