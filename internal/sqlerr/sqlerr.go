// Package sqlerr handles database driver errors.
//
// It parses error codes from the pgx driver and converts them into the
// layer's failure taxonomy, so the store never has to inspect SQLSTATE
// values or driver types itself.
package sqlerr

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/avaagri/farmcrm/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE class prefixes. The class is the first two characters of
// the five-character code.
const (
	classConnection        = "08" // connection exception
	classDataException     = "22" // invalid data for the statement
	classIntegrity         = "23" // constraint violations
	classInvalidTxState    = "25" // invalid transaction state
	classSyntaxOrAccess    = "42" // syntax error or access rule violation
	classInsufficientRes   = "53" // insufficient resources
	classOperatorIntervene = "57" // operator intervention (shutdown etc.)
)

// IsNotFound reports whether err is the driver's no-rows sentinel.
// Not-found is not a failure in this layer.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Classify converts a driver error into a *errs.StoreError for the
// given operation and table.
//
// Mapping:
//   - context timeouts/cancellation and net errors -> connectivity
//   - SQLSTATE connection/resource/shutdown classes -> connectivity
//   - SQLSTATE syntax, constraint, and data classes -> statement
//   - anything else -> other
func Classify(op, table string, err error) *errs.StoreError {
	return errs.New(kindOf(err), op, table, err)
}

func kindOf(err error) errs.Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.KindConnectivity
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return errs.KindConnectivity
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch sqlstateClass(pgErr.Code) {
		case classConnection, classInsufficientRes, classOperatorIntervene:
			return errs.KindConnectivity
		case classDataException, classIntegrity, classInvalidTxState, classSyntaxOrAccess:
			return errs.KindStatement
		default:
			return errs.KindOther
		}
	}

	// pgconn reports dial failures as plain errors with this marker.
	if strings.Contains(err.Error(), "failed to connect") {
		return errs.KindConnectivity
	}

	return errs.KindOther
}

func sqlstateClass(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}
