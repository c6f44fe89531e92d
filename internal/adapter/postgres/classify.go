package postgres

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/bizops-backend/internal/domain"
)

// ErrBreakerOpen is returned when the circuit breaker rejects a call.
var ErrBreakerOpen = errors.New("storage circuit breaker open")

type classification struct {
	kind      domain.ErrorKind
	retryable bool
}

// sqlStateRules maps exact SQLSTATE codes to a kind. Checked first.
var sqlStateRules = map[string]classification{
	"57P01": {domain.ErrorKindConnection, true}, // admin_shutdown
	"57P02": {domain.ErrorKindConnection, true}, // crash_shutdown
	"57P03": {domain.ErrorKindConnection, true}, // cannot_connect_now
	"57014": {domain.ErrorKindTimeout, true},    // query_canceled
	"53300": {domain.ErrorKindRateLimit, true},  // too_many_connections
	"53400": {domain.ErrorKindRateLimit, true},  // configuration_limit_exceeded
	"53100": {domain.ErrorKindService, true},    // disk_full
	"53200": {domain.ErrorKindService, true},    // out_of_memory
	"XX000": {domain.ErrorKindService, true},    // internal_error
	"28000": {domain.ErrorKindAuthExpired, false},
	"28P01": {domain.ErrorKindAuthExpired, false},
	"42501": {domain.ErrorKindPermissionDenied, false},
	"23505": {domain.ErrorKindUniqueViolation, false},
	"23503": {domain.ErrorKindForeignKeyViolation, false},
	"23502": {domain.ErrorKindNotNullViolation, false},
	"23514": {domain.ErrorKindValidation, false},
	"P0001": {domain.ErrorKindValidation, false}, // raise_exception
	"P0002": {domain.ErrorKindNotFound, false},   // no_data_found
	"40001": {domain.ErrorKindConflict, false},   // serialization_failure
	"40P01": {domain.ErrorKindConflict, false},   // deadlock_detected
}

// sqlStateClassRules maps the two-character SQLSTATE class when no exact
// code matched.
var sqlStateClassRules = map[string]classification{
	"08": {domain.ErrorKindConnection, true},
	"58": {domain.ErrorKindService, true},
	"22": {domain.ErrorKindValidation, false},
	"23": {domain.ErrorKindValidation, false},
	"25": {domain.ErrorKindConflict, false}, // invalid_transaction_state, e.g. 25P02 in_failed_sql_transaction
}

// messageRules are the last resort for errors that carry no code.
var messageRules = []struct {
	pattern string
	class   classification
}{
	{"concurrent modification", classification{domain.ErrorKindConflict, false}},
	{"jwt expired", classification{domain.ErrorKindAuthExpired, false}},
	{"row-level security", classification{domain.ErrorKindPermissionDenied, false}},
	{"permission denied", classification{domain.ErrorKindPermissionDenied, false}},
	{"too many", classification{domain.ErrorKindRateLimit, true}},
	{"timed out", classification{domain.ErrorKindTimeout, true}},
	{"timeout", classification{domain.ErrorKindTimeout, true}},
	{"connection refused", classification{domain.ErrorKindConnection, true}},
	{"connection reset", classification{domain.ErrorKindConnection, true}},
	{"broken pipe", classification{domain.ErrorKindConnection, true}},
	{"no such host", classification{domain.ErrorKindConnection, true}},
}

// Classify maps a storage error onto an ErrorKind and reports whether a
// retry could succeed. Structured codes win over message heuristics.
func Classify(err error) (domain.ErrorKind, bool) {
	if err == nil {
		return "", false
	}

	var se *domain.StorageError
	if errors.As(err, &se) {
		return se.Kind, se.Retryable
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return domain.ErrorKindValidation, false
	case errors.Is(err, domain.ErrConflict):
		return domain.ErrorKindConflict, false
	case errors.Is(err, domain.ErrNotFound):
		return domain.ErrorKindNotFound, false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if c, ok := sqlStateRules[pgErr.Code]; ok {
			return c.kind, c.retryable
		}
		if len(pgErr.Code) == 5 {
			if c, ok := sqlStateClassRules[pgErr.Code[:2]]; ok {
				return c.kind, c.retryable
			}
		}
		if c, ok := matchMessage(pgErr.Message); ok {
			return c.kind, c.retryable
		}
		return domain.ErrorKindUnknown, true
	}

	switch {
	case errors.Is(err, ErrBreakerOpen):
		return domain.ErrorKindUnavailable, false
	case errors.Is(err, pgx.ErrNoRows), pgxscan.NotFound(err):
		return domain.ErrorKindNotFound, false
	case errors.Is(err, context.Canceled):
		return domain.ErrorKindUnknown, false
	case errors.Is(err, context.DeadlineExceeded):
		return domain.ErrorKindTimeout, true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return domain.ErrorKindConnection, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return domain.ErrorKindTimeout, true
		}
		return domain.ErrorKindConnection, true
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return domain.ErrorKindConnection, true
	}

	if c, ok := matchMessage(err.Error()); ok {
		return c.kind, c.retryable
	}

	return domain.ErrorKindUnknown, true
}

func matchMessage(msg string) (classification, bool) {
	msg = strings.ToLower(msg)
	for _, r := range messageRules {
		if strings.Contains(msg, r.pattern) {
			return r.class, true
		}
	}
	return classification{}, false
}

// SQLState returns the PostgreSQL error code carried by err, if any.
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsUndefinedObject reports whether err says a table or function does not exist.
func IsUndefinedObject(err error) bool {
	switch SQLState(err) {
	case "42P01", "42883":
		return true
	}
	return false
}

// safeToRetry reports whether a connection failure happened before the
// statement reached the server.
func safeToRetry(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	return pgconn.SafeToRetry(err)
}
