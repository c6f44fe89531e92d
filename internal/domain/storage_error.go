package domain

import "fmt"

// ErrorKind classifies a storage failure. The kind decides both the retry
// policy and the message shown to the end user.
type ErrorKind string

const (
	ErrorKindConnection          ErrorKind = "connection"
	ErrorKindTimeout             ErrorKind = "timeout"
	ErrorKindRateLimit           ErrorKind = "rate_limit"
	ErrorKindService             ErrorKind = "service"
	ErrorKindAuthExpired         ErrorKind = "auth_expired"
	ErrorKindPermissionDenied    ErrorKind = "permission_denied"
	ErrorKindUniqueViolation     ErrorKind = "unique_violation"
	ErrorKindForeignKeyViolation ErrorKind = "foreign_key_violation"
	ErrorKindNotNullViolation    ErrorKind = "not_null_violation"
	ErrorKindValidation          ErrorKind = "validation"
	ErrorKindConflict            ErrorKind = "conflict"
	ErrorKindUnavailable         ErrorKind = "unavailable"
	ErrorKindNotFound            ErrorKind = "not_found"
	ErrorKindUnknown             ErrorKind = "unknown"
)

func (k ErrorKind) String() string { return string(k) }

// UserMessage returns the end-user facing text for the kind.
func (k ErrorKind) UserMessage() string {
	switch k {
	case ErrorKindConnection:
		return "Unable to reach the database. Check your connection and try again."
	case ErrorKindTimeout:
		return "The request took too long to complete. Please try again."
	case ErrorKindRateLimit:
		return "Too many requests right now. Please wait a moment and try again."
	case ErrorKindService:
		return "The database service reported an error. Please try again shortly."
	case ErrorKindAuthExpired:
		return "Your session has expired. Please sign in again."
	case ErrorKindPermissionDenied:
		return "You do not have permission to perform this action."
	case ErrorKindUniqueViolation:
		return "A record with the same identifying value already exists."
	case ErrorKindForeignKeyViolation:
		return "A referenced record does not exist."
	case ErrorKindNotNullViolation:
		return "A required value is missing."
	case ErrorKindValidation:
		return "The submitted data is invalid."
	case ErrorKindConflict:
		return "The data was modified concurrently. Refresh and try again."
	case ErrorKindUnavailable:
		return "The database is temporarily unavailable."
	case ErrorKindNotFound:
		return "The requested record was not found."
	default:
		return "An unexpected error occurred."
	}
}

// StorageError is the typed failure surfaced by the storage gateway after
// classification and retries.
type StorageError struct {
	Op        string
	Kind      ErrorKind
	Retryable bool
	Attempts  int
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s (attempts=%d): %v", e.Op, e.Kind, e.Attempts, e.Err)
}

// Unwrap exposes both the raw driver error and the domain sentinel matching
// the kind, so callers can use errors.Is(err, ErrNotFound) as well as
// errors.As(err, &pgErr).
func (e *StorageError) Unwrap() []error {
	errs := []error{e.Err}
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	return errs
}

func (k ErrorKind) sentinel() error {
	switch k {
	case ErrorKindNotFound, ErrorKindForeignKeyViolation:
		return ErrNotFound
	case ErrorKindUniqueViolation:
		return ErrAlreadyExists
	case ErrorKindValidation, ErrorKindNotNullViolation:
		return ErrValidation
	case ErrorKindConflict:
		return ErrConflict
	case ErrorKindPermissionDenied:
		return ErrForbidden
	case ErrorKindAuthExpired:
		return ErrUnauthorized
	case ErrorKindUnavailable, ErrorKindConnection, ErrorKindTimeout, ErrorKindRateLimit, ErrorKindService:
		return ErrUnavailable
	}
	return nil
}
