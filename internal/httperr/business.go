package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Stable business error codes shared between use cases and handlers.
const (
	CodeNotFound              = "not_found"
	CodeSlotUnavailable       = "slot_unavailable"
	CodeInvalidTransition     = "invalid_transition"
	CodeInvalidToken          = "invalid_or_expired_token"
	CodeCancellationForbidden = "cancellation_not_allowed"
	CodeValidation            = "validation_error"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the business code from err, "" when err is not a
// business error.
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsExclusionConflict reports whether err is the Postgres exclusion or
// unique constraint violation raised by the bookings overlap constraint.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}

// IsUniqueViolation reports whether err is a Postgres unique constraint
// violation (23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
