// Package apperr defines the domain error taxonomy and its HTTP mapping.
// Every failure surfaced to a client maps to exactly one of these sentinels
// so handlers can produce a single user-visible message per response.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound          = errors.New("requested resource not found")
	ErrNotAuthenticated  = errors.New("authentication required")
	ErrRoleMismatch      = errors.New("role not permitted for this operation")
	ErrAccountFlagged    = errors.New("account has been flagged by an administrator")
	ErrCampaignFlagged   = errors.New("campaign has been flagged by an administrator")
	ErrOwnershipMismatch = errors.New("resource belongs to another account")
	ErrValidation        = errors.New("validation failed")

	ErrDuplicateRequest = errors.New("an ad request for this campaign already exists")
	ErrAlreadyFlagged   = errors.New("entity is already flagged")
	ErrNotFlagged       = errors.New("entity is not flagged")
	ErrAlreadyPaid      = errors.New("payment has already been recorded")
	ErrUsernameTaken    = errors.New("username already taken")
)

// Named validation failures the lifecycle checks for explicitly.
var (
	ErrEmptyMessage  = fmt.Errorf("message cannot be blank: %w", ErrValidation)
	ErrInvalidAmount = fmt.Errorf("amount must be positive: %w", ErrValidation)
)

// Validationf wraps a field-level message in ErrValidation so handlers map
// it to a 400 while keeping the specific message user-visible.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// HTTPStatus maps a domain error to its response status code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrRoleMismatch),
		errors.Is(err, ErrAccountFlagged),
		errors.Is(err, ErrCampaignFlagged),
		errors.Is(err, ErrOwnershipMismatch):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateRequest),
		errors.Is(err, ErrAlreadyFlagged),
		errors.Is(err, ErrNotFlagged),
		errors.Is(err, ErrAlreadyPaid),
		errors.Is(err, ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
