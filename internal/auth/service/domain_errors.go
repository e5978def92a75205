package service

import (
	"fmt"
	"net/http"

	commonerrors "github.com/pkravets/huddle-auth/internal/common/errors"
)

var (
	// Identical for "no such user" and "wrong password" so responses cannot
	// be used to enumerate accounts.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid credentials",
	)

	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"validation failed",
	)

	ErrStore = commonerrors.NewDomainError(
		"STORE_ERROR",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"store failure",
	)

	ErrInternal = commonerrors.NewDomainError(
		"INTERNAL_ERROR",
		commonerrors.CategoryInternal,
		http.StatusInternalServerError,
		"internal error",
	)
)

func newValidationError(message string) commonerrors.DomainError {
	return ErrValidation.WithMessage(message)
}

// Store failures carry the raw underlying error text. Duplicate-key
// violations are deliberately not singled out; the store's answer is reported
// as-is (see DESIGN.md).
func newStoreError(cause error) commonerrors.DomainError {
	return ErrStore.WithMessage(fmt.Sprintf("Database error: %v", cause)).WithCause(cause)
}

func newAvailabilityStoreError(cause error) commonerrors.DomainError {
	return ErrStore.WithMessage(fmt.Sprintf("Server Error: %v", cause)).WithCause(cause)
}
