// Package httperr maps engine errors onto HTTP status codes. Every
// mutating handler funnels operator errors through Map so the error
// vocabulary stays consistent across endpoints.
package httperr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// Map converts an engine error into a huma status error. fallback names
// the operation for the 500 message on unrecognized errors.
func Map(err error, fallback string) error {
	if err == nil {
		return nil
	}

	var (
		validationErr   *actions.ValidationError
		notFoundErr     *actions.NotFoundError
		conflictErr     *actions.ConflictError
		insufficientErr *actions.InsufficientFundsError
		budgetErr       *actions.BudgetExceededError
		cannotDeleteErr *actions.CannotDeleteError
	)

	switch {
	case errors.As(err, &validationErr):
		return huma.NewError(http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		return huma.NewError(http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		return huma.NewError(http.StatusConflict, conflictErr.Error())
	case errors.As(err, &insufficientErr):
		return huma.NewError(http.StatusConflict, insufficientErr.Error())
	case errors.As(err, &budgetErr):
		return huma.NewError(http.StatusConflict, budgetErr.Error())
	case errors.As(err, &cannotDeleteErr):
		return huma.NewError(http.StatusConflict, cannotDeleteErr.Error())
	case errors.Is(err, storage.ErrBusy):
		return huma.NewError(http.StatusServiceUnavailable, "operation timed out waiting for a lock, retry")
	default:
		return huma.NewError(http.StatusInternalServerError, fallback, err)
	}
}

// Forbidden is the uniform response for a role denied by the capability
// matrix.
func Forbidden() error {
	return huma.NewError(http.StatusForbidden, "role not permitted to perform this operation")
}
