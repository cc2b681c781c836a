package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/timesheet-core-go/internal/backend"
	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/payment"
	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/reference"
	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-core-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Backend failures keep their own status family
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		BadGateway(w, "Upstream request failed")
		return
	}

	switch {
	// Document errors
	case errors.Is(err, timesheet.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, timesheet.ErrUnknownCollection):
		BadRequest(w, "Unknown task collection", nil)
	case errors.Is(err, timesheet.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, timesheet.ErrEnhancementInFlight):
		Conflict(w, "An enhancement for this row is already in progress")

	// Directory errors
	case errors.Is(err, reference.ErrSyncInFlight):
		Conflict(w, "A directory sync is already in progress")

	// Checkout workflow errors
	case errors.Is(err, payment.ErrNotIdle):
		Conflict(w, "A checkout is already in progress")
	case errors.Is(err, payment.ErrNotCollecting):
		Conflict(w, "No checkout is in progress")
	case errors.Is(err, payment.ErrSubmitting):
		Conflict(w, "A checkout submission is in flight")
	case errors.Is(err, payment.ErrRedirected):
		Conflict(w, "Checkout already handed off to the payment provider")

	// Auth errors
	case errors.Is(err, auth.ErrUnauthorized):
		Unauthorized(w, "Session expired or invalid")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
