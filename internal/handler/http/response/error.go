package response

import (
	"errors"
	"net/http"

	"github.com/rotahr/payroll-backend-go/internal/domain/holiday"
	"github.com/rotahr/payroll-backend-go/internal/domain/payroll"
	"github.com/rotahr/payroll-backend-go/internal/domain/rateprofile"
	"github.com/rotahr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Payroll domain errors
	switch {
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrRecordLocked):
		Locked(w, "Payroll record is no longer pending")
	case errors.Is(err, payroll.ErrRegenerateNotPending):
		Conflict(w, "Only pending payroll records can be regenerated")
	case errors.Is(err, payroll.ErrInvalidTransition):
		Conflict(w, "Invalid payroll status transition")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Rate profile domain errors
	case errors.Is(err, rateprofile.ErrRateProfileNotFound):
		NotFound(w, "Rate profile not found")
	case errors.Is(err, rateprofile.ErrShiftNameExists):
		Conflict(w, "Shift template name already exists in this profile")
	case errors.Is(err, rateprofile.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Bank holiday domain errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Bank holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Bank holiday already exists on this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
