package response

import (
	"errors"
	"net/http"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/paf-hr/hrms-backend-go/internal/domain/employee"
	"github.com/paf-hr/hrms-backend-go/internal/domain/ledger"
	"github.com/paf-hr/hrms-backend-go/internal/domain/penalty"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/spreadsheet"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Token errors
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidPAKCode),
		errors.Is(err, employee.ErrInvalidCategory):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNoRowsProvided),
		errors.Is(err, attendance.ErrInvalidDateFormat):
		BadRequest(w, err.Error(), nil)

	// Spreadsheet upload errors
	case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
		UnsupportedMediaType(w, err.Error())
	case errors.Is(err, spreadsheet.ErrNoWorksheet),
		errors.Is(err, spreadsheet.ErrEmptyWorksheet):
		BadRequest(w, err.Error(), nil)

	// Penalty domain errors
	case errors.Is(err, penalty.ErrSettingsNotFound):
		NotFound(w, "Penalty settings not found")
	case errors.Is(err, penalty.ErrInvalidSettings):
		BadRequest(w, err.Error(), nil)

	// Ledger domain errors
	case errors.Is(err, ledger.ErrDuplicateEntry):
		Conflict(w, err.Error())
	case errors.Is(err, ledger.ErrEntryNotFound):
		NotFound(w, "Ledger entry not found")
	case errors.Is(err, ledger.ErrInvalidHours),
		errors.Is(err, ledger.ErrMissingAuthor),
		errors.Is(err, ledger.ErrNoPenaltyItems),
		errors.Is(err, ledger.ErrInvalidEmployee):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
