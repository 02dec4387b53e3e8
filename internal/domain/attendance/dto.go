package attendance

import (
	"github.com/paf-hr/hrms-backend-go/internal/pkg/validator"
)

type AttendanceResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Date         string `json:"date"`
	Status       string `json:"status"`
	TimeIn       string `json:"time_in"`
	TimeOut      string `json:"time_out"`
	Remarks      string `json:"remarks,omitempty"`
	ShortLeave   bool   `json:"short_leave"`
}

// BiometricImportRequest carries rows already read from an upload.
type BiometricImportRequest struct {
	Rows       []map[string]string `json:"rows"`
	TargetDate *string             `json:"date,omitempty"`        // YYYY-MM-DD
	DateFormat *string             `json:"date_format,omitempty"` // Go layout tried before auto-detection
}

func (r *BiometricImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rows) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: ErrNoRowsProvided.Error(),
		})
	}

	if r.TargetDate != nil && *r.TargetDate != "" {
		if _, valid := validator.IsValidDate(*r.TargetDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: ErrInvalidDateFormat.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BiometricRecordResponse struct {
	ExternalID   string `json:"external_id"`
	Name         string `json:"name"`
	Date         string `json:"date"`
	TimeIn       string `json:"time_in"`
	TimeOut      string `json:"time_out"`
	Punches      int    `json:"punches"`
	Matched      bool   `json:"matched"`
	EmployeeID   string `json:"employee_id,omitempty"`
	EmployeeName string `json:"employee_name,omitempty"`
	MatchMethod  string `json:"match_method"`
	Status       string `json:"status,omitempty"`
}

type BiometricImportResponse struct {
	TotalRows   int                       `json:"total_rows"`
	SkippedRows int                       `json:"skipped_rows"`
	FilteredOut int                       `json:"filtered_out"`
	Matched     int                       `json:"matched"`
	Unmatched   int                       `json:"unmatched"`
	Saved       int                       `json:"saved"`
	Merged      int                       `json:"merged"`
	Records     []BiometricRecordResponse `json:"records"`
	RowOutcomes []RowOutcome              `json:"row_outcomes"`
	Errors      []string                  `json:"errors,omitempty"`
}
