package ledger

import (
	"fmt"

	"github.com/paf-hr/hrms-backend-go/internal/pkg/validator"
)

type PenaltyItem struct {
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"` // attendance date, YYYY-MM-DD
	Hours         float64 `json:"hours"`
	Remarks       string  `json:"remarks"`
	LateInstances []int   `json:"late_instances,omitempty"`
}

type SavePenaltiesRequest struct {
	AuthorizedBy string        `json:"authorized_by"`
	Penalties    []PenaltyItem `json:"penalties"`
}

func (r *SavePenaltiesRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AuthorizedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "authorized_by",
			Message: ErrMissingAuthor.Error(),
		})
	}
	if len(r.Penalties) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "penalties",
			Message: ErrNoPenaltyItems.Error(),
		})
	}
	for i, p := range r.Penalties {
		prefix := fmt.Sprintf("penalties[%d]", i)
		if validator.IsEmpty(p.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".employee_id",
				Message: ErrInvalidEmployee.Error(),
			})
		}
		if _, ok := validator.IsValidDate(p.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		if RoundHours(p.Hours).IsZero() {
			errs = append(errs, validator.ValidationError{
				Field:   prefix + ".hours",
				Message: ErrInvalidHours.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ItemStatus string

const (
	ItemSaved   ItemStatus = "saved"
	ItemSkipped ItemStatus = "skipped"
	ItemFailed  ItemStatus = "error"
)

type PenaltyOutcome struct {
	EmployeeID string     `json:"employee_id"`
	Date       string     `json:"date"`
	Status     ItemStatus `json:"status"`
	EntryID    string     `json:"entry_id,omitempty"`
	Hours      string     `json:"hours,omitempty"`
	Message    string     `json:"message,omitempty"`
}

type SavePenaltiesResponse struct {
	Saved    int              `json:"saved"`
	Skipped  int              `json:"skipped"`
	Failed   int              `json:"failed"`
	Outcomes []PenaltyOutcome `json:"outcomes"`
	Errors   []string         `json:"errors,omitempty"`
}

type AwardRequest struct {
	EmployeeID   string  `json:"employee_id"`
	Hours        float64 `json:"hours"`
	Reason       string  `json:"reason"`
	AuthorizedBy string  `json:"authorized_by"`
}

func (r *AwardRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: ErrInvalidEmployee.Error()})
	}
	if RoundHours(r.Hours).IsZero() {
		errs = append(errs, validator.ValidationError{Field: "hours", Message: ErrInvalidHours.Error()})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}
	if validator.IsEmpty(r.AuthorizedBy) {
		errs = append(errs, validator.ValidationError{Field: "authorized_by", Message: ErrMissingAuthor.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name,omitempty"`
	Hours          string  `json:"hours"`
	Kind           string  `json:"kind"`
	EntryDate      string  `json:"entry_date"`
	AttendanceDate *string `json:"attendance_date,omitempty"`
	AuthorizedBy   string  `json:"authorized_by"`
	Reason         string  `json:"reason"`
	LateInstances  []int32 `json:"late_instances,omitempty"`
}

type LedgerFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Month      *string `json:"month,omitempty"` // YYYY-MM
	Kind       *string `json:"kind,omitempty"`
}

func (f *LedgerFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && *f.Month != "" {
		if _, ok := validator.IsValidMonth(*f.Month); !ok {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be in YYYY-MM format"})
		}
	}
	if f.Kind != nil && *f.Kind != "" {
		if !validator.IsInSlice(*f.Kind, []string{string(KindAward), string(KindPenalty)}) {
			errs = append(errs, validator.ValidationError{Field: "kind", Message: "kind must be one of: award, penalty"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListLedgerResponse struct {
	Entries      []EntryResponse `json:"entries"`
	AwardHours   string          `json:"award_hours"`
	PenaltyHours string          `json:"penalty_hours"`
	NetHours     string          `json:"net_hours"`
}
