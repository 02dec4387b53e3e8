package employee

import (
	"strings"

	"github.com/paf-hr/hrms-backend-go/internal/pkg/validator"
)

type EmployeeResponse struct {
	PAKCode    string  `json:"pak_code"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Uniformed  bool    `json:"uniformed"`
	PostingIn  *string `json:"posting_in,omitempty"`
	PostingOut *string `json:"posting_out,omitempty"`
	IsCurrent  bool    `json:"is_current"`
}

type EmployeeFilter struct {
	Search      *string `json:"search,omitempty"`
	Category    *string `json:"category,omitempty"`
	CurrentOnly bool    `json:"current_only"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 50
	}
	if f.Limit > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 500",
		})
	}

	if f.Category != nil && *f.Category != "" {
		valid := []string{string(CategoryOfficer), string(CategoryJCO), string(CategoryAirmen), string(CategoryCivilian)}
		if !validator.IsInSlice(*f.Category, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "category",
				Message: ErrInvalidCategory.Error(),
			})
		}
	}

	if f.Search != nil {
		trimmed := strings.TrimSpace(*f.Search)
		f.Search = &trimmed
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}
