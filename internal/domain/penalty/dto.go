package penalty

import (
	"github.com/paf-hr/hrms-backend-go/internal/pkg/validator"
)

type SettingsResponse struct {
	GracePeriodMinutes int     `json:"grace_period_minutes"`
	IgnoreCount        int     `json:"ignore_count"`
	DoubleStart        string  `json:"double_start"`
	DoubleEnd          string  `json:"double_end"`
	QuadrupleStart     string  `json:"quadruple_start"`
	LateThreshold      string  `json:"late_threshold"`
	ShortLeaveExempt   bool    `json:"short_leave_exempt"`
	Retroactive        bool    `json:"retroactive"`
	IsDefault          bool    `json:"is_default"`
	UpdatedAt          *string `json:"updated_at,omitempty"`
}

type UpdateSettingsRequest struct {
	GracePeriodMinutes int    `json:"grace_period_minutes"`
	IgnoreCount        int    `json:"ignore_count"`
	DoubleStart        string `json:"double_start"`
	DoubleEnd          string `json:"double_end"`
	QuadrupleStart     string `json:"quadruple_start"`
	LateThreshold      string `json:"late_threshold"`
	ShortLeaveExempt   bool   `json:"short_leave_exempt"`
	Retroactive        bool   `json:"retroactive"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GracePeriodMinutes < 0 || r.GracePeriodMinutes > 240 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_period_minutes",
			Message: "grace_period_minutes must be between 0 and 240",
		})
	}
	if r.IgnoreCount < 0 || r.IgnoreCount > 31 {
		errs = append(errs, validator.ValidationError{
			Field:   "ignore_count",
			Message: "ignore_count must be between 0 and 31",
		})
	}

	clocks := []struct {
		field string
		value string
	}{
		{"double_start", r.DoubleStart},
		{"double_end", r.DoubleEnd},
		{"quadruple_start", r.QuadrupleStart},
		{"late_threshold", r.LateThreshold},
	}
	clocksValid := true
	for _, c := range clocks {
		if !validator.IsValidClock(c.value) {
			clocksValid = false
			errs = append(errs, validator.ValidationError{
				Field:   c.field,
				Message: c.field + " must be in HH:MM 24-hour format",
			})
		}
	}

	if clocksValid {
		if r.DoubleStart >= r.DoubleEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "double_end",
				Message: "double_end must be after double_start",
			})
		}
		if r.QuadrupleStart < r.DoubleEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "quadruple_start",
				Message: "quadruple_start must not be before double_end",
			})
		}
		if r.LateThreshold > r.DoubleStart {
			errs = append(errs, validator.ValidationError{
				Field:   "late_threshold",
				Message: "late_threshold must not be after double_start",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r UpdateSettingsRequest) ToSettings() Settings {
	return Settings{
		GracePeriodMinutes: r.GracePeriodMinutes,
		IgnoreCount:        r.IgnoreCount,
		DoubleStart:        r.DoubleStart,
		DoubleEnd:          r.DoubleEnd,
		QuadrupleStart:     r.QuadrupleStart,
		LateThreshold:      r.LateThreshold,
		ShortLeaveExempt:   r.ShortLeaveExempt,
		Retroactive:        r.Retroactive,
	}
}

type CalculateResponse struct {
	Date     string           `json:"date"`
	Settings SettingsResponse `json:"settings"`
	Total    int              `json:"total"`
	Eligible int              `json:"eligible"`
	Results  []Result         `json:"results"`
}
