package penalty

import (
	"time"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
)

// Settings is the late-arrival policy. Clock fields are zero-padded "HH:MM".
type Settings struct {
	GracePeriodMinutes int
	IgnoreCount        int
	DoubleStart        string
	DoubleEnd          string
	QuadrupleStart     string
	LateThreshold      string
	ShortLeaveExempt   bool
	Retroactive        bool
	UpdatedAt          *time.Time
}

// DefaultSettings is the policy used when no settings row has been saved.
func DefaultSettings() Settings {
	return Settings{
		GracePeriodMinutes: 15,
		IgnoreCount:        3,
		DoubleStart:        "09:15",
		DoubleEnd:          "10:00",
		QuadrupleStart:     "10:00",
		LateThreshold:      "09:00",
		ShortLeaveExempt:   true,
		Retroactive:        true,
	}
}

// Input is everything the calculator needs for one employee on one day.
type Input struct {
	EmployeeID   string
	EmployeeName string
	Today        attendance.Record

	// History holds the employee's records for the month of Today. Records
	// after Today are ignored.
	History []attendance.Record

	// Charged holds late-instance ordinals already penalised this month.
	Charged map[int]bool

	// AlreadyApplied is set when the ledger holds a penalty for this date.
	AlreadyApplied bool
}

// Result is the calculator's verdict for one employee on one day.
type Result struct {
	EmployeeID           string  `json:"employee_id"`
	EmployeeName         string  `json:"employee_name"`
	Date                 string  `json:"date"`
	TimeIn               string  `json:"time_in"`
	Status               string  `json:"status"`
	IsLate               bool    `json:"is_late"`
	LateMinutes          int     `json:"late_minutes"`
	Factor               int     `json:"factor"`
	TotalPenaltyHours    float64 `json:"total_penalty_hours"`
	CurrentPenaltyHours  float64 `json:"current_penalty_hours"`
	PreviousPenaltyHours float64 `json:"previous_penalty_hours"`
	LateInstance         int     `json:"late_instance"`
	ChargedInstances     []int   `json:"charged_instances"`
	Remarks              string  `json:"remarks"`
	Eligible             bool    `json:"eligible"`
	AlreadyApplied       bool    `json:"already_applied"`
	ApplyPenalty         bool    `json:"apply_penalty"`
	Error                string  `json:"error,omitempty"`
}
