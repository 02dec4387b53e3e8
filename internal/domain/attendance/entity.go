package attendance

import (
	"strings"
	"time"
)

// Record is one attendance row, keyed by (EmployeeID, Date).
type Record struct {
	EmployeeID string
	Date       time.Time
	Status     Status
	TimeIn     string // HH:MM:SS, empty when unknown
	TimeOut    string // HH:MM:SS, empty when unknown
	Remarks    string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// IsShortLeave reports whether the remarks flag the day as short leave.
func (r Record) IsShortLeave() bool {
	return strings.Contains(strings.ToLower(r.Remarks), "short leave")
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
	StatusLeave   Status = "Leave"
	StatusHoliday Status = "Holiday"
)

// IsLate compares case-insensitively; manual entries are not normalised.
func (s Status) IsLate() bool {
	return strings.EqualFold(strings.TrimSpace(string(s)), string(StatusLate))
}

// Punch is a single biometric event taken from a spreadsheet row.
type Punch struct {
	ExternalID string
	Name       string
	Timestamp  time.Time
}

// DailyRecord is the aggregate of one employee's punches on one date.
type DailyRecord struct {
	ExternalID string
	Name       string
	Date       string // YYYY-MM-DD
	TimeIn     string // HH:MM:SS
	TimeOut    string // HH:MM:SS, empty for single-punch days
	Punches    int
}

type RowStatus string

const (
	RowOK       RowStatus = "ok"
	RowSkipped  RowStatus = "skipped"
	RowFiltered RowStatus = "filtered"
)

const (
	SkipReasonMissingID   = "missing_id"
	SkipReasonInvalidDate = "invalid_date"
	SkipReasonOtherDate   = "outside_target_date"
)

// RowOutcome reports what happened to one input row. Row is 1-based and counts
// data rows only.
type RowOutcome struct {
	Row    int       `json:"row"`
	Status RowStatus `json:"status"`
	Reason string    `json:"reason,omitempty"`
	Value  string    `json:"value,omitempty"`
}

// Aggregation is the output of the biometric aggregator.
type Aggregation struct {
	Records     []DailyRecord
	Outcomes    []RowOutcome
	SkippedRows int
	FilteredOut int
}

type MatchMethod string

const (
	MatchByID           MatchMethod = "id"
	MatchByNameExact    MatchMethod = "name_exact"
	MatchByNameContains MatchMethod = "name_contains"
	MatchNone           MatchMethod = "unmatched"
)

// MatchedRecord is a daily record reconciled against the roster. Unmatched
// records are kept with Matched=false.
type MatchedRecord struct {
	DailyRecord
	Matched      bool
	EmployeeID   string
	EmployeeName string
	Method       MatchMethod
}
