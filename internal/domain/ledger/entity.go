package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is an append-only bonus/penalty line. Hours are positive for awards
// and negative for penalties.
type Entry struct {
	ID             string
	EmployeeID     string
	Hours          decimal.Decimal
	EntryDate      time.Time
	AttendanceDate *time.Time
	Kind           Kind
	AuthorizedBy   string
	Reason         string
	DedupeKey      string
	LateInstances  []int32
	CreatedAt      time.Time

	// DTO
	EmployeeName *string
}

type Kind string

const (
	KindAward   Kind = "award"
	KindPenalty Kind = "penalty"
)

// SignedHours forces the sign that matches the kind, whatever the caller sent.
func SignedHours(kind Kind, hours decimal.Decimal) decimal.Decimal {
	abs := hours.Abs()
	if kind == KindPenalty {
		return abs.Neg()
	}
	return abs
}

// RoundHours is the stored precision of a ledger amount: two decimals.
func RoundHours(hours float64) decimal.Decimal {
	return decimal.NewFromFloat(hours).Round(2)
}

// PenaltyKey identifies the penalty charged for one attendance date.
func PenaltyKey(attendanceDate time.Time) string {
	return attendanceDate.Format("2006-01-02")
}

// AwardKey identifies an award by the day it was written and its reason.
func AwardKey(entryDate time.Time, reason string) string {
	return entryDate.Format("2006-01-02") + "|" + strings.ToLower(strings.Join(strings.Fields(reason), " "))
}
