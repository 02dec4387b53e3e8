package ledger

import (
	"context"
	"time"
)

type LedgerRepository interface {
	// Exists checks the structured idempotency key
	Exists(ctx context.Context, employeeID string, kind Kind, dedupeKey string) (bool, error)

	// Insert appends an entry. A key collision returns ErrDuplicateEntry.
	Insert(ctx context.Context, entry Entry) (Entry, error)

	// ChargedInstances returns the late-instance ordinals already penalised for
	// attendance dates between from and to (inclusive)
	ChargedInstances(ctx context.Context, employeeID string, from, to time.Time) ([]int, error)

	// PenalizedEmployees returns employees holding a penalty for attendanceDate
	PenalizedEmployees(ctx context.Context, attendanceDate time.Time) ([]string, error)

	List(ctx context.Context, filter LedgerFilter) ([]Entry, error)
}
