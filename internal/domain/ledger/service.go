package ledger

import "context"

// LedgerService writes and reads bonus/penalty entries
type LedgerService interface {
	// SavePenalties persists proposed penalties, skipping ones already charged
	SavePenalties(ctx context.Context, req SavePenaltiesRequest) (SavePenaltiesResponse, error)

	// Award writes a bonus-hours entry
	Award(ctx context.Context, req AwardRequest) (EntryResponse, error)

	// List returns entries and the net balance for a filter
	List(ctx context.Context, filter LedgerFilter) (ListLedgerResponse, error)
}
