package ledger

import "errors"

var (
	ErrDuplicateEntry  = errors.New("a ledger entry already exists for this employee and date")
	ErrEntryNotFound   = errors.New("ledger entry not found")
	ErrInvalidHours    = errors.New("hours must be at least 0.01 once rounded to two decimals")
	ErrMissingAuthor   = errors.New("authorizing person is required")
	ErrNoPenaltyItems  = errors.New("no penalties provided")
	ErrInvalidEmployee = errors.New("employee_id is required")
)
