package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// ListByDate retrieves every record for a date, joined with employee names
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)

	// ListByEmployeeRange retrieves one employee's records between from and to
	// (inclusive), ordered by date
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// Upsert inserts or replaces status and times for (employee, date).
	// Existing remarks are kept when the incoming remarks are empty.
	Upsert(ctx context.Context, record Record) error
}
