package attendance

import (
	"context"
)

// AttendanceService defines attendance reads and biometric import
type AttendanceService interface {
	// GetDailyAttendance retrieves every record for one date
	GetDailyAttendance(ctx context.Context, date string) ([]AttendanceResponse, error)

	// GetMonthlyAttendance retrieves one employee's records for a YYYY-MM month
	GetMonthlyAttendance(ctx context.Context, employeeID string, month string) ([]AttendanceResponse, error)

	// PreviewBiometric aggregates and matches uploaded rows without writing anything
	PreviewBiometric(ctx context.Context, req BiometricImportRequest) (BiometricImportResponse, error)

	// ImportBiometric aggregates, matches and upserts matched records
	ImportBiometric(ctx context.Context, req BiometricImportRequest) (BiometricImportResponse, error)
}
