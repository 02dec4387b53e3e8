package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNoRowsProvided     = errors.New("no rows provided for import")
	ErrInvalidDateFormat  = errors.New("date must be in YYYY-MM-DD format")
)
