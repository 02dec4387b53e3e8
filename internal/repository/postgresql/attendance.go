package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func collectAttendance(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.EmployeeID, &rec.Date, &rec.Status, &rec.TimeIn, &rec.TimeOut, &rec.Remarks,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.employee_id, a.date, a.status, a.time_in, a.time_out, a.remarks,
			   a.created_at, a.updated_at, e.name
		FROM attendance a
		LEFT JOIN employees e ON e.pak_code = a.employee_id
		WHERE a.date = $1
		ORDER BY a.employee_id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	return collectAttendance(rows)
}

// ListByEmployeeRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.employee_id, a.date, a.status, a.time_in, a.time_out, a.remarks,
			   a.created_at, a.updated_at, e.name
		FROM attendance a
		LEFT JOIN employees e ON e.pak_code = a.employee_id
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by employee: %w", err)
	}
	return collectAttendance(rows)
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (employee_id, date, status, time_in, time_out, remarks)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			status     = EXCLUDED.status,
			time_in    = EXCLUDED.time_in,
			time_out   = EXCLUDED.time_out,
			remarks    = CASE WHEN EXCLUDED.remarks = '' THEN attendance.remarks ELSE EXCLUDED.remarks END,
			updated_at = now()
	`

	_, err := q.Exec(ctx, query,
		record.EmployeeID, record.Date, string(record.Status), record.TimeIn, record.TimeOut, record.Remarks,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return nil
}
