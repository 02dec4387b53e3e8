package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/paf-hr/hrms-backend-go/internal/domain/employee"
	"github.com/paf-hr/hrms-backend-go/internal/domain/ledger"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/database"
)

type ledgerRepository struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) ledger.LedgerRepository {
	return &ledgerRepository{db: db}
}

// Exists implements ledger.LedgerRepository.
func (l *ledgerRepository) Exists(ctx context.Context, employeeID string, kind ledger.Kind, dedupeKey string) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM ledger_entries
			WHERE employee_id = $1 AND kind = $2 AND dedupe_key = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, string(kind), dedupeKey).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check ledger entry: %w", err)
	}
	return exists, nil
}

// Insert implements ledger.LedgerRepository. The unique index on
// (employee_id, kind, dedupe_key) settles concurrent inserts of the same key.
func (l *ledgerRepository) Insert(ctx context.Context, entry ledger.Entry) (ledger.Entry, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO ledger_entries (
			id, employee_id, hours, entry_date, attendance_date, kind,
			authorized_by, reason, dedupe_key, late_instances
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id, kind, dedupe_key) DO NOTHING
		RETURNING created_at
	`

	lateInstances := entry.LateInstances
	if lateInstances == nil {
		lateInstances = []int32{}
	}

	err := q.QueryRow(ctx, query,
		entry.ID, entry.EmployeeID, entry.Hours, entry.EntryDate, entry.AttendanceDate, string(entry.Kind),
		entry.AuthorizedBy, entry.Reason, entry.DedupeKey, lateInstances,
	).Scan(&entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Entry{}, ledger.ErrDuplicateEntry
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return ledger.Entry{}, ledger.ErrDuplicateEntry
			case "23503": // foreign_key_violation
				return ledger.Entry{}, employee.ErrEmployeeNotFound
			}
		}
		return ledger.Entry{}, fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	return entry, nil
}

// ChargedInstances implements ledger.LedgerRepository.
func (l *ledgerRepository) ChargedInstances(ctx context.Context, employeeID string, from, to time.Time) ([]int, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT DISTINCT unnest(late_instances)
		FROM ledger_entries
		WHERE employee_id = $1
		  AND kind = 'penalty'
		  AND attendance_date BETWEEN $2 AND $3
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list charged instances: %w", err)
	}

	instances, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (int, error) {
		var n int32
		err := row.Scan(&n)
		return int(n), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan charged instances: %w", err)
	}
	return instances, nil
}

// PenalizedEmployees implements ledger.LedgerRepository.
func (l *ledgerRepository) PenalizedEmployees(ctx context.Context, attendanceDate time.Time) ([]string, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT DISTINCT employee_id
		FROM ledger_entries
		WHERE kind = 'penalty' AND attendance_date = $1
	`

	rows, err := q.Query(ctx, query, attendanceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list penalised employees: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan penalised employees: %w", err)
	}
	return ids, nil
}

// List implements ledger.LedgerRepository.
func (l *ledgerRepository) List(ctx context.Context, filter ledger.LedgerFilter) ([]ledger.Entry, error) {
	q := GetQuerier(ctx, l.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("l.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil && *filter.Month != "" {
		start, err := time.Parse("2006-01", *filter.Month)
		if err != nil {
			return nil, fmt.Errorf("invalid month %q: %w", *filter.Month, err)
		}
		conditions = append(conditions, fmt.Sprintf("COALESCE(l.attendance_date, l.entry_date) BETWEEN $%d AND $%d", argIdx, argIdx+1))
		args = append(args, start, start.AddDate(0, 1, -1))
		argIdx += 2
	}
	if filter.Kind != nil && *filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("l.kind = $%d", argIdx))
		args = append(args, *filter.Kind)
	}

	query := fmt.Sprintf(`
		SELECT l.id, l.employee_id, l.hours, l.entry_date, l.attendance_date, l.kind,
			   l.authorized_by, l.reason, l.dedupe_key, l.late_instances, l.created_at, e.name
		FROM ledger_entries l
		LEFT JOIN employees e ON e.pak_code = l.employee_id
		WHERE %s
		ORDER BY l.entry_date DESC, l.created_at DESC
	`, strings.Join(conditions, " AND "))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.Entry
	for rows.Next() {
		var e ledger.Entry
		err := rows.Scan(
			&e.ID, &e.EmployeeID, &e.Hours, &e.EntryDate, &e.AttendanceDate, &e.Kind,
			&e.AuthorizedBy, &e.Reason, &e.DedupeKey, &e.LateInstances, &e.CreatedAt, &e.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
