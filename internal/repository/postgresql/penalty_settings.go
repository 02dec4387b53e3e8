package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/paf-hr/hrms-backend-go/internal/domain/penalty"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/database"
)

type penaltySettingsRepository struct {
	db *database.DB
}

func NewPenaltySettingsRepository(db *database.DB) penalty.SettingsRepository {
	return &penaltySettingsRepository{db: db}
}

// Get implements penalty.SettingsRepository.
func (p *penaltySettingsRepository) Get(ctx context.Context) (penalty.Settings, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT grace_period_minutes, ignore_count, double_start, double_end, quadruple_start,
			   late_threshold, short_leave_exempt, retroactive, updated_at
		FROM penalty_settings
		WHERE id = 1
	`

	var s penalty.Settings
	err := q.QueryRow(ctx, query).Scan(
		&s.GracePeriodMinutes, &s.IgnoreCount, &s.DoubleStart, &s.DoubleEnd, &s.QuadrupleStart,
		&s.LateThreshold, &s.ShortLeaveExempt, &s.Retroactive, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return penalty.Settings{}, penalty.ErrSettingsNotFound
		}
		return penalty.Settings{}, fmt.Errorf("failed to get penalty settings: %w", err)
	}

	return s, nil
}

// Save implements penalty.SettingsRepository.
func (p *penaltySettingsRepository) Save(ctx context.Context, s penalty.Settings) (penalty.Settings, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO penalty_settings (
			id, grace_period_minutes, ignore_count, double_start, double_end, quadruple_start,
			late_threshold, short_leave_exempt, retroactive, updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (id) DO UPDATE SET
			grace_period_minutes = EXCLUDED.grace_period_minutes,
			ignore_count         = EXCLUDED.ignore_count,
			double_start         = EXCLUDED.double_start,
			double_end           = EXCLUDED.double_end,
			quadruple_start      = EXCLUDED.quadruple_start,
			late_threshold       = EXCLUDED.late_threshold,
			short_leave_exempt   = EXCLUDED.short_leave_exempt,
			retroactive          = EXCLUDED.retroactive,
			updated_at           = now()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		s.GracePeriodMinutes, s.IgnoreCount, s.DoubleStart, s.DoubleEnd, s.QuadrupleStart,
		s.LateThreshold, s.ShortLeaveExempt, s.Retroactive,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return penalty.Settings{}, fmt.Errorf("failed to save penalty settings: %w", err)
	}

	return s, nil
}
