package penalty

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/paf-hr/hrms-backend-go/internal/domain/ledger"
	"github.com/paf-hr/hrms-backend-go/internal/domain/penalty"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/validator"
)

// maxParallelEmployees bounds the per-employee history reads of a batch.
const maxParallelEmployees = 8

type PenaltyServiceImpl struct {
	penalty.SettingsRepository
	attendance.AttendanceRepository
	ledger.LedgerRepository
}

func NewPenaltyService(
	settingsRepo penalty.SettingsRepository,
	attendanceRepo attendance.AttendanceRepository,
	ledgerRepo ledger.LedgerRepository,
) penalty.PenaltyService {
	return &PenaltyServiceImpl{
		SettingsRepository:   settingsRepo,
		AttendanceRepository: attendanceRepo,
		LedgerRepository:     ledgerRepo,
	}
}

// GetSettings implements penalty.PenaltyService.
func (p *PenaltyServiceImpl) GetSettings(ctx context.Context) (penalty.SettingsResponse, error) {
	settings, isDefault, err := p.effectiveSettings(ctx)
	if err != nil {
		return penalty.SettingsResponse{}, err
	}
	return mapSettingsToResponse(settings, isDefault), nil
}

// UpdateSettings implements penalty.PenaltyService.
func (p *PenaltyServiceImpl) UpdateSettings(ctx context.Context, req penalty.UpdateSettingsRequest) (penalty.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return penalty.SettingsResponse{}, err
	}

	saved, err := p.SettingsRepository.Save(ctx, req.ToSettings())
	if err != nil {
		return penalty.SettingsResponse{}, fmt.Errorf("failed to save penalty settings: %w", err)
	}

	slog.Info("Penalty settings updated",
		"ignore_count", saved.IgnoreCount,
		"grace_period_minutes", saved.GracePeriodMinutes,
		"retroactive", saved.Retroactive)

	return mapSettingsToResponse(saved, false), nil
}

// Calculate implements penalty.PenaltyService.
func (p *PenaltyServiceImpl) Calculate(ctx context.Context, date string) (penalty.CalculateResponse, error) {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return penalty.CalculateResponse{}, validator.ValidationErrors{{Field: "date", Message: attendance.ErrInvalidDateFormat.Error()}}
	}
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var (
		settings  penalty.Settings
		isDefault bool
		records   []attendance.Record
		penalized []string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		settings, isDefault, err = p.effectiveSettings(gctx)
		return err
	})

	g.Go(func() error {
		var err error
		records, err = p.AttendanceRepository.ListByDate(gctx, day)
		if err != nil {
			return fmt.Errorf("failed to list attendance for %s: %w", date, err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		penalized, err = p.LedgerRepository.PenalizedEmployees(gctx, day)
		if err != nil {
			return fmt.Errorf("failed to list penalised employees for %s: %w", date, err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return penalty.CalculateResponse{}, err
	}

	applied := make(map[string]bool, len(penalized))
	for _, id := range penalized {
		applied[id] = true
	}

	results := make([]penalty.Result, len(records))
	eg, ectx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelEmployees)
	for i, rec := range records {
		eg.Go(func() error {
			results[i] = p.calculateOne(ectx, rec, settings, monthStart, monthEnd, applied[rec.EmployeeID])
			return nil
		})
	}
	_ = eg.Wait()

	resp := penalty.CalculateResponse{
		Date:     date,
		Settings: mapSettingsToResponse(settings, isDefault),
		Total:    len(results),
		Results:  results,
	}
	for _, r := range results {
		if r.Eligible {
			resp.Eligible++
		}
	}

	return resp, nil
}

// calculateOne isolates failures: a read error marks the employee as not
// penalisable instead of failing the batch.
func (p *PenaltyServiceImpl) calculateOne(ctx context.Context, today attendance.Record, settings penalty.Settings, from, to time.Time, alreadyApplied bool) penalty.Result {
	var name string
	if today.EmployeeName != nil {
		name = *today.EmployeeName
	}

	failed := func(err error) penalty.Result {
		slog.Error("Penalty calculation failed", "employee_id", today.EmployeeID, "date", today.Date.Format("2006-01-02"), "error", err)
		return penalty.Result{
			EmployeeID:       today.EmployeeID,
			EmployeeName:     name,
			Date:             today.Date.Format("2006-01-02"),
			TimeIn:           today.TimeIn,
			Status:           string(today.Status),
			ChargedInstances: []int{},
			AlreadyApplied:   alreadyApplied,
			Error:            err.Error(),
		}
	}

	history, err := p.AttendanceRepository.ListByEmployeeRange(ctx, today.EmployeeID, from, today.Date)
	if err != nil {
		return failed(fmt.Errorf("failed to load month history: %w", err))
	}

	charged, err := p.LedgerRepository.ChargedInstances(ctx, today.EmployeeID, from, to)
	if err != nil {
		return failed(fmt.Errorf("failed to load charged instances: %w", err))
	}
	chargedSet := make(map[int]bool, len(charged))
	for _, n := range charged {
		chargedSet[n] = true
	}

	return Calculate(penalty.Input{
		EmployeeID:     today.EmployeeID,
		EmployeeName:   name,
		Today:          today,
		History:        history,
		Charged:        chargedSet,
		AlreadyApplied: alreadyApplied,
	}, settings)
}

func (p *PenaltyServiceImpl) effectiveSettings(ctx context.Context) (penalty.Settings, bool, error) {
	settings, err := p.SettingsRepository.Get(ctx)
	if err != nil {
		if errors.Is(err, penalty.ErrSettingsNotFound) {
			return penalty.DefaultSettings(), true, nil
		}
		return penalty.Settings{}, false, fmt.Errorf("failed to load penalty settings: %w", err)
	}
	return settings, false, nil
}

func mapSettingsToResponse(s penalty.Settings, isDefault bool) penalty.SettingsResponse {
	var updatedAt *string
	if s.UpdatedAt != nil {
		formatted := s.UpdatedAt.Format(time.RFC3339)
		updatedAt = &formatted
	}
	return penalty.SettingsResponse{
		GracePeriodMinutes: s.GracePeriodMinutes,
		IgnoreCount:        s.IgnoreCount,
		DoubleStart:        s.DoubleStart,
		DoubleEnd:          s.DoubleEnd,
		QuadrupleStart:     s.QuadrupleStart,
		LateThreshold:      s.LateThreshold,
		ShortLeaveExempt:   s.ShortLeaveExempt,
		Retroactive:        s.Retroactive,
		IsDefault:          isDefault,
		UpdatedAt:          updatedAt,
	}
}
