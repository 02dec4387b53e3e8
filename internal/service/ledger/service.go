package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paf-hr/hrms-backend-go/internal/domain/ledger"
)

type LedgerServiceImpl struct {
	ledger.LedgerRepository
	now   func() time.Time
	newID func() (uuid.UUID, error)
}

func NewLedgerService(ledgerRepo ledger.LedgerRepository) ledger.LedgerService {
	return &LedgerServiceImpl{
		LedgerRepository: ledgerRepo,
		now:              time.Now,
		newID:            uuid.NewV7,
	}
}

// SavePenalties implements ledger.LedgerService.
func (l *LedgerServiceImpl) SavePenalties(ctx context.Context, req ledger.SavePenaltiesRequest) (ledger.SavePenaltiesResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.SavePenaltiesResponse{}, err
	}

	resp := ledger.SavePenaltiesResponse{
		Outcomes: make([]ledger.PenaltyOutcome, 0, len(req.Penalties)),
	}

	for _, item := range req.Penalties {
		outcome := l.savePenalty(ctx, strings.TrimSpace(req.AuthorizedBy), item)
		switch outcome.Status {
		case ledger.ItemSaved:
			resp.Saved++
		case ledger.ItemSkipped:
			resp.Skipped++
		case ledger.ItemFailed:
			resp.Failed++
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s on %s: %s", item.EmployeeID, item.Date, outcome.Message))
		}
		resp.Outcomes = append(resp.Outcomes, outcome)
	}

	slog.Info("Penalties saved",
		"authorized_by", req.AuthorizedBy,
		"saved", resp.Saved, "skipped", resp.Skipped, "failed", resp.Failed)

	return resp, nil
}

func (l *LedgerServiceImpl) savePenalty(ctx context.Context, authorizedBy string, item ledger.PenaltyItem) ledger.PenaltyOutcome {
	outcome := ledger.PenaltyOutcome{EmployeeID: item.EmployeeID, Date: item.Date}

	attendanceDate, err := time.Parse("2006-01-02", item.Date)
	if err != nil {
		outcome.Status = ledger.ItemFailed
		outcome.Message = "date must be in YYYY-MM-DD format"
		return outcome
	}
	key := ledger.PenaltyKey(attendanceDate)

	exists, err := l.LedgerRepository.Exists(ctx, item.EmployeeID, ledger.KindPenalty, key)
	if err != nil {
		slog.Error("Failed to check existing penalty", "employee_id", item.EmployeeID, "date", item.Date, "error", err)
		outcome.Status = ledger.ItemFailed
		outcome.Message = err.Error()
		return outcome
	}
	if exists {
		outcome.Status = ledger.ItemSkipped
		outcome.Message = ledger.ErrDuplicateEntry.Error()
		return outcome
	}

	id, err := l.newID()
	if err != nil {
		outcome.Status = ledger.ItemFailed
		outcome.Message = fmt.Sprintf("failed to generate entry id: %v", err)
		return outcome
	}

	reason := strings.TrimSpace(item.Remarks)
	if reason == "" {
		reason = fmt.Sprintf("Late arrival penalty for %s", item.Date)
	}

	instances := make([]int32, 0, len(item.LateInstances))
	for _, n := range item.LateInstances {
		instances = append(instances, int32(n))
	}

	entry, err := l.LedgerRepository.Insert(ctx, ledger.Entry{
		ID:             id.String(),
		EmployeeID:     item.EmployeeID,
		Hours:          ledger.SignedHours(ledger.KindPenalty, ledger.RoundHours(item.Hours)),
		EntryDate:      l.today(),
		AttendanceDate: &attendanceDate,
		Kind:           ledger.KindPenalty,
		AuthorizedBy:   authorizedBy,
		Reason:         reason,
		DedupeKey:      key,
		LateInstances:  instances,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrDuplicateEntry) {
			outcome.Status = ledger.ItemSkipped
			outcome.Message = err.Error()
			return outcome
		}
		slog.Error("Failed to save penalty", "employee_id", item.EmployeeID, "date", item.Date, "error", err)
		outcome.Status = ledger.ItemFailed
		outcome.Message = err.Error()
		return outcome
	}

	outcome.Status = ledger.ItemSaved
	outcome.EntryID = entry.ID
	outcome.Hours = entry.Hours.StringFixed(2)
	return outcome
}

// Award implements ledger.LedgerService.
func (l *LedgerServiceImpl) Award(ctx context.Context, req ledger.AwardRequest) (ledger.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.EntryResponse{}, err
	}

	entryDate := l.today()
	key := ledger.AwardKey(entryDate, req.Reason)

	exists, err := l.LedgerRepository.Exists(ctx, req.EmployeeID, ledger.KindAward, key)
	if err != nil {
		return ledger.EntryResponse{}, fmt.Errorf("failed to check existing award: %w", err)
	}
	if exists {
		return ledger.EntryResponse{}, ledger.ErrDuplicateEntry
	}

	id, err := l.newID()
	if err != nil {
		return ledger.EntryResponse{}, fmt.Errorf("failed to generate entry id: %w", err)
	}

	entry, err := l.LedgerRepository.Insert(ctx, ledger.Entry{
		ID:           id.String(),
		EmployeeID:   req.EmployeeID,
		Hours:        ledger.SignedHours(ledger.KindAward, ledger.RoundHours(req.Hours)),
		EntryDate:    entryDate,
		Kind:         ledger.KindAward,
		AuthorizedBy: strings.TrimSpace(req.AuthorizedBy),
		Reason:       strings.TrimSpace(req.Reason),
		DedupeKey:    key,
	})
	if err != nil {
		return ledger.EntryResponse{}, err
	}

	slog.Info("Bonus hours awarded", "employee_id", entry.EmployeeID, "hours", entry.Hours.String(), "authorized_by", entry.AuthorizedBy)

	return mapEntryToResponse(entry), nil
}

// List implements ledger.LedgerService.
func (l *LedgerServiceImpl) List(ctx context.Context, filter ledger.LedgerFilter) (ledger.ListLedgerResponse, error) {
	if err := filter.Validate(); err != nil {
		return ledger.ListLedgerResponse{}, err
	}

	entries, err := l.LedgerRepository.List(ctx, filter)
	if err != nil {
		return ledger.ListLedgerResponse{}, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	awards, penalties := decimal.Zero, decimal.Zero
	responses := make([]ledger.EntryResponse, 0, len(entries))
	for _, e := range entries {
		if e.Kind == ledger.KindAward {
			awards = awards.Add(e.Hours)
		} else {
			penalties = penalties.Add(e.Hours)
		}
		responses = append(responses, mapEntryToResponse(e))
	}

	return ledger.ListLedgerResponse{
		Entries:      responses,
		AwardHours:   awards.StringFixed(2),
		PenaltyHours: penalties.StringFixed(2),
		NetHours:     awards.Add(penalties).StringFixed(2),
	}, nil
}

func (l *LedgerServiceImpl) today() time.Time {
	now := l.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func mapEntryToResponse(e ledger.Entry) ledger.EntryResponse {
	resp := ledger.EntryResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		Hours:         e.Hours.StringFixed(2),
		Kind:          string(e.Kind),
		EntryDate:     e.EntryDate.Format("2006-01-02"),
		AuthorizedBy:  e.AuthorizedBy,
		Reason:        e.Reason,
		LateInstances: e.LateInstances,
	}
	if e.EmployeeName != nil {
		resp.EmployeeName = *e.EmployeeName
	}
	if e.AttendanceDate != nil {
		d := e.AttendanceDate.Format("2006-01-02")
		resp.AttendanceDate = &d
	}
	return resp
}
