package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/paf-hr/hrms-backend-go/internal/domain/employee"
	"github.com/paf-hr/hrms-backend-go/internal/domain/penalty"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/dateparse"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	penalty.SettingsRepository
	now func() time.Time
}

// GetDailyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDailyAttendance(ctx context.Context, date string) ([]attendance.AttendanceResponse, error) {
	day, ok := validator.IsValidDate(date)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: attendance.ErrInvalidDateFormat.Error()}}
	}

	records, err := a.AttendanceRepository.ListByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for %s: %w", date, err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}
	return responses, nil
}

// GetMonthlyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlyAttendance(ctx context.Context, employeeID string, month string) ([]attendance.AttendanceResponse, error) {
	start, ok := validator.IsValidMonth(month)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}

	emp, err := a.EmployeeRepository.GetByPAKCode(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByEmployeeRange(ctx, emp.PAKCode, start, start.AddDate(0, 1, -1))
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for employee %s: %w", emp.PAKCode, err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		resp := mapRecordToResponse(rec)
		resp.EmployeeName = emp.Name
		responses = append(responses, resp)
	}
	return responses, nil
}

// PreviewBiometric implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) PreviewBiometric(ctx context.Context, req attendance.BiometricImportRequest) (attendance.BiometricImportResponse, error) {
	resp, _, err := a.reconcile(ctx, req)
	return resp, err
}

// ImportBiometric implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ImportBiometric(ctx context.Context, req attendance.BiometricImportRequest) (attendance.BiometricImportResponse, error) {
	resp, matched, err := a.reconcile(ctx, req)
	if err != nil {
		return attendance.BiometricImportResponse{}, err
	}

	settings, err := a.loadSettings(ctx)
	if err != nil {
		return attendance.BiometricImportResponse{}, err
	}

	days := mergeByEmployeeDay(matched)
	for _, day := range days {
		if len(day.indexes) > 1 {
			resp.Merged += len(day.indexes) - 1
			slog.Warn("Biometric ids resolved to the same employee day, punches merged",
				"employee_id", day.employeeID, "date", day.date, "records", len(day.indexes))
		}

		date, _ := time.Parse(dateparse.DateLayout, day.date)
		status := attendance.StatusPresent
		if settings.IsLateArrival("", day.timeIn) {
			status = attendance.StatusLate
		}
		for _, i := range day.indexes {
			resp.Records[i].Status = string(status)
		}

		err := a.AttendanceRepository.Upsert(ctx, attendance.Record{
			EmployeeID: day.employeeID,
			Date:       date,
			Status:     status,
			TimeIn:     day.timeIn,
			TimeOut:    day.timeOut,
		})
		if err != nil {
			slog.Error("Failed to save biometric attendance", "employee_id", day.employeeID, "date", day.date, "error", err)
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s on %s: %v", day.employeeID, day.date, err))
			continue
		}
		resp.Saved++
	}

	slog.Info("Biometric import finished",
		"rows", resp.TotalRows, "skipped_rows", resp.SkippedRows,
		"matched", resp.Matched, "unmatched", resp.Unmatched, "merged", resp.Merged,
		"saved", resp.Saved, "errors", len(resp.Errors))

	return resp, nil
}

// reconcile runs aggregation and matching shared by preview and import.
func (a *AttendanceServiceImpl) reconcile(ctx context.Context, req attendance.BiometricImportRequest) (attendance.BiometricImportResponse, []attendance.MatchedRecord, error) {
	if err := req.Validate(); err != nil {
		return attendance.BiometricImportResponse{}, nil, err
	}

	opts := AggregateOptions{}
	if req.TargetDate != nil {
		opts.TargetDate = *req.TargetDate
	}
	if req.DateFormat != nil {
		opts.DateFormat = *req.DateFormat
	}

	agg := Aggregate(req.Rows, opts)

	roster, err := a.EmployeeRepository.ListCurrent(ctx, a.now())
	if err != nil {
		return attendance.BiometricImportResponse{}, nil, fmt.Errorf("failed to load current roster: %w", err)
	}

	matched := NewMatcher(roster).Match(agg.Records)

	resp := attendance.BiometricImportResponse{
		TotalRows:   len(req.Rows),
		SkippedRows: agg.SkippedRows,
		FilteredOut: agg.FilteredOut,
		Records:     make([]attendance.BiometricRecordResponse, 0, len(matched)),
		RowOutcomes: agg.Outcomes,
	}
	for _, rec := range matched {
		if rec.Matched {
			resp.Matched++
		} else {
			resp.Unmatched++
		}
		resp.Records = append(resp.Records, attendance.BiometricRecordResponse{
			ExternalID:   rec.ExternalID,
			Name:         rec.Name,
			Date:         rec.Date,
			TimeIn:       rec.TimeIn,
			TimeOut:      rec.TimeOut,
			Punches:      rec.Punches,
			Matched:      rec.Matched,
			EmployeeID:   rec.EmployeeID,
			EmployeeName: rec.EmployeeName,
			MatchMethod:  string(rec.Method),
		})
	}

	if agg.SkippedRows > 0 {
		slog.Warn("Biometric rows skipped", "skipped_rows", agg.SkippedRows, "total_rows", len(req.Rows))
	}

	return resp, matched, nil
}

// employeeDay is one attendance row to persist, built from every matched
// record of the same employee and date.
type employeeDay struct {
	employeeID string
	date       string
	timeIn     string
	timeOut    string
	indexes    []int // positions in the matched slice
}

// mergeByEmployeeDay folds records whose different biometric ids resolved to
// the same employee on the same date. The earliest clock becomes time-in and
// the latest becomes time-out. Order follows the first occurrence.
func mergeByEmployeeDay(matched []attendance.MatchedRecord) []*employeeDay {
	var days []*employeeDay
	byKey := make(map[string]*employeeDay)

	for i, rec := range matched {
		if !rec.Matched {
			continue
		}
		key := rec.EmployeeID + "\x00" + rec.Date
		day, ok := byKey[key]
		if !ok {
			day = &employeeDay{employeeID: rec.EmployeeID, date: rec.Date, timeIn: rec.TimeIn, timeOut: rec.TimeOut}
			byKey[key] = day
			days = append(days, day)
			day.indexes = append(day.indexes, i)
			continue
		}
		day.indexes = append(day.indexes, i)

		// HH:MM:SS strings order lexically.
		clocks := []string{day.timeIn, day.timeOut, rec.TimeIn, rec.TimeOut}
		earliest, latest := "", ""
		for _, c := range clocks {
			if c == "" {
				continue
			}
			if earliest == "" || c < earliest {
				earliest = c
			}
			if c > latest {
				latest = c
			}
		}
		day.timeIn = earliest
		if latest != earliest {
			day.timeOut = latest
		}
	}
	return days
}

func (a *AttendanceServiceImpl) loadSettings(ctx context.Context) (penalty.Settings, error) {
	settings, err := a.SettingsRepository.Get(ctx)
	if err != nil {
		if errors.Is(err, penalty.ErrSettingsNotFound) {
			return penalty.DefaultSettings(), nil
		}
		return penalty.Settings{}, fmt.Errorf("failed to load penalty settings: %w", err)
	}
	return settings, nil
}

// mapRecordToResponse converts a Record entity to AttendanceResponse
func mapRecordToResponse(rec attendance.Record) attendance.AttendanceResponse {
	var employeeName string
	if rec.EmployeeName != nil {
		employeeName = *rec.EmployeeName
	}
	return attendance.AttendanceResponse{
		EmployeeID:   rec.EmployeeID,
		EmployeeName: employeeName,
		Date:         rec.Date.Format(dateparse.DateLayout),
		Status:       string(rec.Status),
		TimeIn:       rec.TimeIn,
		TimeOut:      rec.TimeOut,
		Remarks:      rec.Remarks,
		ShortLeave:   rec.IsShortLeave(),
	}
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	settingsRepo penalty.SettingsRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		SettingsRepository:   settingsRepo,
		now:                  time.Now,
	}
}
