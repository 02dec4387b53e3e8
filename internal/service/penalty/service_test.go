package penalty

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/paf-hr/hrms-backend-go/internal/domain/ledger"
	"github.com/paf-hr/hrms-backend-go/internal/domain/penalty"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/validator"
)

type fakeSettingsRepo struct {
	settings *penalty.Settings
	err      error
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (penalty.Settings, error) {
	if f.err != nil {
		return penalty.Settings{}, f.err
	}
	if f.settings == nil {
		return penalty.Settings{}, penalty.ErrSettingsNotFound
	}
	return *f.settings, nil
}

func (f *fakeSettingsRepo) Save(ctx context.Context, settings penalty.Settings) (penalty.Settings, error) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	settings.UpdatedAt = &now
	f.settings = &settings
	return settings, nil
}

type fakeAttendanceRepo struct {
	records    []attendance.Record
	historyErr map[string]error
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	if err := f.historyErr[employeeID]; err != nil {
		return nil, err
	}
	var out []attendance.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record attendance.Record) error {
	return nil
}

type fakeLedgerRepo struct {
	charged   map[string][]int
	penalized []string
}

func (f *fakeLedgerRepo) Exists(ctx context.Context, employeeID string, kind ledger.Kind, dedupeKey string) (bool, error) {
	return false, nil
}

func (f *fakeLedgerRepo) Insert(ctx context.Context, entry ledger.Entry) (ledger.Entry, error) {
	return entry, nil
}

func (f *fakeLedgerRepo) ChargedInstances(ctx context.Context, employeeID string, from, to time.Time) ([]int, error) {
	return f.charged[employeeID], nil
}

func (f *fakeLedgerRepo) PenalizedEmployees(ctx context.Context, attendanceDate time.Time) ([]string, error) {
	return f.penalized, nil
}

func (f *fakeLedgerRepo) List(ctx context.Context, filter ledger.LedgerFilter) ([]ledger.Entry, error) {
	return nil, nil
}

func named(r attendance.Record, name string) attendance.Record {
	r.EmployeeName = &name
	return r
}

func monthFixture() []attendance.Record {
	records := threeLateDays()
	records = append(records,
		named(rec(6, attendance.StatusPresent, "09:20:00"), "Ali Khan"),
		attendance.Record{EmployeeID: "C-5521", Date: day(6), Status: attendance.StatusPresent, TimeIn: "08:45:00"},
		attendance.Record{EmployeeID: "A-42", Date: day(6), Status: attendance.StatusLate, TimeIn: "10:05:00"},
	)
	return records
}

func TestPenaltyService_GetSettings_Defaults(t *testing.T) {
	svc := NewPenaltyService(&fakeSettingsRepo{}, &fakeAttendanceRepo{}, &fakeLedgerRepo{})

	got, err := svc.GetSettings(context.Background())
	require.NoError(t, err)

	assert.True(t, got.IsDefault)
	assert.Equal(t, 3, got.IgnoreCount)
	assert.Equal(t, 15, got.GracePeriodMinutes)
	assert.Equal(t, "09:15", got.DoubleStart)
	assert.Equal(t, "10:00", got.DoubleEnd)
	assert.Equal(t, "10:00", got.QuadrupleStart)
	assert.Equal(t, "09:00", got.LateThreshold)
	assert.True(t, got.ShortLeaveExempt)
	assert.True(t, got.Retroactive)
	assert.Nil(t, got.UpdatedAt)
}

func TestPenaltyService_UpdateSettings(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewPenaltyService(repo, &fakeAttendanceRepo{}, &fakeLedgerRepo{})

	req := penalty.UpdateSettingsRequest{
		GracePeriodMinutes: 10,
		IgnoreCount:        2,
		DoubleStart:        "09:10",
		DoubleEnd:          "09:45",
		QuadrupleStart:     "09:45",
		LateThreshold:      "09:00",
		Retroactive:        true,
	}
	got, err := svc.UpdateSettings(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
	require.NotNil(t, got.UpdatedAt)

	got, err = svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.IgnoreCount)
	assert.False(t, got.ShortLeaveExempt)
}

func TestPenaltyService_UpdateSettings_Invalid(t *testing.T) {
	svc := NewPenaltyService(&fakeSettingsRepo{}, &fakeAttendanceRepo{}, &fakeLedgerRepo{})

	_, err := svc.UpdateSettings(context.Background(), penalty.UpdateSettingsRequest{
		GracePeriodMinutes: -1,
		DoubleStart:        "10:00",
		DoubleEnd:          "09:00",
		QuadrupleStart:     "9am",
		LateThreshold:      "09:00",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "grace_period_minutes")
	assert.Contains(t, fields, "quadruple_start")
}

func TestPenaltyService_Calculate(t *testing.T) {
	svc := NewPenaltyService(&fakeSettingsRepo{}, &fakeAttendanceRepo{records: monthFixture()}, &fakeLedgerRepo{})

	resp, err := svc.Calculate(context.Background(), "2024-03-06")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-06", resp.Date)
	assert.True(t, resp.Settings.IsDefault)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Eligible)

	byID := map[string]penalty.Result{}
	for _, r := range resp.Results {
		byID[r.EmployeeID] = r
	}
	ali := byID["O-1210710"]
	assert.Equal(t, "Ali Khan", ali.EmployeeName)
	assert.Equal(t, 4.58, ali.TotalPenaltyHours)
	assert.True(t, ali.ApplyPenalty)

	assert.False(t, byID["C-5521"].IsLate)

	a42 := byID["A-42"]
	assert.True(t, a42.IsLate)
	assert.Equal(t, 1, a42.LateInstance)
	assert.False(t, a42.Eligible)
}

func TestPenaltyService_Calculate_AlreadyPenalized(t *testing.T) {
	svc := NewPenaltyService(&fakeSettingsRepo{}, &fakeAttendanceRepo{records: monthFixture()}, &fakeLedgerRepo{penalized: []string{"O-1210710"}})

	resp, err := svc.Calculate(context.Background(), "2024-03-06")
	require.NoError(t, err)

	for _, r := range resp.Results {
		if r.EmployeeID == "O-1210710" {
			assert.True(t, r.Eligible)
			assert.True(t, r.AlreadyApplied)
			assert.False(t, r.ApplyPenalty)
		}
	}
}

func TestPenaltyService_Calculate_IsolatesEmployeeErrors(t *testing.T) {
	att := &fakeAttendanceRepo{
		records:    monthFixture(),
		historyErr: map[string]error{"O-1210710": errors.New("statement timeout")},
	}
	svc := NewPenaltyService(&fakeSettingsRepo{}, att, &fakeLedgerRepo{})

	resp, err := svc.Calculate(context.Background(), "2024-03-06")
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)

	for _, r := range resp.Results {
		if r.EmployeeID == "O-1210710" {
			assert.False(t, r.Eligible)
			assert.False(t, r.ApplyPenalty)
			assert.Contains(t, r.Error, "statement timeout")
		} else {
			assert.Empty(t, r.Error)
		}
	}
}

func TestPenaltyService_Calculate_SettingsFailureAbortsBatch(t *testing.T) {
	svc := NewPenaltyService(&fakeSettingsRepo{err: errors.New("connection refused")}, &fakeAttendanceRepo{records: monthFixture()}, &fakeLedgerRepo{})

	_, err := svc.Calculate(context.Background(), "2024-03-06")
	assert.ErrorContains(t, err, "connection refused")
}

func TestPenaltyService_Calculate_InvalidDate(t *testing.T) {
	svc := NewPenaltyService(&fakeSettingsRepo{}, &fakeAttendanceRepo{}, &fakeLedgerRepo{})

	_, err := svc.Calculate(context.Background(), "06/03/2024")

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
