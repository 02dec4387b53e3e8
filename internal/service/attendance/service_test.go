package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/paf-hr/hrms-backend-go/internal/domain/employee"
	"github.com/paf-hr/hrms-backend-go/internal/domain/penalty"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/validator"
)

type fakeAttendanceRepo struct {
	records   []attendance.Record
	upserted  []attendance.Record
	upsertErr map[string]error
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
	var out []attendance.Record
	for _, r := range f.records {
		if r.EmployeeID == employeeID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record attendance.Record) error {
	if err := f.upsertErr[record.EmployeeID]; err != nil {
		return err
	}
	f.upserted = append(f.upserted, record)
	return nil
}

type fakeEmployeeRepo struct {
	roster []employee.Employee
}

func (f *fakeEmployeeRepo) GetByPAKCode(ctx context.Context, pakCode string) (employee.Employee, error) {
	for _, e := range f.roster {
		if e.PAKCode == pakCode {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListCurrent(ctx context.Context, asOf time.Time) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.roster {
		if e.IsCurrent(asOf) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return f.roster, int64(len(f.roster)), nil
}

type fakeSettingsRepo struct {
	settings *penalty.Settings
}

func (f *fakeSettingsRepo) Get(ctx context.Context) (penalty.Settings, error) {
	if f.settings == nil {
		return penalty.Settings{}, penalty.ErrSettingsNotFound
	}
	return *f.settings, nil
}

func (f *fakeSettingsRepo) Save(ctx context.Context, settings penalty.Settings) (penalty.Settings, error) {
	f.settings = &settings
	return settings, nil
}

func newTestAttendanceService(att *fakeAttendanceRepo, emp *fakeEmployeeRepo, set *fakeSettingsRepo) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository: att,
		EmployeeRepository:   emp,
		SettingsRepository:   set,
		now:                  func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func importRows() []map[string]string {
	return []map[string]string{
		{"UserID": "1210710", "Name": "Ali Khan", "DateTime": "2024-03-05 17:00"},
		{"UserID": "1210710", "Name": "Ali Khan", "DateTime": "2024-03-05 09:30"},
		{"UserID": "5521", "Name": "Sara Ahmed", "DateTime": "2024-03-05 08:50"},
		{"UserID": "42", "Name": "Visitor", "DateTime": "2024-03-05 10:00"},
		{"UserID": "", "Name": "Broken", "DateTime": "2024-03-05 10:00"},
	}
}

func importRoster() *fakeEmployeeRepo {
	postedOut := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &fakeEmployeeRepo{roster: []employee.Employee{
		{PAKCode: "O-1210710", Name: "Ali Khan", Category: employee.CategoryOfficer},
		{PAKCode: "C-5521", Name: "Sara Ahmed", Category: employee.CategoryCivilian},
		{PAKCode: "A-42", Name: "Posted Out", Category: employee.CategoryAirmen, PostingOut: &postedOut},
	}}
}

func TestAttendanceService_PreviewBiometric_WritesNothing(t *testing.T) {
	att := &fakeAttendanceRepo{}
	svc := newTestAttendanceService(att, importRoster(), &fakeSettingsRepo{})

	resp, err := svc.PreviewBiometric(context.Background(), attendance.BiometricImportRequest{Rows: importRows()})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.TotalRows)
	assert.Equal(t, 1, resp.SkippedRows)
	assert.Equal(t, 2, resp.Matched)
	assert.Equal(t, 1, resp.Unmatched)
	assert.Equal(t, 0, resp.Saved)
	assert.Len(t, resp.RowOutcomes, 5)
	assert.Empty(t, att.upserted)
}

func TestAttendanceService_ImportBiometric_UpsertsMatchedWithStatus(t *testing.T) {
	att := &fakeAttendanceRepo{}
	svc := newTestAttendanceService(att, importRoster(), &fakeSettingsRepo{})

	resp, err := svc.ImportBiometric(context.Background(), attendance.BiometricImportRequest{Rows: importRows()})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Saved)
	assert.Empty(t, resp.Errors)
	require.Len(t, att.upserted, 2)

	byID := map[string]attendance.Record{}
	for _, r := range att.upserted {
		byID[r.EmployeeID] = r
	}
	ali := byID["O-1210710"]
	assert.Equal(t, attendance.StatusLate, ali.Status)
	assert.Equal(t, "09:30:00", ali.TimeIn)
	assert.Equal(t, "17:00:00", ali.TimeOut)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ali.Date)

	sara := byID["C-5521"]
	assert.Equal(t, attendance.StatusPresent, sara.Status)
	assert.Equal(t, "", sara.TimeOut)
}

func TestAttendanceService_ImportBiometric_UsesSavedThreshold(t *testing.T) {
	settings := penalty.DefaultSettings()
	settings.LateThreshold = "09:45"
	att := &fakeAttendanceRepo{}
	svc := newTestAttendanceService(att, importRoster(), &fakeSettingsRepo{settings: &settings})

	_, err := svc.ImportBiometric(context.Background(), attendance.BiometricImportRequest{Rows: importRows()})
	require.NoError(t, err)

	for _, r := range att.upserted {
		assert.Equal(t, attendance.StatusPresent, r.Status, r.EmployeeID)
	}
}

func TestAttendanceService_ImportBiometric_CollectsUpsertErrors(t *testing.T) {
	att := &fakeAttendanceRepo{upsertErr: map[string]error{"C-5521": errors.New("connection reset")}}
	svc := newTestAttendanceService(att, importRoster(), &fakeSettingsRepo{})

	resp, err := svc.ImportBiometric(context.Background(), attendance.BiometricImportRequest{Rows: importRows()})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Saved)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "C-5521")
}

func TestAttendanceService_ImportBiometric_MergesIDsForSameEmployeeDay(t *testing.T) {
	att := &fakeAttendanceRepo{}
	svc := newTestAttendanceService(att, importRoster(), &fakeSettingsRepo{})
	rows := []map[string]string{
		{"UserID": "1210710", "DateTime": "2024-03-05 09:30"},
		{"UserID": "O-1210710", "DateTime": "2024-03-05 08:55"},
		{"UserID": "O-1210710", "DateTime": "2024-03-05 17:20"},
	}

	resp, err := svc.ImportBiometric(context.Background(), attendance.BiometricImportRequest{Rows: rows})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Matched)
	assert.Equal(t, 1, resp.Merged)
	assert.Equal(t, 1, resp.Saved)
	require.Len(t, att.upserted, 1)
	rec := att.upserted[0]
	assert.Equal(t, "O-1210710", rec.EmployeeID)
	assert.Equal(t, "08:55:00", rec.TimeIn)
	assert.Equal(t, "17:20:00", rec.TimeOut)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	for _, r := range resp.Records {
		assert.Equal(t, string(attendance.StatusPresent), r.Status)
	}
}

func TestAttendanceService_ImportBiometric_TargetDate(t *testing.T) {
	att := &fakeAttendanceRepo{}
	svc := newTestAttendanceService(att, importRoster(), &fakeSettingsRepo{})
	date := "2024-03-06"

	resp, err := svc.ImportBiometric(context.Background(), attendance.BiometricImportRequest{Rows: importRows(), TargetDate: &date})
	require.NoError(t, err)

	// Every row that carried an id is on 2024-03-05.
	assert.Equal(t, 4, resp.FilteredOut)
	assert.Equal(t, 0, resp.Saved)
	assert.Empty(t, resp.Records)
}

func TestAttendanceService_ImportBiometric_RequiresRows(t *testing.T) {
	svc := newTestAttendanceService(&fakeAttendanceRepo{}, importRoster(), &fakeSettingsRepo{})

	_, err := svc.ImportBiometric(context.Background(), attendance.BiometricImportRequest{})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "rows", verrs[0].Field)
}

func TestAttendanceService_GetMonthlyAttendance(t *testing.T) {
	att := &fakeAttendanceRepo{records: []attendance.Record{
		{EmployeeID: "O-1210710", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent, TimeIn: "08:55:00"},
		{EmployeeID: "O-1210710", Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Status: attendance.StatusLate, TimeIn: "09:40:00", Remarks: "Short Leave approved"},
		{EmployeeID: "O-1210710", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent},
		{EmployeeID: "C-5521", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent},
	}}
	svc := newTestAttendanceService(att, importRoster(), &fakeSettingsRepo{})

	got, err := svc.GetMonthlyAttendance(context.Background(), "O-1210710", "2024-03")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Ali Khan", got[0].EmployeeName)
	assert.True(t, got[1].ShortLeave)

	_, err = svc.GetMonthlyAttendance(context.Background(), "O-1", "2024-03")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.GetMonthlyAttendance(context.Background(), "O-1210710", "March")
	assert.Error(t, err)
}

func TestAttendanceService_GetDailyAttendance(t *testing.T) {
	name := "Sara Ahmed"
	att := &fakeAttendanceRepo{records: []attendance.Record{
		{EmployeeID: "C-5521", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Status: attendance.StatusPresent, TimeIn: "08:40:00", EmployeeName: &name},
	}}
	svc := newTestAttendanceService(att, importRoster(), &fakeSettingsRepo{})

	got, err := svc.GetDailyAttendance(context.Background(), "2024-03-01")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sara Ahmed", got[0].EmployeeName)
	assert.Equal(t, "2024-03-01", got[0].Date)

	_, err = svc.GetDailyAttendance(context.Background(), "01-03-2024")
	assert.Error(t, err)
}
