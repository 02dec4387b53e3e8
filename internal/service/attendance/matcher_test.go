package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/paf-hr/hrms-backend-go/internal/domain/employee"
)

func testRoster() []employee.Employee {
	return []employee.Employee{
		{PAKCode: "O-1210710", Name: "Ali Khan", Category: employee.CategoryOfficer},
		{PAKCode: "C-5521", Name: "Sara Ahmed", Category: employee.CategoryCivilian},
		{PAKCode: "880412", Name: "Bilal", Category: employee.CategoryAirmen},
	}
}

func TestMatcher_NumericIDMatchesPrefixedPAK(t *testing.T) {
	out := NewMatcher(testRoster()).Match([]attendance.DailyRecord{
		{ExternalID: "1210710", Name: "somebody else", Date: "2024-03-05"},
	})

	require.Len(t, out, 1)
	assert.True(t, out[0].Matched)
	assert.Equal(t, "O-1210710", out[0].EmployeeID)
	assert.Equal(t, "Ali Khan", out[0].EmployeeName)
	assert.Equal(t, attendance.MatchByID, out[0].Method)
}

func TestMatcher_IDWithNoiseIsStripped(t *testing.T) {
	out := NewMatcher(testRoster()).Match([]attendance.DailyRecord{
		{ExternalID: "C-5521"},
		{ExternalID: " 880412 "},
	})

	assert.Equal(t, "C-5521", out[0].EmployeeID)
	assert.Equal(t, "880412", out[1].EmployeeID)
}

func TestMatcher_NameFallbacks(t *testing.T) {
	out := NewMatcher(testRoster()).Match([]attendance.DailyRecord{
		{ExternalID: "999", Name: "SARA AHMED"},
		{ExternalID: "998", Name: "Flt Lt Ali Khan"},
		{ExternalID: "997", Name: "bil"},
	})

	require.Len(t, out, 3)
	assert.Equal(t, attendance.MatchByNameExact, out[0].Method)
	assert.Equal(t, "C-5521", out[0].EmployeeID)

	assert.Equal(t, attendance.MatchByNameContains, out[1].Method)
	assert.Equal(t, "O-1210710", out[1].EmployeeID)

	assert.Equal(t, attendance.MatchByNameContains, out[2].Method)
	assert.Equal(t, "880412", out[2].EmployeeID)
}

func TestMatcher_UnmatchedIsKept(t *testing.T) {
	records := []attendance.DailyRecord{
		{ExternalID: "42", Name: "", Date: "2024-03-05", TimeIn: "08:00:00"},
		{ExternalID: "43", Name: "Nobody Known", Date: "2024-03-05"},
	}

	out := NewMatcher(testRoster()).Match(records)

	require.Len(t, out, 2)
	for i, rec := range out {
		assert.False(t, rec.Matched)
		assert.Equal(t, attendance.MatchNone, rec.Method)
		assert.Empty(t, rec.EmployeeID)
		assert.Equal(t, records[i], rec.DailyRecord)
	}
}

func TestMatcher_FirstRosterEntryWinsKey(t *testing.T) {
	roster := []employee.Employee{
		{PAKCode: "O-100", Name: "First"},
		{PAKCode: "A-100", Name: "Second"},
	}

	out := NewMatcher(roster).Match([]attendance.DailyRecord{{ExternalID: "100"}})

	assert.Equal(t, "O-100", out[0].EmployeeID)
}

func TestMatcher_EmptyRoster(t *testing.T) {
	out := NewMatcher(nil).Match([]attendance.DailyRecord{{ExternalID: "1", Name: "Ali"}})

	require.Len(t, out, 1)
	assert.False(t, out[0].Matched)
}
