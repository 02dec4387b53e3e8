package attendance

import (
	"regexp"
	"strings"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/paf-hr/hrms-backend-go/internal/domain/employee"
)

var (
	nonDigitRegex     = regexp.MustCompile(`\D`)
	letterPrefixRegex = regexp.MustCompile(`^[A-Za-z]-`)
)

// Matcher reconciles biometric identifiers against the current roster.
type Matcher struct {
	roster []employee.Employee
	byID   map[string]employee.Employee
}

// NewMatcher indexes every roster entry under its digits-only PAK code and
// under its PAK code with a single leading "<letter>-" removed.
func NewMatcher(roster []employee.Employee) *Matcher {
	m := &Matcher{
		roster: roster,
		byID:   make(map[string]employee.Employee, len(roster)*2),
	}
	for _, emp := range roster {
		for _, key := range []string{digitsOnly(emp.PAKCode), letterPrefixRegex.ReplaceAllString(emp.PAKCode, "")} {
			if key == "" {
				continue
			}
			if _, taken := m.byID[key]; !taken {
				m.byID[key] = emp
			}
		}
	}
	return m
}

// Match never drops a record; misses come back with Matched=false.
func (m *Matcher) Match(records []attendance.DailyRecord) []attendance.MatchedRecord {
	out := make([]attendance.MatchedRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, m.matchOne(rec))
	}
	return out
}

func (m *Matcher) matchOne(rec attendance.DailyRecord) attendance.MatchedRecord {
	result := attendance.MatchedRecord{DailyRecord: rec, Method: attendance.MatchNone}

	id := strings.TrimSpace(rec.ExternalID)
	for _, key := range []string{id, digitsOnly(id)} {
		if key == "" {
			continue
		}
		if emp, ok := m.byID[key]; ok {
			return matched(result, emp, attendance.MatchByID)
		}
	}

	name := strings.ToLower(strings.TrimSpace(rec.Name))
	if name == "" {
		return result
	}
	for _, emp := range m.roster {
		candidate := strings.ToLower(strings.TrimSpace(emp.Name))
		if candidate == "" {
			continue
		}
		switch {
		case name == candidate:
			return matched(result, emp, attendance.MatchByNameExact)
		case strings.Contains(name, candidate), strings.Contains(candidate, name):
			return matched(result, emp, attendance.MatchByNameContains)
		}
	}

	return result
}

func matched(rec attendance.MatchedRecord, emp employee.Employee, method attendance.MatchMethod) attendance.MatchedRecord {
	rec.Matched = true
	rec.EmployeeID = emp.PAKCode
	rec.EmployeeName = emp.Name
	rec.Method = method
	return rec
}

func digitsOnly(s string) string {
	return nonDigitRegex.ReplaceAllString(s, "")
}
