package attendance

import (
	"sort"
	"strings"
	"time"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/dateparse"
)

// Header aliases, compared after lower-casing and trimming.
var (
	idAliases = []string{
		"id", "employeeid", "employee id", "employee_id", "emp id", "empid", "emp_id",
		"userid", "user id", "user_id", "ac-no.", "ac-no", "ac no", "acno",
		"enroll no", "enrollno", "enroll number", "pak", "pak no", "pak code", "person id",
	}
	nameAliases = []string{
		"name", "employeename", "employee name", "employee_name",
		"username", "user name", "user_name", "full name", "fullname",
	}
	timestampAliases = []string{
		"datetime", "date/time", "date time", "date_time", "timestamp",
		"checktime", "check time", "punch time", "punchtime", "log time",
	}
	dateAliases = []string{"date", "punch date", "att date", "attendance date"}
	timeAliases = []string{"time", "clock", "punch"}
)

var clockLayouts = []string{"15:04:05", "15:04", "3:04:05 PM", "3:04 PM"}

// AggregateOptions narrows and steers aggregation.
type AggregateOptions struct {
	// TargetDate drops every group not on this YYYY-MM-DD date.
	TargetDate string
	// DateFormat is a Go layout tried before auto-detection.
	DateFormat string
}

type punchGroup struct {
	externalID string
	name       string
	date       string
	stamps     []time.Time
	outcomes   []int // indexes into Aggregation.Outcomes
}

// Aggregate groups raw punch rows by (raw id, date) and derives time-in and
// time-out. Rows without an id or a parsable timestamp are skipped and
// reported in the outcomes; they never fail the batch.
func Aggregate(rows []map[string]string, opts AggregateOptions) attendance.Aggregation {
	var result attendance.Aggregation
	groups := make(map[string]*punchGroup)

	for i, raw := range rows {
		rowNum := i + 1
		row := normalizeRow(raw)

		id := lookup(row, idAliases)
		if id == "" {
			result.Outcomes = append(result.Outcomes, attendance.RowOutcome{
				Row:    rowNum,
				Status: attendance.RowSkipped,
				Reason: attendance.SkipReasonMissingID,
			})
			result.SkippedRows++
			continue
		}

		stamp, value, ok := punchTime(row, opts.DateFormat)
		if !ok {
			result.Outcomes = append(result.Outcomes, attendance.RowOutcome{
				Row:    rowNum,
				Status: attendance.RowSkipped,
				Reason: attendance.SkipReasonInvalidDate,
				Value:  value,
			})
			result.SkippedRows++
			continue
		}

		result.Outcomes = append(result.Outcomes, attendance.RowOutcome{Row: rowNum, Status: attendance.RowOK})
		outcomeIdx := len(result.Outcomes) - 1

		date := dateparse.DateString(stamp)
		key := id + "\x00" + date
		g, exists := groups[key]
		if !exists {
			g = &punchGroup{externalID: id, date: date}
			groups[key] = g
		}
		if g.name == "" {
			g.name = lookup(row, nameAliases)
		}
		g.stamps = append(g.stamps, stamp)
		g.outcomes = append(g.outcomes, outcomeIdx)
	}

	for _, g := range groups {
		if opts.TargetDate != "" && g.date != opts.TargetDate {
			for _, idx := range g.outcomes {
				result.Outcomes[idx].Status = attendance.RowFiltered
				result.Outcomes[idx].Reason = attendance.SkipReasonOtherDate
				result.Outcomes[idx].Value = g.date
			}
			result.FilteredOut += len(g.outcomes)
			continue
		}

		sort.Slice(g.stamps, func(i, j int) bool { return g.stamps[i].Before(g.stamps[j]) })

		record := attendance.DailyRecord{
			ExternalID: g.externalID,
			Name:       g.name,
			Date:       g.date,
			TimeIn:     dateparse.TimeString(g.stamps[0]),
			Punches:    len(g.stamps),
		}
		// A single punch is an arrival with no recorded departure.
		if len(g.stamps) >= 2 {
			record.TimeOut = dateparse.TimeString(g.stamps[len(g.stamps)-1])
		}
		result.Records = append(result.Records, record)
	}

	sort.Slice(result.Records, func(i, j int) bool {
		if result.Records[i].Date != result.Records[j].Date {
			return result.Records[i].Date < result.Records[j].Date
		}
		return result.Records[i].ExternalID < result.Records[j].ExternalID
	})

	return result
}

// punchTime finds the row's timestamp, either from a combined column or from a
// separate date and time pair. The returned string is the raw value tried.
func punchTime(row map[string]string, layout string) (time.Time, string, bool) {
	if ts := lookup(row, timestampAliases); ts != "" {
		t, ok := dateparse.ParseWithFormat(ts, layout)
		return t, ts, ok
	}

	date := lookup(row, dateAliases)
	clock := lookup(row, timeAliases)
	switch {
	case date != "" && clock != "":
		combined := date + " " + clock
		// A layout covering both columns wins; otherwise each column is read on
		// its own so a day-fraction clock is not mistaken for part of the date.
		if t, ok := dateparse.ParseLayout(combined, layout); ok {
			return t, combined, true
		}
		d, ok := dateparse.ParseWithFormat(date, layout)
		if !ok {
			return time.Time{}, combined, false
		}
		c, ok := parseClock(clock)
		if !ok {
			return time.Time{}, combined, false
		}
		return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC), combined, true
	case date != "":
		t, ok := dateparse.ParseWithFormat(date, layout)
		return t, date, ok
	case clock != "":
		t, ok := dateparse.ParseWithFormat(clock, layout)
		return t, clock, ok
	}
	return time.Time{}, "", false
}

// parseClock reads a bare time of day, including a spreadsheet day fraction.
func parseClock(value string) (time.Time, bool) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, strings.ToUpper(value)); err == nil {
			return t, true
		}
	}
	if t, ok := dateparse.Parse(value); ok {
		return t, true
	}
	return time.Time{}, false
}

func normalizeRow(row map[string]string) map[string]string {
	out := make(map[string]string, len(row))
	for k, v := range row {
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out
}

func lookup(row map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok && v != "" {
			return v
		}
	}
	return ""
}
