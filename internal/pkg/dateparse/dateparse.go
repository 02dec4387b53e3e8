// Package dateparse turns free-text spreadsheet cells into wall-clock instants.
//
// Biometric exports disagree on how they write a timestamp, so Parse walks an
// ordered list of explicit patterns before handing the value to a generic
// parser. Pattern order is the tie-break for ambiguous inputs: "03/04/2024" is
// read day-first because the D/M/Y pattern is tried before M/D/Y.
package dateparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// serialEpoch is day zero for spreadsheet serial dates.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// julianCutoff is the last serial excelize converts on the Julian calendar
// instead of counting days from serialEpoch.
const julianCutoff = 61

// maxSerial is the serial for 9999-12-31, the largest date a spreadsheet stores.
const maxSerial = 2958465

const clockPattern = `(?:[ ]+(\d{1,2}):(\d{2})(?::(\d{2}))?(?:\s*([AaPp][Mm]))?)?`

var (
	yearFirstRegex = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})` + clockPattern + `$`)
	yearLastRegex  = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})` + clockPattern + `$`)
	numericRegex   = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Parse returns the instant encoded by value, or false when no pattern fits.
// The returned time is always in UTC and carries the wall clock found in the
// input.
func Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	// YYYY-MM-DD [HH:MM[:SS]]
	if m := yearFirstRegex.FindStringSubmatch(value); m != nil {
		if t, ok := build(m[1], m[2], m[3], m[4:]); ok {
			return t, true
		}
	}

	if m := yearLastRegex.FindStringSubmatch(value); m != nil {
		// DD-MM-YYYY wins over MM-DD-YYYY whenever both are valid dates.
		if t, ok := build(m[3], m[2], m[1], m[4:]); ok {
			return t, true
		}
		if t, ok := build(m[3], m[1], m[2], m[4:]); ok {
			return t, true
		}
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return wallClock(t), true
		}
	}

	if numericRegex.MatchString(value) {
		if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 && serial <= maxSerial {
			return SerialToTime(serial), true
		}
	}

	if t, err := dateparse.ParseIn(value, time.UTC); err == nil {
		return wallClock(t), true
	}

	return time.Time{}, false
}

// ParseLayout parses value with exactly one Go layout and no fallback.
func ParseLayout(value, layout string) (time.Time, bool) {
	if layout == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(layout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return wallClock(t), true
}

// ParseWithFormat tries the caller's layout first and falls back to Parse when
// the value does not match it.
func ParseWithFormat(value, layout string) (time.Time, bool) {
	if t, ok := ParseLayout(value, layout); ok {
		return t, true
	}
	return Parse(value)
}

// SerialToTime converts a spreadsheet serial number. The integer part counts
// days from 1899-12-30 and the fraction is the time of day. Serials from 60 on
// are shifted back one day for the phantom 1900-02-29.
func SerialToTime(serial float64) time.Time {
	days := math.Floor(serial)
	if days <= julianCutoff {
		seconds := math.Round((serial - days) * 86400)
		if days >= 60 {
			days--
		}
		return serialEpoch.AddDate(0, 0, int(days)).Add(time.Duration(seconds) * time.Second)
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}
	}
	return t.UTC().Round(time.Second).AddDate(0, 0, -1)
}

// DateString formats t as YYYY-MM-DD.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// TimeString formats t as HH:MM:SS.
func TimeString(t time.Time) string {
	return t.Format(TimeLayout)
}

// build assembles a date from string parts and rejects out-of-range values
// instead of letting time.Date normalise them.
func build(year, month, day string, clock []string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}

	var hh, mm, ss int
	if clock[0] != "" {
		hh, _ = strconv.Atoi(clock[0])
		mm, _ = strconv.Atoi(clock[1])
		if clock[2] != "" {
			ss, _ = strconv.Atoi(clock[2])
		}
		switch strings.ToUpper(clock[3]) {
		case "AM":
			if hh < 1 || hh > 12 {
				return time.Time{}, false
			}
			if hh == 12 {
				hh = 0
			}
		case "PM":
			if hh < 1 || hh > 12 {
				return time.Time{}, false
			}
			if hh != 12 {
				hh += 12
			}
		}
		if hh > 23 || mm > 59 || ss > 59 {
			return time.Time{}, false
		}
	}

	t := time.Date(y, time.Month(mo), d, hh, mm, ss, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != mo {
		return time.Time{}, false
	}
	return t, true
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
