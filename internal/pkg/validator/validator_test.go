package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	m, ok := IsValidMonth("2024-03")
	if !ok || m.Day() != 1 || m.Month() != 3 {
		t.Errorf("IsValidMonth(2024-03) = %v, %v", m, ok)
	}
	for _, s := range []string{"2024-13", "2024-3-01", "03-2024", ""} {
		if _, ok := IsValidMonth(s); ok {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "09:15", "23:59"}
	invalid := []string{"9:15", "24:00", "09:60", "09:15:00", ""}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidPAKCode(t *testing.T) {
	valid := []string{"O-1210710", "1210710", "CIV-4455"}
	invalid := []string{"O-", "-123", "O-12a", "O 123", ""}
	for _, s := range valid {
		if !IsValidPAKCode(s) {
			t.Errorf("IsValidPAKCode(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidPAKCode(s) {
			t.Errorf("IsValidPAKCode(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"Present", "Late"}
	if !IsInSlice("Late", slice) {
		t.Errorf("IsInSlice(Late) = false, want true")
	}
	if IsInSlice("late", slice) {
		t.Errorf("IsInSlice(late) = true, want false")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "month", Message: "month must be in YYYY-MM format"},
	}
	if got := errs.Error(); got != "date: date is required; month: month must be in YYYY-MM format" {
		t.Errorf("Error() = %q", got)
	}
	if m := errs.ToMap(); len(m) != 2 || m["date"] != "date is required" {
		t.Errorf("ToMap() = %v", m)
	}
}
