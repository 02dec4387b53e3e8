package penalty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
)

// ClockHM normalises a time-of-day such as "9:05", "09:05" or "09:05:33" to a
// zero-padded "HH:MM". Unreadable values return "".
func ClockHM(value string) string {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) < 2 {
		return ""
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return ""
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// MinutesSinceMidnight converts a clock value; ok is false when unreadable.
func MinutesSinceMidnight(value string) (int, bool) {
	hm := ClockHM(value)
	if hm == "" {
		return 0, false
	}
	h, _ := strconv.Atoi(hm[:2])
	m, _ := strconv.Atoi(hm[3:])
	return h*60 + m, true
}

// IsLateArrival: a Late status, or a time-in after the threshold. Zero-padded
// "HH:MM" strings order the same way as the times they encode.
func (s Settings) IsLateArrival(status attendance.Status, timeIn string) bool {
	if status.IsLate() {
		return true
	}
	hm := ClockHM(timeIn)
	return hm != "" && hm > s.LateThreshold
}

// LateMinutes is the lateness beyond threshold plus grace, floored at zero.
func (s Settings) LateMinutes(timeIn string) int {
	in, ok := MinutesSinceMidnight(timeIn)
	if !ok {
		return 0
	}
	threshold, ok := MinutesSinceMidnight(s.LateThreshold)
	if !ok {
		return 0
	}
	return max(0, in-threshold-s.GracePeriodMinutes)
}

// Factor is 2 inside the double band, 4 from the quadruple band on, else 1.
func (s Settings) Factor(timeIn string) int {
	hm := ClockHM(timeIn)
	if hm == "" {
		return 1
	}
	if hm >= s.DoubleStart && hm < s.DoubleEnd {
		return 2
	}
	if hm >= s.QuadrupleStart {
		return 4
	}
	return 1
}
