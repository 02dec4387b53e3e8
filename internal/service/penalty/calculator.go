package penalty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paf-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/paf-hr/hrms-backend-go/internal/domain/penalty"
	"github.com/paf-hr/hrms-backend-go/internal/pkg/dateparse"
)

var sixty = decimal.NewFromInt(60)

// lateInstance is one penalisable late arrival within the month.
type lateInstance struct {
	lateMinutes int
	factor      int
}

func (l lateInstance) hours() decimal.Decimal {
	return decimal.NewFromInt(int64(l.lateMinutes)).
		Div(sixty).
		Mul(decimal.NewFromInt(int64(l.factor - 1)))
}

// Calculate evaluates one employee's day against the policy. It never fails;
// anything that cannot be charged comes back with Eligible=false.
func Calculate(in penalty.Input, s penalty.Settings) penalty.Result {
	today := in.Today
	res := penalty.Result{
		EmployeeID:       in.EmployeeID,
		EmployeeName:     in.EmployeeName,
		Date:             dateparse.DateString(today.Date),
		TimeIn:           today.TimeIn,
		Status:           string(today.Status),
		Factor:           1,
		AlreadyApplied:   in.AlreadyApplied,
		ChargedInstances: []int{},
	}

	res.IsLate = s.IsLateArrival(today.Status, today.TimeIn)
	if !res.IsLate {
		res.Remarks = "On time"
		return res
	}
	if s.ShortLeaveExempt && today.IsShortLeave() {
		res.Remarks = "Short leave, exempt from late penalty"
		return res
	}

	res.LateMinutes = s.LateMinutes(today.TimeIn)
	if res.LateMinutes == 0 {
		res.Remarks = "Late within grace period"
		return res
	}
	res.Factor = s.Factor(today.TimeIn)

	instances := monthInstances(in.History, today, s)
	ordinal := len(instances)
	res.LateInstance = ordinal

	if ordinal <= s.IgnoreCount {
		res.Remarks = fmt.Sprintf("Late instance #%d of %d ignored this month", ordinal, s.IgnoreCount)
		return res
	}
	if in.Charged[ordinal] {
		res.Remarks = fmt.Sprintf("Late instance #%d already charged", ordinal)
		return res
	}

	current := instances[ordinal-1].hours()
	previous := decimal.Zero
	var retro []int
	if s.Retroactive && ordinal == s.IgnoreCount+1 {
		for i, inst := range instances[:ordinal-1] {
			n := i + 1
			if in.Charged[n] {
				continue
			}
			h := inst.hours()
			if h.IsZero() {
				continue
			}
			previous = previous.Add(h)
			retro = append(retro, n)
		}
	}

	total := current.Add(previous)
	res.CurrentPenaltyHours = round(current)
	res.PreviousPenaltyHours = round(previous)
	res.TotalPenaltyHours = round(total)
	res.Eligible = total.IsPositive()
	res.ApplyPenalty = res.Eligible && !in.AlreadyApplied

	res.ChargedInstances = append(res.ChargedInstances, retro...)
	if !current.IsZero() {
		res.ChargedInstances = append(res.ChargedInstances, ordinal)
	}
	res.Remarks = remarks(res, retro)

	return res
}

// monthInstances lists late instances up to and including today, oldest
// first. Short-leave days never count.
func monthInstances(history []attendance.Record, today attendance.Record, s penalty.Settings) []lateInstance {
	todayKey := dateparse.DateString(today.Date)

	days := make([]attendance.Record, 0, len(history)+1)
	for _, rec := range history {
		if dateparse.DateString(rec.Date) >= todayKey || rec.IsShortLeave() {
			continue
		}
		days = append(days, rec)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	days = append(days, today)

	var out []lateInstance
	for _, rec := range days {
		if !s.IsLateArrival(rec.Status, rec.TimeIn) {
			continue
		}
		minutes := s.LateMinutes(rec.TimeIn)
		if minutes == 0 {
			continue
		}
		out = append(out, lateInstance{
			lateMinutes: minutes,
			factor:      s.Factor(rec.TimeIn),
		})
	}
	return out
}

func remarks(res penalty.Result, retro []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Late instance #%d: %d min late at %s, x%d penalty %.2fh",
		res.LateInstance, res.LateMinutes, penalty.ClockHM(res.TimeIn), res.Factor, res.CurrentPenaltyHours)
	if len(retro) > 0 {
		labels := make([]string, len(retro))
		for i, n := range retro {
			labels[i] = fmt.Sprintf("#%d", n)
		}
		fmt.Fprintf(&b, "; retroactive %s: %.2fh", strings.Join(labels, ", "), res.PreviousPenaltyHours)
	}
	fmt.Fprintf(&b, "; total %.2fh", res.TotalPenaltyHours)
	return b.String()
}

func round(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
