package summary

import "math"

// round rounds half-up toward positive infinity, so -2.5 becomes -2.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Percent returns round(100*part/whole), or 0 when whole is not positive.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return round(100 * float64(part) / float64(whole))
}

// CompletionRate is the guarded weekly completion rate, always within [0,100].
func CompletionRate(completed, total int) int {
	return min(max(Percent(completed, total), 0), 100)
}

// AggregateWeek sums a week of daily records.
func AggregateWeek(records []DailyRecord) WeeklyTotals {
	var t WeeklyTotals
	for _, r := range records {
		t.TasksCompleted += r.TasksCompleted
		t.TotalTasks += r.TotalTasks
		t.FocusMinutes += r.FocusMinutes
	}
	t.CompletionRate = CompletionRate(t.TasksCompleted, t.TotalTasks)
	return t
}

// AggregateYear sums a year of monthly records. The average completion rate
// of an empty year is 0.
func AggregateYear(records []MonthlyRecord) YearlyTotals {
	var t YearlyTotals
	var rateSum float64
	for _, r := range records {
		t.TasksCompleted += r.TasksCompleted
		t.FocusHours += r.FocusHours
		rateSum += r.CompletionRate
	}
	if len(records) > 0 {
		t.AvgCompletionRate = round(rateSum / float64(len(records)))
	}
	return t
}
