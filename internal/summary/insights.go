package summary

import "fmt"

const (
	noWeeklyActivity = "No activity recorded for this week."
	noYearlyActivity = "No activity recorded for this year."

	focusTargetMinutes   = 90
	excellentCompletion  = 85
	encouragedCompletion = 70
)

// MostProductiveDay returns the index of the day with the most completed
// tasks. Ties go to the earliest day; -1 means no records.
func MostProductiveDay(records []DailyRecord) int {
	best := -1
	for i, r := range records {
		if best < 0 || r.TasksCompleted > records[best].TasksCompleted {
			best = i
		}
	}
	return best
}

// MostProductiveMonth is MostProductiveDay for monthly records.
func MostProductiveMonth(records []MonthlyRecord) int {
	best := -1
	for i, r := range records {
		if best < 0 || r.TasksCompleted > records[best].TasksCompleted {
			best = i
		}
	}
	return best
}

// WeeklyInsights derives the three weekly observations in fixed order: best
// day, focus time, completion rate.
func WeeklyInsights(records []DailyRecord, totals WeeklyTotals) []string {
	best := MostProductiveDay(records)
	if best < 0 {
		return []string{noWeeklyActivity}
	}

	insights := make([]string, 0, 3)
	day := records[best]
	insights = append(insights, fmt.Sprintf("Your most productive day was %s with %d tasks completed.", day.Label, day.TasksCompleted))

	avgFocus := round(float64(totals.FocusMinutes) / DaysPerWeek)
	if avgFocus < focusTargetMinutes {
		insights = append(insights, fmt.Sprintf("Your average focus time is %d minutes. Consider extending sessions for deeper work.", avgFocus))
	} else {
		insights = append(insights, fmt.Sprintf("Great focus! You averaged %d minutes of focused work per day.", avgFocus))
	}

	rate := totals.CompletionRate
	switch {
	case rate >= excellentCompletion:
		insights = append(insights, fmt.Sprintf("Excellent completion rate of %d%%! Keep up the momentum.", rate))
	case rate >= encouragedCompletion:
		insights = append(insights, fmt.Sprintf("Good completion rate of %d%%. A few more wins and you'll hit excellence!", rate))
	default:
		insights = append(insights, fmt.Sprintf("Your completion rate is %d%%. Consider breaking tasks into smaller chunks.", rate))
	}
	return insights
}

// HalfYearGrowth compares completed tasks in the second half of the year with
// the first half, as a rounded percentage. A first half of zero yields 100
// when the second half has any work and 0 otherwise.
func HalfYearGrowth(records []MonthlyRecord) int {
	var first, second int
	for i, r := range records {
		if i < MonthsPerYear/2 {
			first += r.TasksCompleted
		} else {
			second += r.TasksCompleted
		}
	}
	switch {
	case first > 0:
		return round(100 * float64(second-first) / float64(first))
	case second > 0:
		return 100
	default:
		return 0
	}
}

// ConsistentMonths counts months at or above the consistency threshold.
func ConsistentMonths(records []MonthlyRecord) int {
	n := 0
	for _, r := range records {
		if r.CompletionRate >= consistencyThreshold {
			n++
		}
	}
	return n
}

// YearlyHighlights derives the named yearly facts.
func YearlyHighlights(records []MonthlyRecord) Highlights {
	h := Highlights{
		MostProductiveMonth: noYearlyActivity,
		BiggestGrowth:       fmt.Sprintf("%s growth from H1 to H2", signedPercent(HalfYearGrowth(records))),
		ConsistencyRecord: fmt.Sprintf("Maintained %d%%+ completion rate for %d out of %d months.",
			consistencyThreshold, ConsistentMonths(records), MonthsPerYear),
	}
	if best := MostProductiveMonth(records); best >= 0 {
		m := records[best]
		h.MostProductiveMonth = fmt.Sprintf("%s with %d tasks completed.", m.Label, m.TasksCompleted)
	}
	return h
}

func signedPercent(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d%%", n)
	}
	return fmt.Sprintf("%d%%", n)
}
