package summary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeeklyInsightsExample(t *testing.T) {
	records := week(
		[]int{8, 6, 9, 7, 10, 4, 3},
		[]int{10, 8, 12, 9, 11, 5, 4},
		[]int{120, 90, 100, 80, 110, 60, 70},
	)
	insights := WeeklyInsights(records, AggregateWeek(records))

	require.Equal(t, []string{
		"Your most productive day was Fri with 10 tasks completed.",
		"Great focus! You averaged 90 minutes of focused work per day.",
		"Good completion rate of 80%. A few more wins and you'll hit excellence!",
	}, insights)
}

func TestWeeklyInsightsAlwaysThree(t *testing.T) {
	for _, focus := range []int{0, 30, 89, 90, 200} {
		for _, done := range []int{0, 5, 8, 10} {
			completed := []int{done, done, done, done, done, done, done}
			total := []int{10, 10, 10, 10, 10, 10, 10}
			f := []int{focus, focus, focus, focus, focus, focus, focus}
			records := week(completed, total, f)
			require.Len(t, WeeklyInsights(records, AggregateWeek(records)), 3)
		}
	}
}

func TestWeeklyInsightsShortFocus(t *testing.T) {
	records := week([]int{1, 1, 1, 1, 1, 1, 1}, []int{1, 1, 1, 1, 1, 1, 1}, []int{60, 60, 60, 60, 60, 60, 62})
	insights := WeeklyInsights(records, AggregateWeek(records))
	require.Equal(t, "Your average focus time is 60 minutes. Consider extending sessions for deeper work.", insights[1])
	require.Equal(t, "Excellent completion rate of 100%! Keep up the momentum.", insights[2])
}

func TestWeeklyInsightsLowCompletion(t *testing.T) {
	records := week([]int{1, 1, 1, 1, 1, 1, 1}, []int{5, 5, 5, 5, 5, 5, 5}, nil)
	insights := WeeklyInsights(records, AggregateWeek(records))
	require.Equal(t, "Your completion rate is 20%. Consider breaking tasks into smaller chunks.", insights[2])
}

func TestWeeklyInsightsCompletionBoundaries(t *testing.T) {
	tests := []struct {
		rate int
		want string
	}{
		{85, "Excellent completion rate of 85%! Keep up the momentum."},
		{84, "Good completion rate of 84%. A few more wins and you'll hit excellence!"},
		{70, "Good completion rate of 70%. A few more wins and you'll hit excellence!"},
		{69, "Your completion rate is 69%. Consider breaking tasks into smaller chunks."},
	}
	records := week([]int{1}, []int{1}, nil)
	for _, tt := range tests {
		insights := WeeklyInsights(records, WeeklyTotals{CompletionRate: tt.rate})
		require.Equal(t, tt.want, insights[2])
	}
}

func TestMostProductiveDayTieGoesToEarliest(t *testing.T) {
	records := week([]int{3, 9, 2, 9, 9, 1, 0}, []int{9, 9, 9, 9, 9, 9, 9}, nil)
	require.Equal(t, 1, MostProductiveDay(records))

	insights := WeeklyInsights(records, AggregateWeek(records))
	require.Equal(t, "Your most productive day was Tue with 9 tasks completed.", insights[0])

	allZero := week([]int{0, 0, 0, 0, 0, 0, 0}, []int{0, 0, 0, 0, 0, 0, 0}, nil)
	require.Equal(t, 0, MostProductiveDay(allZero))
}

func TestMostProductiveMonthTieGoesToEarliest(t *testing.T) {
	records := year([]int{5, 7, 7, 1}, nil)
	require.Equal(t, 1, MostProductiveMonth(records))
	require.Equal(t, -1, MostProductiveMonth(nil))
}

func TestWeeklyInsightsEmpty(t *testing.T) {
	require.Equal(t, []string{"No activity recorded for this week."}, WeeklyInsights(nil, WeeklyTotals{}))
}

func TestWeeklyInsightsSingleRecord(t *testing.T) {
	records := week([]int{4}, []int{5}, []int{70})
	insights := WeeklyInsights(records, AggregateWeek(records))
	require.Len(t, insights, 3)
	require.Equal(t, "Your most productive day was Mon with 4 tasks completed.", insights[0])
	require.Equal(t, "Your average focus time is 10 minutes. Consider extending sessions for deeper work.", insights[1])
}

func TestHalfYearGrowth(t *testing.T) {
	tests := []struct {
		name      string
		completed []int
		want      int
	}{
		{"both halves empty", []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, 0},
		{"first half empty", []int{0, 0, 0, 0, 0, 0, 10, 10, 10, 10, 5, 5}, 100},
		{"doubled", []int{10, 10, 10, 10, 10, 10, 20, 20, 20, 20, 20, 20}, 100},
		{"declined", []int{10, 10, 10, 10, 10, 10, 5, 5, 5, 5, 5, 5}, -50},
		{"flat", []int{7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7}, 0},
		{"half-up on negatives", []int{200, 0, 0, 0, 0, 0, 195, 0, 0, 0, 0, 0}, -2},
		{"only first half", []int{3, 3, 3}, -100},
		{"empty", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, HalfYearGrowth(year(tt.completed, nil)))
		})
	}
}

func TestYearlyHighlights(t *testing.T) {
	completed := []int{0, 0, 0, 0, 0, 0, 10, 10, 10, 10, 5, 5}
	rates := []float64{80, 80, 80, 80, 80, 80, 80, 80, 80, 80, 80, 80}

	h := YearlyHighlights(year(completed, rates))
	require.Equal(t, "Jul with 10 tasks completed.", h.MostProductiveMonth)
	require.Equal(t, "+100% growth from H1 to H2", h.BiggestGrowth)
	require.Equal(t, "Maintained 80%+ completion rate for 12 out of 12 months.", h.ConsistencyRecord)
}

func TestYearlyHighlightsNegativeGrowthHasNoPlus(t *testing.T) {
	completed := []int{10, 10, 10, 10, 10, 10, 5, 5, 5, 5, 5, 5}
	rates := []float64{79.9, 80, 95, 50, 0, 100, 81, 79, 80, 80, 60, 85}

	h := YearlyHighlights(year(completed, rates))
	require.Equal(t, "-50% growth from H1 to H2", h.BiggestGrowth)
	require.Equal(t, "Maintained 80%+ completion rate for 7 out of 12 months.", h.ConsistencyRecord)
}

func TestYearlyHighlightsEmpty(t *testing.T) {
	require.NotPanics(t, func() {
		h := YearlyHighlights(nil)
		require.Equal(t, "No activity recorded for this year.", h.MostProductiveMonth)
		require.Equal(t, "0% growth from H1 to H2", h.BiggestGrowth)
		require.Equal(t, "Maintained 80%+ completion rate for 0 out of 12 months.", h.ConsistencyRecord)
	})
}
