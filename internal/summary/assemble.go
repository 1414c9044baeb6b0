package summary

// BuildWeekly packages a week's records with their totals and insights.
func BuildWeekly(week Range, records []DailyRecord) *WeeklySummary {
	if records == nil {
		records = []DailyRecord{}
	}
	totals := AggregateWeek(records)
	return &WeeklySummary{
		WeekRange:  week,
		DailyStats: records,
		Totals:     totals,
		Insights:   WeeklyInsights(records, totals),
	}
}

// BuildYearly packages a year's records with totals, highlights and the
// pass-through achievements and categories.
func BuildYearly(year int, records []MonthlyRecord, achievements []Achievement, categories []Category) *YearlySummary {
	if records == nil {
		records = []MonthlyRecord{}
	}
	if achievements == nil {
		achievements = []Achievement{}
	}
	if categories == nil {
		categories = []Category{}
	}
	return &YearlySummary{
		Year:         year,
		MonthlyStats: records,
		Achievements: achievements,
		Categories:   categories,
		Totals:       AggregateYear(records),
		Highlights:   YearlyHighlights(records),
	}
}
