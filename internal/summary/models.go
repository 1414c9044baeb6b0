// Package summary turns per-day and per-month records into weekly and yearly
// summaries: totals, rates, insights and highlights.
package summary

import "time"

const (
	DaysPerWeek   = 7
	MonthsPerYear = 12

	// consistencyThreshold is the monthly completion rate that counts toward
	// the consistency record.
	consistencyThreshold = 80
)

var (
	dayLabels   = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// DailyRecord is one day of the weekly pipeline.
type DailyRecord struct {
	Label          string    `json:"day"`
	Date           time.Time `json:"date"`
	TasksCompleted int       `json:"tasksCompleted"`
	TotalTasks     int       `json:"totalTasks"`
	FocusMinutes   int       `json:"focusMinutes"`
}

// MonthlyRecord is one month of the yearly pipeline.
type MonthlyRecord struct {
	Label          string  `json:"month"`
	TasksCompleted int     `json:"tasksCompleted"`
	FocusHours     float64 `json:"focusHours"`
	CompletionRate float64 `json:"completionRate"`
}

type WeeklyTotals struct {
	TasksCompleted int `json:"tasksCompleted"`
	TotalTasks     int `json:"totalTasks"`
	FocusMinutes   int `json:"focusMinutes"`
	CompletionRate int `json:"completionRate"`
}

type YearlyTotals struct {
	TasksCompleted    int     `json:"tasksCompleted"`
	FocusHours        float64 `json:"focusHours"`
	AvgCompletionRate int     `json:"avgCompletionRate"`
}

// Highlights are the named facts derived for a year.
type Highlights struct {
	MostProductiveMonth string `json:"mostProductiveMonth"`
	BiggestGrowth       string `json:"biggestGrowth"`
	ConsistencyRecord   string `json:"consistencyRecord"`
}

// Achievement and Category are passed through to the presentation layer as-is.
type Achievement struct {
	ID           string `json:"id"`
	Icon         string `json:"icon,omitempty"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	UnlockedDate string `json:"unlockedDate,omitempty"`
	Color        string `json:"color"`
}

type Category struct {
	Name       string `json:"name"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// Range is an inclusive span of wall-clock time.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type WeeklySummary struct {
	WeekRange  Range         `json:"weekRange"`
	DailyStats []DailyRecord `json:"dailyStats"`
	Totals     WeeklyTotals  `json:"totals"`
	Insights   []string      `json:"insights"`
	// Synthetic marks a summary built from generated records after the real
	// source failed.
	Synthetic bool `json:"synthetic,omitempty"`
}

type YearlySummary struct {
	Year         int             `json:"year"`
	MonthlyStats []MonthlyRecord `json:"monthlyStats"`
	Achievements []Achievement   `json:"achievements"`
	Categories   []Category      `json:"categories"`
	Totals       YearlyTotals    `json:"totals"`
	Highlights   Highlights      `json:"highlights"`
	Synthetic    bool            `json:"synthetic,omitempty"`
}

// Streak is the run of consecutive active days plus this week's activity map.
type Streak struct {
	Current int     `json:"currentStreak"`
	Week    [7]bool `json:"weekData"`
}
