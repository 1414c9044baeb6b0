package summary

import (
	"sort"
	"time"
)

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

// ComputeStreak counts consecutive active days ending today. A streak that
// ended yesterday is still current until today is over.
func ComputeStreak(activeDays []time.Time, today time.Time) Streak {
	active := make(map[string]bool, len(activeDays))
	for _, d := range activeDays {
		active[dayKey(d.In(today.Location()))] = true
	}

	var s Streak
	week := WeekPeriod(today, 0, today.Location())
	for i, d := range week.Days() {
		s.Week[i] = active[dayKey(d)]
	}

	d := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if !active[dayKey(d)] {
		d = d.AddDate(0, 0, -1)
	}
	for active[dayKey(d)] {
		s.Current++
		d = d.AddDate(0, 0, -1)
	}
	return s
}

// CategoryShares turns per-category counts into shares of the total, largest first.
func CategoryShares(counts map[string]int) []Category {
	total := 0
	for _, n := range counts {
		total += n
	}
	cats := make([]Category, 0, len(counts))
	for name, n := range counts {
		cats = append(cats, Category{Name: name, Count: n, Percentage: Percent(n, total)})
	}
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Count != cats[j].Count {
			return cats[i].Count > cats[j].Count
		}
		return cats[i].Name < cats[j].Name
	})
	return cats
}
