package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/sadopc/dayzen/internal/summary"
)

// WeeklyCSV writes one row per day followed by a Total row.
func WeeklyCSV(w io.Writer, s *summary.WeeklySummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Day", "Date", "Tasks Completed", "Total Tasks", "Completion Rate (%)", "Focus Minutes", "Focus"}); err != nil {
		return err
	}
	for _, d := range s.DailyStats {
		row := []string{
			d.Label,
			d.Date.Format("2006-01-02"),
			strconv.Itoa(d.TasksCompleted),
			strconv.Itoa(d.TotalTasks),
			strconv.Itoa(summary.CompletionRate(d.TasksCompleted, d.TotalTasks)),
			strconv.Itoa(d.FocusMinutes),
			formatDuration(int64(d.FocusMinutes) * 60),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	t := s.Totals
	if err := cw.Write([]string{
		"Total", "",
		strconv.Itoa(t.TasksCompleted),
		strconv.Itoa(t.TotalTasks),
		strconv.Itoa(t.CompletionRate),
		strconv.Itoa(t.FocusMinutes),
		formatDuration(int64(t.FocusMinutes) * 60),
	}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// YearlyCSV writes one row per month followed by a Total row.
func YearlyCSV(w io.Writer, s *summary.YearlySummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Month", "Tasks Completed", "Focus Hours", "Completion Rate (%)"}); err != nil {
		return err
	}
	for _, m := range s.MonthlyStats {
		row := []string{
			m.Label,
			strconv.Itoa(m.TasksCompleted),
			formatHours(m.FocusHours),
			strconv.FormatFloat(m.CompletionRate, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	t := s.Totals
	if err := cw.Write([]string{
		"Total",
		strconv.Itoa(t.TasksCompleted),
		formatHours(t.FocusHours),
		strconv.Itoa(t.AvgCompletionRate),
	}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64)
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
