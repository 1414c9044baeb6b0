package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sadopc/dayzen/internal/export"
	"github.com/sadopc/dayzen/internal/summary"
	"github.com/spf13/cobra"
)

var (
	reportTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#818CF8"))
	reportMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#78716C"))
	reportWarn   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	reportHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	reportCell   = lipgloss.NewStyle().Padding(0, 1)
)

func newReportTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(reportMuted).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return reportHeader
			}
			return reportCell
		})
}

func (a *app) newWeeklyCmd() *cobra.Command {
	var (
		offset int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Print a weekly summary",
		Example: `  dayzen weekly
  dayzen weekly --offset -1 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.open(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			sum, err := rt.svc.Weekly(cmd.Context(), a.localSession(), offset)
			if err != nil {
				return err
			}
			if asJSON {
				return export.Write(cmd.OutOrStdout(), export.JSON, sum)
			}
			printWeekly(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	cmd.Flags().IntVar(&offset, "offset", 0, "weeks from the current one (-1 is last week)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func (a *app) newYearlyCmd() *cobra.Command {
	var (
		year   int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "yearly",
		Short:   "Print a yearly summary",
		Example: `  dayzen yearly --year 2025`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.open(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if year == 0 {
				year = time.Now().In(rt.loc).Year()
			}
			sum, err := rt.svc.Yearly(cmd.Context(), a.localSession(), year)
			if err != nil {
				return err
			}
			if asJSON {
				return export.Write(cmd.OutOrStdout(), export.JSON, sum)
			}
			printYearly(cmd.OutOrStdout(), sum)
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "calendar year (default is the current year)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func printWeekly(w io.Writer, s *summary.WeeklySummary) {
	title := reportTitle.Render(fmt.Sprintf("Week of %s – %s",
		s.WeekRange.Start.Format("Jan 2"), s.WeekRange.End.Format("Jan 2, 2006")))
	if s.Synthetic {
		title += " " + reportWarn.Render("(sample data)")
	}

	t := newReportTable("Day", "Date", "Done", "Planned", "Rate", "Focus")
	for _, d := range s.DailyStats {
		t.Row(
			d.Label,
			d.Date.Format("2006-01-02"),
			strconv.Itoa(d.TasksCompleted),
			strconv.Itoa(d.TotalTasks),
			fmt.Sprintf("%d%%", summary.CompletionRate(d.TasksCompleted, d.TotalTasks)),
			fmt.Sprintf("%dm", d.FocusMinutes),
		)
	}
	t.Row("Total", "",
		strconv.Itoa(s.Totals.TasksCompleted),
		strconv.Itoa(s.Totals.TotalTasks),
		fmt.Sprintf("%d%%", s.Totals.CompletionRate),
		fmt.Sprintf("%dm", s.Totals.FocusMinutes),
	)

	fmt.Fprintln(w, title)
	fmt.Fprintln(w, t.Render())
	for _, line := range s.Insights {
		fmt.Fprintln(w, reportMuted.Render("› ")+line)
	}
}

func printYearly(w io.Writer, s *summary.YearlySummary) {
	title := reportTitle.Render(fmt.Sprintf("%d in Review", s.Year))
	if s.Synthetic {
		title += " " + reportWarn.Render("(sample data)")
	}

	t := newReportTable("Month", "Done", "Focus", "Rate")
	for _, m := range s.MonthlyStats {
		t.Row(
			m.Label,
			strconv.Itoa(m.TasksCompleted),
			fmt.Sprintf("%.1fh", m.FocusHours),
			fmt.Sprintf("%.0f%%", m.CompletionRate),
		)
	}
	t.Row("Total",
		strconv.Itoa(s.Totals.TasksCompleted),
		fmt.Sprintf("%.1fh", s.Totals.FocusHours),
		fmt.Sprintf("%d%%", s.Totals.AvgCompletionRate),
	)

	fmt.Fprintln(w, title)
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, "Most productive: "+s.Highlights.MostProductiveMonth)
	fmt.Fprintln(w, "Growth:          "+s.Highlights.BiggestGrowth)
	fmt.Fprintln(w, "Consistency:     "+s.Highlights.ConsistencyRecord)

	if len(s.Categories) > 0 {
		ct := newReportTable("Category", "Tasks", "Share")
		for _, c := range s.Categories {
			ct.Row(c.Name, strconv.Itoa(c.Count), fmt.Sprintf("%d%%", c.Percentage))
		}
		fmt.Fprintln(w, ct.Render())
	}
	for _, ach := range s.Achievements {
		fmt.Fprintf(w, "%s %s %s\n", ach.Icon, ach.Title, reportMuted.Render(ach.UnlockedDate))
	}
}
