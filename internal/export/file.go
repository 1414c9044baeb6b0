package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sadopc/dayzen/internal/summary"
)

// Kind names which summary is exported.
type Kind string

const (
	Weekly Kind = "weekly"
	Yearly Kind = "yearly"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Weekly, Yearly:
		return k, nil
	}
	return "", fmt.Errorf("unknown export type %q (want weekly or yearly)", s)
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON:
		return f, nil
	case "":
		return CSV, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv or json)", s)
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	if f == JSON {
		return "application/json"
	}
	return "text/csv"
}

// Filename is the default file name for an export of sum.
func Filename(format Format, sum any) string {
	switch s := sum.(type) {
	case *summary.WeeklySummary:
		return fmt.Sprintf("dayzen-weekly-%s.%s", s.WeekRange.Start.Format("2006-01-02"), format)
	case *summary.YearlySummary:
		return fmt.Sprintf("dayzen-yearly-%d.%s", s.Year, format)
	}
	return "dayzen-export." + string(format)
}

// Write encodes sum, a *summary.WeeklySummary or *summary.YearlySummary, in format.
func Write(w io.Writer, format Format, sum any) error {
	switch s := sum.(type) {
	case *summary.WeeklySummary:
		if format == JSON {
			return WeeklyJSON(w, s)
		}
		return WeeklyCSV(w, s)
	case *summary.YearlySummary:
		if format == JSON {
			return YearlyJSON(w, s)
		}
		return YearlyCSV(w, s)
	}
	return fmt.Errorf("cannot export %T", sum)
}

// WriteFile writes sum to path, creating parent directories.
func WriteFile(path string, format Format, sum any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s file: %w", format, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := Write(bw, format, sum); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s file: %w", format, err)
	}
	return f.Close()
}
