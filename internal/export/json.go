package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sadopc/dayzen/internal/summary"
)

// now stamps exported documents.
var now = time.Now

type weeklyExport struct {
	ExportedAt string `json:"exported_at"`
	Type       string `json:"type"`
	*summary.WeeklySummary
}

type yearlyExport struct {
	ExportedAt string `json:"exported_at"`
	Type       string `json:"type"`
	*summary.YearlySummary
}

func WeeklyJSON(w io.Writer, s *summary.WeeklySummary) error {
	return writeJSON(w, weeklyExport{ExportedAt: stamp(), Type: string(Weekly), WeeklySummary: s})
}

func YearlyJSON(w io.Writer, s *summary.YearlySummary) error {
	return writeJSON(w, yearlyExport{ExportedAt: stamp(), Type: string(Yearly), YearlySummary: s})
}

func stamp() string {
	return now().UTC().Format(time.RFC3339)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return nil
}
