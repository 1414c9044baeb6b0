package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/dayzen/internal/tui"
	"github.com/spf13/cobra"
)

func (a *app) runTUI(cmd *cobra.Command, args []string) error {
	rt, err := a.open(true)
	if err != nil {
		return err
	}
	defer rt.Close()

	exportDir, err := os.UserHomeDir()
	if err != nil {
		exportDir = "."
	}

	m := tui.NewApp(tui.Options{
		Store:      rt.store,
		Summaries:  rt.svc,
		Log:        rt.log,
		SessionTTL: a.cfg.Auth.TTL,
		User:       localUser(),
		ExportDir:  exportDir,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
