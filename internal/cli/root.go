// Package cli wires configuration, storage and the summary service into the
// dayzen commands.
package cli

import (
	"os"

	"github.com/sadopc/dayzen/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is the application version.
var version = "0.3.0"

// app holds the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	cfg     *config.Config
}

// Execute runs the root command. It is called by main.main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree with a fresh configuration.
func NewRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "dayzen",
		Short: "Plan the day, focus, and look back on your week and year.",
		Long: `dayzen is a daily planner with a pomodoro timer and weekly and yearly
reviews. Run it without arguments to open the terminal dashboard, or use the
subcommands to print and export summaries and to serve them over HTTP.`,
		Version:      version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
		RunE: a.runTUI,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is <config dir>/dayzen/config.yaml or ./config.yaml)")
	pf.String("db", "", "path to the SQLite database")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	_ = a.v.BindPFlag("db.path", pf.Lookup("db"))

	root.AddCommand(
		a.newServeCmd(),
		a.newWeeklyCmd(),
		a.newYearlyCmd(),
		a.newExportCmd(),
		a.newTokenCmd(),
		a.newSeedCmd(),
	)
	return root
}

func (a *app) loadConfig() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg
	return nil
}
