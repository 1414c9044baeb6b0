package cli

import (
	"fmt"
	"time"

	"github.com/sadopc/dayzen/internal/export"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newExportCmd() *cobra.Command {
	var (
		format string
		offset int
		year   int
		output string
	)
	cmd := &cobra.Command{
		Use:       "export weekly|yearly",
		Short:     "Export a summary as CSV or JSON",
		ValidArgs: []string{string(export.Weekly), string(export.Yearly)},
		Example: `  dayzen export weekly --offset -1
  dayzen export yearly --year 2025 --format json -o review.json
  dayzen export weekly -o - | column -s, -t`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := export.ParseKind(args[0])
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			rt, err := a.open(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			var sum any
			switch kind {
			case export.Weekly:
				sum, err = rt.svc.Weekly(cmd.Context(), a.localSession(), offset)
			case export.Yearly:
				if year == 0 {
					year = time.Now().In(rt.loc).Year()
				}
				sum, err = rt.svc.Yearly(cmd.Context(), a.localSession(), year)
			}
			if err != nil {
				return err
			}

			if output == "-" {
				return export.Write(cmd.OutOrStdout(), f, sum)
			}
			if output == "" {
				output = export.Filename(f, sum)
			}
			if err := export.WriteFile(output, f, sum); err != nil {
				return err
			}
			rt.log.Debug("summary exported", zap.String("kind", string(kind)), zap.String("path", output))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s summary to %s\n", kind, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or json")
	cmd.Flags().IntVar(&offset, "offset", 0, "weeks from the current one (weekly only)")
	cmd.Flags().IntVar(&year, "year", 0, "calendar year (yearly only, default is the current year)")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("-" for stdout, default is a name derived from the period)`)
	return cmd
}
