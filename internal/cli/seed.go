package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newSeedCmd() *cobra.Command {
	var (
		days int
		seed int64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with sample history",
		Long:  `Generate tasks, focus sessions and achievements for the past days. Meant for demos and development databases.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			rt, err := a.open(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))
			if err := rt.store.Seed(cmd.Context(), days, rng, rt.loc); err != nil {
				return err
			}
			rt.log.Info("database seeded", zap.Int("days", days), zap.Int64("seed", seed))
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d days of history into %s\n", days, a.cfg.DB.Path)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 90, "number of days to generate, today included")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	return cmd
}
