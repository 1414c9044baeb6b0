package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sadopc/dayzen/internal/server"
	"github.com/sadopc/dayzen/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve summaries over HTTP",
		Long: `Serve the weekly and yearly summaries, achievements and streak as JSON.
Every /api route requires a bearer token issued by "dayzen token".`,
		Example: `  DAYZEN_AUTH_SECRET=change-me-please-now dayzen serve --addr :9090`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireSecret(); err != nil {
				return err
			}
			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			rt, err := a.open(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			codec := session.NewCodec(a.cfg.Auth.Secret, a.cfg.Auth.Issuer)
			srv := server.New(rt.svc, codec, rt.log)
			if err := srv.Run(ctx, a.cfg.Server); err != nil {
				rt.log.Error("api stopped", zap.Error(err))
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}
