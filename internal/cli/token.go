package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/dayzen/internal/session"
	"github.com/spf13/cobra"
)

func (a *app) newTokenCmd() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API session token",
		Example: `  TOKEN=$(dayzen token --user ada)
  curl -H "Authorization: Bearer $TOKEN" localhost:8080/api/summaries/weekly`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.RequireSecret(); err != nil {
				return err
			}
			user = strings.TrimSpace(user)
			if user == "" {
				return fmt.Errorf("--user must not be empty")
			}

			sess := session.New(user, a.cfg.Auth.TTL, time.Now())
			tok, err := session.NewCodec(a.cfg.Auth.Secret, a.cfg.Auth.Issuer).Encode(sess)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			if a.verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "session %s for %s expires %s\n",
					sess.ID, sess.User, sess.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", localUser(), "user the token is issued to")
	return cmd
}
