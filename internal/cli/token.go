package cli

import (
	"fmt"
	"time"

	"github.com/peeringlatam/network-planner/internal/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type tokenOptions struct {
	Secret   string
	Username string
	Email    string
	TTL      time.Duration
}

func (o *tokenOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Secret, "secret", "", "shared secret of the server (PLANNER_LOCAL_SECRET)")
	fs.StringVar(&o.Username, "username", "", "username")
	fs.StringVar(&o.Email, "email", "", "email the appointment confirmations are sent to")
	fs.DurationVar(&o.TTL, "ttl", 24*time.Hour, "validity of the token")
}

// NewCmdToken issues tokens for servers running with PLANNER_AUTH=local.
func NewCmdToken() *cobra.Command {
	o := &tokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Generate a jwt for a server using local authentication",
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.Username == "" {
				return fmt.Errorf("--username is required")
			}

			authenticator, err := auth.NewLocalAuthenticator(o.Secret)
			if err != nil {
				return err
			}

			token, err := authenticator.IssueToken(o.Username, o.Email, o.TTL)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}
