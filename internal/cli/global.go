package cli

import (
	"os"
	"time"

	"github.com/peeringlatam/network-planner/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const tokenEnvKey = "PLANNER_TOKEN"

type GlobalOptions struct {
	ServerUrl string
	Token     string
	Timeout   time.Duration
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ServerUrl: "http://localhost:3443",
		Token:     os.Getenv(tokenEnvKey),
		Timeout:   30 * time.Second,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerUrl, "server-url", "u", o.ServerUrl, "Address of the server")
	fs.StringVar(&o.Token, "token", o.Token, "Bearer token sent to the server (env "+tokenEnvKey+")")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Timeout of each request")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	return nil
}

func (o *GlobalOptions) Client() *client.PlannerClient {
	var opts []client.Option
	if o.Token != "" {
		opts = append(opts, client.WithToken(o.Token))
	}
	return client.NewPlannerClient(o.ServerUrl, o.Timeout, opts...)
}
