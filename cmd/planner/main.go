package main

import (
	"os"

	"github.com/peeringlatam/network-planner/internal/cli"
	"github.com/spf13/cobra"
)

func main() {
	command := NewPlannerCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewPlannerCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "planner [flags] [options]",
		Short: "planner estimates network improvements and queries the Network Planner service.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdSimulate())
	cmd.AddCommand(cli.NewCmdGet())
	cmd.AddCommand(cli.NewCmdToken())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
