package main

import "github.com/spf13/cobra"

var (
	migrationFolder string
)

var rootCmd = &cobra.Command{
	Use:          "planner-api",
	Short:        "Network planner API server",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(seedCmd)

	rootCmd.PersistentFlags().StringVar(&migrationFolder, "migrations", "", "Folder of SQL migrations, defaults to the embedded ones")
}
