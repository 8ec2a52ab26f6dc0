package cmd

import (
	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Lists the environment variables roundtrip reads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return usage(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}
