package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/modelview/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "modelview", version.GetFullVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
