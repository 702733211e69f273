package cmd

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/modelview/internal/app"
)

var viewCmd = &cobra.Command{
	Use:   "view [model...]",
	Short: "Open the GPU viewer (raylib)",
	Long: `Open the raylib viewer with lighting and shadows. Every argument is a
local path, file:// URL or http(s) URL and is loaded side by side.`,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	// Running the binary without a subcommand opens the viewer
	rootCmd.Args = cobra.ArbitraryArgs
	rootCmd.RunE = runView
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, cleanup, err := newSession(cfg, presetFlag, args)
	if err != nil {
		return err
	}
	defer cleanup()

	app.Run(s)
	return nil
}
