package cmd

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/modelview/pkg/viewer"
)

var guiCmd = &cobra.Command{
	Use:   "gui [model...]",
	Short: "Open the widget viewer (fyne, software rendered)",
	Long: `Open the fyne viewer: a software-rendered preview next to native
widgets for every control. Useful where no OpenGL 3.3 context is available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, cleanup, err := newSession(cfg, presetFlag, args)
		if err != nil {
			return err
		}
		defer cleanup()

		viewer.Run(s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(guiCmd)
}
