// Package cmd holds the cobra command tree of the modelview binary
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/modelview/internal/config"
	"github.com/philipparndt/modelview/internal/logger"
	"github.com/philipparndt/modelview/internal/session"
	"github.com/philipparndt/modelview/pkg/loader"
	"github.com/philipparndt/modelview/pkg/watcher"
	"github.com/philipparndt/modelview/version"
)

var (
	configPath string
	watchFlag  bool
	fpsFlag    int
	presetFlag []string
)

var rootCmd = &cobra.Command{
	Use:   "modelview",
	Short: "Interactive 3D model viewer",
	Long: `modelview loads STL, glTF/GLB and OpenSCAD models from files or URLs,
normalizes them to a common size and shows them in a lit scene with a
control panel for transforms, materials, lights and camera.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&watchFlag, "watch", "w", false, "reload local models when their files change")
	rootCmd.PersistentFlags().IntVar(&fpsFlag, "fps", 0, "target frame rate (overrides the config)")
	rootCmd.PersistentFlags().StringSliceVarP(&presetFlag, "preset", "p", nil, "load a configured preset by name (repeatable)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads --config and applies the flag overrides
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = watchFlag
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fpsFlag
	}
	return cfg, cfg.Validate()
}

// newSession builds a session for the interactive commands and queues the
// named presets followed by the given sources. The returned cleanup stops the
// file watcher.
func newSession(cfg config.Config, presets, sources []string) (*session.Session, func(), error) {
	var queued []config.Preset
	for _, name := range presets {
		p, ok := cfg.Preset(name)
		if !ok {
			return nil, func() {}, fmt.Errorf("unknown preset %q", name)
		}
		queued = append(queued, p)
	}
	for _, src := range sources {
		queued = append(queued, config.Preset{URL: src})
	}

	log := logger.Stdout()
	opts := []session.Option{
		session.WithLogger(log),
		session.WithLoader(loader.New()),
	}

	cleanup := func() {}
	if cfg.Watch {
		fw, err := watcher.NewFileWatcher(cfg.WatchDebounce)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to start file watcher: %w", err)
		}
		fw.OnError(func(err error) {
			log.Printf("Watcher error: %v", err)
		})
		fw.Start()
		opts = append(opts, session.WithWatcher(fw))
		cleanup = func() {
			if err := fw.Close(); err != nil {
				log.Printf("Failed to close watcher: %v", err)
			}
		}
	}

	s := session.New(cfg, opts...)
	for _, p := range queued {
		if err := s.Add(p.URL, p.Name); err != nil {
			cleanup()
			return nil, func() {}, err
		}
	}
	return s, cleanup, nil
}
