// Package config loads viewer settings from a YAML file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

// Window is the initial window geometry
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Camera is the initial camera
type Camera struct {
	FOV      float64          `yaml:"fov"`
	Position geometry.Vector3 `yaml:"position"`
}

// Light is a colored light with an optional position
type Light struct {
	Color     scene.Color      `yaml:"color"`
	Intensity float64          `yaml:"intensity"`
	Position  geometry.Vector3 `yaml:"position"`
}

// Lights holds the three scene lights
type Lights struct {
	Ambient     Light `yaml:"ambient"`
	Directional Light `yaml:"directional"`
	Point       Light `yaml:"point"`
}

// Preset is a named model offered in the Add Model selector
type Preset struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Config is the complete viewer configuration
type Config struct {
	Window        Window        `yaml:"window"`
	FPS           int           `yaml:"fps"`
	Camera        Camera        `yaml:"camera"`
	Lights        Lights        `yaml:"lights"`
	Background    scene.Color   `yaml:"background"`
	Presets       []Preset      `yaml:"presets"`
	Watch         bool          `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Window: Window{Title: "modelview", Width: 1280, Height: 800},
		FPS:    60,
		Camera: Camera{FOV: 75, Position: geometry.NewVector3(0, 5, 10)},
		Lights: Lights{
			Ambient:     Light{Color: scene.White, Intensity: 0.5},
			Directional: Light{Color: scene.White, Intensity: 1, Position: geometry.NewVector3(5, 10, 7.5)},
			Point:       Light{Color: scene.White, Intensity: 1, Position: geometry.NewVector3(-5, 5, 5)},
		},
		Background: scene.Hex(0xf0f0f0),
		Presets: []Preset{
			{Name: "Soldier", URL: "https://threejs.org/examples/models/gltf/Soldier.glb"},
			{Name: "Horse", URL: "https://threejs.org/examples/models/gltf/Horse.glb"},
			{Name: "Flamingo", URL: "https://threejs.org/examples/models/gltf/Flamingo.glb"},
			{Name: "Robot", URL: "https://threejs.org/examples/models/gltf/RobotExpressive/RobotExpressive.glb"},
		},
		WatchDebounce: 300 * time.Millisecond,
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges the viewer depends on
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.FPS < 0:
		return fmt.Errorf("fps must not be negative, got %d", c.FPS)
	case c.Camera.FOV < 20 || c.Camera.FOV > 120:
		return fmt.Errorf("camera fov must be within [20,120], got %g", c.Camera.FOV)
	case c.WatchDebounce < 0:
		return fmt.Errorf("watch_debounce must not be negative")
	}
	for i, p := range c.Presets {
		if p.Name == "" || p.URL == "" {
			return fmt.Errorf("preset %d needs a name and a url", i)
		}
	}
	return nil
}

// Preset returns the preset called name
func (c Config) Preset(name string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// SceneOptions converts the camera and background settings for scene.New
func (c Config) SceneOptions() scene.Options {
	return scene.Options{
		FOV:            c.Camera.FOV,
		CameraPosition: c.Camera.Position,
		Background:     c.Background,
	}
}
