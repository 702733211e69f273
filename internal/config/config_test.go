package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modelview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
fps: 30
camera:
  fov: 50
  position: {x: 1, y: 2, z: 3}
background: navy
lights:
  point:
    color: "#ff8800"
    intensity: 2
presets:
  - name: Cube
    url: models/cube.stl
watch: true
watch_debounce: 1s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, 50.0, cfg.Camera.FOV)
	assert.Equal(t, geometry.NewVector3(1, 2, 3), cfg.Camera.Position)
	assert.Equal(t, "#000080", cfg.Background.String())
	assert.Equal(t, "#ff8800", cfg.Lights.Point.Color.String())
	assert.Equal(t, 2.0, cfg.Lights.Point.Intensity)
	assert.True(t, cfg.Watch)
	assert.Equal(t, time.Second, cfg.WatchDebounce)

	// Untouched sections keep their defaults
	assert.Equal(t, Default().Window, cfg.Window)
	assert.Equal(t, Default().Lights.Ambient, cfg.Lights.Ambient)

	p, ok := cfg.Preset("Cube")
	require.True(t, ok)
	assert.Equal(t, "models/cube.stl", p.URL)
	_, ok = cfg.Preset("Soldier")
	assert.False(t, ok, "a presets list replaces the defaults")
}

func TestLoadWindowTitle(t *testing.T) {
	cfg, err := Load(writeConfig(t, "window: {title: Parts Bin, width: 640, height: 480}"))
	require.NoError(t, err)
	assert.Equal(t, Window{Title: "Parts Bin", Width: 640, Height: 480}, cfg.Window)
	assert.Equal(t, "modelview", Default().Window.Title)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "fps: [",
		"bad color":    "background: notacolor",
		"fov range":    "camera: {fov: 200}",
		"window size":  "window: {width: 0}",
		"empty preset": "presets: [{name: x}]",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestDefaultSceneOptions(t *testing.T) {
	opts := Default().SceneOptions()
	assert.Equal(t, 75.0, opts.FOV)
	assert.Equal(t, geometry.NewVector3(0, 5, 10), opts.CameraPosition)
	assert.Equal(t, scene.Hex(0xf0f0f0), opts.Background)
	require.NoError(t, Default().Validate())
}
