package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/modelview/internal/config"
)

func TestNewSessionQueuesPresets(t *testing.T) {
	cfg := config.Default()
	cfg.Presets = []config.Preset{{Name: "Wedge", URL: writeModel(t, "wedge.stl", wedgeSTL)}}

	s, cleanup, err := newSession(cfg, []string{"Wedge"}, nil)
	require.NoError(t, err)
	defer cleanup()
	defer s.Dispose()

	s.Settle()
	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Wedge 0", entries[0].Name)
}

func TestNewSessionRejectsUnknownPreset(t *testing.T) {
	_, _, err := newSession(config.Default(), []string{"Nope"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown preset "Nope"`)
}
