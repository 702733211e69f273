package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/modelview/pkg/loader"
)

// A 4 x 1 x 1 wedge: two triangles on the bottom and one on the end
const wedgeSTL = `solid wedge
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 4 0 0
      vertex 4 0 1
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 4 0 1
      vertex 0 0 1
    endloop
  endfacet
  facet normal 1 0 0
    outer loop
      vertex 4 0 0
      vertex 4 1 0
      vertex 4 0 1
    endloop
  endfacet
endsolid wedge
`

func writeModel(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInspect(t *testing.T) {
	a := writeModel(t, "a.stl", wedgeSTL)
	b := writeModel(t, "b.stl", wedgeSTL)

	reports, err := inspect(context.Background(), loader.New(), []string{a, b})
	require.NoError(t, err)
	require.Len(t, reports, 2)

	for i, r := range reports {
		assert.Equal(t, []string{a, b}[i], r.Source, "reports keep argument order")
		assert.Equal(t, 3, r.Stats.TriangleCount)
		assert.InDelta(t, 4.0, r.Stats.Dimensions.X, 1e-9)
		assert.InDelta(t, 0.5, r.Scale, 1e-9)
	}
}

func TestInspectFailsOnMissingFile(t *testing.T) {
	good := writeModel(t, "good.stl", wedgeSTL)
	_, err := inspect(context.Background(), loader.New(), []string{good, filepath.Join(t.TempDir(), "missing.stl")})
	require.Error(t, err)
	assert.True(t, loader.IsNotFound(err))
}

func TestReportWrite(t *testing.T) {
	path := writeModel(t, "wedge.stl", wedgeSTL)
	reports, err := inspect(context.Background(), loader.New(), []string{path})
	require.NoError(t, err)

	var out bytes.Buffer
	reports[0].write(&out, 2)
	text := out.String()

	assert.Contains(t, text, "Name: wedge")
	assert.Contains(t, text, "Triangles: 3")
	assert.Contains(t, text, "Viewer Scale: 0.500000")
	assert.Contains(t, text, "Longest 2 Edges:")
}
