package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/modelview/internal/config"
	"github.com/philipparndt/modelview/internal/logger"
	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/loader"
	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/watcher"
)

func TestDisposeDropsInFlightLoads(t *testing.T) {
	m := newMemLoader()
	m.set("a.stl", boxModel(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1)))
	m.gate = make(chan struct{})
	s := newTestSession(t, m)

	require.NoError(t, s.Add("a.stl", ""))
	s.Dispose()
	close(m.gate)
	s.Settle()

	assert.Empty(t, s.Entries())
	assert.Empty(t, s.Scene.Models.Children())
	assert.Empty(t, s.Panel.Root().Children())
	assert.Nil(t, s.LastError(), "dropped completions do not touch session state")
	assert.ErrorIs(t, s.LoadModel("a.stl", "", 0), ErrDisposed)

	s.Dispose()
	assert.True(t, s.Disposed())
}

func TestDisposeRemovesEntries(t *testing.T) {
	m := newMemLoader()
	m.set("a.stl", boxModel(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1)))
	s := newTestSession(t, m)
	s.Mount(fixedSurface{640, 480})
	require.NoError(t, s.Add("a.stl", ""))
	s.Settle()
	e := s.Entries()[0]

	s.Dispose()

	assert.False(t, s.Mounted())
	assert.Nil(t, e.Node.Parent())
	assert.Empty(t, s.Panel.Root().Children())
	assert.Equal(t, 0, s.Pending())
}

func TestReloadKeepsIDAndParams(t *testing.T) {
	m := newMemLoader()
	m.set("part.stl", boxModel(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1)))
	s := newTestSession(t, m)
	require.NoError(t, s.Add("part.stl", "Part"))
	s.Settle()
	e := s.Entries()[0]
	oldNode := e.Node

	folder := entryFolder(t, s, e.Name)
	control(t, folder, "Position X").SetFloat(4)
	control(t, folder, "Rotation Y").SetFloat(1)
	control(t, folder, "Scale").SetFloat(1.5)
	control(t, folder, "Roughness").SetFloat(0.2)
	control(t, folder, "Visible").SetBool(false)
	params := e.Params

	m.set("part.stl", boxModel(geometry.NewVector3(0, 0, 0), geometry.NewVector3(10, 5, 5)))
	require.True(t, s.Reload(e.ID))
	assert.Equal(t, 1, s.Pending())
	s.Settle()

	require.Len(t, s.Entries(), 1)
	assert.Same(t, e, s.Entry(e.ID))
	assert.Equal(t, params, e.Params)
	assert.NotSame(t, oldNode, e.Node)
	assert.Nil(t, oldNode.Parent())
	assert.True(t, s.Scene.Root.Contains(e.Node))

	assert.Equal(t, 4.0, e.Node.Position.X)
	assert.Equal(t, 1.0, e.Node.Rotation.Y)
	assert.False(t, e.Node.Visible)
	assert.InDelta(t, e.Norm.Scale*e.Params.Scale, e.Node.Scale.X, 1e-12)
	assert.InDelta(t, 0.2, e.Norm.Scale, 1e-12)

	e.Node.Traverse(func(n *scene.Node) {
		if n.Mesh != nil {
			assert.InDelta(t, 0.2, n.Mesh.Material.(*scene.StandardMaterial).Roughness, 1e-12)
		}
	})

	assert.False(t, s.Reload(99))
}

func TestReloadOfRemovedEntryIsDropped(t *testing.T) {
	m := newMemLoader()
	m.set("a.stl", boxModel(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1)))
	s := newTestSession(t, m)
	require.NoError(t, s.Add("a.stl", ""))
	s.Settle()
	id := s.Entries()[0].ID

	m.gate = make(chan struct{})
	require.True(t, s.Reload(id))
	s.Remove(id)
	close(m.gate)
	s.Settle()

	assert.Empty(t, s.Entries())
	assert.Empty(t, s.Scene.Models.Children())
	assert.Equal(t, 0, s.Pending())
}

func writeBoxSTL(t *testing.T, path string, size float64) {
	t.Helper()
	g := scene.BoxGeometry(size, size, size)
	var b strings.Builder
	b.WriteString("solid box\n")
	for i := 0; i < g.TriangleCount(); i++ {
		tri := g.Triangle(i)
		b.WriteString("facet normal 0 0 0\nouter loop\n")
		for _, v := range []geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			b.WriteString("vertex " + ftoa(v.X) + " " + ftoa(v.Y) + " " + ftoa(v.Z) + "\n")
		}
		b.WriteString("endloop\nendfacet\n")
	}
	b.WriteString("endsolid box\n")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
}

func TestWatchedFileReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.stl")
	writeBoxSTL(t, path, 1)

	fw, err := watcher.NewFileWatcher(20 * time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()
	fw.Start()

	s := New(config.Default(), WithLoader(loader.New()), WithWatcher(fw), WithLogger(logger.Discard()))
	defer s.Dispose()

	require.NoError(t, s.Add(path, ""))
	s.Settle()
	require.Len(t, s.Entries(), 1)
	e := s.Entries()[0]
	assert.True(t, fw.Watched(path))
	assert.InDelta(t, 2.0, e.Norm.Scale, 1e-9)

	writeBoxSTL(t, path, 4)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) && e.Norm.Size.X < 3 {
		s.Tick()
		s.Settle()
		time.Sleep(10 * time.Millisecond)
	}
	assert.InDelta(t, 4.0, e.Norm.Size.X, 1e-9)
	assert.InDelta(t, 0.5, e.Norm.Scale, 1e-9)
	assert.Equal(t, 0, e.ID)

	s.Remove(e.ID)
	assert.False(t, fw.Watched(path))
}
