package session

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/philipparndt/modelview/internal/config"
	"github.com/philipparndt/modelview/internal/logger"
	"github.com/philipparndt/modelview/internal/panel"
	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/loader"
	"github.com/philipparndt/modelview/pkg/scene"
)

// memLoader serves models built in memory
type memLoader struct {
	mu     sync.Mutex
	assets map[string]func() *scene.Node
	gate   chan struct{}
	gates  map[string]chan struct{}
}

func newMemLoader() *memLoader {
	return &memLoader{assets: make(map[string]func() *scene.Node)}
}

func (m *memLoader) set(raw string, build func() *scene.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[raw] = build
}

func (m *memLoader) Load(ctx context.Context, raw string) (*loader.Model, error) {
	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return nil, &loader.LoadError{Source: raw, Op: "fetch", Err: ctx.Err()}
		}
	}
	if gate, ok := m.gates[raw]; ok {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, &loader.LoadError{Source: raw, Op: "fetch", Err: ctx.Err()}
		}
	}

	m.mu.Lock()
	build, ok := m.assets[raw]
	m.mu.Unlock()
	if !ok {
		return nil, &loader.LoadError{Source: raw, Op: "fetch", Err: loader.ErrNotFound}
	}

	src, err := loader.ParseSource(raw)
	if err != nil {
		return nil, err
	}
	return &loader.Model{Name: src.BaseName(), Source: src, Root: build()}, nil
}

// boxModel builds a root with one box mesh spanning min..max that carries a
// baked blue material
func boxModel(min, max geometry.Vector3) func() *scene.Node {
	return func() *scene.Node {
		size := max.Sub(min)
		mesh := scene.NewMesh(
			scene.BoxGeometry(size.X, size.Y, size.Z),
			&scene.StandardMaterial{Color: scene.Hex(0x0000ff), Roughness: 0.9, Metalness: 1},
		)
		child := scene.NewMeshNode("mesh", mesh)
		child.Position = min.Add(max).Mul(0.5)

		root := scene.NewNode("model")
		root.Add(child)
		return root
	}
}

type fixedSurface struct{ w, h int }

func (f fixedSurface) Size() (int, int) { return f.w, f.h }

func newTestSession(t *testing.T, m *memLoader, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithLoadFunc(m.Load), WithLogger(logger.Discard())}, opts...)
	s := New(config.Default(), opts...)
	t.Cleanup(s.Dispose)
	return s
}

func entryFolder(t *testing.T, s *Session, name string) *panel.Control {
	t.Helper()
	models := s.Panel.Root().Find(FolderModels)
	require.NotNil(t, models)
	f := models.Find(name)
	require.NotNil(t, f, "no panel section %q", name)
	return f
}

func control(t *testing.T, folder *panel.Control, label string) *panel.Control {
	t.Helper()
	c := folder.Lookup(label)
	require.NotNil(t, c, "no control %q in %q", label, folder.Label)
	return c
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
