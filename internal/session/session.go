// Package session owns one viewer session: the scene, the loaded model
// entries and the control panel bound to them. A session is driven from a
// single UI thread; loads run in the background and are applied by Tick.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/philipparndt/modelview/internal/config"
	"github.com/philipparndt/modelview/internal/logger"
	"github.com/philipparndt/modelview/internal/panel"
	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/loader"
	"github.com/philipparndt/modelview/pkg/scene"
	"github.com/philipparndt/modelview/pkg/watcher"
)

var (
	// ErrEmptyURL is returned when a load is requested without a source
	ErrEmptyURL = errors.New("model url is empty")
	// ErrDisposed is returned by operations on a disposed session
	ErrDisposed = errors.New("session is disposed")
)

// OffsetStep is the horizontal spacing between successively added models
const OffsetStep = 3.0

// Surface is the drawing area a session renders into
type Surface interface {
	Size() (width, height int)
}

// LoadFunc fetches and decodes one source
type LoadFunc func(ctx context.Context, raw string) (*loader.Model, error)

// Option configures a Session
type Option func(*Session)

// WithLogger replaces the default stdout logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithLoadFunc replaces how sources are fetched and decoded
func WithLoadFunc(fn LoadFunc) Option {
	return func(s *Session) {
		s.load = fn
	}
}

// WithLoader loads sources through l
func WithLoader(l *loader.Loader) Option {
	return func(s *Session) {
		s.load = l.Load
	}
}

// WithWatcher reloads local sources when fw reports a change
func WithWatcher(fw *watcher.FileWatcher) Option {
	return func(s *Session) {
		s.watcher = fw
	}
}

type completion struct {
	generation uint64
	raw        string
	name       string
	offset     float64
	reloadID   int
	reload     bool
	model      *loader.Model
	err        error
}

// Session is the live state of one viewer
type Session struct {
	Scene  *scene.Scene
	Panel  *panel.Panel
	Params SceneParams

	cfg     config.Config
	log     *logger.Logger
	load    LoadFunc
	watcher *watcher.FileWatcher

	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	inflight   sync.WaitGroup

	mu          sync.Mutex
	completions []completion
	reloads     []string

	entries        []*Entry
	nextID         int
	pending        int
	loadsRequested int
	lastErr        error

	surface       Surface
	width, height int
	disposed      bool

	models  *panel.Control
	folders []panel.Section
	addForm addModelForm
}

// New creates a session with the default scene described by cfg
func New(cfg config.Config, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		Scene:  scene.New(cfg.SceneOptions()),
		Panel:  panel.New(),
		Params: DefaultSceneParams(cfg),
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Stdout()
	}
	if s.load == nil {
		s.load = loader.New().Load
	}

	s.ApplySceneParams()
	s.bindScene()
	return s
}

// Mount attaches the session to a drawing surface. A nil or zero-sized
// surface is ignored.
func (s *Session) Mount(surface Surface) {
	if s.disposed || surface == nil {
		return
	}
	w, h := surface.Size()
	if w <= 0 || h <= 0 {
		return
	}
	s.surface = surface
	s.Resize(w, h)
}

// Mounted reports whether a surface is attached
func (s *Session) Mounted() bool {
	return s.surface != nil
}

// Resize updates the camera aspect for a new surface size
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.Scene.SetAspect(width, height)
}

// Size returns the last known surface size
func (s *Session) Size() (int, int) {
	return s.width, s.height
}

// Dispose cancels in-flight loads, removes every entry and panel section and
// clears the scene. Further calls do nothing.
func (s *Session) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.cancel()
	s.generation++

	for _, e := range s.entries {
		e.Node.Detach()
		e.Section.Destroy()
		s.unwatch(e)
	}
	s.entries = nil
	for _, f := range s.folders {
		f.Destroy()
	}
	s.folders = nil
	s.Scene.Clear()
	s.pending = 0
	s.surface = nil

	s.mu.Lock()
	s.completions = nil
	s.reloads = nil
	s.mu.Unlock()
}

// Disposed reports whether Dispose has been called
func (s *Session) Disposed() bool {
	return s.disposed
}

// Logger returns the session logger
func (s *Session) Logger() *logger.Logger {
	return s.log
}

// Config returns the configuration the session was created with
func (s *Session) Config() config.Config {
	return s.cfg
}

// Pending returns the number of loads in flight
func (s *Session) Pending() int {
	return s.pending
}

// LastError returns the most recent load diagnostic
func (s *Session) LastError() error {
	return s.lastErr
}

// Entries returns the live entries in load order
func (s *Session) Entries() []*Entry {
	out := make([]*Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entry returns the entry with id, or nil
func (s *Session) Entry(id int) *Entry {
	for _, e := range s.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Add loads raw next to the previously added models
func (s *Session) Add(raw, name string) error {
	offset := OffsetStep * float64(s.loadsRequested)
	if err := s.LoadModel(raw, name, offset); err != nil {
		return err
	}
	s.loadsRequested++
	return nil
}

// LoadModel starts loading raw in the background. The result is attached
// by a later Tick or Drain; name labels the entry and xOffset shifts its
// normalized position along X.
func (s *Session) LoadModel(raw, name string, xOffset float64) error {
	if s.disposed {
		return ErrDisposed
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmptyURL
	}

	s.pending++
	s.log.Printf("Loading %s", raw)
	s.start(completion{raw: raw, name: name, offset: xOffset})
	return nil
}

func (s *Session) start(c completion) {
	c.generation = s.generation
	ctx := s.ctx
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		c.model, c.err = s.load(ctx, c.raw)
		s.post(c)
	}()
}

func (s *Session) post(c completion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completions = append(s.completions, c)
}

// Drain applies every finished load in arrival order
func (s *Session) Drain() {
	s.mu.Lock()
	done := s.completions
	s.completions = nil
	s.mu.Unlock()

	for _, c := range done {
		s.apply(c)
	}
}

// Settle waits for all in-flight loads and applies them
func (s *Session) Settle() {
	s.inflight.Wait()
	s.Drain()
}

func (s *Session) apply(c completion) {
	if s.disposed || c.generation != s.generation || s.ctx.Err() != nil {
		return
	}
	if s.pending > 0 {
		s.pending--
	}

	if c.err != nil {
		s.fail(c.raw, c.err)
		return
	}

	norm, err := loader.Normalize(c.model.Root, c.offset)
	if err != nil {
		s.fail(c.raw, &loader.LoadError{Source: c.raw, Op: "normalize", Err: err})
		return
	}

	if c.reload {
		s.applyReload(c, norm)
		return
	}
	s.addEntry(c, norm)
}

func (s *Session) fail(raw string, err error) {
	s.lastErr = err
	s.log.Printf("Failed to load %s: %v", raw, err)
}

func (s *Session) addEntry(c completion, norm loader.Normalization) {
	root := c.model.Root
	s.Scene.Models.Add(root)

	label := c.name
	if label == "" {
		label = c.model.Name
	}

	e := &Entry{
		ID:   s.nextID,
		Name: fmt.Sprintf("%s %d", label, s.nextID),
		Node: root,
		Params: Params{
			Transform: Transform{
				Position: root.Position,
				Scale:    1,
			},
			RotateSpeed: DefaultRotateSpeed,
			Visible:     true,
			Material:    NeutralMaterial(),
		},
		Source: c.model.Source,
		Offset: c.offset,
		Norm:   norm,
		label:  label,
	}
	s.nextID++

	s.applyMaterial(e)
	s.entries = append(s.entries, e)
	e.Section = s.bindEntry(e)
	s.watch(e)

	s.log.Printf("Loaded %s as %q (scale %.4g)", c.raw, e.Name, norm.Scale)
}

// UpdateTransform applies the entry's position and rotation, then derives
// the scale from the node's bounding box as it is right now. Returns false
// for unknown ids.
func (s *Session) UpdateTransform(id int) bool {
	e := s.Entry(id)
	if e == nil {
		return false
	}
	s.applyTransform(e)
	return true
}

func (s *Session) applyTransform(e *Entry) {
	e.Node.Position = e.Params.Position
	e.Node.Rotation = e.Params.Rotation

	box := scene.BoundsOf(e.Node)
	maxDim := 0.0
	if !box.IsEmpty() {
		maxDim = box.MaxDimension()
	}
	if maxDim <= loader.MinDimension {
		s.log.Printf("Skipping scale update of %q: degenerate bounds", e.Name)
		return
	}
	e.Node.SetUniformScale(loader.TargetSize / maxDim * e.Params.Scale)
}

// UpdateMaterial copies the entry's material parameters onto every standard
// material in its graph
func (s *Session) UpdateMaterial(id int) bool {
	e := s.Entry(id)
	if e == nil {
		return false
	}
	s.applyMaterial(e)
	return true
}

func (s *Session) applyMaterial(e *Entry) {
	e.Node.Traverse(func(n *scene.Node) {
		if n.Mesh == nil {
			return
		}
		if sm, ok := n.Mesh.Material.(*scene.StandardMaterial); ok {
			e.Params.Material.applyTo(sm)
		}
	})
}

// SetVisible shows or hides an entry without touching its transform
func (s *Session) SetVisible(id int, visible bool) bool {
	e := s.Entry(id)
	if e == nil {
		return false
	}
	e.Params.Visible = visible
	e.Node.Visible = visible
	return true
}

// Remove detaches the entry's node, drops the entry and destroys its panel
// section. Unknown ids are ignored.
func (s *Session) Remove(id int) bool {
	for i, e := range s.entries {
		if e.ID != id {
			continue
		}
		e.Node.Detach()
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		e.Section.Destroy()
		s.unwatch(e)
		s.log.Printf("Removed %q", e.Name)
		return true
	}
	return false
}

// Clear removes every entry
func (s *Session) Clear() {
	for _, e := range s.Entries() {
		s.Remove(e.ID)
	}
}

// Tick advances one frame: applies finished loads and queued reloads,
// auto-rotates entries and steps the orbit damping
func (s *Session) Tick() {
	if s.disposed {
		return
	}
	s.Drain()
	s.processReloads()

	for _, e := range s.entries {
		if !e.Params.AutoRotate {
			continue
		}
		e.Node.Rotation.Y += 0.01 * e.Params.RotateSpeed
		e.Params.Rotation.Y = wrapAngle(e.Node.Rotation.Y)
	}

	if s.Scene.Orbit.Update(s.Scene.Camera) {
		s.Params.CameraPosition = s.Scene.Camera.Position
	}
}

// ResetView puts the camera back to its configured pose
func (s *Session) ResetView() {
	s.Params.CameraPosition = s.cfg.Camera.Position
	s.Params.CameraFOV = s.cfg.Camera.FOV
	s.Scene.Orbit.Reset(geometry.Vector3{})
	s.ApplySceneParams()
}

// ApplySceneParams pushes the scene parameters into the live scene objects
func (s *Session) ApplySceneParams() {
	p := s.Params
	sc := s.Scene

	sc.Camera.FOV = p.CameraFOV
	sc.Camera.Position = p.CameraPosition

	sc.Ambient.Color = p.AmbientColor
	sc.Ambient.Intensity = p.AmbientIntensity

	sc.Directional.Color = p.DirectionalColor
	sc.Directional.Intensity = p.DirectionalIntensity
	sc.Directional.Position = p.DirectionalPosition

	sc.Point.Color = p.PointColor
	sc.Point.Intensity = p.PointIntensity
	sc.Point.Position = p.PointPosition
	sc.Point.Distance = p.PointDistance

	sc.Background = p.Background
	sc.Grid.Visible = p.ShowGrid
	sc.Axes.Visible = p.ShowAxes
	sc.Ground.Visible = p.ShowGround
	sc.Wireframe = p.Wireframe
}
