package session

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/philipparndt/modelview/internal/panel"
	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

// Folder titles in panel order
const (
	FolderAddModel = "Add Model"
	FolderModels   = "Models"
	FolderCamera   = "Camera"
	FolderLights   = "Lights"
	FolderScene    = "Scene"
)

// EmptyURLPrompt is shown when Load is pressed without a URL
const EmptyURLPrompt = "Please enter a model URL"

type addModelForm struct {
	Preset int
	URL    string
	Name   string
}

func (s *Session) bindScene() {
	root := s.Panel.Root()

	add, addSection := root.Section(FolderAddModel)
	models, modelsSection := root.Section(FolderModels)
	camera, cameraSection := root.Section(FolderCamera)
	lights, lightsSection := root.Section(FolderLights)
	scn, sceneSection := root.Section(FolderScene)
	s.models = models
	s.folders = []panel.Section{addSection, modelsSection, cameraSection, lightsSection, sceneSection}

	s.bindAddModel(add)
	s.bindCamera(camera)
	s.bindLights(lights)
	s.bindSceneFolder(scn)
}

func (s *Session) bindAddModel(f *panel.Control) {
	if len(s.cfg.Presets) > 0 {
		names := make([]string, len(s.cfg.Presets))
		for i, p := range s.cfg.Presets {
			names[i] = p.Name
		}
		f.Select("Preset", names,
			func() int { return s.addForm.Preset },
			func(i int) { s.addForm.Preset = i })
		f.Button("Load Preset", func() { _ = s.LoadPreset(s.addForm.Preset) })
	}

	f.Text("URL", func() string { return s.addForm.URL }, func(v string) { s.addForm.URL = v })
	f.Text("Name", func() string { return s.addForm.Name }, func(v string) { s.addForm.Name = v })
	f.Button("Load", func() { _ = s.LoadCustom() })
	f.Info("Pending", func() string { return strconv.Itoa(s.pending) })
	f.Info("Last Error", func() string {
		if s.lastErr == nil {
			return ""
		}
		return s.lastErr.Error()
	})
}

// LoadPreset adds the configured preset at index i
func (s *Session) LoadPreset(i int) error {
	if i < 0 || i >= len(s.cfg.Presets) {
		return fmt.Errorf("preset %d out of range", i)
	}
	p := s.cfg.Presets[i]
	return s.Add(p.URL, p.Name)
}

// LoadCustom adds the model typed into the Add Model folder. An empty URL
// raises a prompt instead of loading.
func (s *Session) LoadCustom() error {
	err := s.Add(s.addForm.URL, s.addForm.Name)
	if errors.Is(err, ErrEmptyURL) {
		s.Panel.Prompt(EmptyURLPrompt)
	}
	return err
}

func (s *Session) bindEntry(e *Entry) panel.Section {
	f, section := s.models.Section(e.Name)
	id := e.ID
	p := &e.Params

	transform := func() { s.UpdateTransform(id) }
	material := func() { s.UpdateMaterial(id) }

	vectorSliders(f, "Position", -10, 10, &p.Position, transform)
	vectorSliders(f, "Rotation", 0, 2*math.Pi, &p.Rotation, transform)
	f.Slider("Scale", 0.1, 3, 0.01, getter(&p.Scale), func(v float64) {
		p.Scale = v
		transform()
	})

	f.Toggle("Auto Rotate", func() bool { return p.AutoRotate }, func(v bool) { p.AutoRotate = v })
	f.Slider("Rotate Speed", 0.1, 5, 0.1, getter(&p.RotateSpeed), func(v float64) { p.RotateSpeed = v })
	f.Toggle("Visible", func() bool { return p.Visible }, func(v bool) { s.SetVisible(id, v) })

	f.Color("Color", colorGetter(&p.Material.Color), colorSetter(&p.Material.Color, material))
	f.Slider("Roughness", 0, 1, 0.01, getter(&p.Material.Roughness), setter(&p.Material.Roughness, material))
	f.Slider("Metalness", 0, 1, 0.01, getter(&p.Material.Metalness), setter(&p.Material.Metalness, material))
	f.Color("Emissive", colorGetter(&p.Material.Emissive), colorSetter(&p.Material.Emissive, material))
	f.Slider("Emissive Intensity", 0, 2, 0.01, getter(&p.Material.EmissiveIntensity), setter(&p.Material.EmissiveIntensity, material))

	f.Button("Remove", func() { s.Remove(id) })
	return section
}

func (s *Session) bindCamera(f *panel.Control) {
	p := &s.Params
	apply := s.ApplySceneParams

	f.Slider("FOV", 20, 120, 1, getter(&p.CameraFOV), setter(&p.CameraFOV, apply))
	vectorSliders(f, "Position", -50, 50, &p.CameraPosition, apply)
	f.Button("Reset View", s.ResetView)
}

func (s *Session) bindLights(f *panel.Control) {
	p := &s.Params
	apply := s.ApplySceneParams

	f.Color("Ambient Color", colorGetter(&p.AmbientColor), colorSetter(&p.AmbientColor, apply))
	f.Slider("Ambient Intensity", 0, 2, 0.01, getter(&p.AmbientIntensity), setter(&p.AmbientIntensity, apply))

	f.Color("Directional Color", colorGetter(&p.DirectionalColor), colorSetter(&p.DirectionalColor, apply))
	f.Slider("Directional Intensity", 0, 5, 0.01, getter(&p.DirectionalIntensity), setter(&p.DirectionalIntensity, apply))
	vectorSliders(f, "Directional", -20, 20, &p.DirectionalPosition, apply)

	f.Color("Point Color", colorGetter(&p.PointColor), colorSetter(&p.PointColor, apply))
	f.Slider("Point Intensity", 0, 5, 0.01, getter(&p.PointIntensity), setter(&p.PointIntensity, apply))
	vectorSliders(f, "Point", -20, 20, &p.PointPosition, apply)
}

func (s *Session) bindSceneFolder(f *panel.Control) {
	p := &s.Params
	apply := s.ApplySceneParams

	f.Color("Background", colorGetter(&p.Background), colorSetter(&p.Background, apply))
	f.Toggle("Grid", boolGetter(&p.ShowGrid), boolSetter(&p.ShowGrid, apply))
	f.Toggle("Axes", boolGetter(&p.ShowAxes), boolSetter(&p.ShowAxes, apply))
	f.Toggle("Ground", boolGetter(&p.ShowGround), boolSetter(&p.ShowGround, apply))
	f.Toggle("Wireframe", boolGetter(&p.Wireframe), boolSetter(&p.Wireframe, apply))
	f.Button("Clear All", s.Clear)
	f.Info("Models", func() string { return strconv.Itoa(len(s.entries)) })
	f.Info("Log", s.log.Last)
}

func vectorSliders(f *panel.Control, prefix string, min, max float64, v *geometry.Vector3, changed func()) {
	f.Slider(prefix+" X", min, max, 0, getter(&v.X), setter(&v.X, changed))
	f.Slider(prefix+" Y", min, max, 0, getter(&v.Y), setter(&v.Y, changed))
	f.Slider(prefix+" Z", min, max, 0, getter(&v.Z), setter(&v.Z, changed))
}

func getter(v *float64) func() float64 {
	return func() float64 { return *v }
}

func setter(v *float64, changed func()) func(float64) {
	return func(x float64) {
		*v = x
		changed()
	}
}

func boolGetter(v *bool) func() bool {
	return func() bool { return *v }
}

func boolSetter(v *bool, changed func()) func(bool) {
	return func(x bool) {
		*v = x
		changed()
	}
}

func colorGetter(v *scene.Color) func() scene.Color {
	return func() scene.Color { return *v }
}

func colorSetter(v *scene.Color, changed func()) func(scene.Color) {
	return func(x scene.Color) {
		*v = x
		changed()
	}
}
