package session

import (
	"github.com/philipparndt/modelview/internal/config"
	"github.com/philipparndt/modelview/internal/panel"
	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/loader"
	"github.com/philipparndt/modelview/pkg/scene"
)

// DefaultRotateSpeed is the rotate speed of a freshly loaded entry
const DefaultRotateSpeed = 1.0

// Transform is the user-editable placement of an entry. Scale is a
// multiplier on top of the 2-unit normalization.
type Transform struct {
	Position geometry.Vector3
	Rotation geometry.Vector3
	Scale    float64
}

// Material mirrors the editable fields of scene.StandardMaterial
type Material struct {
	Color             scene.Color
	Roughness         float64
	Metalness         float64
	Emissive          scene.Color
	EmissiveIntensity float64
}

// NeutralMaterial is white, non-metal and non-emissive
func NeutralMaterial() Material {
	m := scene.NewStandardMaterial()
	return Material{
		Color:             m.Color,
		Roughness:         m.Roughness,
		Metalness:         m.Metalness,
		Emissive:          m.Emissive,
		EmissiveIntensity: m.EmissiveIntensity,
	}
}

func (m Material) applyTo(sm *scene.StandardMaterial) {
	sm.Color = m.Color
	sm.Roughness = m.Roughness
	sm.Metalness = m.Metalness
	sm.Emissive = m.Emissive
	sm.EmissiveIntensity = m.EmissiveIntensity
}

// Params are the live parameters bound to an entry's panel section
type Params struct {
	Transform
	AutoRotate  bool
	RotateSpeed float64
	Visible     bool
	Material    Material
}

// Entry is one loaded model in the session
type Entry struct {
	ID     int
	Name   string
	Node   *scene.Node
	Params Params

	Source loader.Source
	Offset float64
	Norm   loader.Normalization

	Section panel.Section

	label      string
	watchFiles []string
}

// SceneParams are the session-wide parameters edited by the scene folders
type SceneParams struct {
	CameraFOV      float64
	CameraPosition geometry.Vector3

	AmbientColor     scene.Color
	AmbientIntensity float64

	DirectionalColor     scene.Color
	DirectionalIntensity float64
	DirectionalPosition  geometry.Vector3

	PointColor     scene.Color
	PointIntensity float64
	PointPosition  geometry.Vector3
	PointDistance  float64

	Background scene.Color
	ShowGrid   bool
	ShowAxes   bool
	ShowGround bool
	Wireframe  bool
}

// DefaultSceneParams derives the initial scene parameters from cfg
func DefaultSceneParams(cfg config.Config) SceneParams {
	return SceneParams{
		CameraFOV:            cfg.Camera.FOV,
		CameraPosition:       cfg.Camera.Position,
		AmbientColor:         cfg.Lights.Ambient.Color,
		AmbientIntensity:     cfg.Lights.Ambient.Intensity,
		DirectionalColor:     cfg.Lights.Directional.Color,
		DirectionalIntensity: cfg.Lights.Directional.Intensity,
		DirectionalPosition:  cfg.Lights.Directional.Position,
		PointColor:           cfg.Lights.Point.Color,
		PointIntensity:       cfg.Lights.Point.Intensity,
		PointPosition:        cfg.Lights.Point.Position,
		PointDistance:        scene.DefaultPointLightDistance,
		Background:           cfg.Background,
		ShowGrid:             true,
		ShowAxes:             true,
		ShowGround:           true,
	}
}
