package scene

import "github.com/philipparndt/modelview/pkg/geometry"

const (
	// GroundSize is the edge length of the ground plane
	GroundSize = 30
	// DefaultPointLightDistance is where the point light falls off to zero
	DefaultPointLightDistance = 50
)

// GridHelper describes the reference grid on the ground
type GridHelper struct {
	Size      float64
	Divisions int
	Visible   bool
}

// AxesHelper describes the RGB axis lines at the origin
type AxesHelper struct {
	Size    float64
	Visible bool
}

// Scene is everything a frontend needs to draw one frame
type Scene struct {
	Root       *Node
	Models     *Node
	Ground     *Node
	Background Color
	Wireframe  bool

	Camera      *Camera
	Orbit       *Orbit
	Ambient     *AmbientLight
	Directional *DirectionalLight
	Point       *PointLight

	Grid GridHelper
	Axes AxesHelper
}

// Options configures the initial scene
type Options struct {
	FOV            float64
	CameraPosition geometry.Vector3
	Background     Color
}

// New builds the default scene: camera, damped orbit controls, ambient,
// directional (shadow-casting) and point lights, ground plane, grid and axes
func New(opts Options) *Scene {
	root := NewNode("scene")
	models := NewNode("models")

	groundMat := NewStandardMaterial()
	groundMat.Color = Hex(0x808080)
	groundMat.Roughness = 1
	groundMat.Metalness = 0
	ground := NewMeshNode("ground", NewMesh(PlaneGeometry(GroundSize, GroundSize), groundMat))
	ground.Mesh.ReceiveShadow = true
	ground.Position.Y = -1

	root.Add(ground)
	root.Add(models)

	s := &Scene{
		Root:       root,
		Models:     models,
		Ground:     ground,
		Background: opts.Background,
		Camera:     NewCamera(opts.FOV, opts.CameraPosition),
		Orbit:      NewOrbit(),
		Ambient:    &AmbientLight{Color: White, Intensity: 0.5},
		Directional: &DirectionalLight{
			Color:         White,
			Intensity:     1,
			Position:      geometry.NewVector3(5, 10, 7.5),
			CastShadow:    true,
			ShadowMapSize: DefaultShadowMapSize,
			ShadowExtent:  GroundSize / 2,
		},
		Point: &PointLight{
			Color:     White,
			Intensity: 1,
			Position:  geometry.NewVector3(-5, 5, 5),
			Distance:  DefaultPointLightDistance,
			Decay:     2,
		},
		Grid: GridHelper{Size: GroundSize, Divisions: GroundSize, Visible: true},
		Axes: AxesHelper{Size: 5, Visible: true},
	}
	s.Orbit.Update(s.Camera)
	return s
}

// SetAspect updates the camera for a surface of the given pixel size
func (s *Scene) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.Camera.Aspect = float64(width) / float64(height)
}

// Clear detaches every model node
func (s *Scene) Clear() {
	for _, c := range s.Models.Children() {
		c.Detach()
	}
}
