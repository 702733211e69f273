package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/modelview/pkg/geometry"
)

func scaleMatrix(s float64) mgl64.Mat4 {
	return mgl64.Scale3D(s, s, s)
}

func TestNewSceneBootstrap(t *testing.T) {
	s := New(Options{FOV: 45, CameraPosition: geometry.NewVector3(0, 5, 10), Background: Hex(0x202020)})

	if s.Directional.ShadowMapSize != 2048 || !s.Directional.CastShadow {
		t.Errorf("directional light should cast 2048px shadows, got %d/%v", s.Directional.ShadowMapSize, s.Directional.CastShadow)
	}
	if s.Point.Distance != 50 {
		t.Errorf("point light distance: expected 50, got %v", s.Point.Distance)
	}
	if size := BoundsOf(s.Ground).Size(); size.X != GroundSize || size.Z != GroundSize {
		t.Errorf("ground should be 30x30, got %v", size)
	}
	if !s.Ground.Mesh.ReceiveShadow {
		t.Errorf("ground should receive shadows")
	}
	if !s.Grid.Visible || !s.Axes.Visible {
		t.Errorf("helpers should start visible")
	}
	if !s.Camera.Position.ApproxEqual(geometry.NewVector3(0, 5, 10), 1e-9) {
		t.Errorf("camera moved during bootstrap: %v", s.Camera.Position)
	}
}

func TestOrbitDampingConverges(t *testing.T) {
	cam := NewCamera(45, geometry.NewVector3(0, 0, 10))
	orbit := NewOrbit()

	orbit.Rotate(math.Pi/2, 0)
	orbit.Update(cam)
	if cam.Position.ApproxEqual(geometry.NewVector3(0, 0, 10), 1e-9) {
		t.Fatal("first update should move the camera")
	}

	for i := 0; i < 1000 && !orbit.Settled(); i++ {
		orbit.Update(cam)
	}
	if !orbit.Settled() {
		t.Fatal("orbit should settle")
	}
	if d := cam.Position.Length(); math.Abs(d-10) > 1e-6 {
		t.Errorf("rotation should keep distance 10, got %v", d)
	}
	if !cam.Position.ApproxEqual(geometry.NewVector3(-10, 0, 0), 1e-3) {
		t.Errorf("expected a quarter turn to (-10,0,0), got %v", cam.Position)
	}
}

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera(45, geometry.NewVector3(0, 0, 10))
	x, y, depth := cam.Project(geometry.Vector3{}, 800, 600)

	if math.Abs(x-400) > 1e-6 || math.Abs(y-300) > 1e-6 {
		t.Errorf("origin should project to the screen center, got (%v,%v)", x, y)
	}
	if math.Abs(depth-10) > 1e-9 {
		t.Errorf("depth: expected 10, got %v", depth)
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]Color{
		"#ff0000":  {1, 0, 0},
		"0x00ff00": {0, 1, 0},
		"white":    {1, 1, 1},
	}
	for in, expected := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q) failed: %v", in, err)
		}
		if got != expected {
			t.Errorf("ParseColor(%q): expected %v, got %v", in, expected, got)
		}
	}
	if _, err := ParseColor("not-a-color"); err == nil {
		t.Errorf("expected error for invalid color")
	}
	if s := Hex(0x1a2b3c).String(); s != "#1a2b3c" {
		t.Errorf("String: expected #1a2b3c, got %s", s)
	}
}

func TestPointLightAttenuation(t *testing.T) {
	l := &PointLight{Distance: 50}
	if l.Attenuation(60) != 0 {
		t.Errorf("light should not reach past its distance")
	}
	if a := l.Attenuation(0); a != 1 {
		t.Errorf("attenuation at the source: expected 1, got %v", a)
	}
}
