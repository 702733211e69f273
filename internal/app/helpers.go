package app

import (
	"github.com/go-gl/mathgl/mgl64"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/modelview/pkg/scene"
)

var (
	gridCenterColor = rl.NewColor(68, 68, 68, 255)
	gridLineColor   = rl.NewColor(136, 136, 136, 255)
	wireColor       = rl.NewColor(20, 20, 20, 160)
)

// maxWireTriangles bounds the per-frame edge count of the wireframe overlay
const maxWireTriangles = 200000

// drawGrid draws the grid helper just above the ground plane
func drawGrid(g scene.GridHelper, groundY float64) {
	if g.Divisions <= 0 || g.Size <= 0 {
		return
	}
	y := float32(groundY + 0.001)
	half := float32(g.Size / 2)
	step := float32(g.Size / float64(g.Divisions))

	for i := 0; i <= g.Divisions; i++ {
		k := -half + float32(i)*step
		c := gridLineColor
		if i*2 == g.Divisions {
			c = gridCenterColor
		}
		rl.DrawLine3D(rl.Vector3{X: k, Y: y, Z: -half}, rl.Vector3{X: k, Y: y, Z: half}, c)
		rl.DrawLine3D(rl.Vector3{X: -half, Y: y, Z: k}, rl.Vector3{X: half, Y: y, Z: k}, c)
	}
}

// drawAxes draws the X (red), Y (green) and Z (blue) axes from the origin
func drawAxes(size float64) {
	s := float32(size)
	origin := rl.Vector3{}
	rl.DrawLine3D(origin, rl.Vector3{X: s}, rl.Red)
	rl.DrawLine3D(origin, rl.Vector3{Y: s}, rl.Green)
	rl.DrawLine3D(origin, rl.Vector3{Z: s}, rl.Blue)
}

// drawWireframe outlines every triangle of g in world space
func drawWireframe(g *scene.Geometry, world mgl64.Mat4) {
	count := g.TriangleCount()
	if count > maxWireTriangles {
		count = maxWireTriangles
	}
	for i := 0; i < count; i++ {
		tri := g.Triangle(i)
		v1 := toRLVector(tri.V1.TransformPoint(world))
		v2 := toRLVector(tri.V2.TransformPoint(world))
		v3 := toRLVector(tri.V3.TransformPoint(world))
		rl.DrawLine3D(v1, v2, wireColor)
		rl.DrawLine3D(v2, v3, wireColor)
		rl.DrawLine3D(v3, v1, wireColor)
	}
}
