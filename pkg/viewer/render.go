package viewer

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

var (
	gridColor = color.RGBA{136, 136, 136, 255}
	wireColor = color.RGBA{20, 20, 20, 255}
	axisX     = color.RGBA{230, 40, 40, 255}
	axisY     = color.RGBA{40, 200, 40, 255}
	axisZ     = color.RGBA{40, 80, 230, 255}
)

// projector maps world points through the camera into frame pixels. Work is
// done in view space so geometry crossing the near plane can be clipped.
type projector struct {
	view   mgl64.Mat4
	proj   mgl64.Mat4
	near   float64
	width  float64
	height float64
}

func newProjector(cam *scene.Camera, width, height int) projector {
	aspect := float64(width) / float64(height)
	return projector{
		view:   cam.ViewMatrix(),
		proj:   mgl64.Perspective(mgl64.DegToRad(cam.FOV), aspect, cam.Near, cam.Far),
		near:   cam.Near,
		width:  float64(width),
		height: float64(height),
	}
}

func (p projector) toView(v geometry.Vector3) mgl64.Vec3 {
	return p.view.Mul4x1(v.Vec3().Vec4(1)).Vec3()
}

func (p projector) toScreen(v mgl64.Vec3) screenVertex {
	clip := p.proj.Mul4x1(v.Vec4(1))
	return screenVertex{
		x: (clip[0]/clip[3] + 1) / 2 * p.width,
		y: (1 - clip[1]/clip[3]) / 2 * p.height,
		z: -v[2],
	}
}

func (p projector) inFront(v mgl64.Vec3) bool {
	return -v[2] >= p.near
}

// clip keeps the part of a view-space polygon in front of the near plane
func (p projector) clip(poly []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, len(poly)+1)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		curIn, prevIn := p.inFront(cur), p.inFront(prev)
		if curIn != prevIn {
			out = append(out, p.intersect(prev, cur))
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}

func (p projector) intersect(a, b mgl64.Vec3) mgl64.Vec3 {
	t := (-p.near - a[2]) / (b[2] - a[2])
	return a.Add(b.Sub(a).Mul(t))
}

// Render draws sc into f from the scene camera: lit flat-shaded meshes, then
// the grid, axes and wireframe overlays
func Render(sc *scene.Scene, f *Frame) {
	f.Clear(sc.Background.RGBA())
	if f.width == 0 || f.height == 0 {
		return
	}
	p := newProjector(sc.Camera, f.width, f.height)
	light := newLighting(sc)

	sc.Root.WalkVisibleMeshes(func(n *scene.Node, world mgl64.Mat4) {
		g := n.Mesh.Geometry
		for i := 0; i < g.TriangleCount(); i++ {
			tri := g.Triangle(i)
			w1 := tri.V1.TransformPoint(world)
			w2 := tri.V2.TransformPoint(world)
			w3 := tri.V3.TransformPoint(world)

			normal := w2.Sub(w1).Cross(w3.Sub(w1)).Normalize()
			center := w1.Add(w2).Add(w3).Mul(1.0 / 3)
			col := light.shade(n.Mesh.Material, normal, center).RGBA()

			poly := p.clip([]mgl64.Vec3{p.toView(w1), p.toView(w2), p.toView(w3)})
			for k := 1; k+1 < len(poly); k++ {
				f.fillTriangle(p.toScreen(poly[0]), p.toScreen(poly[k]), p.toScreen(poly[k+1]), col)
			}
		}
	})

	if sc.Grid.Visible {
		drawGrid(f, p, sc.Grid, sc.Ground.Position.Y)
	}
	if sc.Axes.Visible {
		s := sc.Axes.Size
		origin := geometry.Vector3{}
		drawSegment(f, p, origin, geometry.NewVector3(s, 0, 0), axisX)
		drawSegment(f, p, origin, geometry.NewVector3(0, s, 0), axisY)
		drawSegment(f, p, origin, geometry.NewVector3(0, 0, s), axisZ)
	}
	if sc.Wireframe {
		sc.Models.WalkVisibleMeshes(func(n *scene.Node, world mgl64.Mat4) {
			g := n.Mesh.Geometry
			for i := 0; i < g.TriangleCount(); i++ {
				tri := g.Triangle(i)
				w1 := tri.V1.TransformPoint(world)
				w2 := tri.V2.TransformPoint(world)
				w3 := tri.V3.TransformPoint(world)
				drawSegment(f, p, w1, w2, wireColor)
				drawSegment(f, p, w2, w3, wireColor)
				drawSegment(f, p, w3, w1, wireColor)
			}
		})
	}
}

func drawGrid(f *Frame, p projector, g scene.GridHelper, y float64) {
	if g.Divisions <= 0 {
		return
	}
	half := g.Size / 2
	step := g.Size / float64(g.Divisions)
	y += 0.001
	for i := 0; i <= g.Divisions; i++ {
		k := -half + float64(i)*step
		drawSegment(f, p, geometry.NewVector3(k, y, -half), geometry.NewVector3(k, y, half), gridColor)
		drawSegment(f, p, geometry.NewVector3(-half, y, k), geometry.NewVector3(half, y, k), gridColor)
	}
}

// drawSegment clips a world-space segment to the near plane and draws it
func drawSegment(f *Frame, p projector, a, b geometry.Vector3, col color.RGBA) {
	va, vb := p.toView(a), p.toView(b)
	aIn, bIn := p.inFront(va), p.inFront(vb)
	switch {
	case !aIn && !bIn:
		return
	case !aIn:
		va = p.intersect(va, vb)
	case !bIn:
		vb = p.intersect(va, vb)
	}
	sa, sb := p.toScreen(va), p.toScreen(vb)
	limit := 4 * (p.width + p.height)
	if abs64(sa.x) > limit || abs64(sa.y) > limit || abs64(sb.x) > limit || abs64(sb.y) > limit {
		return
	}
	f.drawLine(int(sa.x), int(sa.y), int(sb.x), int(sb.y), col)
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
