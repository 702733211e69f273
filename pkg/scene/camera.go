package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/modelview/pkg/geometry"
)

// Camera is a perspective camera looking at Target
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // vertical field of view in degrees
	Aspect   float64
	Near     float64
	Far      float64
}

// NewCamera creates a camera at position looking at the origin
func NewCamera(fov float64, position geometry.Vector3) *Camera {
	return &Camera{
		Position: position,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      fov,
		Aspect:   1,
		Near:     0.1,
		Far:      1000,
	}
}

// ViewMatrix returns the world-to-camera transform
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position.Vec3(), c.Target.Vec3(), c.Up.Vec3())
}

// ProjectionMatrix returns the perspective projection
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Project maps a world point to screen pixels. The third value is the
// distance along the view direction; points behind the camera have depth <= 0.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	view := c.ViewMatrix().Mul4x1(point.Vec3().Vec4(1))
	depth := -view[2]
	if depth <= c.Near {
		return 0, 0, depth
	}
	clip := c.ProjectionMatrix().Mul4x1(view)
	ndcX := clip[0] / clip[3]
	ndcY := clip[1] / clip[3]
	screenX := (ndcX + 1) / 2 * width
	screenY := (1 - ndcY) / 2 * height
	return screenX, screenY, depth
}

// Unproject converts screen coordinates into a world-space ray
func (c *Camera) Unproject(screenX, screenY, width, height float64) (origin, direction geometry.Vector3) {
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(mgl64.DegToRad(c.FOV) / 2)

	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	up := right.Cross(forward).Normalize()

	dir := forward.Add(right.Mul(ndcX * fovScale * aspect)).Add(up.Mul(ndcY * fovScale))
	return c.Position, dir.Normalize()
}
