package loader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

// TargetSize is the edge length the largest bounding box dimension is scaled to
const TargetSize = 2.0

// MinDimension is the smallest extent treated as non-degenerate
const MinDimension = 1e-9

// Normalization records how a model was fitted into the scene
type Normalization struct {
	Bounds geometry.BoundingBox
	Center geometry.Vector3
	Size   geometry.Vector3
	Scale  float64
}

// Normalize scales root so its largest dimension becomes TargetSize and moves
// its center to (xOffset, 0, 0). It also turns on shadows for every mesh.
func Normalize(root *scene.Node, xOffset float64) (Normalization, error) {
	root.WalkMeshes(func(n *scene.Node, _ mgl64.Mat4) {
		n.Mesh.CastShadow = true
		n.Mesh.ReceiveShadow = true
	})

	box := scene.BoundsOf(root)
	if box.IsEmpty() {
		return Normalization{}, fmt.Errorf("model has no geometry: %w", ErrDegenerateBounds)
	}
	maxDim := box.MaxDimension()
	if maxDim <= MinDimension {
		return Normalization{}, fmt.Errorf("largest dimension %g: %w", maxDim, ErrDegenerateBounds)
	}

	center := box.Center()
	scale := TargetSize / maxDim
	root.SetUniformScale(scale)
	root.Position = geometry.NewVector3(
		-center.X*scale+xOffset,
		-center.Y*scale,
		-center.Z*scale,
	)

	return Normalization{Bounds: box, Center: center, Size: box.Size(), Scale: scale}, nil
}
