package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/modelview/pkg/geometry"
)

// BoundsOf returns the world-space box of every mesh under n, using the
// node's current transform chain. Each mesh contributes its local box
// transformed by its world matrix.
func BoundsOf(n *Node) geometry.BoundingBox {
	box := geometry.NewBoundingBox()
	n.WalkMeshes(func(node *Node, world mgl64.Mat4) {
		if node.Mesh.Geometry == nil {
			return
		}
		box.Union(node.Mesh.Geometry.BoundingBox().Transform(world))
	})
	return box
}
