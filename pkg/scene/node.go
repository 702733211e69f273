package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/modelview/pkg/geometry"
)

// Node is an element of the scene graph. A node owns its children; a child
// belongs to at most one parent at a time.
type Node struct {
	Name     string
	Position geometry.Vector3
	Rotation geometry.Vector3 // Euler angles in radians, applied in XYZ order
	Scale    geometry.Vector3
	Visible  bool
	Mesh     *Mesh

	// Matrix is used as the local transform when MatrixAutoUpdate is false.
	// Imported nodes carry their authored transform this way.
	Matrix           mgl64.Mat4
	MatrixAutoUpdate bool

	parent   *Node
	children []*Node
}

// NewNode creates a visible node with identity transform
func NewNode(name string) *Node {
	return &Node{
		Name:             name,
		Scale:            geometry.Splat(1),
		Visible:          true,
		Matrix:           mgl64.Ident4(),
		MatrixAutoUpdate: true,
	}
}

// NewMeshNode creates a node holding a mesh
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	return n
}

// Parent returns the node's parent or nil when detached
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the node's children
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Add attaches child to n, detaching it from any previous parent first
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child if it is a direct child of n
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Detach removes the node from its parent
func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// Contains reports whether target is n or one of its descendants
func (n *Node) Contains(target *Node) bool {
	found := false
	n.Traverse(func(c *Node) {
		if c == target {
			found = true
		}
	})
	return found
}

// Traverse visits n and all descendants depth-first
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// SetUniformScale sets the same scale on all axes
func (n *Node) SetUniformScale(s float64) {
	n.Scale = geometry.Splat(s)
}

// LocalMatrix returns T * Rx * Ry * Rz * S, or Matrix for imported nodes
func (n *Node) LocalMatrix() mgl64.Mat4 {
	if !n.MatrixAutoUpdate {
		return n.Matrix
	}
	t := mgl64.Translate3D(n.Position.X, n.Position.Y, n.Position.Z)
	r := mgl64.HomogRotate3DX(n.Rotation.X).
		Mul4(mgl64.HomogRotate3DY(n.Rotation.Y)).
		Mul4(mgl64.HomogRotate3DZ(n.Rotation.Z))
	s := mgl64.Scale3D(n.Scale.X, n.Scale.Y, n.Scale.Z)
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes local matrices from the root down to n
func (n *Node) WorldMatrix() mgl64.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Mul4(n.LocalMatrix())
}

// WalkMeshes calls fn for every mesh in the subtree with its world matrix
func (n *Node) WalkMeshes(fn func(node *Node, world mgl64.Mat4)) {
	n.walkMeshes(n.parentWorld(), false, fn)
}

// WalkVisibleMeshes is WalkMeshes restricted to visible branches
func (n *Node) WalkVisibleMeshes(fn func(node *Node, world mgl64.Mat4)) {
	n.walkMeshes(n.parentWorld(), true, fn)
}

func (n *Node) parentWorld() mgl64.Mat4 {
	if n.parent == nil {
		return mgl64.Ident4()
	}
	return n.parent.WorldMatrix()
}

func (n *Node) walkMeshes(parentWorld mgl64.Mat4, visibleOnly bool, fn func(*Node, mgl64.Mat4)) {
	if visibleOnly && !n.Visible {
		return
	}
	world := parentWorld.Mul4(n.LocalMatrix())
	if n.Mesh != nil {
		fn(n, world)
	}
	for _, c := range n.children {
		c.walkMeshes(world, visibleOnly, fn)
	}
}
