package scene

import (
	"math"
	"testing"

	"github.com/philipparndt/modelview/pkg/geometry"
)

func unitBox() *Node {
	return NewMeshNode("box", NewMesh(BoxGeometry(4, 2, 1), NewStandardMaterial()))
}

func TestNodeAddDetach(t *testing.T) {
	root := NewNode("root")
	child := unitBox()

	root.Add(child)
	if child.Parent() != root || len(root.Children()) != 1 {
		t.Fatalf("Add failed: parent=%v children=%d", child.Parent(), len(root.Children()))
	}

	other := NewNode("other")
	other.Add(child)
	if len(root.Children()) != 0 {
		t.Errorf("re-parenting should detach from the old parent")
	}

	child.Detach()
	if child.Parent() != nil || other.Contains(child) {
		t.Errorf("Detach failed")
	}
}

func TestBoundsOfUsesCurrentTransform(t *testing.T) {
	n := unitBox()

	box := BoundsOf(n)
	if !box.Size().ApproxEqual(geometry.NewVector3(4, 2, 1), 1e-9) {
		t.Fatalf("local bounds: expected (4,2,1), got %v", box.Size())
	}

	n.SetUniformScale(0.5)
	n.Position = geometry.NewVector3(10, 0, 0)
	box = BoundsOf(n)
	if !box.Size().ApproxEqual(geometry.NewVector3(2, 1, 0.5), 1e-9) {
		t.Errorf("scaled bounds: expected (2,1,0.5), got %v", box.Size())
	}
	if !box.Center().ApproxEqual(geometry.NewVector3(10, 0, 0), 1e-9) {
		t.Errorf("translated center: expected (10,0,0), got %v", box.Center())
	}

	n.Rotation.Y = math.Pi / 2
	box = BoundsOf(n)
	if !box.Size().ApproxEqual(geometry.NewVector3(0.5, 1, 2), 1e-9) {
		t.Errorf("rotated bounds: expected (0.5,1,2), got %v", box.Size())
	}
}

func TestBoundsOfIncludesParentTransform(t *testing.T) {
	parent := NewNode("parent")
	parent.SetUniformScale(2)
	child := unitBox()
	parent.Add(child)

	if size := BoundsOf(child).Size(); !size.ApproxEqual(geometry.NewVector3(8, 4, 2), 1e-9) {
		t.Errorf("expected parent scale to apply, got %v", size)
	}
}

func TestBoundsOfEmptyNode(t *testing.T) {
	if !BoundsOf(NewNode("empty")).IsEmpty() {
		t.Errorf("node without meshes should have empty bounds")
	}
}

func TestImportedMatrix(t *testing.T) {
	n := unitBox()
	n.MatrixAutoUpdate = false
	n.Matrix = n.Matrix.Mul4(scaleMatrix(3))
	n.SetUniformScale(100) // ignored while MatrixAutoUpdate is false

	if size := BoundsOf(n).Size(); !size.ApproxEqual(geometry.NewVector3(12, 6, 3), 1e-9) {
		t.Errorf("expected authored matrix to apply, got %v", size)
	}
}
