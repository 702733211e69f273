package loader

import (
	"math"
	"testing"

	"github.com/philipparndt/modelview/pkg/scene"
)

func TestDecodeGLTF(t *testing.T) {
	root, err := DecodeGLTF(triangleGLTF(5), "tri")
	if err != nil {
		t.Fatalf("DecodeGLTF failed: %v", err)
	}

	box := scene.BoundsOf(root)
	if math.Abs(box.Min.X-5) > 1e-9 || math.Abs(box.Max.X-6) > 1e-9 {
		t.Errorf("node translation failed: expected x in [5,6], got [%v,%v]", box.Min.X, box.Max.X)
	}

	var mat *scene.StandardMaterial
	root.Traverse(func(n *scene.Node) {
		if n.Mesh != nil {
			mat, _ = n.Mesh.Material.(*scene.StandardMaterial)
		}
	})
	if mat == nil {
		t.Fatal("expected a standard material")
	}
	if mat.Color != (scene.Color{R: 1}) {
		t.Errorf("base color failed: expected red, got %v", mat.Color)
	}
	if mat.Metalness != 0.25 {
		t.Errorf("metalness failed: expected 0.25, got %v", mat.Metalness)
	}
}

func TestDecodeGLTFWithoutMeshes(t *testing.T) {
	data := []byte(`{"asset": {"version": "2.0"}, "scenes": [{"nodes": [0]}], "nodes": [{"name": "empty"}]}`)
	if _, err := DecodeGLTF(data, "empty"); err == nil {
		t.Error("expected error for document without meshes")
	}
}

func TestDecodeGLTFInvalid(t *testing.T) {
	if _, err := DecodeGLTF([]byte("{not json"), "bad"); err == nil {
		t.Error("expected decode error")
	}
}
