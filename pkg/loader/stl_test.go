package loader

import (
	"math"
	"testing"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

func TestDecodeASCIISTL(t *testing.T) {
	tris := boxTriangles(geometry.NewVector3(0, 0, 0), geometry.NewVector3(4, 2, 1))
	root, err := DecodeSTL(asciiSTL("bracket", tris), "")
	if err != nil {
		t.Fatalf("DecodeSTL failed: %v", err)
	}

	if root.Name != "bracket" {
		t.Errorf("Name failed: expected bracket, got %q", root.Name)
	}

	count := 0
	root.Traverse(func(n *scene.Node) {
		if n.Mesh != nil {
			count += n.Mesh.Geometry.TriangleCount()
		}
	})
	if count != 12 {
		t.Errorf("TriangleCount failed: expected 12, got %d", count)
	}

	size := scene.BoundsOf(root).Size()
	if !size.ApproxEqual(geometry.NewVector3(4, 2, 1), 1e-10) {
		t.Errorf("Size failed: expected (4,2,1), got %v", size)
	}
}

func TestDecodeBinarySTL(t *testing.T) {
	tris := boxTriangles(geometry.NewVector3(-1, -1, -1), geometry.NewVector3(1, 3, 1))

	// Header deliberately starts with "solid" like some exporters write
	data := binarySTL("solid exported by cad", tris)
	if isASCIISTL(data) {
		t.Fatal("binary file with solid header detected as ASCII")
	}

	root, err := DecodeSTL(data, "part")
	if err != nil {
		t.Fatalf("DecodeSTL failed: %v", err)
	}
	if root.Name != "part" {
		t.Errorf("Name failed: expected part, got %q", root.Name)
	}

	box := scene.BoundsOf(root)
	if math.Abs(box.Max.Y-3) > 1e-6 || math.Abs(box.Min.X+1) > 1e-6 {
		t.Errorf("BoundingBox failed: got %v", box)
	}
}

func TestDecodeSTLWithoutFacets(t *testing.T) {
	if _, err := DecodeSTL([]byte("solid empty\nendsolid empty\n"), ""); err == nil {
		t.Error("expected error for STL without facets")
	}
}

func TestDecodeSTLMalformedVertex(t *testing.T) {
	data := []byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex 1 a 3\n")
	if _, err := DecodeSTL(data, ""); err == nil {
		t.Error("expected error for malformed vertex")
	}
}

func TestSniff(t *testing.T) {
	tris := boxTriangles(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 1, 1))

	tests := []struct {
		name     string
		data     []byte
		expected Format
	}{
		{"ascii stl", asciiSTL("a", tris), FormatSTL},
		{"binary stl", binarySTL("", tris), FormatSTL},
		{"gltf json", triangleGLTF(0), FormatGLTF},
		{"glb", []byte("glTF\x02\x00\x00\x00"), FormatGLB},
		{"garbage", []byte("hello world"), FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.data); got != tt.expected {
				t.Errorf("Sniff failed: expected %v, got %v", tt.expected, got)
			}
		})
	}
}
