package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

// boxTriangles returns the 12 facets of an axis-aligned box
func boxTriangles(min, max geometry.Vector3) []geometry.Triangle {
	g := scene.BoxGeometry(max.X-min.X, max.Y-min.Y, max.Z-min.Z)
	offset := min.Add(max).Mul(0.5)
	tris := make([]geometry.Triangle, g.TriangleCount())
	for i := range tris {
		t := g.Triangle(i)
		tris[i] = geometry.NewTriangle(t.Normal, t.V1.Add(offset), t.V2.Add(offset), t.V3.Add(offset))
	}
	return tris
}

func asciiSTL(name string, tris []geometry.Triangle) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "solid %s\n", name)
	for _, t := range tris {
		fmt.Fprintf(&b, "  facet normal %g %g %g\n    outer loop\n", t.Normal.X, t.Normal.Y, t.Normal.Z)
		for _, v := range []geometry.Vector3{t.V1, t.V2, t.V3} {
			fmt.Fprintf(&b, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		b.WriteString("    endloop\n  endfacet\n")
	}
	fmt.Fprintf(&b, "endsolid %s\n", name)
	return []byte(b.String())
}

func binarySTL(header string, tris []geometry.Triangle) []byte {
	var buf bytes.Buffer
	h := make([]byte, stlHeaderSize)
	copy(h, header)
	buf.Write(h)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(tris)))
	f32 := func(v geometry.Vector3) [3]float32 {
		return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	for _, t := range tris {
		_ = binary.Write(&buf, binary.LittleEndian, f32(t.Normal))
		_ = binary.Write(&buf, binary.LittleEndian, f32(t.V1))
		_ = binary.Write(&buf, binary.LittleEndian, f32(t.V2))
		_ = binary.Write(&buf, binary.LittleEndian, f32(t.V3))
		_ = binary.Write(&buf, binary.LittleEndian, uint16(0))
	}
	return buf.Bytes()
}

// triangleGLTF returns a glTF document with one triangle spanning
// (0,0,0)-(1,1,0) on a node translated by tx along X
func triangleGLTF(tx float64) []byte {
	var buf bytes.Buffer
	for _, v := range []float32{0, 0, 0, 1, 0, 0, 0, 1, 0} {
		_ = binary.Write(&buf, binary.LittleEndian, math.Float32bits(v))
	}
	data := base64.StdEncoding.EncodeToString(buf.Bytes())

	return []byte(fmt.Sprintf(`{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [{"name": "tri", "mesh": 0, "translation": [%g, 0, 0]}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "material": 0}]}],
  "materials": [{"pbrMetallicRoughness": {"baseColorFactor": [1, 0, 0, 1], "metallicFactor": 0.25}}],
  "buffers": [{"byteLength": 36, "uri": "data:application/octet-stream;base64,%s"}],
  "bufferViews": [{"buffer": 0, "byteLength": 36}],
  "accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]}]
}`, tx, data))
}
