package loader

import (
	"bytes"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

// OpenGLTF reads a local .gltf or .glb file, resolving relative buffers
func OpenGLTF(path, name string) (*scene.Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode gltf: %w", err)
	}
	return buildGLTF(doc, name)
}

// DecodeGLTF decodes glTF JSON or GLB data whose buffers are embedded
func DecodeGLTF(data []byte, name string) (*scene.Node, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode gltf: %w", err)
	}
	return buildGLTF(doc, name)
}

type gltfBuilder struct {
	doc       *gltf.Document
	materials map[int]*scene.StandardMaterial
	meshes    map[int][]*scene.Mesh
}

func buildGLTF(doc *gltf.Document, name string) (*scene.Node, error) {
	b := &gltfBuilder{
		doc:       doc,
		materials: make(map[int]*scene.StandardMaterial),
		meshes:    make(map[int][]*scene.Mesh),
	}

	roots, err := b.rootNodes()
	if err != nil {
		return nil, err
	}

	root := scene.NewNode(name)
	for _, idx := range roots {
		child, err := b.node(idx, make(map[int]bool))
		if err != nil {
			return nil, err
		}
		root.Add(child)
	}

	meshCount := 0
	root.WalkMeshes(func(*scene.Node, mgl64.Mat4) { meshCount++ })
	if meshCount == 0 {
		return nil, fmt.Errorf("gltf contains no triangle meshes")
	}
	return root, nil
}

// rootNodes returns the default scene's nodes, or every parentless node
// when the document has no scenes
func (b *gltfBuilder) rootNodes() ([]int, error) {
	doc := b.doc
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil {
			idx = *doc.Scene
		}
		if idx < 0 || idx >= len(doc.Scenes) {
			return nil, fmt.Errorf("gltf scene index %d out of range", idx)
		}
		return doc.Scenes[idx].Nodes, nil
	}

	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i, p := range hasParent {
		if !p {
			roots = append(roots, i)
		}
	}
	return roots, nil
}

func (b *gltfBuilder) node(idx int, path map[int]bool) (*scene.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("gltf node index %d out of range", idx)
	}
	if path[idx] {
		return nil, fmt.Errorf("gltf node %d is part of a cycle", idx)
	}
	path[idx] = true
	defer delete(path, idx)

	src := b.doc.Nodes[idx]
	n := scene.NewNode(src.Name)
	n.MatrixAutoUpdate = false
	n.Matrix = nodeMatrix(src)

	if src.Mesh != nil {
		meshes, err := b.mesh(*src.Mesh)
		if err != nil {
			return nil, err
		}
		for i, m := range meshes {
			// One child per primitive keeps a single mesh per node
			n.Add(scene.NewMeshNode(fmt.Sprintf("%s#%d", src.Name, i), m))
		}
	}

	for _, c := range src.Children {
		child, err := b.node(c, path)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

// nodeMatrix returns the authored matrix, or T*R*S when the node uses TRS
func nodeMatrix(n *gltf.Node) mgl64.Mat4 {
	m := mgl64.Mat4(n.MatrixOrDefault())
	if m != mgl64.Ident4() {
		return m
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}.Normalize()
	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(q.Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

func (b *gltfBuilder) mesh(idx int) ([]*scene.Mesh, error) {
	if cached, ok := b.meshes[idx]; ok {
		return cached, nil
	}
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("gltf mesh index %d out of range", idx)
	}

	var out []*scene.Mesh
	for _, prim := range b.doc.Meshes[idx].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		g, err := b.primitive(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", idx, err)
		}
		out = append(out, scene.NewMesh(g, b.material(prim.Material)))
	}
	b.meshes[idx] = out
	return out, nil
}

func (b *gltfBuilder) primitive(prim *gltf.Primitive) (*scene.Geometry, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}
	acr, err := b.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	raw, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}
	positions := toVectors(raw)

	var normals []geometry.Vector3
	if nIdx, ok := prim.Attributes["NORMAL"]; ok {
		acr, err := b.accessor(nIdx)
		if err != nil {
			return nil, err
		}
		rawNormals, err := modeler.ReadNormal(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read normals: %w", err)
		}
		normals = toVectors(rawNormals)
	}

	var indices []uint32
	if prim.Indices != nil {
		acr, err := b.accessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		indices, err = modeler.ReadIndices(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
		for _, i := range indices {
			if int(i) >= len(positions) {
				return nil, fmt.Errorf("index %d out of range", i)
			}
		}
	}

	return scene.NewGeometry(positions, normals, indices), nil
}

func (b *gltfBuilder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

// material converts the authored base color and factors. Sessions replace
// these with their own parameters; the info command and previews show them.
func (b *gltfBuilder) material(idx *int) *scene.StandardMaterial {
	if idx == nil || *idx < 0 || *idx >= len(b.doc.Materials) {
		return scene.NewStandardMaterial()
	}
	if m, ok := b.materials[*idx]; ok {
		return m
	}

	src := b.doc.Materials[*idx]
	m := scene.NewStandardMaterial()
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			c := *pbr.BaseColorFactor
			m.Color = scene.Color{R: c[0], G: c[1], B: c[2]}
		}
		if pbr.RoughnessFactor != nil {
			m.Roughness = *pbr.RoughnessFactor
		}
		if pbr.MetallicFactor != nil {
			m.Metalness = *pbr.MetallicFactor
		}
	}
	e := src.EmissiveFactor
	m.Emissive = scene.Color{R: e[0], G: e[1], B: e[2]}
	if m.Emissive != scene.Black {
		m.EmissiveIntensity = 1
	}

	b.materials[*idx] = m
	return m
}

func toVectors(raw [][3]float32) []geometry.Vector3 {
	out := make([]geometry.Vector3, len(raw))
	for i, v := range raw {
		out[i] = geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
	}
	return out
}
