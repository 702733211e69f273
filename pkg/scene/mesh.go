package scene

import (
	"github.com/philipparndt/modelview/pkg/geometry"
)

// Geometry is an immutable triangle soup, optionally indexed.
// Renderers may key GPU resources on the *Geometry pointer.
type Geometry struct {
	Positions []geometry.Vector3
	Normals   []geometry.Vector3
	Indices   []uint32

	bounds    geometry.BoundingBox
	hasBounds bool
}

// NewGeometry creates a geometry and fills in flat normals when none are given
func NewGeometry(positions, normals []geometry.Vector3, indices []uint32) *Geometry {
	g := &Geometry{Positions: positions, Normals: normals, Indices: indices}
	if len(g.Normals) != len(g.Positions) {
		g.ComputeNormals()
	}
	return g
}

// GeometryFromTriangles builds a non-indexed geometry from facets
func GeometryFromTriangles(triangles []geometry.Triangle) *Geometry {
	positions := make([]geometry.Vector3, 0, len(triangles)*3)
	normals := make([]geometry.Vector3, 0, len(triangles)*3)
	for _, tri := range triangles {
		normal := tri.CalculateNormal()
		positions = append(positions, tri.V1, tri.V2, tri.V3)
		normals = append(normals, normal, normal, normal)
	}
	return &Geometry{Positions: positions, Normals: normals}
}

// TriangleCount returns the number of triangles
func (g *Geometry) TriangleCount() int {
	if g.Indices != nil {
		return len(g.Indices) / 3
	}
	return len(g.Positions) / 3
}

// Triangle returns the i-th triangle in local space
func (g *Geometry) Triangle(i int) geometry.Triangle {
	a, b, c := g.triangleIndices(i)
	tri := geometry.NewTriangle(geometry.Vector3{}, g.Positions[a], g.Positions[b], g.Positions[c])
	tri.Normal = tri.CalculateNormal()
	return tri
}

// VertexNormals returns the normals of the i-th triangle's corners
func (g *Geometry) VertexNormals(i int) [3]geometry.Vector3 {
	a, b, c := g.triangleIndices(i)
	return [3]geometry.Vector3{g.Normals[a], g.Normals[b], g.Normals[c]}
}

func (g *Geometry) triangleIndices(i int) (int, int, int) {
	if g.Indices != nil {
		return int(g.Indices[i*3]), int(g.Indices[i*3+1]), int(g.Indices[i*3+2])
	}
	return i * 3, i*3 + 1, i*3 + 2
}

// BoundingBox returns the local-space bounds, computed once
func (g *Geometry) BoundingBox() geometry.BoundingBox {
	if !g.hasBounds {
		g.bounds = geometry.NewBoundingBox()
		for _, p := range g.Positions {
			g.bounds.Extend(p)
		}
		g.hasBounds = true
	}
	return g.bounds
}

// ComputeNormals assigns area-weighted vertex normals
func (g *Geometry) ComputeNormals() {
	g.Normals = make([]geometry.Vector3, len(g.Positions))
	for i := 0; i < g.TriangleCount(); i++ {
		a, b, c := g.triangleIndices(i)
		face := g.Positions[b].Sub(g.Positions[a]).Cross(g.Positions[c].Sub(g.Positions[a]))
		g.Normals[a] = g.Normals[a].Add(face)
		g.Normals[b] = g.Normals[b].Add(face)
		g.Normals[c] = g.Normals[c].Add(face)
	}
	for i := range g.Normals {
		g.Normals[i] = g.Normals[i].Normalize()
	}
}

// SurfaceArea sums the triangle areas in local space
func (g *Geometry) SurfaceArea() float64 {
	total := 0.0
	for i := 0; i < g.TriangleCount(); i++ {
		total += g.Triangle(i).Area()
	}
	return total
}

// Material is implemented by the material kinds a renderer understands
type Material interface {
	MaterialType() string
}

// StandardMaterial is a physically-inspired metal/roughness material
type StandardMaterial struct {
	Color             Color
	Roughness         float64
	Metalness         float64
	Emissive          Color
	EmissiveIntensity float64
}

// MaterialType implements Material
func (*StandardMaterial) MaterialType() string { return "standard" }

// NewStandardMaterial returns the neutral white, non-metal, non-emissive preset
func NewStandardMaterial() *StandardMaterial {
	return &StandardMaterial{
		Color:             White,
		Roughness:         0.5,
		Metalness:         0,
		Emissive:          Black,
		EmissiveIntensity: 0,
	}
}

// BasicMaterial is an unlit flat color
type BasicMaterial struct {
	Color Color
}

// MaterialType implements Material
func (*BasicMaterial) MaterialType() string { return "basic" }

// Mesh binds a geometry to a material
type Mesh struct {
	Geometry      *Geometry
	Material      Material
	CastShadow    bool
	ReceiveShadow bool
}

// NewMesh creates a mesh with the given geometry and material
func NewMesh(g *Geometry, m Material) *Mesh {
	return &Mesh{Geometry: g, Material: m}
}
