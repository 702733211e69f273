// Package analysis computes geometric statistics over loaded models
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

// EdgeInfo is one triangle edge in world space
type EdgeInfo struct {
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Mesh   string
}

// Stats summarizes every mesh below a node, measured in world space
type Stats struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	Volume        float64
	SurfaceArea   float64
	MeshCount     int
	VertexCount   int
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo
}

// Analyze walks root and gathers its statistics. Hidden nodes are included.
func Analyze(root *scene.Node) *Stats {
	s := &Stats{BoundingBox: geometry.NewBoundingBox()}

	minLength := math.MaxFloat64
	totalLength := 0.0

	root.WalkMeshes(func(n *scene.Node, world mgl64.Mat4) {
		g := n.Mesh.Geometry
		s.MeshCount++
		s.VertexCount += len(g.Positions)
		s.TriangleCount += g.TriangleCount()

		for i := 0; i < g.TriangleCount(); i++ {
			tri := g.Triangle(i)
			v1 := tri.V1.TransformPoint(world)
			v2 := tri.V2.TransformPoint(world)
			v3 := tri.V3.TransformPoint(world)
			s.BoundingBox.Extend(v1)
			s.BoundingBox.Extend(v2)
			s.BoundingBox.Extend(v3)
			s.SurfaceArea += geometry.Triangle{V1: v1, V2: v2, V3: v3}.Area()

			for _, e := range [3][2]geometry.Vector3{{v1, v2}, {v2, v3}, {v3, v1}} {
				length := e[0].Distance(e[1])
				s.AllEdges = append(s.AllEdges, EdgeInfo{Start: e[0], End: e[1], Length: length, Mesh: n.Name})
				totalLength += length
				minLength = math.Min(minLength, length)
				s.MaxEdgeLength = math.Max(s.MaxEdgeLength, length)
			}
		}
	})

	s.EdgeCount = len(s.AllEdges)
	if s.EdgeCount > 0 {
		s.MinEdgeLength = minLength
		s.AvgEdgeLength = totalLength / float64(s.EdgeCount)
	}
	if !s.BoundingBox.IsEmpty() {
		s.Dimensions = s.BoundingBox.Size()
		s.Volume = s.BoundingBox.Volume()
	}
	return s
}

// ScaleTo returns the uniform factor that makes the largest dimension
// equal size, or 0 when the model is flat or empty
func (s *Stats) ScaleTo(size float64) float64 {
	maxDim := s.Dimensions.MaxComponent()
	if maxDim <= 0 {
		return 0
	}
	return size / maxDim
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(s *Stats, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range s.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(s *Stats, count int) []EdgeInfo {
	return sortedEdges(s, count, func(a, b float64) bool { return a > b })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(s *Stats, count int) []EdgeInfo {
	return sortedEdges(s, count, func(a, b float64) bool { return a < b })
}

func sortedEdges(s *Stats, count int, less func(a, b float64) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(s.AllEdges))
	copy(edges, s.AllEdges)
	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i].Length, edges[j].Length)
	})
	if count > len(edges) {
		count = len(edges)
	}
	if count < 0 {
		count = 0
	}
	return edges[:count]
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
