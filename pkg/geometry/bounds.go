package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BoundingBox represents an axis-aligned bounding box
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox creates an empty bounding box that any point will extend
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Splat(math.Inf(1)),
		Max: Splat(math.Inf(-1)),
	}
}

// IsEmpty reports whether no point has been added yet
func (b BoundingBox) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Extend expands the bounding box to include a point
func (b *BoundingBox) Extend(point Vector3) {
	b.Min = b.Min.Min(point)
	b.Max = b.Max.Max(point)
}

// Union expands the bounding box to include another box
func (b *BoundingBox) Union(other BoundingBox) {
	if other.IsEmpty() {
		return
	}
	b.Extend(other.Min)
	b.Extend(other.Max)
}

// Size returns the dimensions of the bounding box; zero when empty
func (b BoundingBox) Size() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the bounding box; zero when empty
func (b BoundingBox) Center() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// MaxDimension returns the largest extent along any axis
func (b BoundingBox) MaxDimension() float64 {
	return b.Size().MaxComponent()
}

// Diagonal returns the length of the bounding box diagonal
func (b BoundingBox) Diagonal() float64 {
	return b.Size().Length()
}

// Volume returns the volume of the bounding box
func (b BoundingBox) Volume() float64 {
	size := b.Size()
	return size.X * size.Y * size.Z
}

// Corners returns the eight corners of the box
func (b BoundingBox) Corners() [8]Vector3 {
	return [8]Vector3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// Transform returns the axis-aligned box enclosing this box's corners after m.
// The result may be looser than the box of the transformed vertices.
func (b BoundingBox) Transform(m mgl64.Mat4) BoundingBox {
	out := NewBoundingBox()
	if b.IsEmpty() {
		return out
	}
	for _, c := range b.Corners() {
		out.Extend(c.TransformPoint(m))
	}
	return out
}
