package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	if expected := NewVector3(-1, 0, 2); bbox.Min != expected {
		t.Errorf("Min failed: expected %v, got %v", expected, bbox.Min)
	}
	if expected := NewVector3(4, 5, 6); bbox.Max != expected {
		t.Errorf("Max failed: expected %v, got %v", expected, bbox.Max)
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Fatal("new bounding box should be empty")
	}
	if bbox.MaxDimension() != 0 {
		t.Errorf("empty box should have zero max dimension, got %v", bbox.MaxDimension())
	}
	if bbox.Center() != (Vector3{}) {
		t.Errorf("empty box should have zero center, got %v", bbox.Center())
	}
}

func TestBoundingBoxSizeAndCenter(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(10, 20, 30))

	if expected := NewVector3(10, 20, 30); bbox.Size() != expected {
		t.Errorf("Size failed: expected %v, got %v", expected, bbox.Size())
	}
	if expected := NewVector3(5, 10, 15); bbox.Center() != expected {
		t.Errorf("Center failed: expected %v, got %v", expected, bbox.Center())
	}
	if bbox.MaxDimension() != 30 {
		t.Errorf("MaxDimension failed: expected 30, got %v", bbox.MaxDimension())
	}
}

func TestBoundingBoxVolume(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(2, 3, 4))

	if volume := bbox.Volume(); math.Abs(volume-24.0) > 1e-10 {
		t.Errorf("Volume failed: expected 24, got %v", volume)
	}
}

func TestBoundingBoxTransformRotation(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(-2, -0.5, -0.5))
	bbox.Extend(NewVector3(2, 0.5, 0.5))

	// A quarter turn around Y swaps the X and Z extents.
	rotated := bbox.Transform(mgl64.HomogRotate3DY(math.Pi / 2))
	size := rotated.Size()

	if !size.ApproxEqual(NewVector3(1, 1, 4), 1e-9) {
		t.Errorf("Transform failed: expected size (1,1,4), got %v", size)
	}
}

func TestBoundingBoxUnionIgnoresEmpty(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(1, 1, 1))
	bbox.Union(NewBoundingBox())

	if bbox.Min != NewVector3(1, 1, 1) || bbox.Max != NewVector3(1, 1, 1) {
		t.Errorf("Union with empty box changed bounds: %v", bbox)
	}
}
