package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestVector3Add(t *testing.T) {
	result := NewVector3(1, 2, 3).Add(NewVector3(4, 5, 6))

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	result := NewVector3(5, 7, 9).Sub(NewVector3(1, 2, 3))

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	length := NewVector3(3, 4, 0).Length()

	if math.Abs(length-5.0) > 1e-10 {
		t.Errorf("Length failed: expected 5, got %v", length)
	}
}

func TestVector3NormalizeZero(t *testing.T) {
	if n := (Vector3{}).Normalize(); n != (Vector3{}) {
		t.Errorf("Normalize of zero vector should stay zero, got %v", n)
	}
}

func TestVector3Cross(t *testing.T) {
	result := NewVector3(1, 0, 0).Cross(NewVector3(0, 1, 0))

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3MaxComponent(t *testing.T) {
	if got := NewVector3(1, 7, -9).MaxComponent(); got != 7 {
		t.Errorf("MaxComponent failed: expected 7, got %v", got)
	}
}

func TestVector3TransformPoint(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3).Mul4(mgl64.Scale3D(2, 2, 2))
	got := NewVector3(1, 1, 1).TransformPoint(m)

	expected := NewVector3(3, 4, 5)
	if !got.ApproxEqual(expected, 1e-10) {
		t.Errorf("TransformPoint failed: expected %v, got %v", expected, got)
	}
}
