package app

import (
	"github.com/go-gl/mathgl/mgl64"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/modelview/pkg/geometry"
	"github.com/philipparndt/modelview/pkg/scene"
)

func toRLVector(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func toRLColor(c scene.Color) rl.Color {
	rgba := c.RGBA()
	return rl.NewColor(rgba.R, rgba.G, rgba.B, rgba.A)
}

// toRLMatrix converts a column-major mgl64 matrix; raylib stores M0..M15
// in the same column-major order
func toRLMatrix(m mgl64.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M1: float32(m[1]), M2: float32(m[2]), M3: float32(m[3]),
		M4: float32(m[4]), M5: float32(m[5]), M6: float32(m[6]), M7: float32(m[7]),
		M8: float32(m[8]), M9: float32(m[9]), M10: float32(m[10]), M11: float32(m[11]),
		M12: float32(m[12]), M13: float32(m[13]), M14: float32(m[14]), M15: float32(m[15]),
	}
}

func toRLCamera(c *scene.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toRLVector(c.Position),
		Target:     toRLVector(c.Target),
		Up:         toRLVector(c.Up),
		Fovy:       float32(c.FOV),
		Projection: rl.CameraPerspective,
	}
}
