package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const zoomStep = 0.95

// handleInput maps mouse and keyboard to orbit moves. Input over the panel
// belongs to the panel.
func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeyHome) && !a.panel.Typing() {
		a.session.ResetView()
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) || rl.IsMouseButtonPressed(rl.MouseMiddleButton) || rl.IsMouseButtonPressed(rl.MouseRightButton) {
		a.dragging = !a.panel.Contains(mouse) && a.prompt == ""
		shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
		a.isPanning = shiftPressed || !rl.IsMouseButtonPressed(rl.MouseLeftButton)
	}
	anyDown := rl.IsMouseButtonDown(rl.MouseLeftButton) || rl.IsMouseButtonDown(rl.MouseMiddleButton) || rl.IsMouseButtonDown(rl.MouseRightButton)
	if !anyDown {
		a.dragging = false
	}

	sc := a.session.Scene
	height := float64(rl.GetScreenHeight())
	if height <= 0 {
		return
	}

	if a.dragging {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			dx := float64(delta.X) / height
			dy := float64(delta.Y) / height
			if a.isPanning {
				sc.Orbit.Pan(sc.Camera, 2*dx, 2*dy)
			} else {
				sc.Orbit.Rotate(2*math.Pi*dx, 2*math.Pi*dy)
			}
		}
	}

	if !a.panel.Contains(mouse) {
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			sc.Orbit.Zoom(math.Pow(zoomStep, float64(wheel)))
		}
	}
}
