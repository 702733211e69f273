package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/modelview/version"
)

var overlayBg = rl.NewColor(0, 0, 0, 200)

// drawStatus shows model count, pending loads and the last log line in the
// bottom-left corner
func (a *App) drawStatus() {
	s := a.session
	screenHeight := float32(rl.GetScreenHeight())

	status := fmt.Sprintf("Models: %d   Pending: %d   FPS: %d", len(s.Entries()), s.Pending(), rl.GetFPS())
	lines := []string{status}
	if last := s.Logger().Last(); last != "" {
		lines = append(lines, last)
	}
	lines = append(lines, version.GetVersion())

	y := screenHeight - 10 - float32(len(lines))*18
	for i, line := range lines {
		color := rl.DarkGray
		if i == 0 && s.Pending() > 0 {
			color = rl.Orange
		}
		rl.DrawTextEx(a.font, line, rl.Vector2{X: 10, Y: y}, 14, 1, color)
		y += 18
	}
}

// drawPrompt shows a queued panel prompt as a modal box until dismissed
func (a *App) drawPrompt() {
	if a.prompt == "" {
		return
	}
	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())
	rl.DrawRectangle(0, 0, int32(screenWidth), int32(screenHeight), rl.NewColor(0, 0, 0, 90))

	textSize := rl.MeasureTextEx(a.font, a.prompt, 16, 1)
	boxWidth := textSize.X + 60
	if boxWidth < 260 {
		boxWidth = 260
	}
	boxHeight := float32(100)
	box := rl.Rectangle{X: (screenWidth - boxWidth) / 2, Y: (screenHeight - boxHeight) / 2, Width: boxWidth, Height: boxHeight}
	rl.DrawRectangleRounded(box, 0.1, 8, panelBg)
	rl.DrawRectangleRoundedLines(box, 0.1, 8, rl.Yellow)
	rl.DrawTextEx(a.font, a.prompt, rl.Vector2{X: box.X + (boxWidth-textSize.X)/2, Y: box.Y + 22}, 16, 1, rl.Yellow)

	button := rl.Rectangle{X: box.X + (boxWidth-80)/2, Y: box.Y + boxHeight - 38, Width: 80, Height: 24}
	hovered := rl.CheckCollisionPointRec(rl.GetMousePosition(), button)
	bg := trackBg
	if hovered {
		bg = trackHover
	}
	rl.DrawRectangleRounded(button, 0.3, 8, bg)
	okSize := rl.MeasureTextEx(a.font, "OK", 14, 1)
	rl.DrawTextEx(a.font, "OK", rl.Vector2{X: button.X + (button.Width-okSize.X)/2, Y: button.Y + (button.Height-okSize.Y)/2}, 14, 1, rl.RayWhite)

	if (hovered && rl.IsMouseButtonPressed(rl.MouseLeftButton)) || rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyEscape) {
		a.prompt = ""
	}
}
