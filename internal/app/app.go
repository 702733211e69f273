// Package app is the raylib frontend: a window that renders a session's scene
// with lighting and shadows and draws its control panel as an overlay.
package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/modelview/internal/session"
)


// App owns the window resources for one session
type App struct {
	session  *session.Session
	renderer *Renderer
	panel    *panelView
	font     rl.Font

	prompt    string
	dragging  bool
	isPanning bool
}

// window adapts the raylib screen to session.Surface
type window struct{}

func (window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Run opens the window, mounts s and drives it until the window closes. The
// session is disposed on return.
func Run(s *session.Session) {
	cfg := s.Config()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)

	font := rl.GetFontDefault()
	a := &App{
		session:  s,
		renderer: NewRenderer(s.Scene.Directional.ShadowMapSize),
		panel:    newPanelView(s.Panel, font),
		font:     font,
	}
	defer a.renderer.Close()
	defer s.Dispose()

	s.Mount(window{})

	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			s.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
		if a.prompt == "" {
			if msg, ok := s.Panel.TakePrompt(); ok {
				a.prompt = msg
			}
		}

		if a.prompt == "" {
			a.handleInput()
		}
		s.Tick()

		rl.BeginDrawing()
		a.renderer.Draw(s.Scene)
		if a.prompt == "" {
			a.panel.Draw()
		}
		a.drawStatus()
		a.drawPrompt()
		rl.EndDrawing()
	}
}
