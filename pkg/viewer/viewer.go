// Package viewer is the fyne frontend: a software-rendered scene preview next
// to a widget panel generated from the session's control tree.
package viewer

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"github.com/philipparndt/modelview/internal/session"
)

// syncEvery is how many frames pass between widget value refreshes
const syncEvery = 6

// surface adapts the preview to session.Surface
type surface struct {
	p *Preview
}

func (s surface) Size() (int, int) {
	return s.p.Pixels()
}

// Run opens a fyne window for s and blocks until it is closed. The session
// is disposed on return.
func Run(s *session.Session) {
	cfg := s.Config()
	a := app.New()
	w := a.NewWindow(cfg.Window.Title)

	preview := NewPreview(s.Scene)
	controls := NewControls(s.Panel, w)
	s.Panel.SetPrompter(func(msg string) {
		dialog.ShowInformation(cfg.Window.Title, msg, w)
	})

	split := container.NewHSplit(preview, controls.Object())
	split.Offset = 0.72
	w.SetContent(split)
	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	done := make(chan struct{})
	w.SetOnClosed(func() {
		close(done)
		ticker.Stop()
		s.Dispose()
	})

	go func() {
		frame := 0
		width, height := 0, 0
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
			}
			frame++
			sync := frame%syncEvery == 0
			fyne.Do(func() {
				if s.Disposed() {
					return
				}
				if !s.Mounted() {
					s.Mount(surface{preview})
				}
				if pw, ph := preview.Pixels(); pw != width || ph != height {
					width, height = pw, ph
					s.Resize(width, height)
				}
				s.Tick()
				preview.Refresh()
				if sync {
					controls.Sync()
				}
			})
		}
	}()

	w.ShowAndRun()
}
