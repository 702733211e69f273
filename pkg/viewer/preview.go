package viewer

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/modelview/pkg/scene"
)

const zoomStep = 0.95

// Preview is a fyne widget that software-renders a scene and feeds mouse
// input into its orbit controller
type Preview struct {
	widget.BaseWidget
	scene  *scene.Scene
	raster *canvas.Raster
	frame  *Frame

	panning bool
}

// NewPreview creates a preview of sc
func NewPreview(sc *scene.Scene) *Preview {
	p := &Preview{scene: sc}
	p.raster = canvas.NewRaster(p.draw)
	p.ExtendBaseWidget(p)
	return p
}

// Pixels reports the widget size for session mounting
func (p *Preview) Pixels() (int, int) {
	s := p.BaseWidget.Size()
	return int(s.Width), int(s.Height)
}

// draw is the raster generator; it reuses the frame while the size holds
func (p *Preview) draw(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	if p.frame == nil || p.frame.width != w || p.frame.height != h {
		p.frame = NewFrame(w, h, p.scene.Background.RGBA())
	}
	Render(p.scene, p.frame)
	return p.frame.Image
}

// CreateRenderer implements fyne.Widget
func (p *Preview) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.raster)
}

// MinSize keeps the preview usable next to the control panel
func (p *Preview) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

// MouseDown selects rotate or pan for the coming drag
func (p *Preview) MouseDown(e *desktop.MouseEvent) {
	p.panning = e.Button == desktop.MouseButtonSecondary || e.Modifier&fyne.KeyModifierShift != 0
}

// MouseUp implements desktop.Mouseable
func (p *Preview) MouseUp(*desktop.MouseEvent) {}

// Dragged rotates or pans the orbit
func (p *Preview) Dragged(e *fyne.DragEvent) {
	height := float64(p.BaseWidget.Size().Height)
	if height <= 0 {
		return
	}
	dx := float64(e.Dragged.DX) / height
	dy := float64(e.Dragged.DY) / height
	if p.panning {
		p.scene.Orbit.Pan(p.scene.Camera, 2*dx, 2*dy)
		return
	}
	p.scene.Orbit.Rotate(2*math.Pi*dx, 2*math.Pi*dy)
}

// DragEnd implements fyne.Draggable
func (p *Preview) DragEnd() {
	p.panning = false
}

// Scrolled zooms the orbit
func (p *Preview) Scrolled(e *fyne.ScrollEvent) {
	if e.Scrolled.DY == 0 {
		return
	}
	steps := float64(e.Scrolled.DY) / 10
	p.scene.Orbit.Zoom(math.Pow(zoomStep, steps))
}
