package app

import (
	"fmt"
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/modelview/internal/panel"
	"github.com/philipparndt/modelview/pkg/scene"
)

// Layout constants
const (
	panelWidth         = 330
	panelMargin        = 10
	panelPadding       = 12
	rowHeight          = 24
	indentWidth        = 10
	labelWidth         = 112
	valueWidth         = 44
	sliderHeight       = 8
	sliderHandleRadius = 6
	fontSize           = 12
	fontSpacing        = 1
)

var (
	panelBg       = rl.NewColor(20, 25, 35, 230)
	panelBorder   = rl.NewColor(80, 160, 255, 255)
	folderColor   = rl.NewColor(100, 200, 255, 255)
	trackBg       = rl.NewColor(40, 45, 55, 255)
	trackHover    = rl.NewColor(50, 55, 65, 255)
	accentColor   = rl.NewColor(80, 160, 255, 255)
	channelColors = [3]rl.Color{rl.NewColor(230, 80, 80, 255), rl.NewColor(80, 200, 80, 255), rl.NewColor(80, 120, 240, 255)}
)

// panelView renders a panel.Panel as an immediate-mode overlay. Layout and
// hit testing happen in the same pass; button presses are deferred until the
// pass is done because they may restructure the tree.
type panelView struct {
	panel *panel.Panel
	font  rl.Font

	bounds        rl.Rectangle
	scroll        float32
	contentHeight float32

	active        *panel.Control
	activeChannel int
	focused       *panel.Control
	expanded      map[*panel.Control]bool

	mouse    rl.Vector2
	pressed  bool
	released bool
	pending  []*panel.Control
	y        float32
}

func newPanelView(p *panel.Panel, font rl.Font) *panelView {
	return &panelView{panel: p, font: font, expanded: make(map[*panel.Control]bool)}
}

// Contains reports whether pt is over the panel
func (v *panelView) Contains(pt rl.Vector2) bool {
	return rl.CheckCollisionPointRec(pt, v.bounds)
}

// Typing reports whether a text field has keyboard focus
func (v *panelView) Typing() bool {
	return v.focused != nil
}

// Captured reports whether the panel owns the current drag
func (v *panelView) Captured() bool {
	return v.active != nil
}

// Draw lays out, draws and handles input for the whole tree
func (v *panelView) Draw() {
	screenHeight := float32(rl.GetScreenHeight())
	screenWidth := float32(rl.GetScreenWidth())
	v.bounds = rl.Rectangle{
		X:      screenWidth - panelWidth - panelMargin,
		Y:      panelMargin,
		Width:  panelWidth,
		Height: screenHeight - panelMargin*2,
	}

	v.mouse = rl.GetMousePosition()
	v.pressed = rl.IsMouseButtonPressed(rl.MouseLeftButton)
	v.released = rl.IsMouseButtonReleased(rl.MouseLeftButton)
	if v.released {
		v.active = nil
	}
	if v.active != nil && v.active.Destroyed() {
		v.active = nil
	}
	if v.focused != nil && v.focused.Destroyed() {
		v.focused = nil
	}
	if v.pressed && !v.Contains(v.mouse) {
		v.focused = nil
	}

	if v.Contains(v.mouse) {
		v.scroll -= rl.GetMouseWheelMove() * rowHeight * 2
	}
	maxScroll := float32(math.Max(0, float64(v.contentHeight-v.bounds.Height+panelPadding*2)))
	v.scroll = float32(math.Max(0, math.Min(float64(v.scroll), float64(maxScroll))))

	rl.DrawRectangleRounded(v.bounds, 0.02, 8, panelBg)
	rl.DrawRectangleRoundedLines(v.bounds, 0.02, 8, panelBorder)

	rl.BeginScissorMode(int32(v.bounds.X), int32(v.bounds.Y), int32(v.bounds.Width), int32(v.bounds.Height))
	v.y = v.bounds.Y + panelPadding - v.scroll
	start := v.y
	for _, c := range v.panel.Root().Children() {
		v.drawControl(c, 0)
	}
	v.contentHeight = v.y - start
	rl.EndScissorMode()

	v.handleTyping()

	pending := v.pending
	v.pending = nil
	for _, c := range pending {
		c.Press()
	}
}

func (v *panelView) drawControl(c *panel.Control, depth int) {
	x := v.bounds.X + panelPadding + float32(depth*indentWidth)
	width := v.bounds.X + v.bounds.Width - panelPadding - x
	row := rl.Rectangle{X: x, Y: v.y, Width: width, Height: rowHeight}

	switch c.Kind {
	case panel.KindFolder:
		v.drawFolder(c, row, depth)
		return
	case panel.KindSlider:
		v.drawSlider(c, row)
	case panel.KindToggle:
		v.drawToggle(c, row)
	case panel.KindColor:
		v.drawColor(c, row)
	case panel.KindText:
		v.drawText(c, row)
	case panel.KindSelect:
		v.drawSelect(c, row)
	case panel.KindButton:
		v.drawButton(c, row)
	case panel.KindInfo:
		v.drawInfo(c, row)
		return
	}
	v.y += rowHeight
}

func (v *panelView) drawFolder(c *panel.Control, row rl.Rectangle, depth int) {
	marker := "+"
	if c.Open {
		marker = "-"
	}
	if v.clicked(row) {
		c.Open = !c.Open
	}
	size := float32(fontSize + 2)
	if depth > 0 {
		size = fontSize + 1
	}
	v.text(marker+" "+strings.ToUpper(c.Label), row.X, row.Y+5, size, folderColor)
	v.y += rowHeight
	if !c.Open {
		return
	}
	for _, child := range c.Children() {
		v.drawControl(child, depth+1)
	}
	v.y += 4
}

func (v *panelView) drawSlider(c *panel.Control, row rl.Rectangle) {
	v.label(c.Label, row)
	track := v.track(row)
	fraction := c.Fraction()
	if v.pressed && rl.CheckCollisionPointRec(v.mouse, grow(track, sliderHandleRadius)) {
		v.active = c
		v.activeChannel = -1
	}
	if v.active == c && v.activeChannel == -1 {
		if f := v.dragFraction(track); f != fraction {
			c.SetFraction(f)
			fraction = c.Fraction()
		}
	}
	v.drawTrack(track, float32(fraction), accentColor, v.active == c)
	v.text(c.Format(), track.X+track.Width+8, row.Y+5, fontSize, rl.LightGray)
}

func (v *panelView) drawToggle(c *panel.Control, row rl.Rectangle) {
	v.label(c.Label, row)
	box := rl.Rectangle{X: row.X + labelWidth, Y: row.Y + 5, Width: 14, Height: 14}
	if v.clicked(grow(box, 3)) {
		c.SetBool(!c.Bool())
	}
	rl.DrawRectangleRec(box, trackBg)
	rl.DrawRectangleLinesEx(box, 1, rl.LightGray)
	if c.Bool() {
		rl.DrawRectangleRec(grow(box, -3), accentColor)
	}
}

func (v *panelView) drawColor(c *panel.Control, row rl.Rectangle) {
	v.label(c.Label, row)
	value := c.ColorValue()
	swatch := rl.Rectangle{X: row.X + labelWidth, Y: row.Y + 4, Width: 28, Height: 16}
	if v.clicked(rl.Rectangle{X: swatch.X, Y: row.Y, Width: row.X + row.Width - swatch.X, Height: rowHeight}) {
		v.expanded[c] = !v.expanded[c]
	}
	rl.DrawRectangleRec(swatch, toRLColor(value))
	rl.DrawRectangleLinesEx(swatch, 1, rl.LightGray)
	v.text(value.String(), swatch.X+swatch.Width+8, row.Y+5, fontSize, rl.LightGray)

	if !v.expanded[c] {
		return
	}
	channels := [3]float64{value.R, value.G, value.B}
	for i, name := range [3]string{"R", "G", "B"} {
		v.y += rowHeight
		sub := rl.Rectangle{X: row.X + indentWidth, Y: v.y, Width: row.Width - indentWidth, Height: rowHeight}
		v.label(name, sub)
		track := v.track(sub)
		if v.pressed && rl.CheckCollisionPointRec(v.mouse, grow(track, sliderHandleRadius)) {
			v.active = c
			v.activeChannel = i
		}
		if v.active == c && v.activeChannel == i {
			channels[i] = math.Round(v.dragFraction(track)*255) / 255
			c.SetColor(scene.Color{R: channels[0], G: channels[1], B: channels[2]})
		}
		v.drawTrack(track, float32(channels[i]), channelColors[i], v.active == c && v.activeChannel == i)
		v.text(fmt.Sprintf("%d", int(math.Round(channels[i]*255))), track.X+track.Width+8, sub.Y+5, fontSize, rl.LightGray)
	}
}

func (v *panelView) drawText(c *panel.Control, row rl.Rectangle) {
	v.label(c.Label, row)
	box := rl.Rectangle{X: row.X + labelWidth, Y: row.Y + 2, Width: row.Width - labelWidth, Height: rowHeight - 4}
	if v.clicked(box) {
		v.focused = c
	}
	rl.DrawRectangleRec(box, trackBg)
	border := rl.Gray
	if v.focused == c {
		border = accentColor
	}
	rl.DrawRectangleLinesEx(box, 1, border)

	value := c.String()
	if v.focused == c && int(rl.GetTime()*2)%2 == 0 {
		value += "_"
	}
	v.text(fitLeft(v.font, value, box.Width-8), box.X+4, box.Y+4, fontSize, rl.RayWhite)
}

func (v *panelView) drawSelect(c *panel.Control, row rl.Rectangle) {
	v.label(c.Label, row)
	box := rl.Rectangle{X: row.X + labelWidth, Y: row.Y + 2, Width: row.Width - labelWidth, Height: rowHeight - 4}
	n := len(c.Options)
	if n > 0 && v.clicked(box) {
		step := 1
		if v.mouse.X < box.X+box.Width/2 {
			step = n - 1
		}
		c.SetIndex((c.Index() + step) % n)
	}
	bg := trackBg
	if rl.CheckCollisionPointRec(v.mouse, box) {
		bg = trackHover
	}
	rl.DrawRectangleRounded(box, 0.3, 8, bg)
	current := ""
	if i := c.Index(); i >= 0 && i < n {
		current = c.Options[i]
	}
	v.text("<", box.X+6, box.Y+4, fontSize, rl.LightGray)
	v.text(">", box.X+box.Width-12, box.Y+4, fontSize, rl.LightGray)
	v.text(fitLeft(v.font, current, box.Width-36), box.X+18, box.Y+4, fontSize, rl.RayWhite)
}

func (v *panelView) drawButton(c *panel.Control, row rl.Rectangle) {
	box := rl.Rectangle{X: row.X, Y: row.Y + 2, Width: row.Width, Height: rowHeight - 4}
	if v.clicked(box) {
		v.pending = append(v.pending, c)
	}
	bg := trackBg
	if rl.CheckCollisionPointRec(v.mouse, box) {
		bg = trackHover
	}
	rl.DrawRectangleRounded(box, 0.3, 8, bg)
	rl.DrawRectangleRoundedLines(box, 0.3, 8, accentColor)
	size := rl.MeasureTextEx(v.font, c.Label, fontSize, fontSpacing)
	v.text(c.Label, box.X+(box.Width-size.X)/2, box.Y+(box.Height-size.Y)/2, fontSize, rl.RayWhite)
}

func (v *panelView) drawInfo(c *panel.Control, row rl.Rectangle) {
	lines := strings.Split(c.String(), "\n")
	if len(lines) == 1 {
		v.label(c.Label, row)
		v.text(fitLeft(v.font, lines[0], row.Width-labelWidth), row.X+labelWidth, row.Y+5, fontSize, rl.RayWhite)
		v.y += rowHeight
		return
	}
	v.label(c.Label, row)
	v.y += rowHeight
	for _, line := range lines {
		v.text(fitLeft(v.font, line, row.Width), row.X, v.y, fontSize-2, rl.LightGray)
		v.y += fontSize
	}
	v.y += 4
}

// handleTyping feeds keyboard input into the focused text field
func (v *panelView) handleTyping() {
	c := v.focused
	if c == nil {
		return
	}
	value := c.String()
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		value += string(rune(r))
	}
	if (rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace)) && value != "" {
		runes := []rune(value)
		value = string(runes[:len(runes)-1])
	}
	if rl.IsKeyDown(rl.KeyLeftControl) && rl.IsKeyPressed(rl.KeyV) {
		value += strings.TrimSpace(rl.GetClipboardText())
	}
	if value != c.String() {
		c.SetString(value)
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyTab) {
		v.focused = nil
	}
}

func (v *panelView) clicked(r rl.Rectangle) bool {
	return v.pressed && v.active == nil && rl.CheckCollisionPointRec(v.mouse, r) && v.visible(r)
}

// visible ignores hits on rows scrolled outside the panel
func (v *panelView) visible(r rl.Rectangle) bool {
	return r.Y+r.Height > v.bounds.Y && r.Y < v.bounds.Y+v.bounds.Height
}

func (v *panelView) label(text string, row rl.Rectangle) {
	v.text(fitLeft(v.font, text, labelWidth-6), row.X, row.Y+5, fontSize, rl.LightGray)
}

func (v *panelView) text(s string, x, y, size float32, c rl.Color) {
	rl.DrawTextEx(v.font, s, rl.Vector2{X: x, Y: y}, size, fontSpacing, c)
}

func (v *panelView) track(row rl.Rectangle) rl.Rectangle {
	return rl.Rectangle{
		X:      row.X + labelWidth,
		Y:      row.Y + (rowHeight-sliderHeight)/2,
		Width:  row.Width - labelWidth - valueWidth,
		Height: sliderHeight,
	}
}

func (v *panelView) dragFraction(track rl.Rectangle) float64 {
	if track.Width <= 0 {
		return 0
	}
	f := float64((v.mouse.X - track.X) / track.Width)
	return math.Max(0, math.Min(1, f))
}

// drawTrack draws a rounded track, its filled portion and the handle
func (v *panelView) drawTrack(track rl.Rectangle, fraction float32, color rl.Color, dragging bool) {
	hovered := rl.CheckCollisionPointRec(v.mouse, grow(track, sliderHandleRadius))
	bg := trackBg
	if hovered {
		bg = trackHover
	}
	rl.DrawRectangleRounded(track, 0.5, 8, bg)

	handleX := track.X + fraction*track.Width
	fill := color
	fill.A = 100
	rl.DrawRectangleRounded(rl.Rectangle{X: track.X, Y: track.Y, Width: handleX - track.X, Height: track.Height}, 0.5, 8, fill)

	handleColor := color
	if dragging {
		handleColor = rl.White
	} else if hovered {
		handleColor.R = uint8(math.Min(float64(handleColor.R)+30, 255))
		handleColor.G = uint8(math.Min(float64(handleColor.G)+30, 255))
		handleColor.B = uint8(math.Min(float64(handleColor.B)+30, 255))
	}
	handleY := track.Y + track.Height/2
	rl.DrawCircleV(rl.Vector2{X: handleX, Y: handleY}, sliderHandleRadius, handleColor)
	rl.DrawCircleLines(int32(handleX), int32(handleY), sliderHandleRadius, rl.NewColor(255, 255, 255, 150))
}

func grow(r rl.Rectangle, by float32) rl.Rectangle {
	return rl.Rectangle{X: r.X - by, Y: r.Y - by, Width: r.Width + by*2, Height: r.Height + by*2}
}

// fitLeft trims s from the left until it fits width, keeping the tail
// visible the way text fields scroll
func fitLeft(font rl.Font, s string, width float32) string {
	if width <= 0 {
		return ""
	}
	if rl.MeasureTextEx(font, s, fontSize, fontSpacing).X <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[1:]
		t := "..." + string(runes)
		if rl.MeasureTextEx(font, t, fontSize, fontSpacing).X <= width {
			return t
		}
	}
	return ""
}
