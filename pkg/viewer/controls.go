package viewer

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/modelview/internal/panel"
	"github.com/philipparndt/modelview/pkg/scene"
)

// Controls mirrors a panel.Panel as fyne widgets. The widget tree is rebuilt
// when the panel structure changes; Sync pulls bound values into it.
type Controls struct {
	panel  *panel.Panel
	window fyne.Window
	box    *fyne.Container

	version uint64
	syncers []func()
	syncing bool
}

// NewControls builds the widgets for p. window parents the color dialogs.
func NewControls(p *panel.Panel, window fyne.Window) *Controls {
	c := &Controls{panel: p, window: window, box: container.NewVBox()}
	c.rebuild()
	return c
}

// Object returns the scrollable widget tree
func (c *Controls) Object() fyne.CanvasObject {
	return container.NewVScroll(c.box)
}

// Sync rebuilds after structural changes and refreshes every widget from its
// bound getter
func (c *Controls) Sync() {
	if c.panel.Version() != c.version {
		c.rebuild()
		return
	}
	c.syncing = true
	for _, fn := range c.syncers {
		fn()
	}
	c.syncing = false
}

func (c *Controls) rebuild() {
	c.version = c.panel.Version()
	c.syncers = nil
	c.syncing = true
	defer func() { c.syncing = false }()

	var items []*widget.AccordionItem
	for _, folder := range c.panel.Root().Children() {
		if folder.Kind != panel.KindFolder {
			continue
		}
		item := widget.NewAccordionItem(folder.Label, c.folder(folder))
		item.Open = folder.Open
		items = append(items, item)
	}
	acc := widget.NewAccordion(items...)
	acc.MultiOpen = true
	c.box.Objects = []fyne.CanvasObject{acc}
	c.box.Refresh()
}

func (c *Controls) folder(f *panel.Control) fyne.CanvasObject {
	form := widget.NewForm()
	var nested []fyne.CanvasObject
	for _, ctl := range f.Children() {
		if ctl.Kind == panel.KindFolder {
			nested = append(nested, widget.NewCard("", ctl.Label, c.folder(ctl)))
			continue
		}
		if ctl.Kind == panel.KindButton {
			nested = append(nested, c.button(ctl))
			continue
		}
		form.Append(ctl.Label, c.control(ctl))
	}
	return container.NewVBox(append([]fyne.CanvasObject{form}, nested...)...)
}

func (c *Controls) control(ctl *panel.Control) fyne.CanvasObject {
	switch ctl.Kind {
	case panel.KindSlider:
		return c.slider(ctl)
	case panel.KindToggle:
		return c.toggle(ctl)
	case panel.KindColor:
		return c.color(ctl)
	case panel.KindText:
		return c.text(ctl)
	case panel.KindSelect:
		return c.selector(ctl)
	default:
		return c.info(ctl)
	}
}

func (c *Controls) slider(ctl *panel.Control) fyne.CanvasObject {
	s := widget.NewSlider(ctl.Min, ctl.Max)
	s.Step = ctl.Step
	if s.Step == 0 {
		s.Step = (ctl.Max - ctl.Min) / 1000
	}
	s.Value = ctl.Float()
	value := widget.NewLabel(ctl.Format())
	s.OnChanged = func(v float64) {
		if c.syncing {
			return
		}
		ctl.SetFloat(v)
		value.SetText(ctl.Format())
	}
	c.syncers = append(c.syncers, func() {
		if v := ctl.Float(); v != s.Value {
			s.SetValue(v)
			value.SetText(ctl.Format())
		}
	})
	return container.NewBorder(nil, nil, nil, value, s)
}

func (c *Controls) toggle(ctl *panel.Control) fyne.CanvasObject {
	check := widget.NewCheck("", func(v bool) {
		if !c.syncing {
			ctl.SetBool(v)
		}
	})
	check.Checked = ctl.Bool()
	c.syncers = append(c.syncers, func() {
		if v := ctl.Bool(); v != check.Checked {
			check.SetChecked(v)
		}
	})
	return check
}

func (c *Controls) color(ctl *panel.Control) fyne.CanvasObject {
	swatch := canvas.NewRectangle(ctl.ColorValue().RGBA())
	swatch.SetMinSize(fyne.NewSize(28, 18))
	label := widget.NewLabel(ctl.ColorValue().String())
	pick := widget.NewButton("Pick", func() {
		d := dialog.NewColorPicker(ctl.Label, "", func(col color.Color) {
			r, g, b, _ := col.RGBA()
			ctl.SetColor(scene.FromRGBA(color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}))
		}, c.window)
		d.Advanced = true
		d.SetColor(ctl.ColorValue().RGBA())
		d.Show()
	})
	c.syncers = append(c.syncers, func() {
		v := ctl.ColorValue()
		if label.Text != v.String() {
			swatch.FillColor = v.RGBA()
			swatch.Refresh()
			label.SetText(v.String())
		}
	})
	return container.NewHBox(swatch, label, pick)
}

func (c *Controls) text(ctl *panel.Control) fyne.CanvasObject {
	entry := widget.NewEntry()
	entry.SetText(ctl.String())
	entry.OnChanged = func(v string) {
		if !c.syncing {
			ctl.SetString(v)
		}
	}
	c.syncers = append(c.syncers, func() {
		if v := ctl.String(); v != entry.Text {
			entry.SetText(v)
		}
	})
	return entry
}

func (c *Controls) selector(ctl *panel.Control) fyne.CanvasObject {
	sel := widget.NewSelect(ctl.Options, nil)
	if i := ctl.Index(); i >= 0 && i < len(ctl.Options) {
		sel.Selected = ctl.Options[i]
	}
	sel.OnChanged = func(string) {
		if !c.syncing {
			ctl.SetIndex(sel.SelectedIndex())
		}
	}
	c.syncers = append(c.syncers, func() {
		if i := ctl.Index(); i != sel.SelectedIndex() && i >= 0 && i < len(ctl.Options) {
			sel.SetSelectedIndex(i)
		}
	})
	return sel
}

func (c *Controls) button(ctl *panel.Control) fyne.CanvasObject {
	return widget.NewButton(ctl.Label, ctl.Press)
}

func (c *Controls) info(ctl *panel.Control) fyne.CanvasObject {
	label := widget.NewLabel(ctl.String())
	label.Wrapping = fyne.TextWrapWord
	c.syncers = append(c.syncers, func() {
		if v := ctl.String(); v != label.Text {
			label.SetText(v)
		}
	})
	return label
}
