// Package panel is a toolkit-neutral control tree. Bindings create folders and
// controls whose getters and setters close over the bound state; frontends
// render the tree with whatever widgets they have.
package panel

import (
	"sync/atomic"

	"github.com/philipparndt/modelview/pkg/scene"
)

// Kind identifies what a control edits
type Kind int

const (
	KindFolder Kind = iota
	KindSlider
	KindToggle
	KindColor
	KindText
	KindSelect
	KindButton
	KindInfo
)

// Section is the handle a binding keeps for the subtree it created
type Section interface {
	Destroy()
}

// Control is one node of the tree. Folders hold children; every other kind
// is a leaf bound through getter/setter closures.
type Control struct {
	Kind  Kind
	Label string
	Open  bool

	Min, Max, Step float64
	Options        []string

	getFloat  func() float64
	setFloat  func(float64)
	getBool   func() bool
	setBool   func(bool)
	getColor  func() scene.Color
	setColor  func(scene.Color)
	getString func() string
	setString func(string)
	getIndex  func() int
	setIndex  func(int)
	action    func()

	panel     *Panel
	parent    *Control
	children  []*Control
	destroyed bool
}

// Panel owns the root folder and tracks structural changes
type Panel struct {
	root     *Control
	version  atomic.Uint64
	prompter func(string)
	prompts  []string
}

// New creates an empty panel
func New() *Panel {
	p := &Panel{}
	p.root = &Control{Kind: KindFolder, Open: true, panel: p}
	return p
}

// Root returns the top-level folder
func (p *Panel) Root() *Control {
	return p.root
}

// Version increases whenever controls are added or removed. Retained-mode
// frontends rebuild their widgets when it changes.
func (p *Panel) Version() uint64 {
	return p.version.Load()
}

// SetPrompter installs the blocking prompt used for validation messages.
// Without one, prompts queue until TakePrompt is called.
func (p *Panel) SetPrompter(fn func(message string)) {
	p.prompter = fn
}

// Prompt shows message to the user
func (p *Panel) Prompt(message string) {
	if p.prompter != nil {
		p.prompter(message)
		return
	}
	p.prompts = append(p.prompts, message)
}

// TakePrompt pops the oldest queued prompt
func (p *Panel) TakePrompt() (string, bool) {
	if len(p.prompts) == 0 {
		return "", false
	}
	msg := p.prompts[0]
	p.prompts = p.prompts[1:]
	return msg, true
}

func (p *Panel) changed() {
	p.version.Add(1)
}

// Children returns a copy of the folder's controls
func (c *Control) Children() []*Control {
	out := make([]*Control, len(c.children))
	copy(out, c.children)
	return out
}

// Parent returns the enclosing folder
func (c *Control) Parent() *Control {
	return c.parent
}

// Destroyed reports whether the control has been removed from its panel
func (c *Control) Destroyed() bool {
	return c.destroyed
}

// Find returns the direct child folder titled label
func (c *Control) Find(label string) *Control {
	for _, child := range c.children {
		if child.Kind == KindFolder && child.Label == label {
			return child
		}
	}
	return nil
}

// Lookup returns the direct child control named label of any kind
func (c *Control) Lookup(label string) *Control {
	for _, child := range c.children {
		if child.Label == label {
			return child
		}
	}
	return nil
}

// Destroy removes the control and its subtree from the panel. Calling it
// again is a no-op.
func (c *Control) Destroy() {
	if c.destroyed || c.parent == nil {
		return
	}
	siblings := c.parent.children
	for i, s := range siblings {
		if s == c {
			c.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	c.markDestroyed()
	c.panel.changed()
}

func (c *Control) markDestroyed() {
	c.destroyed = true
	for _, child := range c.children {
		child.markDestroyed()
	}
}

func (c *Control) add(child *Control) *Control {
	child.panel = c.panel
	child.parent = c
	c.children = append(c.children, child)
	c.panel.changed()
	return child
}

// Folder adds a nested folder
func (c *Control) Folder(title string) *Control {
	return c.add(&Control{Kind: KindFolder, Label: title, Open: true})
}

// Section adds a nested folder and returns only its destroy handle
func (c *Control) Section(title string) (*Control, Section) {
	f := c.Folder(title)
	return f, f
}

// Slider adds a numeric control over [min, max]
func (c *Control) Slider(label string, min, max, step float64, get func() float64, set func(float64)) *Control {
	return c.add(&Control{Kind: KindSlider, Label: label, Min: min, Max: max, Step: step, getFloat: get, setFloat: set})
}

// Toggle adds a boolean control
func (c *Control) Toggle(label string, get func() bool, set func(bool)) *Control {
	return c.add(&Control{Kind: KindToggle, Label: label, getBool: get, setBool: set})
}

// Color adds a color control
func (c *Control) Color(label string, get func() scene.Color, set func(scene.Color)) *Control {
	return c.add(&Control{Kind: KindColor, Label: label, getColor: get, setColor: set})
}

// Text adds a free text field
func (c *Control) Text(label string, get func() string, set func(string)) *Control {
	return c.add(&Control{Kind: KindText, Label: label, getString: get, setString: set})
}

// Select adds a choice among options
func (c *Control) Select(label string, options []string, get func() int, set func(int)) *Control {
	return c.add(&Control{Kind: KindSelect, Label: label, Options: options, getIndex: get, setIndex: set})
}

// Button adds an action
func (c *Control) Button(label string, action func()) *Control {
	return c.add(&Control{Kind: KindButton, Label: label, action: action})
}

// Info adds a read-only line whose text is re-read on every draw
func (c *Control) Info(label string, get func() string) *Control {
	return c.add(&Control{Kind: KindInfo, Label: label, getString: get})
}
