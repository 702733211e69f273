package panel

import (
	"fmt"
	"math"

	"github.com/philipparndt/modelview/pkg/scene"
)

// unchangedEpsilon is the share of a slider's range below which a write
// counts as the current value
const unchangedEpsilon = 1e-9

// Float returns the slider's current value
func (c *Control) Float() float64 {
	if c.getFloat == nil {
		return 0
	}
	return c.getFloat()
}

// SetFloat clamps v to the slider range, snaps it to Step and writes it.
// Writing the current value is a no-op.
func (c *Control) SetFloat(v float64) {
	if c.setFloat == nil || c.destroyed {
		return
	}
	v = c.Clamp(v)
	if c.getFloat != nil && math.Abs(v-c.getFloat()) <= unchangedEpsilon*(c.Max-c.Min) {
		return
	}
	c.setFloat(v)
}

// Clamp limits v to [Min, Max] and snaps it to Step when set
func (c *Control) Clamp(v float64) float64 {
	if c.Step > 0 {
		v = c.Min + math.Round((v-c.Min)/c.Step)*c.Step
	}
	return math.Max(c.Min, math.Min(c.Max, v))
}

// Fraction returns the slider position in [0,1]
func (c *Control) Fraction() float64 {
	if c.Max == c.Min {
		return 0
	}
	return math.Max(0, math.Min(1, (c.Float()-c.Min)/(c.Max-c.Min)))
}

// SetFraction sets the slider from a position in [0,1]
func (c *Control) SetFraction(f float64) {
	c.SetFloat(c.Min + f*(c.Max-c.Min))
}

// Format prints the slider value with as many decimals as Step needs
func (c *Control) Format() string {
	v := c.Float()
	switch {
	case c.Step >= 1:
		return fmt.Sprintf("%.0f", v)
	case c.Step >= 0.1:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// Bool returns the toggle's state
func (c *Control) Bool() bool {
	if c.getBool == nil {
		return false
	}
	return c.getBool()
}

// SetBool writes the toggle's state
func (c *Control) SetBool(v bool) {
	if c.setBool == nil || c.destroyed {
		return
	}
	c.setBool(v)
}

// ColorValue returns the current color
func (c *Control) ColorValue() scene.Color {
	if c.getColor == nil {
		return scene.Color{}
	}
	return c.getColor()
}

// SetColor writes a color
func (c *Control) SetColor(v scene.Color) {
	if c.setColor == nil || c.destroyed {
		return
	}
	c.setColor(v)
}

// String returns the text or info value
func (c *Control) String() string {
	if c.getString == nil {
		return ""
	}
	return c.getString()
}

// SetString writes a text value
func (c *Control) SetString(v string) {
	if c.setString == nil || c.destroyed {
		return
	}
	c.setString(v)
}

// Index returns the selected option
func (c *Control) Index() int {
	if c.getIndex == nil {
		return 0
	}
	return c.getIndex()
}

// SetIndex selects an option; out-of-range indexes are ignored
func (c *Control) SetIndex(i int) {
	if c.setIndex == nil || c.destroyed || i < 0 || i >= len(c.Options) {
		return
	}
	c.setIndex(i)
}

// Press runs a button's action
func (c *Control) Press() {
	if c.action == nil || c.destroyed {
		return
	}
	c.action()
}
