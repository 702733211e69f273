package scene

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a linear RGB color with components in [0,1]
type Color struct {
	R, G, B float64
}

var (
	White = Color{1, 1, 1}
	Black = Color{0, 0, 0}
)

// Hex builds a color from a 0xRRGGBB value
func Hex(v uint32) Color {
	return Color{
		R: float64((v>>16)&0xff) / 255,
		G: float64((v>>8)&0xff) / 255,
		B: float64(v&0xff) / 255,
	}
}

// ParseColor accepts "#rrggbb", "0xrrggbb", "rrggbb" or a CSS color name
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := colornames.Map[s]; ok {
		return FromRGBA(c), nil
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Hex(uint32(v)), nil
}

// FromRGBA converts an 8-bit color
func FromRGBA(c color.RGBA) Color {
	return Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// RGBA converts to an opaque 8-bit color
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 255}
}

// String formats the color as #rrggbb
func (c Color) String() string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// Scale multiplies every channel by f
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f}
}

// Add sums two colors channel-wise
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Modulate multiplies two colors channel-wise
func (c Color) Modulate(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Floats returns the channels as float32 for shader uniforms
func (c Color) Floats() []float32 {
	return []float32{float32(c.R), float32(c.G), float32(c.B)}
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// MarshalYAML writes the color as #rrggbb
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}

// UnmarshalYAML reads any format accepted by ParseColor
func (c *Color) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
