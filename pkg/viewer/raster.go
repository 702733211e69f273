package viewer

import (
	"image"
	"image/color"
	"math"
)

// Frame is a color buffer with a matching depth buffer
type Frame struct {
	Image  *image.RGBA
	Depth  []float64
	width  int
	height int
}

// NewFrame allocates a frame cleared to bg with infinite depth
func NewFrame(width, height int, bg color.RGBA) *Frame {
	f := &Frame{
		Image:  image.NewRGBA(image.Rect(0, 0, width, height)),
		Depth:  make([]float64, width*height),
		width:  width,
		height: height,
	}
	f.Clear(bg)
	return f
}

// Clear resets every pixel to bg and every depth to +Inf
func (f *Frame) Clear(bg color.RGBA) {
	pix := f.Image.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = bg.R
		pix[i+1] = bg.G
		pix[i+2] = bg.B
		pix[i+3] = bg.A
	}
	for i := range f.Depth {
		f.Depth[i] = math.Inf(1)
	}
}

// screenVertex is a projected vertex: pixel position plus view depth
type screenVertex struct {
	x, y, z float64
}

// fillTriangle scan-converts a triangle with depth testing; closer (smaller
// z) wins
func (f *Frame) fillTriangle(a, b, c screenVertex, col color.RGBA) {
	v := [3]screenVertex{a, b, c}
	if v[0].y > v[1].y {
		v[0], v[1] = v[1], v[0]
	}
	if v[1].y > v[2].y {
		v[1], v[2] = v[2], v[1]
	}
	if v[0].y > v[1].y {
		v[0], v[1] = v[1], v[0]
	}
	x1, y1, z1 := v[0].x, v[0].y, v[0].z
	x2, y2, z2 := v[1].x, v[1].y, v[1].z
	x3, y3, z3 := v[2].x, v[2].y, v[2].z

	yStart := int(math.Max(0, math.Ceil(y1)))
	yEnd := int(math.Min(float64(f.height-1), math.Floor(y3)))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		var xs, zs [2]float64
		n := 0
		edge := func(ax, ay, az, bx, by, bz float64) {
			if n == 2 || ay == by || fy < ay || fy > by {
				return
			}
			t := (fy - ay) / (by - ay)
			xs[n] = ax + t*(bx-ax)
			zs[n] = az + t*(bz-az)
			n++
		}
		edge(x1, y1, z1, x3, y3, z3)
		edge(x1, y1, z1, x2, y2, z2)
		edge(x2, y2, z2, x3, y3, z3)
		if n < 2 {
			continue
		}

		xStart, xEnd, zStart, zEnd := xs[0], xs[1], zs[0], zs[1]
		if xStart > xEnd {
			xStart, xEnd = xEnd, xStart
			zStart, zEnd = zEnd, zStart
		}

		from := int(math.Max(0, math.Ceil(xStart)))
		to := int(math.Min(float64(f.width-1), math.Floor(xEnd)))
		for x := from; x <= to; x++ {
			t := 0.0
			if xEnd != xStart {
				t = (float64(x) - xStart) / (xEnd - xStart)
			}
			z := zStart + t*(zEnd-zStart)
			idx := y*f.width + x
			if z < f.Depth[idx] {
				f.Depth[idx] = z
				f.Image.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a line using Bresenham's algorithm, ignoring depth
func (f *Frame) drawLine(x1, y1, x2, y2 int, col color.RGBA) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for steps := 0; steps <= dx+dy; steps++ {
		if x1 >= 0 && x1 < f.width && y1 >= 0 && y1 < f.height {
			f.Image.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
