package viz

import (
	"math"
	"strings"
)

// Braille cells pack a 2x4 dot grid per character, unicode offset
// 0x2800. Dot bit layout:
// 1 4
// 2 5
// 3 6
// 7 8
var dotMask = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille pixel buffer. Cell size is Width x Height
// characters; the drawable surface is (Width*2) x (Height*4) pixels.
type Canvas struct {
	Width, Height int
	grid          [][]rune

	// world-to-pixel transform
	scaleX, scaleY float64
}

func NewCanvas(w, h int, worldW, worldH float64) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.grid = make([][]rune, h)
	for i := range c.grid {
		c.grid[i] = make([]rune, w)
	}
	c.scaleX = float64(w*2) / worldW
	c.scaleY = float64(h*4) / worldH
	c.Clear()
	return c
}

func (c *Canvas) Clear() {
	for y := range c.grid {
		for x := range c.grid[y] {
			c.grid[y][x] = 0x2800
		}
	}
}

// Set lights the pixel at subpixel coordinates (x, y). Out-of-range
// pixels are dropped.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.grid[row][col] |= dotMask[y%4][x%2]
}

// Plot lights the pixel for a world-space point.
func (c *Canvas) Plot(wx, wy float64) {
	c.Set(int(wx*c.scaleX), int(wy*c.scaleY))
}

// Line draws a world-space segment with Bresenham stepping.
func (c *Canvas) Line(x1, y1, x2, y2 float64) {
	ax, ay := int(x1*c.scaleX), int(y1*c.scaleY)
	bx, by := int(x2*c.scaleX), int(y2*c.scaleY)

	dx, dy := abs(bx-ax), abs(by-ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	err := dx - dy
	for {
		c.Set(ax, ay)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

// Circle draws a world-space circle outline.
func (c *Canvas) Circle(wx, wy, r float64) {
	steps := int(math.Max(8, r*c.scaleX))
	for i := 0; i < steps; i++ {
		a := float64(i) / float64(steps) * 2 * math.Pi
		c.Plot(wx+r*math.Cos(a), wy+r*math.Sin(a))
	}
}

// Rect draws a world-space axis-aligned rectangle outline centered on
// (wx, wy).
func (c *Canvas) Rect(wx, wy, w, h float64) {
	x0, y0 := wx-w/2, wy-h/2
	x1, y1 := wx+w/2, wy+h/2
	c.Line(x0, y0, x1, y0)
	c.Line(x1, y0, x1, y1)
	c.Line(x1, y1, x0, y1)
	c.Line(x0, y1, x0, y0)
}

// Cross draws a small world-space marker.
func (c *Canvas) Cross(wx, wy float64) {
	px, py := int(wx*c.scaleX), int(wy*c.scaleY)
	for d := -2; d <= 2; d++ {
		c.Set(px+d, py)
		c.Set(px, py+d)
	}
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for _, row := range c.grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
