package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrSurfaceTooSmall is returned when a canvas would have no drawable cell
var ErrSurfaceTooSmall = errors.New("surface too small")

// Braille cell geometry: each terminal cell carries a 2x4 dot matrix
const (
	DotsX       = 2
	DotsY       = 4
	brailleBase = 0x2800
)

// brailleBits maps dot (x, y) inside a cell to its Unicode braille bit
var brailleBits = [DotsX][DotsY]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// Canvas is a pixel surface rasterised onto braille cells
// Pixel coordinates are floats; (0,0) is the top-left dot. Each cell keeps the strongest color drawn into it
type Canvas struct {
	cols, rows int
	dots       []uint8
	color      []colorful.Color
	alpha      []float64
	bg         colorful.Color
}

// NewCanvas creates a canvas of cols x rows terminal cells
func NewCanvas(cols, rows int) (*Canvas, error) {
	c := &Canvas{bg: colorful.Color{}}
	if err := c.Resize(cols, rows); err != nil {
		return nil, err
	}
	return c, nil
}

// Resize changes the cell dimensions, reallocating only when capacity is insufficient, and clears
func (c *Canvas) Resize(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return fmt.Errorf("canvas %dx%d: %w", cols, rows, ErrSurfaceTooSmall)
	}
	size := cols * rows
	if cap(c.dots) < size {
		c.dots = make([]uint8, size)
		c.color = make([]colorful.Color, size)
		c.alpha = make([]float64, size)
	} else {
		c.dots = c.dots[:size]
		c.color = c.color[:size]
		c.alpha = c.alpha[:size]
	}
	c.cols, c.rows = cols, rows
	c.Clear()
	return nil
}

// Cells returns the dimensions in terminal cells
func (c *Canvas) Cells() (cols, rows int) {
	return c.cols, c.rows
}

// Size returns the dimensions in pixels
func (c *Canvas) Size() (w, h float64) {
	return float64(c.cols * DotsX), float64(c.rows * DotsY)
}

// SetBackground sets the color translucent pixels are blended onto
func (c *Canvas) SetBackground(bg colorful.Color) {
	c.bg = bg
}

// Clear erases every pixel
func (c *Canvas) Clear() {
	clear(c.dots)
	clear(c.alpha)
}

// Plot lights the dot containing (x, y); out of bounds points are dropped
func (c *Canvas) Plot(x, y float64, col colorful.Color, alpha float64) {
	if alpha <= 0 || x < 0 || y < 0 {
		return
	}
	px, py := int(x), int(y)
	cx, cy := px/DotsX, py/DotsY
	if cx >= c.cols || cy >= c.rows {
		return
	}
	idx := cy*c.cols + cx
	c.dots[idx] |= brailleBits[px%DotsX][py%DotsY]
	if alpha > c.alpha[idx] {
		c.alpha[idx] = min(alpha, 1)
		c.color[idx] = col
	}
}

// FillCircle lights every dot whose center lies inside the circle, at least the center dot
func (c *Canvas) FillCircle(cx, cy, r float64, col colorful.Color, alpha float64) {
	c.Plot(cx, cy, col, alpha)
	if r <= 0 {
		return
	}
	r2 := r * r
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for py := y0; py <= y1; py++ {
		dy := float64(py) + 0.5 - cy
		for px := x0; px <= x1; px++ {
			dx := float64(px) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				c.Plot(float64(px), float64(py), col, alpha)
			}
		}
	}
}

// Line draws a segment with one dot per pixel step along the major axis
func (c *Canvas) Line(x0, y0, x1, y1 float64, col colorful.Color, alpha float64) {
	dx, dy := x1-x0, y1-y0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		c.Plot(x0, y0, col, alpha)
		return
	}
	sx, sy := dx/float64(steps), dy/float64(steps)
	for i := 0; i <= steps; i++ {
		c.Plot(x0+sx*float64(i), y0+sy*float64(i), col, alpha)
	}
}

// Cell returns the braille rune and blended color of a cell; ok is false for an empty cell
func (c *Canvas) Cell(col, row int) (r rune, fg colorful.Color, ok bool) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return 0, colorful.Color{}, false
	}
	idx := row*c.cols + col
	if c.dots[idx] == 0 {
		return 0, colorful.Color{}, false
	}
	return rune(brailleBase + int(c.dots[idx])), c.bg.BlendRgb(c.color[idx], c.alpha[idx]).Clamped(), true
}

// Lit counts non-empty cells
func (c *Canvas) Lit() int {
	n := 0
	for _, d := range c.dots {
		if d != 0 {
			n++
		}
	}
	return n
}

// Draw writes non-empty cells to screen with the top-left cell at (x, y)
// Rows are clipped to [clipTop, clipBottom); empty cells are left untouched so text underneath survives
func (c *Canvas) Draw(screen tcell.Screen, x, y, clipTop, clipBottom int, base tcell.Style) {
	for row := 0; row < c.rows; row++ {
		sy := y + row
		if sy < clipTop || sy >= clipBottom {
			continue
		}
		for col := 0; col < c.cols; col++ {
			r, fg, ok := c.Cell(col, row)
			if !ok {
				continue
			}
			screen.SetContent(x+col, sy, r, nil, base.Foreground(ToTcell(fg)))
		}
	}
}

// ToTcell converts a colorful color to a 24-bit tcell color
func ToTcell(col colorful.Color) tcell.Color {
	r, g, b := col.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
