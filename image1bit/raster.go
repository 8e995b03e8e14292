package image1bit

import (
	"errors"
	"math"
)

// Line describes a segment in polar form: origin, angle in degrees and
// length in dots. Angle 0 points right; positive angles rotate up-screen
// (the y axis grows downward, so 90 is toward row 0).
type Line struct {
	X, Y   int
	Angle  float64
	Length float64
}

// Circle describes a circle by center, radius and fill.
type Circle struct {
	X, Y int
	R    int
	Fill bool
}

// Box describes an axis-aligned rectangle with an optional corner radius.
type Box struct {
	X, Y   int
	W, H   int
	Radius int
	Fill   bool
}

// CombineOp is a per-pixel merge operator. The values double as the
// display's write mix mode parameter.
type CombineOp uint8

// Combine operators.
const (
	OpNormal CombineOp = 0 // source replaces destination
	OpOr     CombineOp = 1
	OpAnd    CombineOp = 2
	OpXor    CombineOp = 3
)

func (o CombineOp) String() string {
	switch o {
	case OpNormal:
		return "Normal"
	case OpOr:
		return "Or"
	case OpAnd:
		return "And"
	case OpXor:
		return "Xor"
	}
	return "Unknown"
}

// DrawLine rasterizes l into b. The endpoint is derived from the polar form
// first, then the segment is walked with Bresenham's algorithm; dots falling
// outside the bitmap are clipped silently.
func DrawLine(b *Bitmap, l Line) {
	rad := l.Angle * math.Pi / 180
	x1 := l.X + int(math.Round(l.Length*math.Cos(rad)))
	y1 := l.Y - int(math.Round(l.Length*math.Sin(rad)))

	x0, y0 := l.X, l.Y
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	e := dx - dy
	for {
		b.SetBit(x0, y0, On)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x0 += sx
		}
		if e2 < dx {
			e += dx
			y0 += sy
		}
	}
}

// arcSpans returns, for each dy in 0..r, the widest dx on the midpoint
// circle of radius r. drawCircle and the rounded box corners share this
// table so arcs and fills always agree.
func arcSpans(r int) []int {
	spans := make([]int, r+1)
	x, y := r, 0
	e := 1 - r
	for x >= y {
		if x > spans[y] {
			spans[y] = x
		}
		if y > spans[x] {
			spans[x] = y
		}
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
	return spans
}

// DrawCircle rasterizes c into b with the midpoint circle algorithm. When
// c.Fill is set the horizontal span between each symmetric point pair is
// filled as well, so the filled dot set is a superset of the outline.
func DrawCircle(b *Bitmap, c Circle) {
	if c.R < 0 {
		return
	}
	if c.R == 0 {
		b.SetBit(c.X, c.Y, On)
		return
	}
	x, y := c.R, 0
	e := 1 - c.R
	for x >= y {
		if c.Fill {
			hline(b, c.X-x, c.X+x, c.Y+y)
			hline(b, c.X-x, c.X+x, c.Y-y)
			hline(b, c.X-y, c.X+y, c.Y+x)
			hline(b, c.X-y, c.X+y, c.Y-x)
		} else {
			b.SetBit(c.X+x, c.Y+y, On)
			b.SetBit(c.X-x, c.Y+y, On)
			b.SetBit(c.X+x, c.Y-y, On)
			b.SetBit(c.X-x, c.Y-y, On)
			b.SetBit(c.X+y, c.Y+x, On)
			b.SetBit(c.X-y, c.Y+x, On)
			b.SetBit(c.X+y, c.Y-x, On)
			b.SetBit(c.X-y, c.Y-x, On)
		}
		y++
		if e < 0 {
			e += 2*y + 1
		} else {
			x--
			e += 2*(y-x) + 1
		}
	}
}

// DrawBox rasterizes bx into b. Radius 0 produces exactly the four straight
// edges of the rectangle; a positive radius replaces each corner with a
// quarter arc and trims the edges to meet it. Filled boxes are scanline
// filled between the arc-bounded left and right borders.
func DrawBox(b *Bitmap, bx Box) {
	if bx.W < 1 || bx.H < 1 {
		return
	}
	x0, y0 := bx.X, bx.Y
	x1, y1 := bx.X+bx.W-1, bx.Y+bx.H-1

	r := bx.Radius
	if m := (min(bx.W, bx.H) - 1) / 2; r > m {
		r = m
	}
	if r < 0 {
		r = 0
	}

	if bx.Fill {
		var spans []int
		if r > 0 {
			spans = arcSpans(r)
		}
		for yy := y0; yy <= y1; yy++ {
			inset := 0
			if r > 0 {
				if dy := (y0 + r) - yy; dy > 0 {
					inset = r - spans[dy]
				} else if dy := yy - (y1 - r); dy > 0 {
					inset = r - spans[dy]
				}
			}
			hline(b, x0+inset, x1-inset, yy)
		}
		return
	}

	if r == 0 {
		hline(b, x0, x1, y0)
		hline(b, x0, x1, y1)
		vline(b, x0, y0, y1)
		vline(b, x1, y0, y1)
		return
	}

	hline(b, x0+r, x1-r, y0)
	hline(b, x0+r, x1-r, y1)
	vline(b, x0, y0+r, y1-r)
	vline(b, x1, y0+r, y1-r)

	spans := arcSpans(r)
	for dy := 0; dy <= r; dy++ {
		dx := spans[dy]
		b.SetBit(x0+r-dx, y0+r-dy, On) // top left
		b.SetBit(x1-r+dx, y0+r-dy, On) // top right
		b.SetBit(x0+r-dx, y1-r+dy, On) // bottom left
		b.SetBit(x1-r+dx, y1-r+dy, On) // bottom right
		// Mirror across the diagonal to close the arc.
		b.SetBit(x0+r-dy, y0+r-dx, On)
		b.SetBit(x1-r+dy, y0+r-dx, On)
		b.SetBit(x0+r-dy, y1-r+dx, On)
		b.SetBit(x1-r+dy, y1-r+dx, On)
	}
}

// Combine merges src into dst per pixel with op. Both bitmaps must have the
// same dimensions. OpXor is self-inverse: combining twice with the same
// source restores dst.
func Combine(dst, src *Bitmap, op CombineOp) error {
	if dst.Rect != src.Rect {
		return errors.New("image1bit: combine requires identical bounds")
	}
	switch op {
	case OpNormal:
		copy(dst.Pix, src.Pix)
	case OpOr:
		for i, v := range src.Pix {
			dst.Pix[i] |= v
		}
	case OpAnd:
		for i, v := range src.Pix {
			dst.Pix[i] &= v
		}
	case OpXor:
		for i, v := range src.Pix {
			dst.Pix[i] ^= v
		}
	default:
		return errors.New("image1bit: unknown combine op")
	}
	return nil
}

func hline(b *Bitmap, x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		b.SetBit(x, y, On)
	}
}

func vline(b *Bitmap, x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		b.SetBit(x, y, On)
	}
}
