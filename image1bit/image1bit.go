package image1bit

import (
	"errors"
	"image"
	"image/color"
)

// Bit represents a single on/off pixel.
type Bit bool

// Possible pixel values.
const (
	Off Bit = false
	On  Bit = true
)

// RGBA converts the bit to standard RGBA: lit dots are white, unlit black.
func (c Bit) RGBA() (r, g, b, a uint32) {
	if c {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (c Bit) String() string {
	if c {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit using a mid-gray threshold.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// Bitmap is a row-major 1-bit image. Pixels are stored one per byte for
// simple addressing; the packed device layout is produced by Pack.
type Bitmap struct {
	Pix    []byte          // One byte per pixel, 0 or 1
	Stride int             // Pixels per row
	Rect   image.Rectangle // Image bounds, always zero-origin
}

// New creates an all-Off Bitmap of the given size.
func New(w, h int) *Bitmap {
	if w < 0 || h < 0 {
		return &Bitmap{}
	}
	return &Bitmap{
		Pix:    make([]byte, w*h),
		Stride: w,
		Rect:   image.Rect(0, 0, w, h),
	}
}

// ColorModel returns the color model of the image.
func (b *Bitmap) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (b *Bitmap) Bounds() image.Rectangle {
	return b.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (b *Bitmap) At(x, y int) color.Color {
	return b.BitAt(x, y)
}

// BitAt returns the pixel at (x, y). Out-of-bounds coordinates read as Off.
func (b *Bitmap) BitAt(x, y int) Bit {
	if !(image.Point{x, y}.In(b.Rect)) {
		return Off
	}
	return b.Pix[y*b.Stride+x] != 0
}

// Set sets the pixel at (x, y) from any color.
// It implements the draw.Image interface.
func (b *Bitmap) Set(x, y int, c color.Color) {
	b.SetBit(x, y, toBit(c).(Bit))
}

// SetBit sets the pixel at (x, y). Out-of-bounds coordinates are ignored,
// matching the display's draw-only-what-is-visible behavior.
func (b *Bitmap) SetBit(x, y int, v Bit) {
	if !(image.Point{x, y}.In(b.Rect)) {
		return
	}
	if v {
		b.Pix[y*b.Stride+x] = 1
	} else {
		b.Pix[y*b.Stride+x] = 0
	}
}

// Clone returns a deep copy.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{
		Pix:    make([]byte, len(b.Pix)),
		Stride: b.Stride,
		Rect:   b.Rect,
	}
	copy(c.Pix, b.Pix)
	return c
}

// FromImage converts any image to a Bitmap through BitModel.
func FromImage(src image.Image) *Bitmap {
	r := src.Bounds()
	b := New(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			b.SetBit(x, y, toBit(src.At(r.Min.X+x, r.Min.Y+y)).(Bit))
		}
	}
	return b
}

// Pack converts a Bitmap into the display's wire layout: columns left to
// right, each column split into 8-row groups top to bottom, one byte per
// group with bit 7 holding the topmost row. Rows past the bitmap height are
// zero-padded, so the output always covers a multiple of 8 rows.
func (b *Bitmap) Pack() []byte {
	w := b.Rect.Dx()
	h := b.Rect.Dy()
	groups := (h + 7) / 8
	out := make([]byte, w*groups)
	i := 0
	for x := 0; x < w; x++ {
		for g := 0; g < groups; g++ {
			var v byte
			for row := 0; row < 8; row++ {
				y := g*8 + row
				if y < h && b.Pix[y*b.Stride+x] != 0 {
					v |= 0x80 >> row
				}
			}
			out[i] = v
			i++
		}
	}
	return out
}

// Unpack is the inverse of Pack. The returned Bitmap is w wide and
// ceil(h/8)*8 tall, the original content zero-padded at the bottom.
func Unpack(data []byte, w, h int) (*Bitmap, error) {
	if w < 1 || h < 1 {
		return nil, errors.New("image1bit: dimensions must be positive")
	}
	groups := (h + 7) / 8
	if len(data) != w*groups {
		return nil, errors.New("image1bit: data length does not match dimensions")
	}
	b := New(w, groups*8)
	i := 0
	for x := 0; x < w; x++ {
		for g := 0; g < groups; g++ {
			v := data[i]
			i++
			for row := 0; row < 8; row++ {
				if v&(0x80>>row) != 0 {
					b.Pix[(g*8+row)*b.Stride+x] = 1
				}
			}
		}
	}
	return b, nil
}
