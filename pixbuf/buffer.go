package pixbuf

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var ErrDimensionMismatch = errors.New("pixel count does not match dimensions")

// Renderer draws a w*h block of row-major pixels with its top-left corner
// at (x, y). Regions call it once per row with h == 1.
type Renderer interface {
	Image(x, y int32, w, h uint32, data []Color)
}

// Buffer is a fixed-size image stored as row-major pixels, top row first.
// The pixel at (x, y) is Pixels()[y*Width()+x].
//
// A Buffer does no locking; callers mutating it from several goroutines
// must synchronize themselves.
type Buffer struct {
	w, h uint32
	pix  []Color
}

var (
	_ Renderer    = &Buffer{}
	_ image.Image = &Buffer{}
)

// New returns a w*h buffer with every channel set to zero.
func New(w, h uint32) *Buffer {
	return Filled(w, h, RGB(0, 0, 0))
}

func Filled(w, h uint32, c Color) *Buffer {
	pix := make([]Color, int(uint64(w)*uint64(h)))
	for i := range pix {
		pix[i] = c
	}
	return &Buffer{w: w, h: h, pix: pix}
}

// FromData wraps data without copying it. It fails unless len(data) is
// exactly w*h.
func FromData(w, h uint32, data []Color) (*Buffer, error) {
	if uint64(w)*uint64(h) != uint64(len(data)) {
		return nil, fmt.Errorf("%w: %dx%d needs %d pixels, got %d", ErrDimensionMismatch,
			w, h, uint64(w)*uint64(h), len(data))
	}
	return &Buffer{w: w, h: h, pix: data}, nil
}

func Empty() *Buffer {
	return New(0, 0)
}

// FromImage copies img into a new buffer whose origin is img.Bounds().Min.
func FromImage(img image.Image) *Buffer {
	r := img.Bounds()
	b := New(uint32(r.Dx()), uint32(r.Dy()))
	i := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.pix[i] = ColorModel.Convert(img.At(x, y)).(Color)
			i++
		}
	}
	return b
}

func (b *Buffer) Width() uint32 {
	return b.w
}

func (b *Buffer) Height() uint32 {
	return b.h
}

func (b *Buffer) Pixels() []Color {
	return b.pix
}

// PixelsMut returns the same backing slice as Pixels; writes through it
// change the buffer.
func (b *Buffer) PixelsMut() []Color {
	return b.pix
}

// Data hands the backing slice over to the caller. The buffer must not be
// used for writing afterwards.
func (b *Buffer) Data() []Color {
	return b.pix
}

// Region returns a copy of the rectangle (x, y, w, h) clamped to the
// buffer bounds. Requests outside the buffer give an empty region.
func (b *Buffer) Region(x, y, w, h uint32) *Region {
	x1 := min(x, b.w)
	y1 := min(y, b.h)
	x2 := max(x1, uint32(min(uint64(x)+uint64(w), uint64(b.w))))
	y2 := max(y1, uint32(min(uint64(y)+uint64(h), uint64(b.h))))

	return newRegion(b, x1, y1, x2-x1, y2-y1)
}

// Draw hands the whole buffer to r with its top-left corner at (x, y).
func (b *Buffer) Draw(r Renderer, x, y int32) {
	r.Image(x, y, b.w, b.h, b.pix)
}

// Image copies a w*h block into the buffer at (x, y), dropping whatever
// falls outside the bounds or past the end of data.
func (b *Buffer) Image(x, y int32, w, h uint32, data []Color) {
	for row := int64(0); row < int64(h); row++ {
		dy := int64(y) + row
		if dy < 0 {
			continue
		}
		if dy >= int64(b.h) {
			return
		}

		for col := int64(0); col < int64(w); col++ {
			dx := int64(x) + col
			if dx < 0 {
				continue
			}
			if dx >= int64(b.w) {
				break
			}

			src := row*int64(w) + col
			if src >= int64(len(data)) {
				return
			}
			b.pix[dy*int64(b.w)+dx] = data[src]
		}
	}
}

func (b *Buffer) ColorModel() color.Model {
	return ColorModel
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(b.w), int(b.h))
}

func (b *Buffer) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return Color{}
	}
	return b.pix[y*int(b.w)+x]
}

func (b *Buffer) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return
	}
	b.pix[y*int(b.w)+x] = ColorModel.Convert(c).(Color)
}
