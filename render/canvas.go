// Package render provides an in-memory render target for pixel buffers.
package render

import (
	"image"
	"image/color"

	"bootimg/pixbuf"

	"golang.org/x/image/draw"
)

// Canvas is a Renderer that composes blocks of pixels onto an RGBA image.
type Canvas struct {
	dst *image.RGBA
	// Op is the compositing operator used for every block, draw.Src unless
	// changed.
	Op draw.Op
}

var _ pixbuf.Renderer = &Canvas{}

func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		dst: image.NewRGBA(image.Rect(0, 0, width, height)),
		Op:  draw.Src,
	}
}

// RGBA returns the image drawn so far.
func (c *Canvas) RGBA() *image.RGBA {
	return c.dst
}

func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Image draws a w*h block with its top-left corner at (x, y). Anything off
// the canvas is clipped; if data holds fewer than w*h pixels only the
// complete rows are drawn.
func (c *Canvas) Image(x, y int32, w, h uint32, data []pixbuf.Color) {
	if w == 0 {
		return
	}
	h = uint32(min(uint64(h), uint64(len(data))/uint64(w)))

	src, err := pixbuf.FromData(w, h, data[:uint64(w)*uint64(h)])
	if err != nil {
		return
	}

	r := image.Rect(int(x), int(y), int(x)+int(w), int(y)+int(h))
	draw.Draw(c.dst, r, src, image.Point{}, c.Op)
}
