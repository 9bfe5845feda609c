// Package bmp decodes uncompressed 24 and 32 bit BMP images into pixel
// buffers. Channels are pulled out of each pixel word with bit masks, taken
// from the header when it declares bitfields and from fixed defaults
// otherwise.
package bmp

import (
	"errors"
	"fmt"
	"io"

	"bootimg/pixbuf"
)

var (
	ErrUnsupportedBitDepth = errors.New("unsupported BMP bit depth")
	ErrImageTooLarge       = errors.New("BMP image too large")
)

// MaxPixels caps width*height so a bogus header cannot request a huge
// allocation.
const MaxPixels = 1 << 26

type channel struct {
	mask  uint32
	shift uint32
}

func newChannel(mask uint32) channel {
	return channel{mask: mask, shift: maskShift(mask)}
}

func (c channel) extract(word uint32) uint8 {
	return uint8((word & c.mask) >> c.shift)
}

// Parse decodes a complete BMP file held in data. Rows are stored bottom-up
// in the file and come out top row first. Pixel data missing from the end
// of data decodes as zero.
func Parse(data []byte) (*pixbuf.Buffer, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}

	bpp := h.BytesPerPixel()
	if bpp != 3 && bpp != 4 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, h.Depth)
	}

	count := uint64(h.Width) * uint64(h.Height)
	if count > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, h.Width, h.Height)
	}
	if count == 0 {
		// a zero width must not leave the row loop spinning over a huge height
		return pixbuf.FromData(h.Width, h.Height, nil)
	}

	red := newChannel(h.RedMask)
	green := newChannel(h.GreenMask)
	blue := newChannel(h.BlueMask)
	alpha := newChannel(h.AlphaMask)

	r := clampedReader(data)
	stride := h.Stride()
	pix := make([]pixbuf.Color, 0, count)
	for y := uint64(0); y < uint64(h.Height); y++ {
		row := uint64(h.Offset) + (uint64(h.Height)-y-1)*stride
		for x := uint64(0); x < uint64(h.Width); x++ {
			// always a full word; for 24 bit pixels the extra byte is
			// outside every mask
			word := r.uint32(row + x*bpp)

			c := pixbuf.RGB(red.extract(word), green.extract(word), blue.extract(word))
			if bpp == 4 {
				c.A = alpha.extract(word)
			}
			pix = append(pix, c)
		}
	}

	return pixbuf.FromData(h.Width, h.Height, pix)
}

// Decode reads all of r and parses it as a BMP file.
func Decode(r io.Reader) (*pixbuf.Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read BMP data: %w", err)
	}
	return Parse(data)
}
