package bmp

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
)

var ErrInvalidSignature = errors.New("invalid BMP signature")

const (
	offsetPixelData   = 0x0A
	offsetWidth       = 0x12
	offsetHeight      = 0x16
	offsetDepth       = 0x1C
	offsetCompression = 0x1E
	offsetRedMask     = 0x36
	offsetGreenMask   = 0x3A
	offsetBlueMask    = 0x3E
	offsetAlphaMask   = 0x42

	// headerLen covers every field the decoder looks at.
	headerLen = offsetAlphaMask + 4

	// compressionBitfields marks a header that carries explicit channel masks.
	compressionBitfields = 3
)

// Default masks used when the header has no bitfields.
const (
	LegacyRedMask   uint32 = 0x000000FF
	LegacyGreenMask uint32 = 0x0000FF00
	LegacyBlueMask  uint32 = 0x00FF0000
	LegacyAlphaMask uint32 = 0xFF000000
)

// Header holds the handful of BMP header fields the decoder consults.
// Everything else in the file header and info header is ignored.
type Header struct {
	Offset      uint32 // start of the pixel array
	Width       uint32
	Height      uint32
	Depth       uint32 // bits per pixel
	Compression uint32 // only compared against 3 (bitfields)

	RedMask   uint32
	GreenMask uint32
	BlueMask  uint32
	AlphaMask uint32
}

// ParseHeader checks the signature and extracts the header fields from data.
// Fields that lie past the end of data read as zero.
func ParseHeader(data []byte) (Header, error) {
	r := clampedReader(data)
	if r.byteAt(0) != 'B' || r.byteAt(1) != 'M' {
		return Header{}, ErrInvalidSignature
	}

	h := Header{
		Offset:      r.uint32(offsetPixelData),
		Width:       r.uint32(offsetWidth),
		Height:      r.uint32(offsetHeight),
		Depth:       uint32(r.uint16(offsetDepth)),
		Compression: r.uint32(offsetCompression),
	}

	if h.Compression == compressionBitfields {
		h.RedMask = r.uint32(offsetRedMask)
		h.GreenMask = r.uint32(offsetGreenMask)
		h.BlueMask = r.uint32(offsetBlueMask)
		h.AlphaMask = r.uint32(offsetAlphaMask)
	} else {
		h.RedMask = LegacyRedMask
		h.GreenMask = LegacyGreenMask
		h.BlueMask = LegacyBlueMask
		h.AlphaMask = LegacyAlphaMask
	}

	return h, nil
}

// ReadHeader reads just enough of r to parse the header.
func ReadHeader(r io.Reader) (Header, error) {
	data, err := io.ReadAll(io.LimitReader(r, headerLen))
	if err != nil {
		return Header{}, fmt.Errorf("could not read BMP header: %w", err)
	}
	return ParseHeader(data)
}

// BytesPerPixel is the depth rounded up to whole bytes.
func (h Header) BytesPerPixel() uint64 {
	return (uint64(h.Depth) + 7) / 8
}

// Stride is the size of one stored row, padded to a multiple of 4 bytes.
func (h Header) Stride() uint64 {
	return (uint64(h.Depth)*uint64(h.Width) + 31) / 32 * 4
}

// maskShift is the position of the lowest set bit of mask, 0 for an empty
// mask. Shifting a masked word right by it brings the channel down to the
// low bits.
func maskShift(mask uint32) uint32 {
	if mask == 0 {
		return 0
	}
	return uint32(bits.TrailingZeros32(mask))
}
