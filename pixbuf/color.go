package pixbuf

import "image/color"

// Color is a non-premultiplied 8-bit RGBA value.
type Color struct {
	R, G, B, A uint8
}

var ColorModel = color.ModelFunc(colorConvert)

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// ColorFromUint32 unpacks a word laid out as A<<24 | R<<16 | G<<8 | B.
func ColorFromUint32(v uint32) Color {
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: uint8(v >> 24),
	}
}

func (c Color) Uint32() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

func colorConvert(c color.Color) color.Color {
	if pc, ok := c.(Color); ok {
		return pc
	}

	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: nc.R, G: nc.G, B: nc.B, A: nc.A}
}
