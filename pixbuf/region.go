package pixbuf

// Region is a rectangle cut out of a Buffer. It holds its own copy of the
// pixels, so later writes to the source buffer do not show through.
type Region struct {
	x, y uint32
	w, h uint32
	rows int
	pix  []Color
}

// newRegion copies rows of the already clamped rectangle out of b. Copying
// stops at the end of b's pixel data even if the rectangle claims more.
func newRegion(b *Buffer, x, y, w, h uint32) *Region {
	r := &Region{x: x, y: y, w: w, h: h}
	if h == 0 {
		return r
	}
	if w == 0 {
		r.rows = int(h)
		return r
	}

	stride := int(b.w)
	offset := int(y)*stride + int(x)
	last := min((int(y)+int(h))*stride+int(x), len(b.pix))

	r.pix = make([]Color, int(w)*int(h))
	for offset < last {
		end := min(offset+int(w), len(b.pix))
		copy(r.pix[r.rows*int(w):], b.pix[offset:end])
		r.rows++
		offset += stride
	}
	r.pix = r.pix[:r.rows*int(w)]

	return r
}

func (r *Region) X() uint32 {
	return r.x
}

func (r *Region) Y() uint32 {
	return r.y
}

func (r *Region) Width() uint32 {
	return r.w
}

// Height is the clamped height. Rows may be smaller if the source buffer
// ran out of pixel data.
func (r *Region) Height() uint32 {
	return r.h
}

// Rows is the number of rows that Draw visits.
func (r *Region) Rows() uint32 {
	return uint32(r.rows)
}

// Pixels returns the copied rows, row-major.
func (r *Region) Pixels() []Color {
	return r.pix
}

// Draw sends the region to dst one row at a time, starting at (x, y) and
// moving down one line per row. A zero-width region still visits every
// row, each with an empty slice.
func (r *Region) Draw(dst Renderer, x, y int32) {
	w := int(r.w)
	for i := range r.rows {
		dst.Image(x, y, r.w, 1, r.pix[i*w:(i+1)*w])
		y++
	}
}
