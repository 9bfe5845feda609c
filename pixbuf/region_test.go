package pixbuf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionClamp(t *testing.T) {
	b := New(4, 3)
	tests := []struct {
		name       string
		x, y, w, h uint32
		expected   [4]uint32
	}{
		{"inside", 1, 1, 2, 1, [4]uint32{1, 1, 2, 1}},
		{"exact", 0, 0, 4, 3, [4]uint32{0, 0, 4, 3}},
		{"overhang", 2, 1, 10, 10, [4]uint32{2, 1, 2, 2}},
		{"past right", 4, 0, 2, 2, [4]uint32{4, 0, 0, 2}},
		{"past bottom", 0, 7, 2, 2, [4]uint32{0, 3, 2, 0}},
		{"far out", 100, 100, 5, 5, [4]uint32{4, 3, 0, 0}},
		{"empty request", 1, 1, 0, 0, [4]uint32{1, 1, 0, 0}},
		{"wrapping size", 3, 2, math.MaxUint32, math.MaxUint32, [4]uint32{3, 2, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := b.Region(tt.x, tt.y, tt.w, tt.h)
			assert.Equal(t, tt.expected, [4]uint32{r.X(), r.Y(), r.Width(), r.Height()})
			assert.LessOrEqual(t, r.X()+r.Width(), b.Width())
			assert.LessOrEqual(t, r.Y()+r.Height(), b.Height())
			if tt.x >= b.Width() || tt.y >= b.Height() {
				assert.Zero(t, r.Width()*r.Height())
			}
		})
	}
}

func TestRegionPixels(t *testing.T) {
	b, err := FromData(4, 3, seq(4, 3))
	require.NoError(t, err)
	data := seq(4, 3)

	r := b.Region(1, 1, 2, 2)
	assert.Equal(t, []Color{data[5], data[6], data[9], data[10]}, r.Pixels())

	// the region keeps its own copy
	b.PixelsMut()[5] = Color{}
	assert.Equal(t, data[5], r.Pixels()[0])
}

func TestRegionDraw(t *testing.T) {
	b, err := FromData(3, 4, seq(3, 4))
	require.NoError(t, err)
	data := seq(3, 4)

	rec := &recorder{}
	b.Region(0, 0, 3, 4).Draw(rec, 10, 20)
	require.Len(t, rec.calls, 4)
	for i, call := range rec.calls {
		assert.Equal(t, drawCall{x: 10, y: 20 + int32(i), w: 3, h: 1, data: data[i*3 : i*3+3]}, call)
	}

	rec = &recorder{}
	b.Region(1, 2, 5, 5).Draw(rec, 0, 0)
	require.Len(t, rec.calls, 2)
	assert.Equal(t, drawCall{x: 0, y: 0, w: 2, h: 1, data: data[7:9]}, rec.calls[0])
	assert.Equal(t, drawCall{x: 0, y: 1, w: 2, h: 1, data: data[10:12]}, rec.calls[1])

	rec = &recorder{}
	r := b.Region(3, 0, 1, 4)
	assert.Equal(t, uint32(0), r.Width())
	assert.Equal(t, uint32(4), r.Rows())
	r.Draw(rec, 5, 6)
	require.Len(t, rec.calls, 4)
	for i, call := range rec.calls {
		assert.Equal(t, drawCall{x: 5, y: 6 + int32(i), w: 0, h: 1}, call)
	}

	rec = &recorder{}
	b.Region(0, 4, 3, 1).Draw(rec, 0, 0)
	assert.Empty(t, rec.calls)
}

func TestRegionShortData(t *testing.T) {
	// a buffer whose backing data is shorter than its dimensions claim can
	// only be built by hand; the region must still stay inside the data
	b := &Buffer{w: 3, h: 3, pix: seq(3, 2)}

	r := b.Region(0, 0, 3, 3)
	assert.Equal(t, uint32(3), r.Height())
	assert.Equal(t, uint32(2), r.Rows())
	assert.Len(t, r.Pixels(), 6)

	rec := &recorder{}
	r.Draw(rec, 0, 0)
	assert.Len(t, rec.calls, 2)
}

func TestRegionOntoBuffer(t *testing.T) {
	src, err := FromData(3, 3, seq(3, 3))
	require.NoError(t, err)
	data := seq(3, 3)

	dst := New(2, 2)
	src.Region(1, 1, 2, 2).Draw(dst, 0, 0)
	assert.Equal(t, []Color{data[4], data[5], data[7], data[8]}, dst.Pixels())
}
