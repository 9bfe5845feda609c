package bmp

// clampedReader reads little-endian values out of a byte slice. Bytes past
// the end of the slice read as zero, which lets a truncated pixel array
// decode as black instead of failing. Header offsets are small constants,
// so this only ever hides missing data at the tail of the file.
type clampedReader []byte

func (r clampedReader) byteAt(i uint64) byte {
	if i >= uint64(len(r)) {
		return 0
	}
	return r[i]
}

func (r clampedReader) uint16(i uint64) uint16 {
	return uint16(r.byteAt(i)) | uint16(r.byteAt(i+1))<<8
}

func (r clampedReader) uint32(i uint64) uint32 {
	return uint32(r.byteAt(i)) |
		uint32(r.byteAt(i+1))<<8 |
		uint32(r.byteAt(i+2))<<16 |
		uint32(r.byteAt(i+3))<<24
}
