package zim

import (
	"encoding/binary"
	"fmt"
)

// parseU64Table reads a count-length array of little-endian u64 values
// starting at ptrPos. The URL pointer list and cluster pointer list both
// have this shape.
func parseU64Table(v *byteView, ptrPos uint64, count uint32) ([]uint64, error) {
	raw, err := v.slice(int64(ptrPos), int64(count)*8)
	if err != nil {
		return nil, fmt.Errorf("reading offset table at %d: %w", ptrPos, err)
	}
	out := make([]uint64, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(raw[i*8 : i*8+8])
	}
	return out, nil
}

// parseU32Table reads a count-length array of little-endian u32 values.
// This is the shape of the title pointer list.
func parseU32Table(v *byteView, ptrPos uint64, count uint32) ([]uint32, error) {
	raw, err := v.slice(int64(ptrPos), int64(count)*4)
	if err != nil {
		return nil, fmt.Errorf("reading offset table at %d: %w", ptrPos, err)
	}
	out := make([]uint32, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
	}
	return out, nil
}
