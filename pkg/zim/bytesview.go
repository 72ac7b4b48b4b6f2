package zim

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// byteView is a random-access byte sequence backed by a memory-mapped
// file. All parsers in this package read exclusively through a byteView;
// no separate *os.File is retained once it is constructed.
type byteView struct {
	ra     io.ReaderAt
	closer io.Closer
	size   int64
}

// openByteView memory-maps path read-only. If mapping is unavailable (the
// platform lacks mmap support, or the file cannot be mapped for some other
// reason), it falls back to loading the whole file into memory.
func openByteView(path string) (*byteView, error) {
	r, err := mmap.Open(path)
	if err == nil {
		return &byteView{ra: r, closer: r, size: int64(r.Len())}, nil
	}

	f, openErr := os.Open(path)
	if openErr != nil {
		return nil, fmt.Errorf("opening %s: %w (mmap also failed: %v)", path, openErr, err)
	}
	defer f.Close()

	data, readErr := io.ReadAll(f)
	if readErr != nil {
		return nil, fmt.Errorf("reading %s: %w", path, readErr)
	}

	return &byteView{ra: bytesReaderAt(data), size: int64(len(data))}, nil
}

func (v *byteView) Close() error {
	if v.closer != nil {
		return v.closer.Close()
	}
	return nil
}

func (v *byteView) Len() int64 {
	return v.size
}

// slice returns a borrowed copy of the [off, off+length) range. The
// backing array is not shared further than the returned slice's lifetime
// guarantees from Go's GC; callers must not assume mutation is visible
// anywhere else.
func (v *byteView) slice(off, length int64) ([]byte, error) {
	if off < 0 || length < 0 || off+length > v.size {
		return nil, fmtErr(OutOfBounds, fmt.Sprintf("range [%d, %d) exceeds archive size %d", off, off+length, v.size))
	}
	buf := make([]byte, length)
	if _, err := v.ra.ReadAt(buf, off); err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading range [%d, %d): %w", off, off+length, err)
	}
	return buf, nil
}

// tail returns a copy of the range [off, size), as slice does.
func (v *byteView) tail(off int64) ([]byte, error) {
	if off < 0 || off > v.size {
		return nil, fmtErr(OutOfBounds, fmt.Sprintf("offset %d exceeds archive size %d", off, v.size))
	}
	return v.slice(off, v.size-off)
}

// bytesReaderAt adapts a plain byte slice to io.ReaderAt for the
// full-buffer fallback path.
type bytesReaderAt []byte

func (b bytesReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(b)) {
		return 0, fmt.Errorf("offset %d out of range", off)
	}
	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
