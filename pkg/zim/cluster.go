package zim

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/ulikunitz/xz/lzma"
)

// Compression codes recognized in a cluster descriptor byte.
const (
	compressionNone0 = 0
	compressionNone1 = 1
	compressionLZMA2 = 4
)

// clusterDictCap bounds the LZMA2 dictionary window used to decompress
// clusters. Real-world zimwriterfs output never exceeds this; it is large
// enough that no archive produced by a major 5/6 writer needs more.
const clusterDictCap = 64 << 20

// lzma2Cfg is shared across every cluster's decompression call rather than
// re-derived per call.
var lzma2Cfg = lzma.Reader2Config{DictCap: clusterDictCap}

// Cluster is a group of blobs compressed (or stored) together. For LZMA2
// clusters the decompressed payload and offset table are computed lazily,
// on first blob access; uncompressed clusters parse their offset table at
// construction. Either way the result is idempotent thereafter.
type Cluster struct {
	index       uint32
	compression uint8
	extended    bool

	raw []byte // the cluster's own bytes, descriptor included

	once    sync.Once
	onceErr error
	payload []byte // decompressed (or, if uncompressed, raw[1:]) blob region
	offsets []uint64
}

// newCluster constructs the cluster at index idx without decompressing
// it. start/end bound the cluster's bytes within the archive.
func newCluster(v *byteView, clusterPtrs []uint64, checksumPos uint64, versionMajor uint16, idx uint32) (*Cluster, error) {
	if int(idx) >= len(clusterPtrs) {
		return nil, fmtErr(OutOfBounds, fmt.Sprintf("cluster index %d >= count %d", idx, len(clusterPtrs)))
	}

	start := clusterPtrs[idx]
	var end uint64
	if int(idx)+1 < len(clusterPtrs) {
		end = clusterPtrs[idx+1]
	} else {
		end = checksumPos
	}
	if end <= start {
		return nil, fmtErr(OutOfBounds, fmt.Sprintf("cluster %d has non-increasing range [%d, %d)", idx, start, end))
	}

	raw, err := v.slice(int64(start), int64(end-start))
	if err != nil {
		return nil, fmt.Errorf("reading cluster %d: %w", idx, err)
	}
	if len(raw) < 1 {
		return nil, fmtErr(OutOfBounds, fmt.Sprintf("cluster %d is empty", idx))
	}

	descriptor := raw[0]
	compression := descriptor & 0x0F
	extended := descriptor&0x10 != 0

	switch compression {
	case compressionNone0, compressionNone1, compressionLZMA2:
	default:
		return nil, fmtErr(UnknownCompression, fmt.Sprintf("cluster %d: code %d", idx, compression))
	}

	if extended && versionMajor != 6 {
		return nil, fmtErr(InvalidClusterExtension, fmt.Sprintf("cluster %d: extended flag set in major version %d", idx, versionMajor))
	}

	c := &Cluster{
		index:       idx,
		compression: compression,
		extended:    extended,
		raw:         raw,
	}

	if compression != compressionLZMA2 {
		// Uncompressed clusters' offset table is parsed eagerly from the
		// mapped bytes.
		if err := c.decompress(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func (c *Cluster) offsetWidth() int {
	if c.extended {
		return 8
	}
	return 4
}

// decompress is idempotent: it runs at most once per Cluster, guarded by
// sync.Once so a shared Cluster handle can be accessed concurrently even
// though the extraction planner never needs to.
func (c *Cluster) decompress() error {
	c.once.Do(func() {
		body := c.raw[1:]

		switch c.compression {
		case compressionNone0, compressionNone1:
			c.payload = body
		case compressionLZMA2:
			zr, err := lzma2Cfg.NewReader2(bytes.NewReader(body))
			if err != nil {
				c.onceErr = fmt.Errorf("cluster %d: opening lzma2 stream: %w", c.index, err)
				return
			}
			data, err := io.ReadAll(zr)
			if err != nil {
				c.onceErr = fmt.Errorf("cluster %d: decompressing lzma2 stream: %w", c.index, err)
				return
			}
			c.payload = data
		default:
			c.onceErr = fmtErr(UnknownCompression, fmt.Sprintf("cluster %d: code %d", c.index, c.compression))
			return
		}

		offsets, err := parseBlobOffsets(c.payload, c.offsetWidth())
		if err != nil {
			c.onceErr = fmt.Errorf("cluster %d: %w", c.index, err)
			return
		}
		c.offsets = offsets
	})
	return c.onceErr
}

// parseBlobOffsets infers the blob count from the first offset (which
// points at the end of the offset table itself) and reads the remaining
// offsets.
func parseBlobOffsets(payload []byte, width int) ([]uint64, error) {
	if len(payload) < width {
		return nil, fmtErr(MissingBlobList, "cluster payload too small for an offset table")
	}

	readAt := func(i int) uint64 {
		if width == 8 {
			return binary.LittleEndian.Uint64(payload[i*8 : i*8+8])
		}
		return uint64(binary.LittleEndian.Uint32(payload[i*4 : i*4+4]))
	}

	first := readAt(0)
	if first == 0 || int(first)%width != 0 {
		return nil, fmtErr(MissingBlobList, fmt.Sprintf("first offset %d is not a multiple of width %d", first, width))
	}

	count := int(first) / width
	if count < 1 || first > uint64(len(payload)) {
		return nil, fmtErr(MissingBlobList, fmt.Sprintf("implausible blob count %d", count))
	}

	need := count * width
	if need > len(payload) {
		return nil, fmtErr(MissingBlobList, "offset table extends past cluster payload")
	}

	offsets := make([]uint64, count)
	offsets[0] = first
	for i := 1; i < count; i++ {
		offsets[i] = readAt(i)
	}

	// The last blob ends at the payload's end, not at another stored
	// offset.
	for i := 1; i < count; i++ {
		if offsets[i] < offsets[i-1] || offsets[i] > uint64(len(payload)) {
			return nil, fmtErr(OutOfBounds, fmt.Sprintf("blob offset %d out of range", offsets[i]))
		}
	}

	return offsets, nil
}

// BlobCount returns the number of blobs in this cluster, decompressing it
// first if necessary.
func (c *Cluster) BlobCount() (int, error) {
	if err := c.decompress(); err != nil {
		return 0, err
	}
	if len(c.offsets) == 0 {
		return 0, nil
	}
	return len(c.offsets) - 1, nil
}

// GetBlob returns the bytes for blob idx. It is deterministic and pure
// with respect to archive state.
func (c *Cluster) GetBlob(idx uint32) ([]byte, error) {
	if err := c.decompress(); err != nil {
		return nil, err
	}

	n := len(c.offsets) - 1
	if n < 0 || int(idx) >= n {
		return nil, fmtErr(OutOfBounds, fmt.Sprintf("blob %d, cluster has %d blobs", idx, max(n, 0)))
	}

	start := c.offsets[idx]
	end := c.offsets[idx+1]
	if int(idx) == n-1 {
		end = uint64(len(c.payload))
	}
	if start > end || end > uint64(len(c.payload)) {
		return nil, fmtErr(OutOfBounds, fmt.Sprintf("blob %d range [%d, %d) invalid", idx, start, end))
	}

	return c.payload[start:end], nil
}
