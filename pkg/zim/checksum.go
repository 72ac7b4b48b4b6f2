package zim

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
)

const md5DigestSize = 16

// VerifyChecksum streams every byte up to the header's checksum_pos
// through MD5 and compares the result against the trailing 16-byte
// digest stored at that offset. It returns an InvalidChecksum FormatError
// on mismatch.
func (a *Archive) VerifyChecksum() error {
	if a.header.ChecksumPos == 0 {
		return fmtErr(MissingChecksum, "archive has no checksum_pos")
	}

	want, err := a.view.slice(int64(a.header.ChecksumPos), md5DigestSize)
	if err != nil {
		return fmt.Errorf("reading stored checksum: %w", err)
	}

	h := md5.New()
	sr := io.NewSectionReader(a.view.ra, 0, int64(a.header.ChecksumPos))
	if _, err := io.Copy(h, sr); err != nil {
		return fmt.Errorf("hashing archive body: %w", err)
	}

	got := h.Sum(nil)
	if !bytes.Equal(got, want) {
		return fmtErr(InvalidChecksum, fmt.Sprintf("got %x, want %x", got, want))
	}
	return nil
}
