package zim

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// archiveBuilder assembles a minimal, valid ZIM byte stream for tests.
// It mirrors the layout parseHeader/parseMimeTable/decodeDirectoryEntry
// expect, without depending on any real-world fixture.
type archiveBuilder struct {
	versionMajor uint16
	articles     []builtArticle
	mainPage     uint32
	layoutPage   uint32
}

type builtArticle struct {
	namespace Namespace
	url       string
	title     string
	mimeType  string
	blob      []byte
}

func newArchiveBuilder() *archiveBuilder {
	return &archiveBuilder{
		versionMajor: 5,
		mainPage:     mainPageAbsent,
		layoutPage:   mainPageAbsent,
	}
}

func (b *archiveBuilder) addArticle(ns Namespace, url, title, mimeType string, blob []byte) {
	b.articles = append(b.articles, builtArticle{ns, url, title, mimeType, blob})
}

// build lays out: header | mime table | directory entries | url ptr list |
// title ptr list | cluster ptr list | cluster | checksum. Entries are
// assumed already URL-sorted by the caller (test fixtures keep this
// simple on purpose).
func (b *archiveBuilder) build(t *testing.T) []byte {
	t.Helper()
	data, _ := b.buildWithEntryOffsets(t)
	return data
}

// buildWithEntryOffsets is build, but also returns each article's
// directory-entry byte offset within the returned archive, so a test
// can corrupt one entry in place (e.g. to exercise a decode failure at
// a known index).
func (b *archiveBuilder) buildWithEntryOffsets(t *testing.T) ([]byte, []uint64) {
	t.Helper()

	mimeIndex := map[string]uint16{}
	var mimeTable []string
	for _, a := range b.articles {
		if _, ok := mimeIndex[a.mimeType]; !ok {
			mimeIndex[a.mimeType] = uint16(len(mimeTable))
			mimeTable = append(mimeTable, a.mimeType)
		}
	}

	var mimeBuf bytes.Buffer
	for _, m := range mimeTable {
		mimeBuf.WriteString(m)
		mimeBuf.WriteByte(0)
	}
	mimeBuf.WriteByte(0) // terminator

	headerLen := int64(headerSize)
	mimeOff := headerLen
	dirOff := mimeOff + int64(mimeBuf.Len())

	var dirBuf bytes.Buffer
	var dirOffsets []uint64
	for i, a := range b.articles {
		dirOffsets = append(dirOffsets, uint64(dirOff)+uint64(dirBuf.Len()))
		binary.Write(&dirBuf, binary.LittleEndian, mimeIndex[a.mimeType])
		dirBuf.WriteByte(0) // reserved
		dirBuf.WriteByte(byte(a.namespace))
		binary.Write(&dirBuf, binary.LittleEndian, uint32(0)) // revision
		binary.Write(&dirBuf, binary.LittleEndian, uint32(i)) // cluster index: one cluster per article, in order
		binary.Write(&dirBuf, binary.LittleEndian, uint32(0)) // blob index
		dirBuf.WriteString(a.url)
		dirBuf.WriteByte(0)
		dirBuf.WriteString(a.title)
		dirBuf.WriteByte(0)
	}

	urlPtrOff := dirOff + int64(dirBuf.Len())
	titlePtrOff := urlPtrOff + int64(len(b.articles))*8
	clusterPtrOff := titlePtrOff + int64(len(b.articles))*4

	var urlPtrBuf, titlePtrBuf, clusterPtrBuf bytes.Buffer
	for _, off := range dirOffsets {
		binary.Write(&urlPtrBuf, binary.LittleEndian, off)
	}
	for i := range b.articles {
		binary.Write(&titlePtrBuf, binary.LittleEndian, uint32(i))
	}

	clusterOff := clusterPtrOff + int64(len(b.articles))*8
	var clusterBuf bytes.Buffer
	var clusterOffsets []uint64
	for _, a := range b.articles {
		clusterOffsets = append(clusterOffsets, uint64(clusterOff)+uint64(clusterBuf.Len()))
		clusterBuf.WriteByte(0) // descriptor: uncompressed, not extended
		offTableLen := uint32(8) // one blob -> two 4-byte offsets
		binary.Write(&clusterBuf, binary.LittleEndian, offTableLen)
		binary.Write(&clusterBuf, binary.LittleEndian, offTableLen+uint32(len(a.blob)))
		clusterBuf.Write(a.blob)
	}

	for _, off := range clusterOffsets {
		binary.Write(&clusterPtrBuf, binary.LittleEndian, off)
	}

	checksumPos := clusterOff + int64(clusterBuf.Len())

	var out bytes.Buffer
	writeHeader(&out, b.versionMajor, uint32(len(b.articles)), uint32(len(b.articles)),
		uint64(urlPtrOff), uint64(titlePtrOff), uint64(clusterPtrOff), uint64(mimeOff),
		b.mainPage, b.layoutPage, uint64(checksumPos))
	out.Write(mimeBuf.Bytes())
	out.Write(dirBuf.Bytes())
	out.Write(urlPtrBuf.Bytes())
	out.Write(titlePtrBuf.Bytes())
	out.Write(clusterPtrBuf.Bytes())
	out.Write(clusterBuf.Bytes())

	sum := md5.Sum(out.Bytes())
	out.Write(sum[:])

	require.EqualValues(t, checksumPos, int64(out.Len())-16)
	return out.Bytes(), dirOffsets
}

func writeHeader(w *bytes.Buffer, versionMajor uint16, articleCount, clusterCount uint32,
	urlPtrPos, titlePtrPos, clusterPtrPos, mimeListPos uint64, mainPage, layoutPage uint32, checksumPos uint64) {
	binary.Write(w, binary.LittleEndian, zimMagicNumber)
	binary.Write(w, binary.LittleEndian, versionMajor)
	binary.Write(w, binary.LittleEndian, uint16(0))
	w.Write(make([]byte, 16)) // uuid
	binary.Write(w, binary.LittleEndian, articleCount)
	binary.Write(w, binary.LittleEndian, clusterCount)
	binary.Write(w, binary.LittleEndian, urlPtrPos)
	binary.Write(w, binary.LittleEndian, titlePtrPos)
	binary.Write(w, binary.LittleEndian, clusterPtrPos)
	binary.Write(w, binary.LittleEndian, mimeListPos)
	binary.Write(w, binary.LittleEndian, mainPage)
	binary.Write(w, binary.LittleEndian, layoutPage)
	binary.Write(w, binary.LittleEndian, checksumPos)
}

func writeTestArchive(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zim")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
