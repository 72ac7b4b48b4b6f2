package zim

import (
	"crypto/md5"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterateByURLsWalksEveryEntry(t *testing.T) {
	b := newArchiveBuilder()
	b.addArticle(NamespaceArticles, "A/One", "One", "text/plain", []byte("1"))
	b.addArticle(NamespaceArticles, "A/Two", "Two", "text/plain", []byte("2"))
	b.addArticle(NamespaceArticles, "A/Three", "Three", "text/plain", []byte("3"))

	a, err := Open(writeTestArchive(t, b.build(t)))
	require.NoError(t, err)
	defer a.Close()

	it := a.IterateByURLs()
	var urls []string
	for {
		entry, err, ok := it.Next()
		if !ok {
			break
		}
		require.NoError(t, err)
		urls = append(urls, entry.URL)
	}

	require.Equal(t, []string{"A/One", "A/Two", "A/Three"}, urls)
	require.Equal(t, uint32(0), it.Remaining())

	_, _, ok := it.Next()
	require.False(t, ok)
}

func TestIterateByURLsContinuesPastACorruptEntry(t *testing.T) {
	b := newArchiveBuilder()
	b.addArticle(NamespaceArticles, "A/One", "One", "text/plain", []byte("1"))
	b.addArticle(NamespaceArticles, "A/Two", "Two", "text/plain", []byte("2"))
	b.addArticle(NamespaceArticles, "A/Three", "Three", "text/plain", []byte("3"))

	data, dirOffsets := b.buildWithEntryOffsets(t)

	// Corrupt the middle entry's mime id so it resolves to neither a
	// reserved sentinel nor a dictionary entry, forcing a decode error
	// at index 1 only.
	off := dirOffsets[1]
	data[off] = 0xCD
	data[off+1] = 0xAB

	// Recompute the trailing checksum so the archive still opens; this
	// test targets iteration behavior, not checksum verification.
	sum := md5.Sum(data[:len(data)-16])
	copy(data[len(data)-16:], sum[:])

	a, err := Open(writeTestArchive(t, data))
	require.NoError(t, err)
	defer a.Close()

	it := a.IterateByURLs()

	entry0, err0, ok0 := it.Next()
	require.True(t, ok0)
	require.NoError(t, err0)
	require.Equal(t, "A/One", entry0.URL)

	_, err1, ok1 := it.Next()
	require.True(t, ok1)
	require.Error(t, err1)

	entry2, err2, ok2 := it.Next()
	require.True(t, ok2)
	require.NoError(t, err2)
	require.Equal(t, "A/Three", entry2.URL)

	_, _, ok3 := it.Next()
	require.False(t, ok3)
}
