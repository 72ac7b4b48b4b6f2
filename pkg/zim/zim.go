// Package zim parses ZIM archives: a content-addressed, compressed
// container format used for offline encyclopedias and wikis. It is a
// read-only, memory-mapped decoder — it never mutates an archive and
// never performs network I/O.
package zim

import "fmt"

// Archive is an open ZIM file: its header, MIME dictionary, and the three
// offset tables are parsed once at Open; directory entries and clusters
// are decoded on demand.
type Archive struct {
	view *byteView

	header    Header
	mimeTable []string

	urlPtrs     []uint64
	titlePtrs   []uint32
	clusterPtrs []uint64
}

// Open memory-maps path and parses the header, MIME dictionary, and
// offset tables. A malformed archive is fatal: Open surfaces every error
// it encounters.
func Open(path string) (*Archive, error) {
	view, err := openByteView(path)
	if err != nil {
		return nil, err
	}

	hdr, mimeTable, err := parseHeader(view)
	if err != nil {
		view.Close()
		return nil, err
	}

	urlPtrs, err := parseU64Table(view, hdr.URLPtrPos, hdr.ArticleCount)
	if err != nil {
		view.Close()
		return nil, err
	}

	titlePtrs, err := parseU32Table(view, hdr.TitlePtrPos, hdr.ArticleCount)
	if err != nil {
		view.Close()
		return nil, err
	}

	clusterPtrs, err := parseU64Table(view, hdr.ClusterPtrPos, hdr.ClusterCount)
	if err != nil {
		view.Close()
		return nil, err
	}

	return &Archive{
		view:        view,
		header:      hdr,
		mimeTable:   mimeTable,
		urlPtrs:     urlPtrs,
		titlePtrs:   titlePtrs,
		clusterPtrs: clusterPtrs,
	}, nil
}

// Close releases the archive's memory mapping.
func (a *Archive) Close() error {
	return a.view.Close()
}

// Header returns the archive's parsed header.
func (a *Archive) Header() Header {
	return a.header
}

// ArticleCount returns the number of articles.
func (a *Archive) ArticleCount() uint32 {
	return a.header.ArticleCount
}

// ClusterCount returns the number of clusters.
func (a *Archive) ClusterCount() uint32 {
	return a.header.ClusterCount
}

// GetByURLIndex returns the directory entry at URL-sorted ordinal idx.
func (a *Archive) GetByURLIndex(idx uint32) (DirectoryEntry, error) {
	if idx >= uint32(len(a.urlPtrs)) {
		return DirectoryEntry{}, fmtErr(OutOfBounds, fmt.Sprintf("url index %d >= %d", idx, len(a.urlPtrs)))
	}

	entryOff := a.urlPtrs[idx]
	rest, err := a.view.tail(int64(entryOff))
	if err != nil {
		return DirectoryEntry{}, fmt.Errorf("reading directory entry %d: %w", idx, err)
	}

	return decodeDirectoryEntry(a, rest)
}

// GetByTitleIndex returns the directory entry at title-sorted ordinal
// idx, following the title pointer list's indirection through the URL
// pointer list.
func (a *Archive) GetByTitleIndex(idx uint32) (DirectoryEntry, error) {
	if idx >= uint32(len(a.titlePtrs)) {
		return DirectoryEntry{}, fmtErr(OutOfBounds, fmt.Sprintf("title index %d >= %d", idx, len(a.titlePtrs)))
	}
	return a.GetByURLIndex(a.titlePtrs[idx])
}

// GetCluster returns a handle for the cluster at idx. Decompression is
// deferred until the handle's GetBlob is first called, except for
// uncompressed clusters whose offset table is parsed eagerly.
func (a *Archive) GetCluster(idx uint32) (*Cluster, error) {
	return newCluster(a.view, a.clusterPtrs, a.header.ChecksumPos, a.header.VersionMajor, idx)
}

// MainPageURL resolves the header's main_page index to its URL, or
// reports ok=false if the archive carries no main page.
func (a *Archive) MainPageURL() (url string, ok bool, err error) {
	if a.header.MainPage == nil {
		return "", false, nil
	}
	entry, err := a.GetByURLIndex(*a.header.MainPage)
	if err != nil {
		return "", false, err
	}
	return entry.URL, true, nil
}
