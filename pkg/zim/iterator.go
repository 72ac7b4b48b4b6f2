package zim

// URLIterator walks an archive's directory entries in URL-sorted order.
// It is forward-only and not restartable: once exhausted, a new
// iterator must be constructed.
type URLIterator struct {
	a    *Archive
	next uint32
	done bool
}

// IterateByURLs returns an iterator over every directory entry, ordered
// by the archive's URL pointer list.
func (a *Archive) IterateByURLs() *URLIterator {
	return &URLIterator{a: a}
}

// Next returns the next directory entry. ok is false once the iterator
// is exhausted, at which point the iterator must not be reused. A
// corrupt entry is reported as an error for that one index, but the
// iterator keeps advancing; callers can log and keep going, and are
// still visited at every later index.
func (it *URLIterator) Next() (entry DirectoryEntry, err error, ok bool) {
	if it.done || it.next >= it.a.ArticleCount() {
		it.done = true
		return DirectoryEntry{}, nil, false
	}

	entry, err = it.a.GetByURLIndex(it.next)
	it.next++
	if err != nil {
		return DirectoryEntry{}, err, true
	}
	return entry, nil, true
}

// Remaining reports how many entries the iterator has not yet yielded.
func (it *URLIterator) Remaining() uint32 {
	if it.done || it.next >= it.a.ArticleCount() {
		return 0
	}
	return it.a.ArticleCount() - it.next
}
