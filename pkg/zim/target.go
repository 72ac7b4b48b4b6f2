package zim

// Target is the destination a directory entry points at: either another
// entry (by URL index, for redirects) or a blob (by cluster and blob
// index, for content entries). Link-target and deleted entries carry no
// target at all, represented by the zero value with both IsRedirect and
// IsCluster false.
type Target struct {
	IsRedirect bool
	IsCluster  bool

	RedirectURLIndex uint32

	ClusterIndex uint32
	BlobIndex    uint32
}

// Valid reports whether this Target actually points anywhere.
func (t Target) Valid() bool {
	return t.IsRedirect || t.IsCluster
}

func redirectTarget(urlIndex uint32) Target {
	return Target{IsRedirect: true, RedirectURLIndex: urlIndex}
}

func clusterTarget(clusterIndex, blobIndex uint32) Target {
	return Target{IsCluster: true, ClusterIndex: clusterIndex, BlobIndex: blobIndex}
}
