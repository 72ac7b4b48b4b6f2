package extract

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/zimkit/zimextract/pkg/zim"
)

// Result reports what an extraction run did.
type Result struct {
	BlobsWritten    int
	RedirectsLinked int
	EntriesSkipped  int
	MainPageURL     string
	HasMainPage     bool
}

// bucket groups the directory entries whose content lives in one
// cluster, so that cluster is decompressed at most once per extraction
// run regardless of how many entries address it.
type bucket struct {
	clusterIndex uint32
	entries      []zim.DirectoryEntry
}

// Run extracts every article in the archive at opts.InputPath to
// opts.OutputRoot: first every content blob (parallelized across
// clusters), then, once every blob write has happened-before it,
// redirects are linked. Per-entry decode or write failures are logged
// and skipped; the run continues.
func Run(ctx context.Context, opts Options) (Result, error) {
	archive, err := zim.Open(opts.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("opening archive: %w", err)
	}
	defer archive.Close()

	if err := ensureDir(opts.OutputRoot); err != nil {
		return Result{}, err
	}

	var result Result
	if url, ok, err := archive.MainPageURL(); err != nil {
		log.Printf("extract: resolving main page: %v", err)
	} else if ok {
		result.MainPageURL = url
		result.HasMainPage = true
	}

	buckets := make(map[uint32]*bucket)
	var bucketOrder []uint32
	var redirects []zim.DirectoryEntry

	it := archive.IterateByURLs()
	for {
		entry, err, ok := it.Next()
		if !ok {
			break
		}
		if err != nil {
			log.Printf("extract: skipping entry: %v", err)
			result.EntriesSkipped++
			continue
		}

		switch {
		case entry.Target.IsCluster:
			b, exists := buckets[entry.Target.ClusterIndex]
			if !exists {
				b = &bucket{clusterIndex: entry.Target.ClusterIndex}
				buckets[entry.Target.ClusterIndex] = b
				bucketOrder = append(bucketOrder, entry.Target.ClusterIndex)
			}
			b.entries = append(b.entries, entry)
		case entry.Target.IsRedirect:
			redirects = append(redirects, entry)
		default:
			result.EntriesSkipped++
		}
	}

	written, err := writeBuckets(ctx, archive, opts, buckets, bucketOrder)
	result.BlobsWritten += written
	if err != nil {
		return result, err
	}

	if !opts.SkipLinks {
		linked, skipped := writeRedirects(archive, opts, redirects)
		result.RedirectsLinked += linked
		result.EntriesSkipped += skipped
	}

	return result, nil
}

// writeBuckets decompresses and writes every cluster bucket's blobs in
// parallel, one worker-pool task per cluster, sized to the host's CPU
// count.
func writeBuckets(ctx context.Context, archive *zim.Archive, opts Options, buckets map[uint32]*bucket, order []uint32) (int, error) {
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())

	written := make([]int, len(order))
	for i, clusterIdx := range order {
		i, clusterIdx := i, clusterIdx
		b := buckets[clusterIdx]
		eg.Go(func() error {
			n, err := writeBucket(archive, opts, b)
			written[i] = n
			return err
		})
	}

	if err := eg.Wait(); err != nil {
		return sum(written), err
	}
	return sum(written), nil
}

func writeBucket(archive *zim.Archive, opts Options, b *bucket) (int, error) {
	cluster, err := archive.GetCluster(b.clusterIndex)
	if err != nil {
		log.Printf("extract: cluster %d: %v", b.clusterIndex, err)
		return 0, nil
	}

	written := 0
	for _, entry := range b.entries {
		blob, err := cluster.GetBlob(entry.Target.BlobIndex)
		if err != nil {
			log.Printf("extract: skipping blob for %q: %v", entry.URL, err)
			continue
		}

		dst := makePath(opts.OutputRoot, entry.Namespace, entry.URL, entry.Mime)
		if err := safeWrite(dst, blob); err != nil {
			log.Printf("extract: %v", err)
			continue
		}
		written++
	}
	return written, nil
}

// writeRedirects links (or, with FlattenLinks, copies) every redirect
// entry to its target's already-written path. It runs only after every
// content blob has been written, so every target whose blob was written
// exists on disk by the time its link is made; a target that is missing
// (itself a redirect, or a failed write) is logged and counted as skipped.
func writeRedirects(archive *zim.Archive, opts Options, redirects []zim.DirectoryEntry) (linked, skipped int) {
	for _, entry := range redirects {
		target, err := archive.GetByURLIndex(entry.Target.RedirectURLIndex)
		if err != nil {
			log.Printf("extract: redirect %q: resolving target: %v", entry.URL, err)
			skipped++
			continue
		}

		src := makePath(opts.OutputRoot, target.Namespace, target.URL, target.Mime)
		dst := makePath(opts.OutputRoot, entry.Namespace, entry.URL, entry.Mime)

		if err := makeLink(src, dst, opts.FlattenLinks); err != nil {
			log.Printf("extract: redirect %q: %v", entry.URL, err)
			skipped++
			continue
		}
		linked++
	}
	return linked, skipped
}

func sum(ns []int) int {
	total := 0
	for _, n := range ns {
		total += n
	}
	return total
}
