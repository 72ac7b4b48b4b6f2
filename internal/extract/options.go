// Package extract drives full-archive extraction of a ZIM file to a
// filesystem tree: bucketizing directory entries by cluster, writing
// blob content in parallel, then linking redirects once every blob
// write has happened-before it.
package extract

// Options configures one extraction run.
type Options struct {
	// InputPath is the ZIM archive to read.
	InputPath string
	// OutputRoot is the directory extracted content is written under. It
	// is created (along with any missing parents) if absent.
	OutputRoot string
	// SkipLinks, when true, skips the redirect-linking pass entirely.
	SkipLinks bool
	// FlattenLinks, when true, writes redirects as file copies instead
	// of hard links.
	FlattenLinks bool
}
