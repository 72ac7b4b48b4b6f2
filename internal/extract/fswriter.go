package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zimkit/zimextract/pkg/zim"
)

// makePath composes the destination path for a directory entry: the
// namespace character, then the URL made relative to the output root,
// with the extension implied by mimeType appended or replaced whenever
// the existing extension doesn't already start with it.
func makePath(root string, namespace zim.Namespace, url string, mime zim.MimeKind) string {
	rel := strings.TrimPrefix(url, "/")
	dst := filepath.Join(root, string(rune(namespace.Byte())), filepath.FromSlash(rel))

	if !mime.IsContent() {
		return dst
	}
	ext, ok := zim.ExtensionForMimeType(mime.Type)
	if !ok {
		return dst
	}

	existing := strings.TrimPrefix(filepath.Ext(dst), ".")
	if existing == "" || !strings.HasPrefix(existing, ext) {
		dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + "." + ext
	}
	return dst
}

// ensureDir creates path and any missing parents. An AlreadyExists
// condition is treated as success.
func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

const safeWriteMaxAttempts = 3

// safeWrite writes data to dst, re-ensuring its parent directory exists
// before each attempt and making up to safeWriteMaxAttempts attempts at
// file creation (the first try plus two retries) before giving up, matching the original
// extractor's retry loop for transient creation failures on large
// extraction runs.
func safeWrite(dst string, data []byte) error {
	var lastErr error
	for attempt := 1; attempt <= safeWriteMaxAttempts; attempt++ {
		if err := ensureDir(filepath.Dir(dst)); err != nil {
			lastErr = err
			continue
		}
		f, err := os.Create(dst)
		if err != nil {
			lastErr = err
			continue
		}
		_, writeErr := f.Write(data)
		closeErr := f.Close()
		if writeErr != nil {
			return fmt.Errorf("writing %s: %w", dst, writeErr)
		}
		if closeErr != nil {
			return fmt.Errorf("closing %s: %w", dst, closeErr)
		}
		return nil
	}
	return fmt.Errorf("creating %s after %d attempts: %w", dst, safeWriteMaxAttempts, lastErr)
}

// makeLink materializes a redirect at dst pointing at src: a hard link
// by default, or a full copy when flatten is set. Both are no-ops when
// dst already exists, and a missing src is reported rather than fatal.
// dst's extension is adopted from src whenever it doesn't already carry
// it, since a redirect's own directory entry carries no MIME type to
// infer one from.
func makeLink(src, dst string, flatten bool) error {
	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("link source %s does not exist: %w", src, err)
	}

	if ext := filepath.Ext(src); ext != "" && filepath.Ext(dst) != ext {
		dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + ext
	}

	if _, err := os.Stat(dst); err == nil {
		return nil
	}

	if err := ensureDir(filepath.Dir(dst)); err != nil {
		return err
	}

	if flatten {
		return copyFile(src, dst)
	}

	if err := os.Link(src, dst); err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("linking %s -> %s: %w", src, dst, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening link source %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating link copy %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s -> %s: %w", src, dst, err)
	}
	return out.Close()
}
