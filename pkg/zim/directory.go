package zim

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// DirectoryEntry is the per-article record holding MIME kind, namespace,
// revision, URL, title, and target.
type DirectoryEntry struct {
	Mime      MimeKind
	Namespace Namespace
	Revision  uint32
	URL       string
	Title     string
	Target    Target
}

// decodeDirectoryEntry decodes one variable-length entry from s, which
// must extend at least to the end of the archive. It never reads beyond
// the second zero terminator.
func decodeDirectoryEntry(a *Archive, s []byte) (DirectoryEntry, error) {
	r := bytes.NewReader(s)

	var mimeID uint16
	if err := binary.Read(r, binary.LittleEndian, &mimeID); err != nil {
		return DirectoryEntry{}, fmt.Errorf("reading mime id: %w", err)
	}

	mime, ok := a.getMimetype(mimeID)
	if !ok {
		return DirectoryEntry{}, fmtErr(UnknownMimeType, fmt.Sprintf("id %d", mimeID))
	}

	if _, err := r.ReadByte(); err != nil { // reserved byte
		return DirectoryEntry{}, fmt.Errorf("reading reserved byte: %w", err)
	}

	nsByte, err := r.ReadByte()
	if err != nil {
		return DirectoryEntry{}, fmt.Errorf("reading namespace: %w", err)
	}
	namespace, err := parseNamespace(nsByte)
	if err != nil {
		return DirectoryEntry{}, err
	}

	var revision uint32
	if err := binary.Read(r, binary.LittleEndian, &revision); err != nil {
		return DirectoryEntry{}, fmt.Errorf("reading revision: %w", err)
	}

	var target Target
	switch {
	case mime.Redirect:
		var urlIndex uint32
		if err := binary.Read(r, binary.LittleEndian, &urlIndex); err != nil {
			return DirectoryEntry{}, fmt.Errorf("reading redirect target: %w", err)
		}
		target = redirectTarget(urlIndex)
	case mime.LinkTarget, mime.DeletedEntry:
		// no target follows
	default:
		var clusterIndex, blobIndex uint32
		if err := binary.Read(r, binary.LittleEndian, &clusterIndex); err != nil {
			return DirectoryEntry{}, fmt.Errorf("reading cluster index: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &blobIndex); err != nil {
			return DirectoryEntry{}, fmt.Errorf("reading blob index: %w", err)
		}
		target = clusterTarget(clusterIndex, blobIndex)
	}

	br := bufio.NewReader(r)

	url, err := readNulString(br)
	if err != nil {
		return DirectoryEntry{}, fmt.Errorf("reading url: %w", err)
	}
	title, err := readNulString(br)
	if err != nil {
		return DirectoryEntry{}, fmt.Errorf("reading title: %w", err)
	}

	return DirectoryEntry{
		Mime:      mime,
		Namespace: namespace,
		Revision:  revision,
		URL:       url,
		Title:     title,
		Target:    target,
	}, nil
}

func readNulString(r *bufio.Reader) (string, error) {
	line, err := r.ReadString(0)
	if err != nil {
		return "", err
	}
	s := line[:len(line)-1]
	if !utf8.ValidString(s) {
		return "", fmtErr(InvalidHeader, "entry field is not valid UTF-8")
	}
	return s, nil
}
