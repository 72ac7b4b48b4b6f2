package zim

// Reserved MIME ids that denote synthetic entry kinds rather than an
// index into the archive's MIME dictionary.
const (
	mimeIDRedirect     uint16 = 0xFFFF
	mimeIDLinkTarget   uint16 = 0xFFFE
	mimeIDDeletedEntry uint16 = 0xFFFD
)

// MimeKind is the resolved meaning of a directory entry's MIME id: one of
// the three reserved sentinel kinds, or a dictionary-resolved MIME string.
type MimeKind struct {
	Redirect     bool
	LinkTarget   bool
	DeletedEntry bool
	Type         string // valid only when none of the above are set
}

func (k MimeKind) String() string {
	switch {
	case k.Redirect:
		return "redirect"
	case k.LinkTarget:
		return "link-target"
	case k.DeletedEntry:
		return "deleted-entry"
	default:
		return k.Type
	}
}

// IsContent reports whether this kind addresses blob content rather than
// being a redirect, link target, or deleted entry.
func (k MimeKind) IsContent() bool {
	return !k.Redirect && !k.LinkTarget && !k.DeletedEntry
}

// getMimetype resolves a MIME id against the reserved sentinels and the
// archive's MIME dictionary. It returns false if id is out of range.
func (a *Archive) getMimetype(id uint16) (MimeKind, bool) {
	switch id {
	case mimeIDRedirect:
		return MimeKind{Redirect: true}, true
	case mimeIDLinkTarget:
		return MimeKind{LinkTarget: true}, true
	case mimeIDDeletedEntry:
		return MimeKind{DeletedEntry: true}, true
	default:
		if int(id) < len(a.mimeTable) {
			return MimeKind{Type: a.mimeTable[id]}, true
		}
		return MimeKind{}, false
	}
}

// GetMimetype returns the reserved kind or a dictionary-resolved string
// kind for id, or ok=false if id is out of range. Being out of range is a
// diagnostic, not a fatal condition for iteration (spec §4.5).
func (a *Archive) GetMimetype(id uint16) (kind MimeKind, ok bool) {
	return a.getMimetype(id)
}

// mimeExtensions maps a subset of well-known web MIME types to the file
// extension the filesystem writer should ensure the destination path
// carries.
var mimeExtensions = map[string]string{
	"text/html":              "html",
	"image/jpeg":             "jpg",
	"image/png":              "png",
	"image/gif":              "gif",
	"image/svg+xml":          "svg",
	"application/javascript": "js",
	"text/css":               "css",
	"text/plain":             "txt",
}

// ExtensionForMimeType returns the filename extension (without a leading
// dot) conventionally associated with typ, and whether one is known. Only
// a fixed set of common web MIME types is recognized; all others report
// ok=false and leave the destination path untouched.
func ExtensionForMimeType(typ string) (ext string, ok bool) {
	ext, ok = mimeExtensions[typ]
	return ext, ok
}
