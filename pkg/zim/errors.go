package zim

import "fmt"

// ErrorKind classifies a format-level failure encountered while parsing a
// ZIM archive. Callers that need to distinguish kinds should use
// errors.As to recover a *FormatError and switch on Kind.
type ErrorKind int

const (
	_ ErrorKind = iota
	InvalidMagicNumber
	InvalidVersion
	InvalidHeader
	InvalidClusterExtension
	InvalidNamespace
	UnknownCompression
	UnknownMimeType
	MissingBlobList
	MissingChecksum
	InvalidChecksum
	OutOfBounds
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidMagicNumber:
		return "invalid magic number"
	case InvalidVersion:
		return "invalid version"
	case InvalidHeader:
		return "invalid header"
	case InvalidClusterExtension:
		return "invalid cluster extension"
	case InvalidNamespace:
		return "invalid namespace"
	case UnknownCompression:
		return "unknown compression"
	case UnknownMimeType:
		return "unknown mimetype"
	case MissingBlobList:
		return "cluster is missing a blob list"
	case MissingChecksum:
		return "missing checksum"
	case InvalidChecksum:
		return "invalid checksum"
	case OutOfBounds:
		return "out of bounds access"
	default:
		return "unknown zim error"
	}
}

// FormatError reports a structural problem with the archive being parsed.
type FormatError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func fmtErr(kind ErrorKind, msg string) error {
	return &FormatError{Kind: kind, Msg: msg}
}

func wrapErr(kind ErrorKind, msg string, err error) error {
	return &FormatError{Kind: kind, Msg: msg, Err: err}
}
