// Package ser implements the two wire codecs for Goth modules: a
// self-describing structured-text form (tagged JSON, .gast) and a
// compact binary form (tag bytes, .gbin). Both are versioned, total
// over well-formed trees, and lossless: decoding an encoded value
// yields a structurally equal tree. Decoders never substitute a
// default for anything they do not recognize; they fail with a
// structured error instead.
package ser

import "fmt"

// ErrKind classifies decode failures.
type ErrKind int

const (
	// KindTruncated means the payload ended before the tree did.
	KindTruncated ErrKind = iota + 1
	// KindUnknownTag means a tag byte or tag string named no variant
	// of the closed vocabulary.
	KindUnknownTag
	// KindVersionMismatch means the payload's format version is newer
	// than this decoder supports.
	KindVersionMismatch
	// KindUnknownSpelling means an operator spelling failed the
	// vocabulary lookup.
	KindUnknownSpelling
	// KindMalformed covers every other structural problem: wrong field
	// types, missing fields, bad magic, trailing garbage.
	KindMalformed
)

// String names the error kind.
func (k ErrKind) String() string {
	switch k {
	case KindTruncated:
		return "TruncatedInput"
	case KindUnknownTag:
		return "UnknownTag"
	case KindVersionMismatch:
		return "VersionMismatch"
	case KindUnknownSpelling:
		return "UnknownOperatorSpelling"
	case KindMalformed:
		return "MalformedPayload"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is the structured decode error. Offset is a byte position for
// the binary codec; Path is a field path for the text codec. A decode
// failure invalidates only the input that produced it.
type Error struct {
	Kind   ErrKind
	Offset int
	Path   string
	Msg    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("[%s] %s at %s", e.Kind, e.Msg, e.Path)
	case e.Offset > 0:
		return fmt.Sprintf("[%s] %s at offset %d", e.Kind, e.Msg, e.Offset)
	default:
		return fmt.Sprintf("[%s] %s", e.Kind, e.Msg)
	}
}

// Sentinels for errors.Is matching by kind.
var (
	ErrTruncated       = &Error{Kind: KindTruncated}
	ErrUnknownTag      = &Error{Kind: KindUnknownTag}
	ErrVersionMismatch = &Error{Kind: KindVersionMismatch}
	ErrUnknownSpelling = &Error{Kind: KindUnknownSpelling}
	ErrMalformed       = &Error{Kind: KindMalformed}
)

// Is matches any codec error of the same kind, so
// errors.Is(err, ErrTruncated) holds for every truncation failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf extracts the error kind, or zero when err is not a codec
// error.
func KindOf(err error) ErrKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}

func errAt(kind ErrKind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func errPath(kind ErrKind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...)}
}
