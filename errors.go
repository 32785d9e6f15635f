package voxflat

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies the failures that can occur while opening a
// scene or reading voxels from it.
type ErrorKind int

const (
	// ErrNone indicates no error occurred.
	ErrNone ErrorKind = iota
	// ErrFileOpen means the named input could not be opened.
	ErrFileOpen
	// ErrFileRead means a stream read failed after open.
	ErrFileRead
	// ErrFileSeek means a seek, tell or bookmark operation failed.
	ErrFileSeek
	// ErrUnrecognizedFileFormat means the magic bytes didn't match.
	ErrUnrecognizedFileFormat
	// ErrUnexpectedEOF means a short read where data was required.
	ErrUnexpectedEOF
	// ErrInvalidFileStructure means chunk framing was inconsistent.
	ErrInvalidFileStructure
	// ErrInvalidScene means the scene graph failed validation.
	ErrInvalidScene
	// ErrOutOfMemory means an allocation or size computation overflowed.
	ErrOutOfMemory
	// ErrInvalidArgument means a caller passed a nil scene or buffer.
	ErrInvalidArgument
)

// String returns a short human-readable description of k, matching
// ErrorString(k).
func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "operation successful"
	case ErrFileOpen:
		return "failed to open input file"
	case ErrFileRead:
		return "failed to read from input stream"
	case ErrFileSeek:
		return "input stream is not seekable"
	case ErrUnrecognizedFileFormat:
		return "unrecognized file format"
	case ErrUnexpectedEOF:
		return "unexpected end of input"
	case ErrInvalidFileStructure:
		return "invalid vox file structure"
	case ErrInvalidScene:
		return "invalid scene graph"
	case ErrOutOfMemory:
		return "out of memory or size overflow"
	case ErrInvalidArgument:
		return "invalid argument provided"
	default:
		return "unmapped error"
	}
}

// ErrorString converts an error code to a human-readable description.
func ErrorString(k ErrorKind) string {
	return k.String()
}

// Error is the error type returned by every voxflat operation that can
// fail. It always carries one of the ErrorKind values above.
type Error struct {
	Kind  ErrorKind
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("voxflat: %s: %v", e.Kind, e.cause)
	}
	return "voxflat: " + e.Kind.String()
}

// Unwrap exposes the underlying I/O cause, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// fail panics with a *Error, unwinding to the nearest recoverError
// deferred in an Open* entry point, or to the equivalent recover
// deferred in the traversal's read behind the Read* methods. This is
// the non-local
// error exit used throughout the parser and scene builder: helpers
// never thread an error return through every call site, they just
// fail() and let the outermost call recover it.
func fail(kind ErrorKind) {
	panic(&Error{Kind: kind})
}

// failCause is like fail, but wraps an underlying cause (typically an
// I/O error from the byte source) using github.com/pkg/errors so the
// cause keeps a stack trace under %+v without changing the ErrorKind
// used for classification.
func failCause(kind ErrorKind, cause error) {
	panic(&Error{Kind: kind, cause: errors.Wrap(cause, kind.String())})
}

// recoverError recovers a panic produced by fail/failCause and stores
// it through errp. It is called via defer at the top of every Open*
// entry point (the Read* path latches its error with its own recover
// in the traversal's read). Panics
// that are not *Error are re-panicked: only this package's own
// control-flow panics are meant to be caught here.
func recoverError(errp *error) {
	switch v := recover().(type) {
	case nil:
		return
	case *Error:
		*errp = v
	default:
		panic(v)
	}
}
