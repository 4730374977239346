// Package sink provides the destinations generated diagrams are written to.
//
// A [Sink] is prepared once before any file is written: it either finds the
// output location empty, clears it on request, or fails with an
// [OutputNotEmptyError]. After that, files may be written concurrently as
// long as no two writers use the same path.
//
// Paths passed to a sink are always slash-separated and relative to the
// output root.
package sink

import (
	"context"
	"errors"
	"fmt"
)

// ErrOutputNotEmpty is returned by [Sink.Prepare] when the output location
// already has content and clearing was not requested.
var ErrOutputNotEmpty = errors.New("output directory is not empty")

// OutputNotEmptyError names the location that was found non-empty. It matches
// [ErrOutputNotEmpty] with [errors.Is].
type OutputNotEmptyError struct {
	Path string
}

func (e *OutputNotEmptyError) Error() string {
	return fmt.Sprintf("output directory %s is not empty (use clear to replace its content)", e.Path)
}

func (e *OutputNotEmptyError) Is(target error) bool {
	return target == ErrOutputNotEmpty
}

// Sink receives generated files.
type Sink interface {
	// Prepare readies the output location. Top-level entries named in keep
	// are neither counted as content nor removed by clearing.
	Prepare(ctx context.Context, clear bool, keep ...string) error

	// WriteFile stores data at path, creating parent folders as needed.
	// It is safe for concurrent use with distinct paths.
	WriteFile(ctx context.Context, path string, data []byte) error

	// ReadFile returns the content at path. A missing file yields an error
	// matching fs.ErrNotExist.
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// Location describes the sink for log and error messages.
	Location() string
}
