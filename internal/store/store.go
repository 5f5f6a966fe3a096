// Package store abstracts the media bucket. The gateway only ever reads:
// full objects, byte slices of objects, and existence probes.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrObjectNotFound is returned when the named object does not exist in the
// bucket.
var ErrObjectNotFound = errors.New("store: object not found")

// ErrRangeNotSatisfiable is returned when the bucket rejects a requested byte
// range for an object that does exist.
var ErrRangeNotSatisfiable = errors.New("store: range not satisfiable")

// ByteRange is an inclusive byte range within an object.
type ByteRange struct {
	Start int64
	End   int64
}

// HeaderValue renders the range as an HTTP Range header value.
func (br ByteRange) HeaderValue() string {
	return fmt.Sprintf("bytes=%d-%d", br.Start, br.End)
}

// Object is the result of a read. Size is always the total object size, even
// for sliced reads; ContentLength is the number of bytes in Body.
type Object struct {
	Size          int64
	ContentLength int64
	Body          io.ReadCloser
}

// Store is a read-only view of the media bucket.
type Store interface {
	// Get retrieves an object, or a slice of it when rng is non-nil. The
	// caller owns Body and must close it.
	Get(ctx context.Context, name string, rng *ByteRange) (*Object, error)

	// Head reports whether the named object exists without transferring
	// its content.
	Head(ctx context.Context, name string) (bool, error)
}
