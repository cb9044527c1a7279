package ports

import (
	"context"
	"io"
)

// ObjectInfo describes a stored blob as reported by the backing store.
type ObjectInfo struct {
	Size        int64
	ContentType string
}

// ObjectStore is the narrow contract to the external blob store.
// Put returns a location reference that Get and Remove accept back; the
// reference is opaque to callers and recorded in file metadata.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Get(ctx context.Context, ref string) (io.ReadCloser, ObjectInfo, error)
	Remove(ctx context.Context, ref string) error
}
