package ports

import (
	"context"
	"io"
	"time"

	"github.com/driftbox/driftbox/internal/core/domain"
)

// UploadInput carries one inbound file. Size must be the exact byte count of
// the content behind Reader.
type UploadInput struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadResult reports the key under which the file was stored.
type UploadResult struct {
	Key        string    `json:"key"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// FetchResult streams a stored file back to its owner. The caller owns
// Content and must close it.
type FetchResult struct {
	Content     io.ReadCloser
	Size        int64
	ContentType string
}

// FileMeta is the listing projection: no key, no storage reference.
type FileMeta struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type FileService interface {
	Upload(ctx context.Context, identity domain.Identity, input UploadInput) (*UploadResult, error)
	Fetch(ctx context.Context, identity domain.Identity, key string) (*FetchResult, error)
	ListOwned(ctx context.Context, identity domain.Identity) ([]FileMeta, error)
}

// KeyReserver fences storage keys so one is never handed out twice, even
// when concurrent uploads race ahead of the registry's unique index.
type KeyReserver interface {
	Reserve(ctx context.Context, key string) (bool, error)
}

// CleanupQueue accepts blob references whose metadata write failed and must
// be compensated with a delete.
type CleanupQueue interface {
	Enqueue(ref string)
}
