package ports

import (
	"context"

	"github.com/driftbox/driftbox/internal/core/domain"
)

// FileRepository persists file metadata and the file→owner relation.
// Uniqueness of the storage key is enforced by the underlying store.
type FileRepository interface {
	Insert(ctx context.Context, file *domain.StoredFile) error
	FindByKey(ctx context.Context, key string) (*domain.StoredFile, error)
	// ListByOwner returns the owner's files ordered by upload time, ascending.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.StoredFile, error)
}
