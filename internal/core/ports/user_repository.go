package ports

import (
	"context"

	"github.com/driftbox/driftbox/internal/core/domain"
)

// UserRepository persists account records. It stores password hashes as
// opaque strings; hashing and verification live elsewhere.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByName(ctx context.Context, name string) (*domain.User, error)
}
