package ports

import (
	"context"
	"time"

	"github.com/driftbox/driftbox/internal/core/domain"
)

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, name, password string) (*domain.User, error)
	Login(ctx context.Context, name, password string) (*LoginResult, error)
}
