package ports

import (
	"time"

	"github.com/driftbox/driftbox/internal/core/domain"
)

// PasswordHasher performs one-way salted hashing of user secrets.
// Verify reports false for any malformed digest; it never panics or leaks
// the reason a digest failed to parse.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(digest, secret string) bool
}

// TokenIssuer creates and checks self-contained bearer credentials.
// Verify returns domain.ErrInvalidCredentials for anything missing,
// malformed, tampered or expired, and domain.ErrMalformedIdentity when a
// structurally valid token decodes to an unusable claim shape.
type TokenIssuer interface {
	Issue(userID, name string) (token string, expiresAt time.Time, err error)
	Verify(token string) (domain.Identity, error)
}
