package domain

import (
	"errors"
	"time"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrMalformedIdentity marks a credential that passed signature and expiry
// checks but decoded to an unexpected claim shape. Surfaces as a server
// error, not an auth failure.
var ErrMalformedIdentity = errors.New("malformed identity payload")

// User models a registered account. PasswordHash is opaque outside the
// password hasher and is never serialized or logged.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the request-scoped projection of a verified credential.
// It carries no secret material and is discarded with the request.
type Identity struct {
	UserID string
	Name   string
}
