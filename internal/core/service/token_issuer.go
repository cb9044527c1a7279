package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/driftbox/driftbox/internal/core/domain"
)

// DefaultTokenTTL is how long an issued credential stays valid. There is no
// refresh path; clients re-authenticate when it lapses.
const DefaultTokenTTL = 20 * time.Minute

// JWTIssuer signs and verifies HS256 bearer tokens carrying the subject's
// user id and name. Tokens are self-contained; nothing is stored server-side
// and nothing can be revoked before expiry.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *JWTIssuer) Issue(userID, name string) (string, time.Time, error) {
	now := i.now().UTC()
	expiresAt := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"sub":  userID,
		"name": name,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks signature and expiry and projects the claims into an
// Identity. All parse, signature and expiry failures collapse into
// ErrInvalidCredentials so callers cannot probe why a token was rejected.
// A token that validates but lacks its subject claims is reported as
// ErrMalformedIdentity instead.
func (i *JWTIssuer) Verify(token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !parsed.Valid {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	userID, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	if userID == "" || name == "" {
		return domain.Identity{}, domain.ErrMalformedIdentity
	}

	return domain.Identity{UserID: userID, Name: name}, nil
}
