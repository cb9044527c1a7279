package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/driftbox/driftbox/internal/api/metrics"
	"github.com/driftbox/driftbox/internal/core/domain"
	"github.com/driftbox/driftbox/internal/core/ports"
)

// Auth is the access gate: it extracts the bearer token, verifies it, and
// injects the resulting identity into the request context. The "Bearer "
// prefix is optional; a raw token in the Authorization header is accepted.
// On any failure the request is rejected before reaching a handler.
func Auth(issuer ports.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token := header
			if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
				token = strings.TrimSpace(header[7:])
			}

			identity, err := issuer.Verify(token)
			if err != nil {
				if errors.Is(err, domain.ErrMalformedIdentity) {
					metrics.AuthRejectionsTotal.WithLabelValues("malformed_claims").Inc()
					return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
				}
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user_id", identity.UserID)
			c.Set("user_name", identity.Name)

			return next(c)
		}
	}
}
