package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/driftbox/driftbox/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: both fields must be
// present, proving the middleware actually ran on this route.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	userID, _ := c.Get("user_id").(string)
	name, _ := c.Get("user_name").(string)
	if userID == "" || name == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.Identity{UserID: userID, Name: name}, nil
}
