package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ineludible/trazos-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a missing role or a
// non-positive user id means the middleware did not run or the token is
// structurally valid but operationally unusable.
func ctxClaims(c echo.Context) (userID int64, role string, err error) {
	role, _ = c.Get("role").(string)
	if role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ = c.Get("user_id").(int64)
	if userID <= 0 {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	return userID, role, nil
}

// isAdmin reports whether the request carries the admin role.
func isAdmin(role string) bool {
	return role == domain.RoleAdmin
}
