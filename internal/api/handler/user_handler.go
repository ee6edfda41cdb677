package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ineludible/trazos-api/internal/api/metrics"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

// UserHandler serves member profiles and per-user stat refreshes.
type UserHandler struct {
	users ports.UserService
	stats ports.StatsService
}

func NewUserHandler(users ports.UserService, stats ports.StatsService) *UserHandler {
	return &UserHandler{users: users, stats: stats}
}

// Profile handles GET /v1/users/:id.
//
// @Summary      Member profile with bonus history
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.users.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Refresh handles POST /v1/users/:id/refresh. Members may refresh their own
// totals; admins may refresh anyone's. The recomputation is idempotent, so
// repeated calls settle on the same totals.
func (h *UserHandler) Refresh(c echo.Context) error {
	requesterID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if userID != requesterID && !isAdmin(role) {
		return echo.NewHTTPError(http.StatusForbidden, "cannot refresh another member's stats")
	}

	if err := h.stats.Resync(c.Request().Context(), userID); err != nil {
		return err
	}
	metrics.ResyncsTotal.WithLabelValues("manual").Inc()

	profile, err := h.users.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}
