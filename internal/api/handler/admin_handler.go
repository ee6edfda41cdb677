package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ineludible/trazos-api/internal/api/metrics"
	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

// DedupChecker guards a mutating endpoint against idempotency-key replays.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// AdminHandler groups the admin-only operations: bulk bonus grants, rank
// assignment and full stat refreshes.
type AdminHandler struct {
	bonuses ports.BonusService
	users   ports.UserService
	stats   ports.StatsService
	dedup   DedupChecker
	log     zerolog.Logger
}

func NewAdminHandler(bonuses ports.BonusService, users ports.UserService, stats ports.StatsService, dedup DedupChecker, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{bonuses: bonuses, users: users, stats: stats, dedup: dedup, log: log}
}

// GrantBonus handles POST /v1/admin/bonus. An Idempotency-Key header makes
// the grant safe to retry: a replayed key is acknowledged with an empty grant
// list instead of doubling the award.
//
// @Summary      Grant a bonus to a set of members
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header  string            false  "Replay protection key"
// @Param        body             body    bulkBonusRequest  true   "Grant details"
// @Success      200  {object}  bulkBonusResponse
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/admin/bonus [post]
func (h *AdminHandler) GrantBonus(c echo.Context) error {
	adminID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req bulkBonusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	idempotencyKey := c.Request().Header.Get("Idempotency-Key")
	if idempotencyKey != "" {
		duplicate, err := h.dedup.IsDuplicate(ctx, idempotencyKey)
		if err != nil {
			// Dedup is best effort: when Redis is down the grant proceeds.
			h.log.Warn().Err(err).Msg("idempotency check failed, proceeding")
		} else if duplicate {
			return c.JSON(http.StatusOK, bulkBonusResponse{Granted: []bonusAwardResponse{}})
		}
	}

	granted, err := h.bonuses.GrantBulk(ctx, ports.BulkGrantInput{
		UserIDs:   req.UserIDs,
		Category:  req.Category,
		Amount:    req.Amount,
		Reason:    req.Reason,
		GrantedBy: adminID,
	})
	if err != nil {
		return err
	}

	if idempotencyKey != "" {
		if err := h.dedup.Mark(ctx, idempotencyKey); err != nil {
			h.log.Warn().Err(err).Msg("failed to record idempotency key")
		}
	}

	responses := make([]bonusAwardResponse, len(granted))
	for i, award := range granted {
		metrics.BonusGrantedTotal.WithLabelValues(award.Category).Inc()
		responses[i] = toBonusAwardResponse(award)
	}
	return c.JSON(http.StatusOK, bulkBonusResponse{Granted: responses})
}

// SetRank handles PUT /v1/admin/users/:id/rank. Ranks are a stored attribute
// assigned here, never computed from totals.
//
// @Summary      Assign a member's rank
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int             true  "User id"
// @Param        body  body  setRankRequest  true  "New rank"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/admin/users/{id}/rank [put]
func (h *AdminHandler) SetRank(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req setRankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.SetRank(c.Request().Context(), userID, domain.Rank(req.Rank))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// RefreshAll handles POST /v1/admin/refresh-all: a full recomputation of
// every member's totals. Individual failures are logged and skipped by the
// aggregator, so a partial run still reports how many members settled.
func (h *AdminHandler) RefreshAll(c echo.Context) error {
	resynced, err := h.stats.ResyncAll(c.Request().Context())
	if err != nil {
		return err
	}
	metrics.ResyncsTotal.WithLabelValues("bulk").Add(float64(resynced))
	return c.JSON(http.StatusOK, resyncResponse{Resynced: resynced})
}
