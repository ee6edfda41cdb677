package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

// RankingHandler serves the ordered cross-user views.
type RankingHandler struct {
	service ports.RankingService
}

func NewRankingHandler(service ports.RankingService) *RankingHandler {
	return &RankingHandler{service: service}
}

type rankingsResponse struct {
	Metric string             `json:"metric"`
	Data   []ports.RankedUser `json:"data"`
}

type positionResponse struct {
	UserID   int64  `json:"user_id"`
	Metric   string `json:"metric"`
	Ranked   bool   `json:"ranked"`
	Position int    `json:"position,omitempty"`
}

// Rankings handles GET /v1/rankings?metric=traces|words. The metric defaults
// to traces.
//
// @Summary      Ordered ranking of all members
// @Tags         rankings
// @Produce      json
// @Param        metric  query  string  false  "traces or words"  default(traces)
// @Success      200  {object}  rankingsResponse
// @Failure      400  {object}  map[string]string
// @Router       /v1/rankings [get]
func (h *RankingHandler) Rankings(c echo.Context) error {
	metric := ports.Metric(c.QueryParam("metric"))
	if metric == "" {
		metric = ports.MetricTraces
	}
	if !ports.IsValidMetric(metric) {
		return echo.NewHTTPError(http.StatusBadRequest, "metric must be traces or words")
	}

	rows, err := h.service.Rankings(c.Request().Context(), metric)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rankingsResponse{Metric: string(metric), Data: rows})
}

// Position handles GET /v1/rankings/position/:id. A user absent from the
// view is not an error: the UI shows "N/A", so the handler answers 200 with
// ranked=false.
func (h *RankingHandler) Position(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	metric := ports.Metric(c.QueryParam("metric"))
	if metric == "" {
		metric = ports.MetricTraces
	}
	if !ports.IsValidMetric(metric) {
		return echo.NewHTTPError(http.StatusBadRequest, "metric must be traces or words")
	}

	position, err := h.service.Position(c.Request().Context(), userID, metric)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotRanked) {
			return c.JSON(http.StatusOK, positionResponse{
				UserID: userID,
				Metric: string(metric),
				Ranked: false,
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, positionResponse{
		UserID:   userID,
		Metric:   string(metric),
		Ranked:   true,
		Position: position,
	})
}
