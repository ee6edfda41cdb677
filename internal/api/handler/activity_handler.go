package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ineludible/trazos-api/internal/api/metrics"
	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

// ActivityHandler handles HTTP requests for activity operations.
type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// Create handles POST /v1/activities.
//
// @Summary      Submit a new activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      activityRequest  true  "Activity details"
// @Success      201   {object}  activityWriteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/activities [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), userID, toActivityInput(req))
	if err != nil {
		return err
	}

	metrics.ActivitiesCreatedTotal.WithLabelValues(string(result.Activity.Type)).Inc()
	metrics.TracesAwardedTotal.Add(float64(result.Activity.Traces))
	if result.Owner != nil {
		metrics.ResyncsTotal.WithLabelValues("lifecycle").Inc()
	}

	return c.JSON(http.StatusCreated, toWriteResponse(result))
}

// Update handles PUT /v1/activities/:id. Only the owner may update; the
// traces are fully recomputed from the new fields.
//
// @Summary      Update an activity and rescore it
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Activity id"
// @Param        body  body      activityRequest  true  "New activity details"
// @Success      200   {object}  activityWriteResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/activities/{id} [put]
func (h *ActivityHandler) Update(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	activityID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req activityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Update(c.Request().Context(), activityID, userID, toActivityInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toWriteResponse(result))
}

// Delete handles DELETE /v1/activities/:id.
//
// @Summary      Delete an activity
// @Tags         activities
// @Security     BearerAuth
// @Param        id  path  int  true  "Activity id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/activities/{id} [delete]
func (h *ActivityHandler) Delete(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	activityID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), activityID, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get handles GET /v1/activities/:id.
func (h *ActivityHandler) Get(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	activityID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	activity, err := h.service.Get(c.Request().Context(), activityID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActivityResponse(activity))
}

// List handles GET /v1/activities. Members see their own activities; admins
// may pass ?user_id= to inspect another member's.
func (h *ActivityHandler) List(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	ownerID := userID
	if raw := c.QueryParam("user_id"); raw != "" && isAdmin(role) {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "user_id must be numeric")
		}
		ownerID = parsed
	}

	activities, err := h.service.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(activities))
}

// Preview handles GET /v1/traces/preview — the submission form's live point
// preview. Unknown types and non-positive word counts preview as zero, never
// as an error.
//
// @Summary      Preview the trace award for a submission
// @Tags         activities
// @Produce      json
// @Param        type        query  string  true   "Activity type"
// @Param        word_count  query  int     true   "Word count"
// @Param        responses   query  int     false  "Response count (hilo/rol)"
// @Success      200  {object}  previewResponse
// @Router       /v1/traces/preview [get]
func (h *ActivityHandler) Preview(c echo.Context) error {
	activityType := c.QueryParam("type")
	wordCount, _ := strconv.Atoi(c.QueryParam("word_count"))
	responses, _ := strconv.Atoi(c.QueryParam("responses"))

	traces := h.service.Preview(domain.ActivityType(activityType), wordCount, responses)

	return c.JSON(http.StatusOK, previewResponse{
		Type:      activityType,
		WordCount: wordCount,
		Responses: responses,
		Traces:    traces,
	})
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}
