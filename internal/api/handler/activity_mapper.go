package handler

import (
	"time"

	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

// --- Request → Service input ---

func toActivityInput(req activityRequest) ports.ActivityInput {
	// The request date is a plain day; a malformed value stays zero and is
	// rejected by the service's validation boundary.
	date, _ := time.Parse("2006-01-02", req.Date)

	return ports.ActivityInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		Link:        req.Link,
		ImageURL:    req.ImageURL,
		Type:        domain.ActivityType(req.Type),
		Arista:      req.Arista,
		Album:       req.Album,
		WordCount:   req.WordCount,
		Responses:   req.Responses,
	}
}

// --- Service result → HTTP response ---

func toActivityResponse(a *domain.Activity) activityResponse {
	return activityResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Name:        a.Name,
		Description: a.Description,
		Date:        a.Date.UTC(),
		Link:        a.Link,
		ImageURL:    a.ImageURL,
		Type:        string(a.Type),
		Arista:      a.Arista,
		Album:       a.Album,
		WordCount:   a.WordCount,
		Responses:   a.Responses,
		Traces:      a.Traces,
		CreatedAt:   a.CreatedAt.UTC(),
	}
}

func toWriteResponse(r *ports.ActivityResult) activityWriteResponse {
	resp := activityWriteResponse{Activity: toActivityResponse(r.Activity)}
	if r.Owner != nil {
		resp.Owner = &ownerStatsResponse{
			UserID:          r.Owner.ID,
			TotalTraces:     r.Owner.TotalTraces,
			TotalWords:      r.Owner.TotalWords,
			TotalActivities: r.Owner.TotalActivities,
		}
	}
	return resp
}

func toListResponse(activities []*domain.Activity) listActivitiesResponse {
	items := make([]activityResponse, len(activities))
	for i, a := range activities {
		items[i] = toActivityResponse(a)
	}
	return listActivitiesResponse{Data: items}
}
