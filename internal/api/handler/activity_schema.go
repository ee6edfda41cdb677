package handler

import "time"

// --- Request / Response types ---

type activityRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date"        validate:"required"` // YYYY-MM-DD
	Link        string `json:"link,omitempty"`
	ImageURL    string `json:"image_url"   validate:"required,url"`
	Type        string `json:"type"        validate:"required,oneof=narrativa microcuento drabble hilo rol otro"`
	Arista      string `json:"arista"      validate:"required"`
	Album       string `json:"album"       validate:"required"`
	WordCount   int    `json:"word_count"  validate:"required,gt=0"`
	Responses   int    `json:"responses"   validate:"gte=0"`
}

type activityResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Link        string    `json:"link,omitempty"`
	ImageURL    string    `json:"image_url"`
	Type        string    `json:"type"`
	Arista      string    `json:"arista"`
	Album       string    `json:"album"`
	WordCount   int       `json:"word_count"`
	Responses   int       `json:"responses,omitempty"`
	Traces      int       `json:"traces"`
	CreatedAt   time.Time `json:"created_at"`
}

// ownerStatsResponse is the refreshed owner view attached to write
// responses. Omitted when the resync was deferred to the retry queue.
type ownerStatsResponse struct {
	UserID          int64 `json:"user_id"`
	TotalTraces     int   `json:"total_traces"`
	TotalWords      int   `json:"total_words"`
	TotalActivities int   `json:"total_activities"`
}

type activityWriteResponse struct {
	Activity activityResponse    `json:"activity"`
	Owner    *ownerStatsResponse `json:"owner,omitempty"`
}

type listActivitiesResponse struct {
	Data []activityResponse `json:"data"`
}

type previewResponse struct {
	Type      string `json:"type"`
	WordCount int    `json:"word_count"`
	Responses int    `json:"responses,omitempty"`
	Traces    int    `json:"traces"`
}
