package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ActivityType is the closed classification of a creative activity.
type ActivityType string

const (
	TypeNarrativa   ActivityType = "narrativa"
	TypeMicrocuento ActivityType = "microcuento"
	TypeDrabble     ActivityType = "drabble"
	TypeHilo        ActivityType = "hilo"
	TypeRol         ActivityType = "rol"
	TypeOtro        ActivityType = "otro"
)

// ActivityTypes lists every valid activity type.
var ActivityTypes = []ActivityType{
	TypeNarrativa,
	TypeMicrocuento,
	TypeDrabble,
	TypeHilo,
	TypeRol,
	TypeOtro,
}

// IsValidActivityType reports whether t belongs to the closed enumeration.
func IsValidActivityType(t ActivityType) bool {
	for _, known := range ActivityTypes {
		if known == t {
			return true
		}
	}
	return false
}

var ErrActivityNotFound = errors.New("activity not found")
var ErrForbidden = errors.New("access forbidden")

// ValidationError carries every failing field of a submission, not just the
// first, so the caller can correct the whole form in one pass.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Add appends a field-level failure message in "field: reason" form.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, fmt.Sprintf("%s: %s", field, reason))
}

// HasErrors reports whether at least one field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Activity is a single creative submission owned by exactly one user.
// Traces are computed once at create time and again at update time, and
// stored redundantly so historical totals survive later rule changes.
type Activity struct {
	ID          int64        `json:"id" bson:"_id"`
	UserID      int64        `json:"user_id" bson:"user_id"`
	Name        string       `json:"name" bson:"name"`
	Description string       `json:"description" bson:"description"`
	Date        time.Time    `json:"date" bson:"date"`
	Link        string       `json:"link,omitempty" bson:"link,omitempty"`
	ImageURL    string       `json:"image_url" bson:"image_url"`
	Type        ActivityType `json:"type" bson:"type"`
	Arista      string       `json:"arista" bson:"arista"`
	Album       string       `json:"album" bson:"album"`
	WordCount   int          `json:"word_count" bson:"word_count"`
	Responses   int          `json:"responses,omitempty" bson:"responses,omitempty"`
	Traces      int          `json:"traces" bson:"traces"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}
