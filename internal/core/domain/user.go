package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// AdminSignature is always treated as an administrator account, regardless
// of the role stored on the user record.
const AdminSignature = "#INELUDIBLE"

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("signature already registered")
var ErrInvalidSignature = errors.New("invalid signature")
var ErrUserNotRanked = errors.New("user not present in ranking")

// Rank is the admin-assigned tier label of a member. It is never derived
// from trace totals.
type Rank string

const (
	RankAlmaEnTransito    Rank = "Alma en tránsito"
	RankVozEnBoceto       Rank = "Voz en boceto"
	RankNarrador          Rank = "Narrador de atmósferas"
	RankEscritor          Rank = "Escritor de introspecciones"
	RankArquitectoDelAlma Rank = "Arquitecto del alma"
)

// Ranks lists all ranks in ascending order. The first entry is the default
// assigned at registration.
var Ranks = []Rank{
	RankAlmaEnTransito,
	RankVozEnBoceto,
	RankNarrador,
	RankEscritor,
	RankArquitectoDelAlma,
}

// medals maps each rank to its display medal. The lowest rank carries none.
var medals = map[Rank]string{
	RankVozEnBoceto:       "Pluma de Tinta",
	RankNarrador:          "Pluma de Bronce",
	RankEscritor:          "Pluma de Plata",
	RankArquitectoDelAlma: "Pluma de Oro",
}

// IsValidRank reports whether r is one of the five known ranks.
func IsValidRank(r Rank) bool {
	for _, known := range Ranks {
		if known == r {
			return true
		}
	}
	return false
}

// MedalForRank returns the medal label for a rank. ok is false for the
// lowest rank and for unknown ranks.
func MedalForRank(r Rank) (medal string, ok bool) {
	medal, ok = medals[r]
	return medal, ok
}

// User models a community member. The three Total* fields are a cache owned
// by the statistics aggregator: they must always equal the recomputation over
// the user's current activity set plus granted bonuses, and are never the
// source of truth.
type User struct {
	ID         int64  `json:"id" bson:"_id"`
	Signature  string `json:"signature" bson:"signature"`
	FullName   string `json:"full_name" bson:"full_name"`
	Age        int    `json:"age,omitempty" bson:"age,omitempty"`
	BirthDay   int    `json:"birth_day,omitempty" bson:"birth_day,omitempty"`
	BirthMonth int    `json:"birth_month,omitempty" bson:"birth_month,omitempty"`
	Link       string `json:"link,omitempty" bson:"link,omitempty"`
	Motivation string `json:"motivation,omitempty" bson:"motivation,omitempty"`

	Role string `json:"role" bson:"role"`
	Rank Rank   `json:"rank" bson:"rank"`

	TotalTraces     int `json:"total_traces" bson:"total_traces"`
	TotalWords      int `json:"total_words" bson:"total_words"`
	TotalActivities int `json:"total_activities" bson:"total_activities"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// IsAdmin reports whether the user acts as an administrator. The reserved
// signature wins over the stored role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Signature == AdminSignature
}

// Medal returns the display medal derived from the user's rank, or the empty
// string when the rank carries none.
func (u *User) Medal() string {
	medal, _ := MedalForRank(u.Rank)
	return medal
}

// NormalizeSignature trims whitespace and enforces the leading '#'.
// It returns ErrInvalidSignature when nothing remains besides the prefix.
func NormalizeSignature(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		return "", ErrInvalidSignature
	}
	return "#" + s, nil
}
