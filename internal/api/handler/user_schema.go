package handler

import (
	"time"

	"github.com/ineludible/trazos-api/internal/core/domain"
	"github.com/ineludible/trazos-api/internal/core/ports"
)

// --- Request / Response types ---

type registerRequest struct {
	Signature  string `json:"signature"   validate:"required"`
	FullName   string `json:"full_name"   validate:"required"`
	Age        int    `json:"age,omitempty"         validate:"omitempty,gt=0"`
	BirthDay   int    `json:"birth_day,omitempty"   validate:"omitempty,min=1,max=31"`
	BirthMonth int    `json:"birth_month,omitempty" validate:"omitempty,min=1,max=12"`
	Link       string `json:"link,omitempty"        validate:"omitempty,url"`
	Motivation string `json:"motivation,omitempty"`
}

type loginRequest struct {
	Signature string `json:"signature" validate:"required"`
}

type userResponse struct {
	ID              int64     `json:"id"`
	Signature       string    `json:"signature"`
	FullName        string    `json:"full_name"`
	Role            string    `json:"role"`
	Rank            string    `json:"rank"`
	Medal           string    `json:"medal,omitempty"`
	TotalTraces     int       `json:"total_traces"`
	TotalWords      int       `json:"total_words"`
	TotalActivities int       `json:"total_activities"`
	CreatedAt       time.Time `json:"created_at"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type bonusAwardResponse struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Amount    int       `json:"amount"`
	Reason    string    `json:"reason,omitempty"`
	GrantedBy int64     `json:"granted_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type profileResponse struct {
	User         userResponse         `json:"user"`
	BonusHistory []bonusAwardResponse `json:"bonus_history"`
}

type setRankRequest struct {
	Rank string `json:"rank" validate:"required"`
}

type bulkBonusRequest struct {
	UserIDs  []int64 `json:"user_ids" validate:"required,min=1"`
	Category string  `json:"category" validate:"required"`
	Amount   int     `json:"amount,omitempty"   validate:"omitempty,gt=0"`
	Reason   string  `json:"reason,omitempty"`
}

type bulkBonusResponse struct {
	Granted []bonusAwardResponse `json:"granted"`
}

type resyncResponse struct {
	Resynced int `json:"resynced"`
}

// --- Mappers ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Signature:       u.Signature,
		FullName:        u.FullName,
		Role:            u.Role,
		Rank:            string(u.Rank),
		Medal:           u.Medal(),
		TotalTraces:     u.TotalTraces,
		TotalWords:      u.TotalWords,
		TotalActivities: u.TotalActivities,
		CreatedAt:       u.CreatedAt.UTC(),
	}
}

func toBonusAwardResponse(b *domain.BonusAward) bonusAwardResponse {
	return bonusAwardResponse{
		ID:        b.ID,
		Category:  b.Category,
		Amount:    b.Amount,
		Reason:    b.Reason,
		GrantedBy: b.GrantedBy,
		CreatedAt: b.CreatedAt.UTC(),
	}
}

func toProfileResponse(p *ports.UserProfile) profileResponse {
	history := make([]bonusAwardResponse, len(p.BonusHistory))
	for i, b := range p.BonusHistory {
		history[i] = toBonusAwardResponse(b)
	}
	return profileResponse{
		User:         toUserResponse(p.User),
		BonusHistory: history,
	}
}
