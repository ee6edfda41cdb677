package domain

import "time"

// Bonus categories recognised by the trace calculator's bonus table.
const (
	BonusBirthday     = "birthday"
	BonusProjectEntry = "project-entry"
	BonusPromo        = "promo"
	BonusFirstMonth   = "first-month"
	BonusBimesterEnd  = "bimester-end"
)

// BonusAward is a one-off trace grant not tied to any activity: registration,
// birthday, or an admin-assigned bulk grant. Awards are persisted as the
// user's bonus history and folded into every stats resync, so a resync never
// erases previously granted amounts.
type BonusAward struct {
	ID        int64     `json:"id" bson:"_id"`
	UserID    int64     `json:"user_id" bson:"user_id"`
	Amount    int       `json:"amount" bson:"amount"`
	Category  string    `json:"category" bson:"category"`
	Reason    string    `json:"reason,omitempty" bson:"reason,omitempty"`
	GrantedBy int64     `json:"granted_by,omitempty" bson:"granted_by,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
