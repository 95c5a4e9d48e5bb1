package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecommendationType string

const (
	RecommendationTypeLoan       RecommendationType = "loan"
	RecommendationTypeCreditCard RecommendationType = "credit_card"
	RecommendationTypeAlert      RecommendationType = "alert"
	RecommendationTypeCashback   RecommendationType = "cashback"
)

// Recommendation is the persisted record of a recommendation that was
// returned to a member, kept for shown/clicked tracking. It is never
// mutated after creation except for the counters.
type Recommendation struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	ProductID *uuid.UUID `gorm:"type:uuid" json:"product_id,omitempty"`

	Type     RecommendationType `gorm:"size:20;not null" json:"type"`
	Priority int                `gorm:"default:1" json:"priority"`

	PurchaseContext JSONMap `json:"purchase_context,omitempty"` // amount, merchant, category
	Message         JSONMap `gorm:"not null" json:"message"`    // title, description, cta, savings
	Impact          JSONMap `json:"impact,omitempty"`           // goal_id, goal_name, percentage

	ShownCount int `gorm:"default:0" json:"shown_count"`
	ClickCount int `gorm:"default:0" json:"click_count"`

	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (r *Recommendation) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
