package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GoalType string

const (
	GoalTypeSavings       GoalType = "savings"
	GoalTypeSpendingLimit GoalType = "spending_limit"
	GoalTypeDebtPayoff    GoalType = "debt_payoff"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusAbandoned GoalStatus = "abandoned"
)

type GoalPeriod string

const (
	PeriodMonthly GoalPeriod = "monthly"
	PeriodWeekly  GoalPeriod = "weekly"
	PeriodAnnual  GoalPeriod = "annual"
	PeriodOneTime GoalPeriod = "one_time"
)

// Goal is a member-defined financial target. TargetAmount is always > 0
// (enforced at creation); CurrentAmount may legitimately exceed it
// (over-saved) and CurrentSpending may exceed it (over-budget).
type Goal struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`

	Type        GoalType `gorm:"size:20;not null" json:"type"`
	Name        string   `gorm:"size:200;not null" json:"name"`
	Description string   `gorm:"type:text" json:"description,omitempty"`

	TargetAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"target_amount"`
	CurrentAmount   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"current_amount"`
	CurrentSpending decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"current_spending"`

	Deadline *time.Time `json:"deadline,omitempty"`
	Period   GoalPeriod `gorm:"size:16" json:"period,omitempty"`

	Status   GoalStatus `gorm:"size:16;index;default:active" json:"status"`
	Priority int        `gorm:"default:1" json:"priority"`

	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (g *Goal) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
