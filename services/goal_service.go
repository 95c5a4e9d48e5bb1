package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/UlyssesVaz/SoundCreditUnion/config"
	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrGoalNotFound = errors.New("goal not found")

type GoalInput struct {
	Type         models.GoalType   `json:"type" binding:"required,oneof=savings spending_limit debt_payoff"`
	Name         string            `json:"name" binding:"required,max=200"`
	Description  string            `json:"description"`
	TargetAmount decimal.Decimal   `json:"target_amount" binding:"required"`
	CurrentAmount decimal.Decimal  `json:"current_amount"`
	Deadline     *time.Time        `json:"deadline"`
	Period       models.GoalPeriod `json:"period" binding:"omitempty,oneof=monthly weekly annual one_time"`
	Priority     int               `json:"priority" binding:"omitempty,min=1,max=10"`
}

type GoalUpdateInput struct {
	Name            *string            `json:"name"`
	Description     *string            `json:"description"`
	TargetAmount    *decimal.Decimal   `json:"target_amount"`
	CurrentAmount   *decimal.Decimal   `json:"current_amount"`
	CurrentSpending *decimal.Decimal   `json:"current_spending"`
	Deadline        *time.Time         `json:"deadline"`
	Period          *models.GoalPeriod `json:"period"`
	Status          *models.GoalStatus `json:"status"`
	Priority        *int               `json:"priority"`
}

// GoalMetrics are the derived fields added to goal responses.
type GoalMetrics struct {
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
	DaysRemaining      *int            `json:"days_remaining,omitempty"`
}

func ListGoals(userID uuid.UUID, status models.GoalStatus) ([]models.Goal, error) {
	q := config.DB.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var goals []models.Goal
	err := q.Order("priority DESC, created_at DESC").Find(&goals).Error
	return goals, err
}

func ActiveGoals(userID uuid.UUID) ([]models.Goal, error) {
	return ListGoals(userID, models.GoalStatusActive)
}

func CreateGoal(userID uuid.UUID, input GoalInput) (*models.Goal, error) {
	if input.TargetAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: target amount must be positive", ErrInvalidAmount)
	}
	if input.CurrentAmount.Sign() < 0 {
		return nil, fmt.Errorf("%w: current amount cannot be negative", ErrInvalidAmount)
	}
	priority := input.Priority
	if priority == 0 {
		priority = 1
	}

	goal := models.Goal{
		UserID:        userID,
		Type:          input.Type,
		Name:          input.Name,
		Description:   input.Description,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: input.CurrentAmount,
		Deadline:      input.Deadline,
		Period:        input.Period,
		Priority:      priority,
		Status:        models.GoalStatusActive,
	}
	if err := config.DB.Create(&goal).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

func GetGoal(userID, goalID uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := config.DB.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func UpdateGoal(userID, goalID uuid.UUID, input GoalUpdateInput) (*models.Goal, error) {
	goal, err := GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		goal.Name = *input.Name
	}
	if input.Description != nil {
		goal.Description = *input.Description
	}
	if input.TargetAmount != nil {
		if input.TargetAmount.Sign() <= 0 {
			return nil, fmt.Errorf("%w: target amount must be positive", ErrInvalidAmount)
		}
		goal.TargetAmount = *input.TargetAmount
	}
	if input.CurrentAmount != nil {
		goal.CurrentAmount = *input.CurrentAmount
	}
	if input.CurrentSpending != nil {
		goal.CurrentSpending = *input.CurrentSpending
	}
	if input.Deadline != nil {
		goal.Deadline = input.Deadline
	}
	if input.Period != nil {
		goal.Period = *input.Period
	}
	if input.Priority != nil {
		goal.Priority = *input.Priority
	}
	if input.Status != nil {
		goal.Status = *input.Status
		if goal.Status == models.GoalStatusCompleted && goal.CompletedAt == nil {
			now := time.Now()
			goal.CompletedAt = &now
		}
	}

	if err := config.DB.Save(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

func DeleteGoal(userID, goalID uuid.UUID) error {
	goal, err := GetGoal(userID, goalID)
	if err != nil {
		return err
	}
	return config.DB.Delete(goal).Error
}

// ApplyPurchase returns a copy of the goal with a confirmed purchase applied:
// spending limits accrue the amount, savings goals are drawn down. The input
// goal is not touched; persisting the returned copy is the caller's call.
func ApplyPurchase(goal models.Goal, amount decimal.Decimal) (models.Goal, error) {
	if amount.Sign() <= 0 {
		return goal, ErrInvalidAmount
	}
	switch goal.Type {
	case models.GoalTypeSpendingLimit:
		goal.CurrentSpending = goal.CurrentSpending.Add(amount)
	case models.GoalTypeSavings:
		goal.CurrentAmount = goal.CurrentAmount.Sub(amount)
	case models.GoalTypeDebtPayoff:
		// a regular purchase doesn't move a debt balance
	default:
		return goal, fmt.Errorf("unknown goal type %q on goal %s", goal.Type, goal.ID)
	}
	return goal, nil
}

// ApplyPurchaseToGoal loads the goal, applies the purchase, and persists the
// result.
func ApplyPurchaseToGoal(userID, goalID uuid.UUID, amount decimal.Decimal) (*models.Goal, error) {
	goal, err := GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}
	updated, err := ApplyPurchase(*goal, amount)
	if err != nil {
		return nil, err
	}
	if err := config.DB.Save(&updated).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// MetricsFor computes progress percentage (capped at 100) and days remaining
// until the deadline.
func MetricsFor(goal *models.Goal) GoalMetrics {
	var m GoalMetrics

	current := goal.CurrentAmount
	if goal.Type == models.GoalTypeSpendingLimit {
		current = goal.CurrentSpending
	}
	if goal.TargetAmount.Sign() > 0 {
		pct := current.Div(goal.TargetAmount).Mul(hundred)
		if pct.GreaterThan(hundred) {
			pct = hundred
		}
		m.ProgressPercentage = pct
	}

	if goal.Deadline != nil {
		days := int(time.Until(*goal.Deadline).Hours() / 24)
		if days < 0 {
			days = 0
		}
		m.DaysRemaining = &days
	}
	return m
}
