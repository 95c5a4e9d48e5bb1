package services

import (
	"errors"
	"fmt"

	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// warningThreshold: a goal is flagged once a purchase pushes its impact past
// this percentage. Business constant, same for every goal type.
var warningThreshold = decimal.NewFromInt(90)

var hundred = decimal.NewFromInt(100)

var (
	ErrInvalidAmount = errors.New("purchase amount must be positive")
	ErrMalformedGoal = errors.New("goal has non-positive target amount")
)

type GoalImpact struct {
	GoalID           uuid.UUID       `json:"goal_id"`
	GoalName         string          `json:"goal_name"`
	GoalType         models.GoalType `json:"-"`
	ImpactPercentage decimal.Decimal `json:"impact_percentage"`
	NewAmount        decimal.Decimal `json:"new_amount"`
	Remaining        decimal.Decimal `json:"remaining"`
	IsWarning        bool            `json:"is_warning"`
	Description      string          `json:"description"`
}

type ImpactAnalysis struct {
	AffectedGoals []GoalImpact `json:"affected_goals"`
	TotalGoals    int          `json:"total_goals"`
	WarningsCount int          `json:"warnings_count"`
}

// AnalyzePurchaseImpact computes, per goal, how a hypothetical purchase of
// amount would move that goal. It is read-only: no goal is mutated, and the
// same inputs always produce the same output. Records come back in input
// order, one per goal. Goal state is only changed later, by ApplyPurchase,
// once a purchase is confirmed.
func AnalyzePurchaseImpact(amount decimal.Decimal, goals []models.Goal) (*ImpactAnalysis, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}

	out := &ImpactAnalysis{
		AffectedGoals: make([]GoalImpact, 0, len(goals)),
		TotalGoals:    len(goals),
	}

	for _, g := range goals {
		if g.TargetAmount.Sign() <= 0 {
			return nil, fmt.Errorf("%w: goal %s", ErrMalformedGoal, g.ID)
		}

		impact := GoalImpact{GoalID: g.ID, GoalName: g.Name, GoalType: g.Type}

		switch g.Type {
		case models.GoalTypeSavings:
			// Spending this money moves the goal away from its target. The
			// percentage is uncapped: above 100 means the goal is out of reach.
			projected := g.CurrentAmount.Sub(amount)
			impact.NewAmount = projected
			impact.Remaining = g.TargetAmount.Sub(projected)
			impact.ImpactPercentage = g.TargetAmount.Sub(projected).Div(g.TargetAmount).Mul(hundred)
			impact.Description = fmt.Sprintf(
				"This purchase would draw $%s from your %s goal",
				amount.StringFixed(2), g.Name,
			)

		case models.GoalTypeSpendingLimit:
			projected := g.CurrentSpending.Add(amount)
			remaining := g.TargetAmount.Sub(projected)
			impact.NewAmount = projected
			impact.Remaining = remaining
			impact.ImpactPercentage = projected.Div(g.TargetAmount).Mul(hundred)
			if remaining.Sign() < 0 {
				impact.Description = fmt.Sprintf(
					"This purchase would put you $%s over your %s limit",
					remaining.Neg().StringFixed(2), g.Name,
				)
			} else {
				impact.Description = fmt.Sprintf(
					"You'll have $%s remaining in your %s",
					remaining.StringFixed(2), g.Name,
				)
			}

		case models.GoalTypeDebtPayoff:
			// Opportunity cost: the share of the remaining debt this money
			// could have paid off instead.
			impact.NewAmount = g.CurrentAmount
			impact.Remaining = g.TargetAmount.Sub(g.CurrentAmount)
			impact.ImpactPercentage = amount.Div(g.TargetAmount).Mul(hundred)
			impact.Description = fmt.Sprintf(
				"This amount could reduce your %s by %s%%",
				g.Name, impact.ImpactPercentage.StringFixed(1),
			)

		default:
			return nil, fmt.Errorf("unknown goal type %q on goal %s", g.Type, g.ID)
		}

		impact.IsWarning = impact.ImpactPercentage.GreaterThan(warningThreshold)
		if impact.IsWarning {
			out.WarningsCount++
		}
		out.AffectedGoals = append(out.AffectedGoals, impact)
	}

	return out, nil
}

// Affected is the view the recommendation layer consumes: only goals the
// purchase actually touches (impact above zero).
func (a *ImpactAnalysis) Affected() []GoalImpact {
	var out []GoalImpact
	for _, gi := range a.AffectedGoals {
		if gi.ImpactPercentage.Sign() > 0 {
			out = append(out, gi)
		}
	}
	return out
}
