package services

import (
	"testing"

	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func savingsGoal(name string, target, current string) models.Goal {
	return models.Goal{
		ID:            uuid.New(),
		Type:          models.GoalTypeSavings,
		Name:          name,
		TargetAmount:  dec(target),
		CurrentAmount: dec(current),
		Status:        models.GoalStatusActive,
	}
}

func spendingGoal(name string, target, spent string) models.Goal {
	return models.Goal{
		ID:              uuid.New(),
		Type:            models.GoalTypeSpendingLimit,
		Name:            name,
		TargetAmount:    dec(target),
		CurrentSpending: dec(spent),
		Status:          models.GoalStatusActive,
	}
}

func TestAnalyzeRejectsNonPositiveAmount(t *testing.T) {
	goals := []models.Goal{savingsGoal("Vacation", "1000", "200")}

	_, err := AnalyzePurchaseImpact(decimal.Zero, goals)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = AnalyzePurchaseImpact(dec("-5"), goals)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAnalyzeEmptyGoalsIsEmptyResult(t *testing.T) {
	analysis, err := AnalyzePurchaseImpact(dec("100"), nil)
	require.NoError(t, err)
	assert.Empty(t, analysis.AffectedGoals)
	assert.Equal(t, 0, analysis.TotalGoals)
	assert.Equal(t, 0, analysis.WarningsCount)
}

func TestAnalyzeRejectsMalformedGoal(t *testing.T) {
	bad := savingsGoal("Broken", "0", "100")
	_, err := AnalyzePurchaseImpact(dec("50"), []models.Goal{bad})
	assert.ErrorIs(t, err, ErrMalformedGoal)
}

func TestSavingsImpactFormula(t *testing.T) {
	// impact == ((T - (C - amount)) / T) * 100, exactly
	goal := savingsGoal("House Down Payment", "40000", "12500")

	analysis, err := AnalyzePurchaseImpact(dec("1500"), []models.Goal{goal})
	require.NoError(t, err)
	require.Len(t, analysis.AffectedGoals, 1)

	gi := analysis.AffectedGoals[0]
	projected := dec("12500").Sub(dec("1500"))
	want := dec("40000").Sub(projected).Div(dec("40000")).Mul(dec("100"))
	assert.True(t, gi.ImpactPercentage.Equal(want), "got %s want %s", gi.ImpactPercentage, want)
	assert.True(t, gi.NewAmount.Equal(dec("11000")))
	assert.True(t, gi.Remaining.Equal(dec("29000")))
	assert.False(t, gi.IsWarning)
	assert.Contains(t, gi.Description, "$1500.00")
	assert.Contains(t, gi.Description, "House Down Payment")
}

func TestSavingsImpactMayExceedHundred(t *testing.T) {
	// drawing below zero pushes the percentage past 100, signalling the goal
	// is moving out of reach
	goal := savingsGoal("Emergency Fund", "1000", "100")

	analysis, err := AnalyzePurchaseImpact(dec("300"), []models.Goal{goal})
	require.NoError(t, err)

	gi := analysis.AffectedGoals[0]
	assert.True(t, gi.ImpactPercentage.Equal(dec("120")), "got %s", gi.ImpactPercentage)
	assert.True(t, gi.IsWarning)
}

func TestSpendingLimitWithinBudget(t *testing.T) {
	// target=2000, spent=300, purchase=500 -> 40%, $1200 left, no warning
	goal := spendingGoal("Dining Budget", "2000", "300")

	analysis, err := AnalyzePurchaseImpact(dec("500"), []models.Goal{goal})
	require.NoError(t, err)

	gi := analysis.AffectedGoals[0]
	assert.True(t, gi.ImpactPercentage.Equal(dec("40")), "got %s", gi.ImpactPercentage)
	assert.True(t, gi.NewAmount.Equal(dec("800")))
	assert.True(t, gi.Remaining.Equal(dec("1200")))
	assert.False(t, gi.IsWarning)
	assert.Contains(t, gi.Description, "$1200.00 remaining")
	assert.Equal(t, 0, analysis.WarningsCount)
}

func TestSpendingLimitOverage(t *testing.T) {
	goal := spendingGoal("Dining Budget", "2000", "300")

	analysis, err := AnalyzePurchaseImpact(dec("1900"), []models.Goal{goal})
	require.NoError(t, err)

	gi := analysis.AffectedGoals[0]
	assert.True(t, gi.Remaining.Equal(dec("-200")), "got %s", gi.Remaining)
	assert.True(t, gi.IsWarning)
	assert.Contains(t, gi.Description, "$200.00 over")
	assert.Equal(t, 1, analysis.WarningsCount)
}

func TestSpendingLimitWarningThreshold(t *testing.T) {
	// is_warning holds exactly when the projected percentage crosses 90
	goal := spendingGoal("Groceries", "1000", "0")

	atThreshold, err := AnalyzePurchaseImpact(dec("900"), []models.Goal{goal})
	require.NoError(t, err)
	assert.False(t, atThreshold.AffectedGoals[0].IsWarning, "90 exactly is not a warning")

	over, err := AnalyzePurchaseImpact(dec("900.01"), []models.Goal{goal})
	require.NoError(t, err)
	assert.True(t, over.AffectedGoals[0].IsWarning)
}

func TestDebtPayoffOpportunityCost(t *testing.T) {
	goal := models.Goal{
		ID:            uuid.New(),
		Type:          models.GoalTypeDebtPayoff,
		Name:          "Car Loan",
		TargetAmount:  dec("8000"),
		CurrentAmount: dec("2000"),
	}

	analysis, err := AnalyzePurchaseImpact(dec("400"), []models.Goal{goal})
	require.NoError(t, err)

	gi := analysis.AffectedGoals[0]
	assert.True(t, gi.ImpactPercentage.Equal(dec("5")), "got %s", gi.ImpactPercentage)
	assert.Contains(t, gi.Description, "Car Loan")
	assert.False(t, gi.IsWarning)
}

func TestAnalyzePreservesInputOrderAndIsPure(t *testing.T) {
	goals := []models.Goal{
		spendingGoal("First", "1000", "100"),
		savingsGoal("Second", "5000", "2500"),
		spendingGoal("Third", "300", "250"),
	}
	amount := dec("120")

	before := make([]models.Goal, len(goals))
	copy(before, goals)

	first, err := AnalyzePurchaseImpact(amount, goals)
	require.NoError(t, err)
	second, err := AnalyzePurchaseImpact(amount, goals)
	require.NoError(t, err)

	require.Len(t, first.AffectedGoals, 3)
	for i := range goals {
		assert.Equal(t, goals[i].ID, first.AffectedGoals[i].GoalID)
	}
	assert.Equal(t, first, second, "identical inputs must yield identical output")
	assert.Equal(t, before, goals, "analysis must not mutate goals")
}

func TestAffectedFiltersZeroImpact(t *testing.T) {
	goals := []models.Goal{
		spendingGoal("Budget", "1000", "0"),
		savingsGoal("Nest Egg", "10000", "4000"),
	}

	analysis, err := AnalyzePurchaseImpact(dec("50"), goals)
	require.NoError(t, err)

	affected := analysis.Affected()
	assert.Len(t, affected, 2)
	for _, gi := range affected {
		assert.True(t, gi.ImpactPercentage.Sign() > 0)
	}
}
