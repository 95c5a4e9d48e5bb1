package services

import (
	"testing"

	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func cardWithFloors() models.Product {
	return models.Product{
		ID:             uuid.New(),
		Type:           models.ProductTypeCreditCard,
		Name:           "Cashback Rewards Card",
		MinCreditScore: intPtr(680),
		MinIncome:      floatPtr(30000),
		MaxDTIRatio:    floatPtr(0.45),
		IsActive:       true,
	}
}

func TestFilterEligiblePassesProfileClearingFloors(t *testing.T) {
	profile := models.JSONMap{
		"credit_score":  float64(720),
		"annual_income": float64(85000),
		"dti_ratio":     0.28,
	}

	out := FilterEligible([]models.Product{cardWithFloors()}, profile)
	assert.Len(t, out, 1)
}

func TestFilterEligibleCreditScoreFloor(t *testing.T) {
	profile := models.JSONMap{"credit_score": float64(640)}

	out := FilterEligible([]models.Product{cardWithFloors()}, profile)
	assert.Empty(t, out)
}

func TestFilterEligibleIncomeFloor(t *testing.T) {
	profile := models.JSONMap{"annual_income": float64(25000)}

	out := FilterEligible([]models.Product{cardWithFloors()}, profile)
	assert.Empty(t, out)
}

func TestFilterEligibleDTICeiling(t *testing.T) {
	profile := models.JSONMap{"dti_ratio": 0.6}

	out := FilterEligible([]models.Product{cardWithFloors()}, profile)
	assert.Empty(t, out)
}

func TestFilterEligibleMissingProfileValuesPass(t *testing.T) {
	out := FilterEligible([]models.Product{cardWithFloors()}, models.JSONMap{})
	assert.Len(t, out, 1)

	out = FilterEligible([]models.Product{cardWithFloors()}, nil)
	assert.Len(t, out, 1)
}

func TestFilterEligibleMissingFloorsPass(t *testing.T) {
	savings := models.Product{
		ID:       uuid.New(),
		Type:     models.ProductTypeSavingsAccount,
		Name:     "High-Yield Savings",
		IsActive: true,
	}
	profile := models.JSONMap{"credit_score": float64(500), "dti_ratio": 0.9}

	out := FilterEligible([]models.Product{savings}, profile)
	assert.Len(t, out, 1)
}

func TestFilterEligibleKeepsCatalogOrder(t *testing.T) {
	strict := cardWithFloors()
	open := models.Product{ID: uuid.New(), Type: models.ProductTypeLoan, Name: "Personal Loan", IsActive: true}
	premium := models.Product{
		ID:             uuid.New(),
		Type:           models.ProductTypeCreditCard,
		Name:           "Travel Card",
		MinCreditScore: intPtr(740),
		IsActive:       true,
	}
	profile := models.JSONMap{"credit_score": float64(700)}

	out := FilterEligible([]models.Product{strict, open, premium}, profile)
	require.Len(t, out, 2)
	assert.Equal(t, strict.ID, out[0].ID)
	assert.Equal(t, open.ID, out[1].ID)
}
