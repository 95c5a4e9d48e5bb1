package services

import (
	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"gorm.io/gorm"
)

func ListProducts(db *gorm.DB, productType models.ProductType) ([]models.Product, error) {
	q := db.Where("is_active = ?", true)
	if productType != "" {
		q = q.Where("type = ?", productType)
	}
	var products []models.Product
	err := q.Order("created_at ASC").Find(&products).Error
	return products, err
}

// EligibleProducts returns the active catalog entries whose eligibility
// floors the member's financial profile clears.
func EligibleProducts(db *gorm.DB, user *models.User) ([]models.Product, error) {
	products, err := ListProducts(db, "")
	if err != nil {
		return nil, err
	}
	return FilterEligible(products, user.FinancialProfile), nil
}

// FilterEligible applies the per-product floors against a financial profile
// (annual_income, credit_score, dti_ratio). A missing floor always passes; a
// missing profile value also passes, matching how the catalog treats unknown
// applicants at the browse stage.
func FilterEligible(products []models.Product, profile models.JSONMap) []models.Product {
	var out []models.Product
	for _, p := range products {
		if score, ok := profileNumber(profile, "credit_score"); ok && p.MinCreditScore != nil && score < float64(*p.MinCreditScore) {
			continue
		}
		if income, ok := profileNumber(profile, "annual_income"); ok && p.MinIncome != nil && income < *p.MinIncome {
			continue
		}
		if dti, ok := profileNumber(profile, "dti_ratio"); ok && p.MaxDTIRatio != nil && dti > *p.MaxDTIRatio {
			continue
		}
		out = append(out, p)
	}
	return out
}

func profileNumber(profile models.JSONMap, key string) (float64, bool) {
	if profile == nil {
		return 0, false
	}
	switch v := profile[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
