// controllers/dev_controller.go
package controllers

import (
	"net/http"

	"github.com/UlyssesVaz/SoundCreditUnion/config"
	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"github.com/gin-gonic/gin"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

// SeedProducts loads the starter catalog for local development.
func SeedProducts(c *gin.Context) {
	var count int64
	config.DB.Model(&models.Product{}).Count(&count)
	if count > 0 {
		c.JSON(http.StatusOK, gin.H{"message": "catalog already seeded", "products": count})
		return
	}

	products := []models.Product{
		{
			Type:           models.ProductTypeCreditCard,
			Name:           "Sound CU Cashback Rewards Card",
			Description:    "Earn 2% cashback on all purchases. No annual fee.",
			BaseRate:       floatPtr(16.99),
			Terms:          models.JSONMap{"annual_fee": 0, "cashback_rate": 0.02, "intro_apr": 0, "intro_period_months": 12},
			Benefits:       models.StringList{"2% cashback on all purchases", "No annual fee", "No foreign transaction fees"},
			ApplicationURL: "https://soundcu.example/apply/cashback-card",
			MinCreditScore: intPtr(650),
		},
		{
			Type:           models.ProductTypeCreditCard,
			Name:           "Sound CU Premium Travel Card",
			Description:    "Premium card with travel rewards and lounge access.",
			BaseRate:       floatPtr(18.99),
			Terms:          models.JSONMap{"annual_fee": 95, "points_per_dollar": 3, "travel_credits": 200},
			Benefits:       models.StringList{"3X points on travel and dining", "$200 annual travel credit", "Airport lounge access"},
			ApplicationURL: "https://soundcu.example/apply/travel-card",
			MinCreditScore: intPtr(720),
			MinIncome:      floatPtr(60000),
		},
		{
			Type:           models.ProductTypeLoan,
			Name:           "Sound CU Personal Loan",
			Description:    "Flexible personal loans for any purpose. Quick approval.",
			BaseRate:       floatPtr(7.99),
			Terms:          models.JSONMap{"loan_amount_range": []int{1000, 50000}, "term_months_range": []int{12, 84}, "origination_fee": 0},
			Benefits:       models.StringList{"Rates as low as 7.99% APR", "No origination fees", "Quick approval process"},
			ApplicationURL: "https://soundcu.example/apply/personal-loan",
			MinCreditScore: intPtr(640),
			MaxDTIRatio:    floatPtr(0.45),
		},
		{
			Type:           models.ProductTypeLoan,
			Name:           "Sound CU Home Equity Line",
			Description:    "Tap into your home's equity with competitive rates.",
			BaseRate:       floatPtr(6.49),
			Terms:          models.JSONMap{"draw_period_years": 10, "repayment_period_years": 20},
			Benefits:       models.StringList{"Rates as low as 6.49% APR", "No closing costs up to $250K", "Interest may be tax deductible"},
			ApplicationURL: "https://soundcu.example/apply/heloc",
			MinCreditScore: intPtr(680),
			MaxDTIRatio:    floatPtr(0.43),
		},
		{
			Type:           models.ProductTypeSavingsAccount,
			Name:           "Sound CU High-Yield Savings",
			Description:    "Earn more on your savings with our competitive rates.",
			BaseRate:       floatPtr(4.25),
			Terms:          models.JSONMap{"min_balance": 0, "monthly_fee": 0, "compounding": "daily"},
			Benefits:       models.StringList{"4.25% APY on all balances", "No minimum balance", "No monthly fees"},
			ApplicationURL: "https://soundcu.example/open/high-yield-savings",
		},
	}

	if err := config.DB.Create(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "catalog seeded", "products": len(products)})
}
