package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductType string

const (
	ProductTypeLoan            ProductType = "loan"
	ProductTypeCreditCard      ProductType = "credit_card"
	ProductTypeSavingsAccount  ProductType = "savings_account"
	ProductTypeCheckingAccount ProductType = "checking_account"
)

// Product is a catalog entry the matcher can attach to a recommendation.
// The eligibility floors are nullable; a null floor always passes.
type Product struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Type        ProductType `gorm:"size:20;not null" json:"type"`
	Name        string      `gorm:"size:200;not null" json:"name"`
	Description string      `gorm:"type:text;not null" json:"description"`

	BaseRate *float64   `json:"base_rate,omitempty"` // APR for loans, APY for deposit accounts
	Terms    JSONMap    `json:"terms,omitempty"`
	Benefits StringList `json:"benefits,omitempty"`

	ApplicationURL string `gorm:"size:500" json:"application_url,omitempty"`

	MinCreditScore *int     `json:"min_credit_score,omitempty"`
	MaxDTIRatio    *float64 `json:"max_dti_ratio,omitempty"`
	MinIncome      *float64 `json:"min_income,omitempty"`

	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
