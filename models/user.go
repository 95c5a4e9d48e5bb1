package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"size:255;not null" json:"-"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`
	Phone     string `gorm:"size:20" json:"phone,omitempty"`

	// Segment is a coarse member bucket: "new", "growth", "high_value".
	Segment          string  `gorm:"size:50" json:"segment,omitempty"`
	FinancialProfile JSONMap `json:"financial_profile,omitempty"` // annual_income, credit_score, dti_ratio
	Preferences      JSONMap `json:"preferences,omitempty"`

	IsActive   bool       `gorm:"default:true" json:"-"`
	IsVerified bool       `gorm:"default:false" json:"is_verified"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
