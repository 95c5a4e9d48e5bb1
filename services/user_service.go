package services

import (
	"errors"

	"github.com/UlyssesVaz/SoundCreditUnion/config"
	"github.com/UlyssesVaz/SoundCreditUnion/models"

	"github.com/google/uuid"
)

var ErrUserNotFound = errors.New("user not found or disabled")

type UserUpdateInput struct {
	FirstName        *string         `json:"first_name"`
	LastName         *string         `json:"last_name"`
	Phone            *string         `json:"phone"`
	Segment          *string         `json:"segment"`
	FinancialProfile *models.JSONMap `json:"financial_profile"`
	Preferences      *models.JSONMap `json:"preferences"`
}

func GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := config.DB.Where("id = ? AND is_active = ?", userID, true).First(&user).Error
	if err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func UpdateUser(userID uuid.UUID, input UserUpdateInput) (*models.User, error) {
	user, err := GetUser(userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Segment != nil {
		user.Segment = *input.Segment
	}
	if input.FinancialProfile != nil {
		user.FinancialProfile = *input.FinancialProfile
	}
	if input.Preferences != nil {
		user.Preferences = *input.Preferences
	}

	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeactivateUser soft-deletes the account; goals and history stay behind the
// inactive flag.
func DeactivateUser(userID uuid.UUID) error {
	user, err := GetUser(userID)
	if err != nil {
		return err
	}
	user.IsActive = false
	if err := config.DB.Save(user).Error; err != nil {
		return err
	}
	return RevokeUserTokens(userID)
}
