package services

import (
	"errors"
	"time"

	"github.com/UlyssesVaz/SoundCreditUnion/config"
	"github.com/UlyssesVaz/SoundCreditUnion/models"
	"github.com/UlyssesVaz/SoundCreditUnion/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrInvalidRefresh     = errors.New("invalid or expired refresh token")
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func RegisterUser(email, password, firstName, lastName, phone string) (*models.User, *TokenPair, error) {
	var existing models.User
	err := config.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, nil, err
	}

	user := models.User{
		Email:            email,
		Password:         hashed,
		FirstName:        firstName,
		LastName:         lastName,
		Phone:            phone,
		Segment:          "new",
		FinancialProfile: models.JSONMap{},
		Preferences:      models.JSONMap{},
		IsActive:         true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, nil, err
	}

	pair, err := issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

func AuthenticateUser(email, password string) (*models.User, *TokenPair, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountInactive
	}

	now := time.Now()
	user.LastLogin = &now
	config.DB.Save(&user)

	pair, err := issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, pair, nil
}

// RefreshTokens rotates a refresh token: the presented token is revoked and
// a fresh pair is issued, so a replayed token is rejected.
func RefreshTokens(refreshToken string) (*TokenPair, error) {
	userID, err := utils.ParseToken(refreshToken, utils.TokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	var stored models.RefreshToken
	err = config.DB.Where("token = ? AND user_id = ? AND revoked = ?", refreshToken, userID, false).
		First(&stored).Error
	if err != nil || stored.ExpiresAt.Before(time.Now()) {
		return nil, ErrInvalidRefresh
	}

	stored.Revoked = true
	if err := config.DB.Save(&stored).Error; err != nil {
		return nil, err
	}

	return issueTokens(userID)
}

// RevokeUserTokens voids every live refresh token for the user (logout).
func RevokeUserTokens(userID uuid.UUID) error {
	return config.DB.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}

func issueTokens(userID uuid.UUID) (*TokenPair, error) {
	access, err := utils.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	row := models.RefreshToken{
		UserID:    userID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(utils.RefreshTokenTTL),
	}
	if err := config.DB.Create(&row).Error; err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}
