package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenTTL  = 30 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

func GenerateAccessToken(userID uuid.UUID) (string, error) {
	return signToken(userID, TokenTypeAccess, AccessTokenTTL)
}

func GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return signToken(userID, TokenTypeRefresh, RefreshTokenTTL)
}

func signToken(userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	// jti keeps two tokens minted in the same second distinct; stored
	// refresh tokens carry a unique index.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"type": tokenType,
		"exp":  time.Now().Add(ttl).Unix(),
		"jti":  uuid.NewString(),
	})
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// ParseToken validates signature, expiry, and the token-type claim, and
// returns the user id carried in "sub".
func ParseToken(tokenString, tokenType string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	if typ, _ := claims["type"].(string); typ != tokenType {
		return uuid.Nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}
