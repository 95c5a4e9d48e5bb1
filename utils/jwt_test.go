package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userID := uuid.New()

	token, err := GenerateAccessToken(userID)
	require.NoError(t, err)

	parsed, err := ParseToken(token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	userID := uuid.New()

	token, err := GenerateRefreshToken(userID)
	require.NoError(t, err)

	parsed, err := ParseToken(token, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestParseTokenRejectsWrongType(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	refresh, err := GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	_, err = ParseToken(refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "another-secret")
	_, err = ParseToken(token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseToken("not.a.token", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
