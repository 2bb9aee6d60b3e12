package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret", "baby-tracker")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "baby-tracker", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := NewJWTService("test-secret", "baby-tracker")
	other := NewJWTService("other-secret", "baby-tracker")

	token, err := svc.GenerateToken(uuid.New(), "ana@example.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", "baby-tracker")

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
