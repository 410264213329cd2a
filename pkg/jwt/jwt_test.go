package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", 15)

	token, expiresAt, err := m.GenerateAccessToken("7c9e6679-7425-40de-944b-e07fc1f90ae7", "a@b.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := NewManager("secret-one", 15)
	token, _, err := m.GenerateAccessToken("id", "a@b.com", "usuario")
	require.NoError(t, err)

	other := NewManager("secret-two", 15)
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -1)
	token, _, err := m.GenerateAccessToken("id", "a@b.com", "usuario")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", 15)
	_, err := m.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
