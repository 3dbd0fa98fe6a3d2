package jwt

import (
	"testing"
	"time"

	"github.com/akhilrajvs/SquidEventWssService/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewJWTManager("test-secret")

	token, err := m.GenerateToken("u1", "player@event.com", model.RoleParticipant, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "player@event.com", claims.Email)
	assert.Equal(t, model.RoleParticipant, claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a").GenerateToken("u1", "a@b.com", model.RoleAdmin, time.Hour)
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret")
	token, err := m.GenerateToken("u1", "a@b.com", model.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestGenerateRequiresUserID(t *testing.T) {
	m := NewJWTManager("test-secret")
	_, err := m.GenerateToken("", "a@b.com", model.RoleAdmin, time.Hour)
	assert.Error(t, err)
}

func TestValidateRejectsEmpty(t *testing.T) {
	m := NewJWTManager("test-secret")
	_, err := m.ValidateToken("")
	assert.Error(t, err)
}
