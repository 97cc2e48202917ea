package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/inkwell_test")
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateToken(42, "author@example.com", "author", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "author@example.com", claims.Email)
	assert.Equal(t, "author", claims.Role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	setTestConfig(t)

	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateToken(1, "a@x.com", "user", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateToken(1, "a@x.com", "user", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}
