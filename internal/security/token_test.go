package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-that-is-at-least-32-chars!"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, err := tm.GenerateToken(42, "user@test.com", time.Hour)
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, err := tm.GenerateToken(42, "user@test.com", -time.Minute)
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager(testSecret).GenerateToken(42, "user@test.com", time.Hour)
	assert.NoError(t, err)

	_, err = NewTokenManager("another-secret-that-is-also-32-chars!!").ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager(testSecret).ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
