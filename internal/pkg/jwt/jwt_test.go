//go:build unit

package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)

	token, err := svc.GenerateToken(42, 7, "operator", "USD")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, int64(7), claims.SiteID)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, "USD", claims.Currency)
}

func TestService_ValidateToken_Errors(t *testing.T) {
	t.Run("expired", func(t *testing.T) {
		svc := NewService("secret", -time.Minute)
		token, err := svc.GenerateToken(1, 1, "operator", "")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("different signing key", func(t *testing.T) {
		token, err := NewService("one", time.Hour).GenerateToken(1, 1, "operator", "")
		require.NoError(t, err)

		_, err = NewService("two", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := NewService("secret", time.Hour).ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
