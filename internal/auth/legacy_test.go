package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "a@example.com", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "a@example.com", claims.Email)
	require.Equal(t, issuer, claims.Issuer)
}

func TestValidateTokenRejects(t *testing.T) {
	token, err := GenerateToken("user-1", "", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "other")
	require.Error(t, err)

	_, err = ValidateToken(token, "")
	require.Error(t, err)

	_, err = ValidateToken("not-a-jwt", "secret")
	require.Error(t, err)

	anon, err := GenerateToken("", "", "secret", 0)
	require.NoError(t, err)
	_, err = ValidateToken(anon, "secret")
	require.Error(t, err)
}
