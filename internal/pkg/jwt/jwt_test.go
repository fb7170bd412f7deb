package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	SetSecrets("access-secret", "refresh-secret")

	token, err := SignAccess("user-1", "a@example.com")
	require.NoError(t, err)

	claims, err := ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	SetSecrets("access-secret", "refresh-secret")

	refresh, err := SignRefresh("user-1", "a@example.com")
	require.NoError(t, err)

	_, err = ParseAccess(refresh)
	assert.Error(t, err)

	claims, err := ParseRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestParseRejectsGarbage(t *testing.T) {
	SetSecrets("access-secret", "refresh-secret")
	_, err := ParseAccess("not.a.token")
	assert.Error(t, err)
}
