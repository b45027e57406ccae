package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(secret, 42, TypeAccess, time.Minute)
	require.NoError(t, err)

	claims, err := ParseToken(secret, TypeAccess, token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(secret, 42, TypeAccess, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken([]byte("other"), TypeAccess, token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(secret, 42, TypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TypeAccess, token)
	assert.Error(t, err)
}

func TestParseToken_WrongType(t *testing.T) {
	token, err := GenerateToken(secret, 42, "refresh", time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(secret, TypeAccess, token)
	assert.Error(t, err)
}
