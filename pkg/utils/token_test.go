package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "123456789", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "123456789", claims.Phone)
}

func TestParseTokenRejects(t *testing.T) {
	valid, err := GenerateToken("user-1", "123456789", "secret", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken("user-1", "123456789", "secret", -time.Minute)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	forged, err := GenerateToken("user-2", "987654321", "secret", time.Hour)
	require.NoError(t, err)
	// Payload from another token under the original signature.
	tampered := parts[0] + "." + strings.Split(forged, ".")[1] + "." + parts[2]

	cases := map[string]struct {
		token  string
		secret string
	}{
		"malformed":    {token: "not-a-token", secret: "secret"},
		"empty":        {token: "", secret: "secret"},
		"wrong secret": {token: valid, secret: "other"},
		"tampered":     {token: tampered, secret: "secret"},
		"expired":      {token: expired, secret: "secret"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(tc.token, tc.secret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)
	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "password456"))
	assert.False(t, CheckPassword("not-a-hash", "password123"))

	long := strings.Repeat("a", 80)
	hash, err = HashPassword(long)
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, long))
	// Passwords sharing the first 72 bytes must still differ.
	assert.False(t, CheckPassword(hash, strings.Repeat("a", 72)+"bbbbbbbb"))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 10, ParseInt("abc", 10))
	assert.Equal(t, 1, ParseInt("0", 1))
}

func TestCalculatePages(t *testing.T) {
	assert.Equal(t, 3, CalculateTotalPages(25, 10))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 20, CalculateOffset(3, 10))
	assert.Equal(t, 0, CalculateOffset(0, 10))
}

func TestTokenConfigValidate(t *testing.T) {
	assert.ErrorIs(t, TokenConfig{}.Validate(), ErrInsecureTokenSecret)
	assert.ErrorIs(t, TokenConfig{Secret: "  "}.Validate(), ErrInsecureTokenSecret)
	assert.ErrorIs(t, TokenConfig{Secret: DefaultTokenSecret}.Validate(), ErrInsecureTokenSecret)
	assert.NoError(t, TokenConfig{Secret: "a-real-secret"}.Validate())
}
