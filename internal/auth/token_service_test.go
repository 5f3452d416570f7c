package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	ts := NewTokenService("test-secret")

	token, err := ts.Generate(42, "testuser")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.ID)
	assert.Equal(t, "testuser", claims.Username)

	// Validity window is exactly one hour from issuance.
	assert.WithinDuration(t, claims.IssuedAt.Add(TokenExpiry), claims.ExpiresAt.Time, time.Second)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, 5*time.Second)
}

func TestTokenService_Parse(t *testing.T) {
	ts := NewTokenService("test-secret")

	makeToken := func(secret string, expiresIn time.Duration) string {
		now := time.Now()
		claims := &Claims{
			ID:       1,
			Username: "testuser",
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:    "valid token",
			token:   makeToken("test-secret", time.Hour),
			wantErr: false,
		},
		{
			name:    "wrong secret",
			token:   makeToken("wrong-secret", time.Hour),
			wantErr: true,
		},
		{
			name:    "expired token",
			token:   makeToken("test-secret", -time.Hour),
			wantErr: true,
		},
		{
			name:    "garbage token",
			token:   "not.a.token",
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ts.Parse(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "testuser", claims.Username)
			}
		})
	}
}
