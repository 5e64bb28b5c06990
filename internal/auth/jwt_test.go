package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	user := models.User{ID: "1", Email: "ada@example.com", Name: "Ada"}

	token, err := issuer.GenerateToken(user)
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user, claims.User())
	assert.Equal(t, "1", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 0)
	token, err := issuer.GenerateToken(models.User{ID: "1"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		issuer *TokenIssuer
		token  string
	}{
		{"wrong secret", NewTokenIssuer("other-secret", 0), token},
		{"tampered", issuer, token + "x"},
		{"placeholder token", issuer, MockToken},
		{"empty", issuer, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.issuer.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	secret := "test-secret"
	claims := Claims{
		UserID: "1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokenIssuer(secret, 0).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenIssuer_NoSecret(t *testing.T) {
	issuer := NewTokenIssuer("", 0)

	_, err := issuer.GenerateToken(models.User{ID: "1"})
	assert.ErrorIs(t, err, ErrSecretNotInitialized)

	_, err = issuer.ValidateToken("anything")
	assert.ErrorIs(t, err, ErrSecretNotInitialized)
}
