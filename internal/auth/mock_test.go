package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestMockService_Login(t *testing.T) {
	svc := NewMockService(10*time.Millisecond, zerolog.Nop())

	start := time.Now()
	resp, err := svc.Login(context.Background(), models.LoginInput{Email: "ada@example.com", Password: "pw"})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	assert.Equal(t, models.User{ID: "1", Email: "ada@example.com", Name: "User"}, resp.User)
	assert.Equal(t, MockToken, resp.Token)
}

func TestMockService_SignupUsesName(t *testing.T) {
	svc := NewMockService(time.Millisecond, zerolog.Nop())

	resp, err := svc.Signup(context.Background(), models.SignupInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", resp.User.Name)
}

func TestMockService_SignedTokens(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	svc := NewMockService(time.Millisecond, zerolog.Nop(), WithIssuer(issuer))

	resp, err := svc.Login(context.Background(), models.LoginInput{Email: "ada@example.com"})
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User, claims.User())
}

func TestMockService_FailWith(t *testing.T) {
	svc := NewMockService(time.Millisecond, zerolog.Nop())
	boom := errors.New("service unavailable")
	svc.FailWith(boom)

	_, err := svc.Login(context.Background(), models.LoginInput{})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.ForgotPassword(context.Background(), models.ForgotPasswordInput{}), boom)
	assert.ErrorIs(t, svc.Logout(context.Background()), boom)

	svc.FailWith(nil)
	assert.NoError(t, svc.ResetPassword(context.Background(), models.ResetPasswordInput{}))
	assert.NoError(t, svc.VerifyEmail(context.Background(), models.VerifyEmailInput{}))
}

func TestMockService_ContextCancelled(t *testing.T) {
	svc := NewMockService(time.Second, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := svc.Login(ctx, models.LoginInput{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMockService_LogoutDelay(t *testing.T) {
	svc := NewMockService(time.Second, zerolog.Nop(), WithLogoutDelay(time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	assert.NoError(t, svc.Logout(ctx))
}
