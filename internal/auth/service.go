package auth

import (
	"context"

	"github.com/taskflow-dev/taskflow/internal/models"
)

// Service is the authentication backend used by the session provider and
// the auth pages. MockService and client.Client implement it.
type Service interface {
	Login(ctx context.Context, in models.LoginInput) (*models.AuthResponse, error)
	Signup(ctx context.Context, in models.SignupInput) (*models.AuthResponse, error)
	ForgotPassword(ctx context.Context, in models.ForgotPasswordInput) error
	ResetPassword(ctx context.Context, in models.ResetPasswordInput) error
	VerifyEmail(ctx context.Context, in models.VerifyEmailInput) error
	Logout(ctx context.Context) error
}

// Verifier checks a persisted token and returns the identity it carries
type Verifier interface {
	ValidateToken(token string) (*Claims, error)
}
