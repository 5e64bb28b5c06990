package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/mutation"
	"github.com/taskflow-dev/taskflow/internal/storage"
)

// Auth mutation hooks. Each call returns a fresh instance with its own
// pending state.

type (
	LoginMutation          = mutation.Mutation[models.LoginInput, *models.AuthResponse]
	SignupMutation         = mutation.Mutation[models.SignupInput, *models.AuthResponse]
	ForgotPasswordMutation = mutation.Mutation[models.ForgotPasswordInput, struct{}]
	ResetPasswordMutation  = mutation.Mutation[models.ResetPasswordInput, struct{}]
	VerifyEmailMutation    = mutation.Mutation[models.VerifyEmailInput, struct{}]
	LogoutMutation         = mutation.Mutation[struct{}, struct{}]
)

func NewLoginMutation(svc auth.Service, log zerolog.Logger) *LoginMutation {
	return mutation.New[models.LoginInput, *models.AuthResponse]("login", svc.Login, log)
}

func NewSignupMutation(svc auth.Service, log zerolog.Logger) *SignupMutation {
	return mutation.New[models.SignupInput, *models.AuthResponse]("signup", svc.Signup, log)
}

func NewForgotPasswordMutation(svc auth.Service, log zerolog.Logger) *ForgotPasswordMutation {
	return mutation.New("forgot_password", noResult(svc.ForgotPassword), log)
}

func NewResetPasswordMutation(svc auth.Service, log zerolog.Logger) *ResetPasswordMutation {
	return mutation.New("reset_password", noResult(svc.ResetPassword), log)
}

func NewVerifyEmailMutation(svc auth.Service, log zerolog.Logger) *VerifyEmailMutation {
	return mutation.New("verify_email", noResult(svc.VerifyEmail), log)
}

// NewLogoutMutation signs out with the backend and then removes the stored
// token. The token stays if the backend call fails.
func NewLogoutMutation(svc auth.Service, store storage.Store, log zerolog.Logger) *LogoutMutation {
	return mutation.New[struct{}, struct{}]("logout", func(ctx context.Context, _ struct{}) (struct{}, error) {
		if err := svc.Logout(ctx); err != nil {
			return struct{}{}, err
		}
		if err := store.RemoveItem(storage.AuthTokenKey); err != nil {
			return struct{}{}, fmt.Errorf("failed to clear stored token: %w", err)
		}
		return struct{}{}, nil
	}, log)
}

func noResult[In any](fn func(context.Context, In) error) mutation.Func[In, struct{}] {
	return func(ctx context.Context, in In) (struct{}, error) {
		return struct{}{}, fn(ctx, in)
	}
}
