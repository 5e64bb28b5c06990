package app

import (
	"net/url"

	"github.com/taskflow-dev/taskflow/internal/models"
)

// SignInPage signs an existing user in
type SignInPage struct {
	*form[models.LoginInput, *models.AuthResponse]
}

func newSignInPage(a *App, _ url.Values) Page {
	route, _, _ := Match("/sign-in")

	f := newForm(a, route, NewLoginMutation(a.auth, a.log))
	f.prepare = a.establish
	f.success = "Signed in successfully"
	f.redirect = "/dashboard"

	return &SignInPage{form: f}
}

// SignUpPage registers a new account
type SignUpPage struct {
	*form[models.SignupInput, *models.AuthResponse]
}

func newSignUpPage(a *App, _ url.Values) Page {
	route, _, _ := Match("/sign-up")

	f := newForm(a, route, NewSignupMutation(a.auth, a.log))
	f.prepare = a.establish
	f.success = "Account created successfully"
	f.redirect = "/dashboard"

	return &SignUpPage{form: f}
}

// ForgotPasswordPage requests a reset link
type ForgotPasswordPage struct {
	*form[models.ForgotPasswordInput, struct{}]
}

func newForgotPasswordPage(a *App, _ url.Values) Page {
	route, _, _ := Match("/forgot-password")

	f := newForm(a, route, NewForgotPasswordMutation(a.auth, a.log))
	f.success = "Password reset link sent to your email"

	return &ForgotPasswordPage{form: f}
}

// Sent reports whether the reset link was requested successfully
func (p *ForgotPasswordPage) Sent() bool {
	return p.Succeeded()
}

// ResetPasswordPage sets a new password using the token from the reset link
type ResetPasswordPage struct {
	*form[models.ResetPasswordInput, struct{}]
	token string
}

func newResetPasswordPage(a *App, query url.Values) Page {
	route, _, _ := Match("/reset-password")

	f := newForm(a, route, NewResetPasswordMutation(a.auth, a.log))
	f.success = "Password reset successfully"
	f.redirect = "/sign-in"

	return &ResetPasswordPage{form: f, token: query.Get("token")}
}

// Token is the reset token taken from the location
func (p *ResetPasswordPage) Token() string {
	return p.token
}

// Reset submits the new password together with the page's token
func (p *ResetPasswordPage) Reset(newPassword, confirmPassword string) error {
	return p.Submit(models.ResetPasswordInput{
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
		Token:           p.token,
	})
}

// VerifyEmailPage confirms an email address using the token from the link
type VerifyEmailPage struct {
	*form[models.VerifyEmailInput, struct{}]
	token string
}

func newVerifyEmailPage(a *App, query url.Values) Page {
	route, _, _ := Match("/verify-email")

	f := newForm(a, route, NewVerifyEmailMutation(a.auth, a.log))
	f.success = "Email verified successfully"

	return &VerifyEmailPage{form: f, token: query.Get("token")}
}

func (p *VerifyEmailPage) Token() string {
	return p.token
}

// Verify submits the page's token
func (p *VerifyEmailPage) Verify() error {
	return p.Submit(models.VerifyEmailInput{Token: p.token})
}

// Verified reports whether verification succeeded
func (p *VerifyEmailPage) Verified() bool {
	return p.Succeeded()
}

// establish makes a login or signup response the current session
func (a *App) establish(resp *models.AuthResponse) error {
	provider, err := a.Session()
	if err != nil {
		return err
	}
	return provider.Establish(resp)
}
