package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskflow-dev/taskflow/internal/app"
	"github.com/taskflow-dev/taskflow/internal/models"
)

// NewSignInCmd creates the sign-in command
func NewSignInCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "sign-in",
		Short: "Sign in to your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignIn(email, password, commandOptions(cmd)...)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set TASKFLOW_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set TASKFLOW_PASSWORD, will prompt if not provided)")

	return cmd
}

func runSignIn(email, password string, opts ...Option) error {
	if email == "" {
		email = os.Getenv("TASKFLOW_EMAIL")
	}
	if password == "" {
		password = os.Getenv("TASKFLOW_PASSWORD")
	}

	e, err := bootstrap(context.Background(), opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	page, err := openPage[*app.SignInPage](e, "/sign-in")
	if err != nil {
		return err
	}

	password, err = promptPassword(e, "Password", password)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.out, "Signing in as %s...\n", email)
	if err := page.Submit(models.LoginInput{Email: email, Password: password}); err != nil {
		return reportValidation(e, err)
	}
	return settle(e, page, "sign in")
}

// NewSignUpCmd creates the sign-up command
func NewSignUpCmd() *cobra.Command {
	var name, email, password, confirm string

	cmd := &cobra.Command{
		Use:   "sign-up",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignUp(models.SignupInput{
				Name:            name,
				Email:           email,
				Password:        password,
				ConfirmPassword: confirm,
			}, commandOptions(cmd)...)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password (will prompt if not provided)")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "Password confirmation (will prompt if not provided)")

	return cmd
}

func runSignUp(in models.SignupInput, opts ...Option) error {
	e, err := bootstrap(context.Background(), opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	page, err := openPage[*app.SignUpPage](e, "/sign-up")
	if err != nil {
		return err
	}

	if in.Password, err = promptPassword(e, "Password", in.Password); err != nil {
		return err
	}
	if in.ConfirmPassword, err = promptPassword(e, "Confirm password", in.ConfirmPassword); err != nil {
		return err
	}

	if err := page.Submit(in); err != nil {
		return reportValidation(e, err)
	}
	return settle(e, page, "sign up")
}

// NewForgotPasswordCmd creates the forgot-password command
func NewForgotPasswordCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "forgot-password",
		Short: "Request a password reset link",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForgotPassword(email, commandOptions(cmd)...)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address of the account")

	return cmd
}

func runForgotPassword(email string, opts ...Option) error {
	e, err := bootstrap(context.Background(), opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	page, err := openPage[*app.ForgotPasswordPage](e, "/forgot-password")
	if err != nil {
		return err
	}

	if err := page.Submit(models.ForgotPasswordInput{Email: email}); err != nil {
		return reportValidation(e, err)
	}
	if err := settle(e, page, "password reset request"); err != nil {
		return err
	}

	if page.Sent() {
		fmt.Fprintf(e.out, "Check your email. We've sent a password reset link to %s\n", email)
	}
	return nil
}

// NewResetPasswordCmd creates the reset-password command
func NewResetPasswordCmd() *cobra.Command {
	var token, password, confirm string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password using a reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResetPassword(token, password, confirm, commandOptions(cmd)...)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Reset token from the email link")
	cmd.Flags().StringVar(&password, "password", "", "New password (will prompt if not provided)")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "Password confirmation (will prompt if not provided)")

	return cmd
}

func runResetPassword(token, password, confirm string, opts ...Option) error {
	e, err := bootstrap(context.Background(), opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	page, err := openPage[*app.ResetPasswordPage](e, locationWithToken("/reset-password", token))
	if err != nil {
		return err
	}

	if password, err = promptPassword(e, "New password", password); err != nil {
		return err
	}
	if confirm, err = promptPassword(e, "Confirm password", confirm); err != nil {
		return err
	}

	if err := page.Reset(password, confirm); err != nil {
		return reportValidation(e, err)
	}
	return settle(e, page, "password reset")
}

// NewVerifyEmailCmd creates the verify-email command
func NewVerifyEmailCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "verify-email",
		Short: "Confirm an email address using a verification token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerifyEmail(token, commandOptions(cmd)...)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Verification token from the email link")

	return cmd
}

func runVerifyEmail(token string, opts ...Option) error {
	e, err := bootstrap(context.Background(), opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	page, err := openPage[*app.VerifyEmailPage](e, locationWithToken("/verify-email", token))
	if err != nil {
		return err
	}

	if err := page.Verify(); err != nil {
		return reportValidation(e, err)
	}
	return settle(e, page, "email verification")
}

// NewSignOutCmd creates the sign-out command
func NewSignOutCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "sign-out",
		Short: "Sign out of your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSignOut(local, commandOptions(cmd)...)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Only clear the local session without notifying the backend")

	return cmd
}

func runSignOut(local bool, opts ...Option) error {
	e, err := bootstrap(context.Background(), opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	page, err := requireDashboard(e)
	if err != nil {
		return err
	}

	if local {
		page.Logout()
	} else {
		fmt.Fprintln(e.out, "Signing out...")
		page.SignOut()
		e.app.Wait()
	}

	fmt.Fprintf(e.out, "→ %s\n", e.app.Location())
	if provider, err := e.app.Session(); err == nil && provider.State().IsAuthenticated {
		return fmt.Errorf("sign out failed")
	}
	fmt.Fprintln(e.out, "✓ Signed out")
	return nil
}
