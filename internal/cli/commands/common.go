package commands

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taskflow-dev/taskflow/internal/app"
	"github.com/taskflow-dev/taskflow/internal/forms"
)

// ErrNotInteractive is returned when a value is missing and cannot be prompted for
var ErrNotInteractive = errors.New("not running in a terminal")

// commandOptions turns the persistent flags into run options
func commandOptions(cmd *cobra.Command) []Option {
	opts := []Option{WithOutput(cmd.OutOrStdout())}
	if path, err := cmd.Flags().GetString("config"); err == nil && path != "" {
		opts = append(opts, WithConfigPath(path))
	}
	return opts
}

// submitter is the part of a form page a command drives
type submitter interface {
	IsPending() bool
	Wait()
	Succeeded() bool
}

// settle waits for the page's submission and reports where the app ended up.
// A failed submission has already been reported through its toast.
func settle(e *env, page submitter, action string) error {
	page.Wait()
	fmt.Fprintf(e.out, "→ %s\n", e.app.Location())
	if !page.Succeeded() {
		return fmt.Errorf("%s failed", action)
	}
	return nil
}

// reportValidation prints the per-field messages of a rejected form
func reportValidation(e *env, err error) error {
	verr, ok := forms.AsValidationError(err)
	if !ok {
		return err
	}

	fields := make([]string, 0, len(verr.Fields))
	for field := range verr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	fmt.Fprintln(e.out, "Please fix the following:")
	for _, field := range fields {
		fmt.Fprintf(e.out, "  %s: %s\n", field, verr.Fields[field])
	}
	return err
}

// openPage opens location and asserts the page type
func openPage[P app.Page](e *env, location string) (P, error) {
	var zero P
	page, err := e.app.Open(location)
	if err != nil {
		return zero, err
	}
	p, ok := page.(P)
	if !ok {
		// Auth pages redirect signed-in users
		fmt.Fprintf(e.out, "Already signed in → %s\n", e.app.Location())
		return zero, errAlreadySignedIn
	}
	return p, nil
}

var errAlreadySignedIn = errors.New("already signed in")

// promptPassword reads a password without echo when value is empty
func promptPassword(e *env, label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	if !e.interactive {
		return "", fmt.Errorf("%s is required in non-interactive mode: %w", label, ErrNotInteractive)
	}

	fmt.Fprintf(e.out, "%s: ", label)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", label, err)
	}
	fmt.Fprintln(e.out)
	return string(bytePassword), nil
}

// selectOption lets the user pick one of labels when value is empty and the
// session is interactive. Otherwise value (or fallback) is returned as is.
func selectOption(e *env, label string, labels []string, value, fallback string) (string, error) {
	if value != "" {
		return value, nil
	}
	if !e.interactive {
		return fallback, nil
	}

	cursor := 0
	for i, l := range labels {
		if l == fallback {
			cursor = i
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "{{ . | green }}",
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     labels,
		Templates: templates,
		CursorPos: cursor,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("%s selection cancelled: %w", label, err)
	}
	return labels[index], nil
}

// ErrNotSignedIn is returned by commands that need a session
var ErrNotSignedIn = errors.New("not signed in. Please run 'taskflow sign-in' first")

// requireDashboard opens the dashboard for a signed-in session
func requireDashboard(e *env) (*app.DashboardPage, error) {
	provider, err := e.app.Session()
	if err != nil {
		return nil, err
	}
	if !provider.State().IsAuthenticated {
		return nil, ErrNotSignedIn
	}
	return openPage[*app.DashboardPage](e, "/dashboard")
}

// locationWithToken appends token as the query of path, the way an emailed
// link would carry it
func locationWithToken(path, token string) string {
	if token == "" {
		return path
	}
	return path + "?" + url.Values{"token": {token}}.Encode()
}
