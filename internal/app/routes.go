package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrRouteNotFound = errors.New("route not found")

// Layout groups routes that share a wrapper
type Layout string

const (
	LayoutRoot Layout = ""
	LayoutAuth Layout = "auth"
)

// Route maps a path to a page
type Route struct {
	Path   string
	Name   string
	Layout Layout

	build func(a *App, query url.Values) Page
}

// Page is implemented by every screen
type Page interface {
	Route() Route
}

// routeTable is the router configuration. It is built on demand because the
// page constructors reach back into the router.
func routeTable() []Route {
	return []Route{
		{Path: "/", Name: "Home", build: newHomePage},
		{Path: "/dashboard", Name: "Dashboard", build: newDashboardPage},
		{Path: "/projects/create", Name: "Create Project", build: newCreateProjectPage},
		{Path: "/tasks/create", Name: "Create Task", build: newCreateTaskPage},
		{Path: "/workspaces/create", Name: "Create Workspace", build: newCreateWorkspacePage},

		{Path: "/sign-in", Name: "Sign In", Layout: LayoutAuth, build: newSignInPage},
		{Path: "/sign-up", Name: "Sign Up", Layout: LayoutAuth, build: newSignUpPage},
		{Path: "/forgot-password", Name: "Forgot Password", Layout: LayoutAuth, build: newForgotPasswordPage},
		{Path: "/reset-password", Name: "Reset Password", Layout: LayoutAuth, build: newResetPasswordPage},
		{Path: "/verify-email", Name: "Verify Email", Layout: LayoutAuth, build: newVerifyEmailPage},
	}
}

// Routes returns the router table in declaration order
func Routes() []Route {
	return routeTable()
}

// Match resolves a location such as "/reset-password?token=abc". Trailing
// slashes are ignored.
func Match(location string) (Route, url.Values, error) {
	u, err := url.Parse(location)
	if err != nil {
		return Route{}, nil, fmt.Errorf("invalid location %q: %w", location, err)
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}

	for _, r := range routeTable() {
		if r.Path == path {
			return r, u.Query(), nil
		}
	}
	return Route{}, nil, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
}
