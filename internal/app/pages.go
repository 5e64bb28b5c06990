package app

import (
	"fmt"
	"net/url"

	"github.com/taskflow-dev/taskflow/internal/mutation"
	"github.com/taskflow-dev/taskflow/internal/session"
)

// Link is a navigation target shown on a page
type Link struct {
	Label string
	Path  string
}

// HomePage is the landing page
type HomePage struct {
	route         Route
	authenticated bool
}

func newHomePage(a *App, _ url.Values) Page {
	route, _, _ := Match("/")
	provider := session.MustFromContext(a.Context())
	return &HomePage{route: route, authenticated: provider.State().IsAuthenticated}
}

func (p *HomePage) Route() Route {
	return p.route
}

// Links points signed-in users at the dashboard and everyone else at the
// auth pages
func (p *HomePage) Links() []Link {
	if p.authenticated {
		return []Link{{Label: "Go to Dashboard", Path: "/dashboard"}}
	}
	return []Link{
		{Label: "Sign In", Path: "/sign-in"},
		{Label: "Get Started", Path: "/sign-up"},
	}
}

// Stats are the dashboard counters
type Stats struct {
	ActiveProjects   int
	PendingTasks     int
	ActiveWorkspaces int
}

// DashboardPage greets the user and offers the create actions
type DashboardPage struct {
	app      *App
	route    Route
	provider *session.Provider
	logout   *LogoutMutation
}

func newDashboardPage(a *App, _ url.Values) Page {
	route, _, _ := Match("/dashboard")
	m := NewLogoutMutation(a.auth, a.store, a.log)
	a.track(m)

	return &DashboardPage{
		app:      a,
		route:    route,
		provider: session.MustFromContext(a.Context()),
		logout:   m,
	}
}

func (p *DashboardPage) Route() Route {
	return p.route
}

// Welcome is the greeting line
func (p *DashboardPage) Welcome() string {
	return fmt.Sprintf("Welcome, %s!", p.provider.State().User.DisplayName())
}

// Stats are always zero; nothing is persisted yet
func (p *DashboardPage) Stats() Stats {
	return Stats{}
}

func (p *DashboardPage) QuickActions() []Link {
	return []Link{
		{Label: "Create Project", Path: "/projects/create"},
		{Label: "Create Task", Path: "/tasks/create"},
		{Label: "Create Workspace", Path: "/workspaces/create"},
	}
}

// Logout resets the session immediately and returns home
func (p *DashboardPage) Logout() {
	p.provider.Logout()
	p.app.Navigate("/")
}

// SignOut tells the backend first. The session is reset once the backend
// call succeeds; on failure an error toast is shown and the session stays.
func (p *DashboardPage) SignOut() {
	p.logout.Mutate(p.app.Context(), struct{}{}, mutation.Options[struct{}]{
		OnSuccess: func(struct{}) {
			p.provider.Logout()
			p.app.Navigate("/")
		},
		OnError: func(err error) {
			p.app.log.Error().Err(err).Msg("Sign out failed")
			p.app.notifier.Error("Failed to sign out")
		},
	})
}

// SigningOut reports whether SignOut is in flight
func (p *DashboardPage) SigningOut() bool {
	return p.logout.IsPending()
}
