// Package app is the frontend application: a router table of pages that
// share one session provider and talk to the backend through service ports.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/forms"
	"github.com/taskflow-dev/taskflow/internal/resources"
	"github.com/taskflow-dev/taskflow/internal/session"
	"github.com/taskflow-dev/taskflow/internal/storage"
)

var ErrNotStarted = errors.New("app not started")

// Deps are the collaborators the application is wired with
type Deps struct {
	Provider  *session.Provider
	Auth      auth.Service
	Resources resources.Service
	Store     storage.Store
	Logger    zerolog.Logger
}

// App is one running instance of the frontend
type App struct {
	provider  *session.Provider
	auth      auth.Service
	resources resources.Service
	store     storage.Store
	validator *forms.Validator
	nav       *Navigator
	notifier  *Notifier
	log       zerolog.Logger

	mu      sync.Mutex
	ctx     context.Context
	waiters []interface{ Wait() }
}

// New creates the application. Start must be called before pages are opened.
func New(deps Deps) *App {
	return &App{
		provider:  deps.Provider,
		auth:      deps.Auth,
		resources: deps.Resources,
		store:     deps.Store,
		validator: forms.New(),
		nav:       NewNavigator("/"),
		notifier:  NewNotifier(deps.Logger),
		log:       deps.Logger,
	}
}

// Start mounts the session provider and restores the session. The returned
// error is from reading persisted state; the app is usable either way.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	a.ctx = session.WithProvider(ctx, a.provider)
	a.mu.Unlock()

	if err := a.provider.Init(ctx); err != nil {
		a.log.Warn().Err(err).Msg("Failed to restore session")
		return err
	}
	return nil
}

// Context is inside the provider boundary once Start has run
func (a *App) Context() context.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

func (a *App) Navigator() *Navigator {
	return a.nav
}

func (a *App) Notifier() *Notifier {
	return a.notifier
}

func (a *App) Validator() *forms.Validator {
	return a.validator
}

// Session returns the provider of the app's boundary
func (a *App) Session() (*session.Provider, error) {
	return session.FromContext(a.Context())
}

// Location is the current location
func (a *App) Location() string {
	return a.nav.Location()
}

// Navigate changes the location without building the page
func (a *App) Navigate(location string) {
	a.log.Debug().Str("location", location).Msg("Navigate")
	a.nav.Navigate(location)
}

// Open navigates to location and returns its page. It waits for the session
// to finish loading, and sends signed-in users away from the auth layout.
func (a *App) Open(location string) (Page, error) {
	ctx := a.Context()
	provider, err := session.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotStarted, err)
	}

	route, query, err := Match(location)
	if err != nil {
		return nil, err
	}

	select {
	case <-provider.Ready():
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if route.Layout == LayoutAuth && provider.State().IsAuthenticated {
		a.log.Debug().Str("from", route.Path).Msg("Already signed in, redirecting to dashboard")
		return a.Open("/dashboard")
	}

	a.Navigate(location)
	return route.build(a, query), nil
}

// track registers a page's mutation so Wait covers it
func (a *App) track(w interface{ Wait() }) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.waiters = append(a.waiters, w)
}

// Wait blocks until every mutation started by any page has settled
func (a *App) Wait() {
	a.mu.Lock()
	waiters := make([]interface{ Wait() }, len(a.waiters))
	copy(waiters, a.waiters)
	a.mu.Unlock()

	for _, w := range waiters {
		w.Wait()
	}
}
