// Package session holds the client-side authentication state: whether the
// user is signed in, as whom, and whether that is still being determined.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/storage"
)

var ErrNoProvider = errors.New("session must be used within a session provider")

// PlaceholderUser is assumed when a stored token is trusted without
// verification
var PlaceholderUser = models.User{ID: "1", Email: "user@example.com", Name: "User"}

// State is a snapshot of the session
type State struct {
	IsAuthenticated bool
	IsLoading       bool
	User            *models.User
}

// Provider owns the session for the lifetime of the application
type Provider struct {
	store    storage.Store
	auth     auth.Service
	verifier auth.Verifier
	log      zerolog.Logger

	mu          sync.RWMutex
	state       State
	subscribers []func(State)

	initOnce sync.Once
	ready    chan struct{}
}

// New creates a provider in the loading state. verifier may be nil, in which
// case any stored token is trusted.
func New(store storage.Store, authService auth.Service, verifier auth.Verifier, log zerolog.Logger) *Provider {
	return &Provider{
		store:    store,
		auth:     authService,
		verifier: verifier,
		log:      log,
		state:    State{IsLoading: true},
		ready:    make(chan struct{}),
	}
}

// Init restores the session from the stored token. It runs once; later calls
// return immediately.
func (p *Provider) Init(ctx context.Context) error {
	var err error
	p.initOnce.Do(func() {
		defer close(p.ready)
		err = p.restore(ctx)
	})
	return err
}

func (p *Provider) restore(ctx context.Context) error {
	token, ok, err := p.store.GetItem(storage.AuthTokenKey)
	if err != nil {
		p.update(func(s *State) { *s = State{} })
		return fmt.Errorf("failed to read stored token: %w", err)
	}

	if !ok || token == "" {
		p.log.Debug().Msg("No stored token, session is anonymous")
		p.update(func(s *State) { *s = State{} })
		return nil
	}

	user := PlaceholderUser
	if p.verifier != nil {
		claims, err := p.verifier.ValidateToken(token)
		if err != nil {
			p.log.Warn().Err(err).Msg("Stored token rejected, clearing it")
			if rmErr := p.store.RemoveItem(storage.AuthTokenKey); rmErr != nil {
				p.log.Error().Err(rmErr).Msg("Failed to remove rejected token")
			}
			p.update(func(s *State) { *s = State{} })
			return nil
		}
		user = claims.User()
	}

	p.log.Debug().Str("user_id", user.ID).Msg("Session restored from stored token")
	p.update(func(s *State) {
		*s = State{IsAuthenticated: true, User: &user}
	})
	return nil
}

// Ready is closed once Init has finished
func (p *Provider) Ready() <-chan struct{} {
	return p.ready
}

// State returns a snapshot of the session
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := p.state
	if s.User != nil {
		user := *s.User
		s.User = &user
	}
	return s
}

// Subscribe registers fn to receive every state change
func (p *Provider) Subscribe(fn func(State)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// Login authenticates through the auth service and stores the token
func (p *Provider) Login(ctx context.Context, email, password string) error {
	return p.authenticate("Login", func() (*models.AuthResponse, error) {
		return p.auth.Login(ctx, models.LoginInput{Email: email, Password: password})
	})
}

// Signup registers through the auth service and stores the token
func (p *Provider) Signup(ctx context.Context, email, password, name string) error {
	return p.authenticate("Signup", func() (*models.AuthResponse, error) {
		return p.auth.Signup(ctx, models.SignupInput{
			Name:            name,
			Email:           email,
			Password:        password,
			ConfirmPassword: password,
		})
	})
}

func (p *Provider) authenticate(action string, call func() (*models.AuthResponse, error)) error {
	p.update(func(s *State) { s.IsLoading = true })

	resp, err := call()
	if err == nil {
		err = p.Establish(resp)
	}
	if err != nil {
		p.log.Error().Err(err).Msg(action + " failed")
		p.update(func(s *State) { s.IsLoading = false })
		return err
	}
	return nil
}

// Establish stores the token from resp and marks the session authenticated
func (p *Provider) Establish(resp *models.AuthResponse) error {
	if resp == nil {
		return fmt.Errorf("empty auth response")
	}

	if err := p.store.SetItem(storage.AuthTokenKey, resp.Token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	user := resp.User
	p.update(func(s *State) {
		*s = State{IsAuthenticated: true, User: &user}
	})
	p.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("Session established")
	return nil
}

// Logout clears the stored token and resets the session. It never fails; a
// storage error is logged.
func (p *Provider) Logout() {
	if err := p.store.RemoveItem(storage.AuthTokenKey); err != nil {
		p.log.Error().Err(err).Msg("Failed to remove stored token")
	}
	p.update(func(s *State) { *s = State{} })
	p.log.Info().Msg("Session cleared")
}

func (p *Provider) update(fn func(*State)) {
	p.mu.Lock()
	fn(&p.state)
	subscribers := make([]func(State), len(p.subscribers))
	copy(subscribers, p.subscribers)
	p.mu.Unlock()

	snapshot := p.State()
	for _, sub := range subscribers {
		sub(snapshot)
	}
}

type providerKey struct{}

// WithProvider returns a context inside the provider boundary
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext returns the provider of the enclosing boundary
func FromContext(ctx context.Context) (*Provider, error) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	if !ok || p == nil {
		return nil, ErrNoProvider
	}
	return p, nil
}

// MustFromContext is FromContext for callers that cannot proceed without a
// provider. It panics with ErrNoProvider.
func MustFromContext(ctx context.Context) *Provider {
	p, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return p
}
