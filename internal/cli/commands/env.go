package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/taskflow-dev/taskflow/internal/app"
	"github.com/taskflow-dev/taskflow/internal/auth"
	"github.com/taskflow-dev/taskflow/internal/client"
	"github.com/taskflow-dev/taskflow/internal/config"
	"github.com/taskflow-dev/taskflow/internal/logger"
	"github.com/taskflow-dev/taskflow/internal/resources"
	"github.com/taskflow-dev/taskflow/internal/session"
	"github.com/taskflow-dev/taskflow/internal/storage"
)

// runOptions holds the collaborators a command runs with. Anything left
// unset is built from configuration.
type runOptions struct {
	configPath  string
	cfg         *config.Config
	out         io.Writer
	logOut      io.Writer
	store       storage.Store
	auth        auth.Service
	resources   resources.Service
	interactive *bool
}

// Option configures a command run
type Option func(*runOptions)

// WithConfigPath loads configuration from path instead of the default file
func WithConfigPath(path string) Option {
	return func(o *runOptions) {
		o.configPath = path
	}
}

// WithConfig skips loading configuration altogether
func WithConfig(cfg *config.Config) Option {
	return func(o *runOptions) {
		o.cfg = cfg
	}
}

// WithOutput sets where command output is written
func WithOutput(w io.Writer) Option {
	return func(o *runOptions) {
		o.out = w
	}
}

// WithLogOutput sets where logs are written
func WithLogOutput(w io.Writer) Option {
	return func(o *runOptions) {
		o.logOut = w
	}
}

// WithStore sets the token storage
func WithStore(s storage.Store) Option {
	return func(o *runOptions) {
		o.store = s
	}
}

// WithAuthService sets the authentication backend
func WithAuthService(s auth.Service) Option {
	return func(o *runOptions) {
		o.auth = s
	}
}

// WithResourceService sets the project/workspace/task backend
func WithResourceService(s resources.Service) Option {
	return func(o *runOptions) {
		o.resources = s
	}
}

// WithInteractive forces prompting on or off
func WithInteractive(interactive bool) Option {
	return func(o *runOptions) {
		o.interactive = &interactive
	}
}

// env is one started application instance serving a single command
type env struct {
	app         *app.App
	out         io.Writer
	log         zerolog.Logger
	interactive bool
	closeStore  func()
}

func (e *env) Close() {
	if e.closeStore != nil {
		e.closeStore()
	}
}

// bootstrap loads configuration, wires the backends and starts the app
func bootstrap(ctx context.Context, opts ...Option) (*env, error) {
	o := &runOptions{
		out:    os.Stdout,
		logOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	cfg := o.cfg
	if cfg == nil {
		var err error
		if o.configPath != "" {
			cfg, err = config.LoadFile(o.configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	logger.InitWriter(o.logOut, cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	e := &env{out: o.out, log: log}
	if o.interactive != nil {
		e.interactive = *o.interactive
	} else {
		e.interactive = term.IsTerminal(int(syscall.Stdin))
	}

	store := o.store
	if store == nil {
		var err error
		store, err = storage.Open(cfg.Storage, log)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		e.closeStore = func() {
			if err := storage.Close(store); err != nil {
				log.Warn().Err(err).Msg("Failed to close storage")
			}
		}
	}

	var verifier auth.Verifier
	var issuer *auth.TokenIssuer
	if cfg.Client.TokenSecret != "" {
		issuer = auth.NewTokenIssuer(cfg.Client.TokenSecret, 0)
		verifier = issuer
	}

	authService, resourceService := o.auth, o.resources
	switch cfg.Client.AuthMode {
	case config.AuthModeHTTP:
		api := client.New(cfg.Client.APIURL, store)
		if authService == nil {
			authService = api
		}
		if resourceService == nil {
			resourceService = api
		}
	default:
		if authService == nil {
			mockOpts := []auth.MockOption{auth.WithLogoutDelay(cfg.Client.LogoutDelay)}
			if issuer != nil {
				mockOpts = append(mockOpts, auth.WithIssuer(issuer))
			}
			authService = auth.NewMockService(cfg.Client.MutationDelay, log, mockOpts...)
		}
		if resourceService == nil {
			resourceService = resources.NewMockService(cfg.Client.MutationDelay, log)
		}
	}

	e.app = app.New(app.Deps{
		Provider:  session.New(store, authService, verifier, log),
		Auth:      authService,
		Resources: resourceService,
		Store:     store,
		Logger:    log,
	})

	// A session that cannot be restored starts signed out
	if err := e.app.Start(ctx); err != nil {
		fmt.Fprintf(e.out, "⚠ Could not restore session: %v\n", err)
	}

	e.app.Notifier().Subscribe(func(t app.Toast) {
		switch t.Kind {
		case app.ToastSuccess:
			fmt.Fprintf(e.out, "✓ %s\n", t.Message)
		default:
			fmt.Fprintf(e.out, "✗ %s\n", t.Message)
		}
	})

	return e, nil
}
