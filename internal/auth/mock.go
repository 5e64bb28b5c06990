package auth

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/mutation"
)

// MockToken is handed out when no TokenIssuer is configured
const MockToken = "mock-jwt-token"

// MockService simulates an authentication backend: every call waits a fixed
// delay and then succeeds with placeholder data
type MockService struct {
	delay       time.Duration
	logoutDelay time.Duration
	issuer      *TokenIssuer
	log         zerolog.Logger

	mu   sync.Mutex
	fail error
}

// MockOption configures a MockService
type MockOption func(*MockService)

// WithIssuer makes the mock sign real tokens instead of MockToken
func WithIssuer(issuer *TokenIssuer) MockOption {
	return func(s *MockService) {
		s.issuer = issuer
	}
}

// WithLogoutDelay overrides the logout delay, which defaults to half the
// regular delay
func WithLogoutDelay(d time.Duration) MockOption {
	return func(s *MockService) {
		s.logoutDelay = d
	}
}

// NewMockService creates a mock backend with the given latency
func NewMockService(delay time.Duration, log zerolog.Logger, opts ...MockOption) *MockService {
	s := &MockService{
		delay:       delay,
		logoutDelay: delay / 2,
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FailWith makes every subsequent call fail with err after the delay. nil
// restores normal behaviour.
func (s *MockService) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *MockService) wait(ctx context.Context, d time.Duration) error {
	if err := mutation.Delay(ctx, d); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fail
}

func (s *MockService) respond(user models.User) (*models.AuthResponse, error) {
	token := MockToken
	if s.issuer != nil {
		signed, err := s.issuer.GenerateToken(user)
		if err != nil {
			return nil, err
		}
		token = signed
	}
	return &models.AuthResponse{User: user, Token: token}, nil
}

func (s *MockService) Login(ctx context.Context, in models.LoginInput) (*models.AuthResponse, error) {
	if err := s.wait(ctx, s.delay); err != nil {
		return nil, err
	}

	s.log.Debug().Str("email", in.Email).Msg("Mock login")
	return s.respond(models.User{ID: "1", Email: in.Email, Name: "User"})
}

func (s *MockService) Signup(ctx context.Context, in models.SignupInput) (*models.AuthResponse, error) {
	if err := s.wait(ctx, s.delay); err != nil {
		return nil, err
	}

	s.log.Debug().Str("email", in.Email).Msg("Mock signup")
	return s.respond(models.User{ID: "1", Email: in.Email, Name: in.Name})
}

func (s *MockService) ForgotPassword(ctx context.Context, in models.ForgotPasswordInput) error {
	return s.wait(ctx, s.delay)
}

func (s *MockService) ResetPassword(ctx context.Context, in models.ResetPasswordInput) error {
	return s.wait(ctx, s.delay)
}

func (s *MockService) VerifyEmail(ctx context.Context, in models.VerifyEmailInput) error {
	return s.wait(ctx, s.delay)
}

func (s *MockService) Logout(ctx context.Context) error {
	return s.wait(ctx, s.logoutDelay)
}
