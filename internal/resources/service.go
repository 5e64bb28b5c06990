// Package resources is the port for creating projects, workspaces and tasks.
package resources

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/mutation"
)

// Service creates resources. MockService and client.Client implement it.
type Service interface {
	CreateProject(ctx context.Context, in models.CreateProjectInput) (*models.Project, error)
	CreateWorkspace(ctx context.Context, in models.CreateWorkspaceInput) (*models.Workspace, error)
	CreateTask(ctx context.Context, in models.CreateTaskInput) (*models.Task, error)
}

// MockService waits a fixed delay and echoes the input back as a new record.
// Nothing is stored.
type MockService struct {
	delay time.Duration
	log   zerolog.Logger

	mu   sync.Mutex
	fail error
}

// NewMockService creates a mock resource backend
func NewMockService(delay time.Duration, log zerolog.Logger) *MockService {
	return &MockService{delay: delay, log: log}
}

// FailWith makes subsequent calls fail with err; nil clears it
func (s *MockService) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

func (s *MockService) wait(ctx context.Context) error {
	if err := mutation.Delay(ctx, s.delay); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fail
}

func (s *MockService) CreateProject(ctx context.Context, in models.CreateProjectInput) (*models.Project, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:          models.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
		CreatedAt:   time.Now().UTC(),
	}
	s.log.Debug().Str("project_id", project.ID).Str("title", project.Title).Msg("Mock project created")
	return project, nil
}

func (s *MockService) CreateWorkspace(ctx context.Context, in models.CreateWorkspaceInput) (*models.Workspace, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	workspace := &models.Workspace{
		ID:          models.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
		CreatedAt:   time.Now().UTC(),
	}
	s.log.Debug().Str("workspace_id", workspace.ID).Str("name", workspace.Name).Msg("Mock workspace created")
	return workspace, nil
}

func (s *MockService) CreateTask(ctx context.Context, in models.CreateTaskInput) (*models.Task, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:          models.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedAt:   time.Now().UTC(),
	}
	s.log.Debug().Str("task_id", task.ID).Str("title", task.Title).Msg("Mock task created")
	return task, nil
}
