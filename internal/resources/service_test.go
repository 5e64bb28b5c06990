package resources

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow-dev/taskflow/internal/models"
)

func TestMockService_CreateProject(t *testing.T) {
	svc := NewMockService(5*time.Millisecond, zerolog.Nop())

	project, err := svc.CreateProject(context.Background(), models.CreateProjectInput{
		Title:     "Website relaunch",
		Status:    models.ProjectStatusInProgress,
		StartDate: "2026-01-01",
		DueDate:   "2026-03-01",
	})
	require.NoError(t, err)

	assert.Len(t, project.ID, 26)
	assert.Equal(t, "Website relaunch", project.Title)
	assert.Equal(t, models.ProjectStatusInProgress, project.Status)
	assert.False(t, project.CreatedAt.IsZero())
}

func TestMockService_CreateWorkspaceAndTask(t *testing.T) {
	svc := NewMockService(time.Millisecond, zerolog.Nop())

	ws, err := svc.CreateWorkspace(context.Background(), models.NewCreateWorkspaceInput())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultWorkspaceColor, ws.Color)

	task, err := svc.CreateTask(context.Background(), models.NewCreateTaskInput())
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusToDo, task.Status)
	assert.Equal(t, models.TaskPriorityMedium, task.Priority)
	assert.NotEqual(t, ws.ID, task.ID)
}

func TestMockService_Failures(t *testing.T) {
	svc := NewMockService(time.Millisecond, zerolog.Nop())
	boom := errors.New("boom")
	svc.FailWith(boom)

	_, err := svc.CreateProject(context.Background(), models.CreateProjectInput{})
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.FailWith(nil)
	_, err = svc.CreateTask(ctx, models.CreateTaskInput{})
	assert.ErrorIs(t, err, context.Canceled)
}
