package app

import (
	"net/url"

	"github.com/taskflow-dev/taskflow/internal/models"
	"github.com/taskflow-dev/taskflow/internal/mutation"
)

// CreateProjectPage is the project creation form
type CreateProjectPage struct {
	*form[models.CreateProjectInput, *models.Project]
}

func newCreateProjectPage(a *App, _ url.Values) Page {
	route, _, _ := Match("/projects/create")
	m := mutation.New[models.CreateProjectInput, *models.Project]("create_project", a.resources.CreateProject, a.log)

	f := newForm(a, route, m)
	f.success = "Project created successfully!"
	f.redirect = "/dashboard"
	f.failure = func(error) string { return "Failed to create project" }

	return &CreateProjectPage{form: f}
}

// Defaults returns the values the form starts with
func (p *CreateProjectPage) Defaults() models.CreateProjectInput {
	return models.NewCreateProjectInput()
}

// StatusOptions lists the selectable statuses
func (p *CreateProjectPage) StatusOptions() []models.ProjectStatus {
	return models.ProjectStatuses
}

// Cancel leaves the form for the dashboard
func (p *CreateProjectPage) Cancel() {
	p.app.Navigate("/dashboard")
}

// CreateWorkspacePage is the workspace creation form
type CreateWorkspacePage struct {
	*form[models.CreateWorkspaceInput, *models.Workspace]
}

func newCreateWorkspacePage(a *App, _ url.Values) Page {
	route, _, _ := Match("/workspaces/create")
	m := mutation.New[models.CreateWorkspaceInput, *models.Workspace]("create_workspace", a.resources.CreateWorkspace, a.log)

	f := newForm(a, route, m)
	f.success = "Workspace created successfully!"
	f.redirect = "/dashboard"
	f.failure = func(error) string { return "Failed to create workspace" }

	return &CreateWorkspacePage{form: f}
}

func (p *CreateWorkspacePage) Defaults() models.CreateWorkspaceInput {
	return models.NewCreateWorkspaceInput()
}

// ColorOptions lists the palette
func (p *CreateWorkspacePage) ColorOptions() []models.ColorOption {
	return models.WorkspaceColors
}

func (p *CreateWorkspacePage) Cancel() {
	p.app.Navigate("/dashboard")
}

// CreateTaskPage is the task creation form
type CreateTaskPage struct {
	*form[models.CreateTaskInput, *models.Task]
}

func newCreateTaskPage(a *App, _ url.Values) Page {
	route, _, _ := Match("/tasks/create")
	m := mutation.New[models.CreateTaskInput, *models.Task]("create_task", a.resources.CreateTask, a.log)

	f := newForm(a, route, m)
	f.success = "Task created successfully!"
	f.redirect = "/dashboard"
	f.failure = func(error) string { return "Failed to create task" }

	return &CreateTaskPage{form: f}
}

func (p *CreateTaskPage) Defaults() models.CreateTaskInput {
	return models.NewCreateTaskInput()
}

func (p *CreateTaskPage) StatusOptions() []models.TaskStatus {
	return models.TaskStatuses
}

func (p *CreateTaskPage) PriorityOptions() []models.TaskPriority {
	return models.TaskPriorities
}

func (p *CreateTaskPage) Cancel() {
	p.app.Navigate("/dashboard")
}
