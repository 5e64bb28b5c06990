package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskflow-dev/taskflow/internal/app"
	"github.com/taskflow-dev/taskflow/internal/models"
)

// NewProjectsCmd creates the projects command group
func NewProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(newCreateProjectCmd())
	return cmd
}

func newCreateProjectCmd() *cobra.Command {
	var in models.CreateProjectInput
	var status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Status = models.ProjectStatus(status)
			return runCreateProject(in, commandOptions(cmd)...)
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Project title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Project description")
	cmd.Flags().StringVar(&status, "status", "", "Project status (will prompt if not provided)")
	cmd.Flags().StringVar(&in.StartDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.DueDate, "due-date", "", "Due date (YYYY-MM-DD)")

	return cmd
}

func runCreateProject(in models.CreateProjectInput, opts ...Option) error {
	e, err := bootstrap(context.Background(), opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	page, err := openPage[*app.CreateProjectPage](e, "/projects/create")
	if err != nil {
		return err
	}

	labels := make([]string, len(page.StatusOptions()))
	for i, s := range page.StatusOptions() {
		labels[i] = string(s)
	}
	status, err := selectOption(e, "Status", labels, string(in.Status), string(page.Defaults().Status))
	if err != nil {
		return err
	}
	in.Status = models.ProjectStatus(status)

	if err := page.Submit(in); err != nil {
		return reportValidation(e, err)
	}
	if err := settle(e, page, "create project"); err != nil {
		return err
	}

	if project, err := page.Result(); err == nil && project != nil {
		fmt.Fprintf(e.out, "  ID: %s\n", project.ID)
	}
	return nil
}

// NewWorkspacesCmd creates the workspaces command group
func NewWorkspacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"workspace"},
		Short:   "Manage workspaces",
	}
	cmd.AddCommand(newCreateWorkspaceCmd())
	return cmd
}

func newCreateWorkspaceCmd() *cobra.Command {
	var in models.CreateWorkspaceInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateWorkspace(in, commandOptions(cmd)...)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Workspace name")
	cmd.Flags().StringVar(&in.Description, "description", "", "Workspace description")
	cmd.Flags().StringVar(&in.Color, "color", "", "Colour name or hex value (will prompt if not provided)")

	return cmd
}

func runCreateWorkspace(in models.CreateWorkspaceInput, opts ...Option) error {
	e, err := bootstrap(context.Background(), opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	page, err := openPage[*app.CreateWorkspacePage](e, "/workspaces/create")
	if err != nil {
		return err
	}

	colors := page.ColorOptions()
	labels := make([]string, len(colors))
	fallback := ""
	for i, c := range colors {
		labels[i] = c.Name
		if c.Value == page.Defaults().Color {
			fallback = c.Name
		}
	}

	choice, err := selectOption(e, "Color", labels, in.Color, fallback)
	if err != nil {
		return err
	}
	in.Color = colorValue(colors, choice)

	if err := page.Submit(in); err != nil {
		return reportValidation(e, err)
	}
	if err := settle(e, page, "create workspace"); err != nil {
		return err
	}

	if workspace, err := page.Result(); err == nil && workspace != nil {
		fmt.Fprintf(e.out, "  ID: %s\n", workspace.ID)
	}
	return nil
}

// colorValue resolves a palette name to its hex value. Anything else is
// passed through.
func colorValue(colors []models.ColorOption, choice string) string {
	for _, c := range colors {
		if strings.EqualFold(c.Name, choice) {
			return c.Value
		}
	}
	return choice
}

// NewTasksCmd creates the tasks command group
func NewTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage tasks",
	}
	cmd.AddCommand(newCreateTaskCmd())
	return cmd
}

func newCreateTaskCmd() *cobra.Command {
	var in models.CreateTaskInput
	var status, priority string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Status = models.TaskStatus(status)
			in.Priority = models.TaskPriority(priority)
			return runCreateTask(in, commandOptions(cmd)...)
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", "Task status (defaults to To Do)")
	cmd.Flags().StringVar(&priority, "priority", "", "Task priority (defaults to Medium)")
	cmd.Flags().StringVar(&in.DueDate, "due-date", "", "Due date (YYYY-MM-DD)")

	return cmd
}

func runCreateTask(in models.CreateTaskInput, opts ...Option) error {
	e, err := bootstrap(context.Background(), opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	page, err := openPage[*app.CreateTaskPage](e, "/tasks/create")
	if err != nil {
		return err
	}

	defaults := page.Defaults()
	if in.Status == "" {
		in.Status = defaults.Status
	}
	if in.Priority == "" {
		in.Priority = defaults.Priority
	}

	if err := page.Submit(in); err != nil {
		return reportValidation(e, err)
	}
	if err := settle(e, page, "create task"); err != nil {
		return err
	}

	if task, err := page.Result(); err == nil && task != nil {
		fmt.Fprintf(e.out, "  ID: %s\n", task.ID)
	}
	return nil
}
