package models

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and auto-generated ULID for persisted rows
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = NewID()
	}
	return nil
}

// NewID returns a fresh ULID string
func NewID() string {
	return ulid.Make().String()
}

// User is the signed-in identity held by the session
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DisplayName falls back to "User" when no name is known
func (u *User) DisplayName() string {
	if u == nil || u.Name == "" {
		return "User"
	}
	return u.Name
}

// AuthResponse is returned by login and signup
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ProjectStatus is the lifecycle state of a project
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "Planning"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusOnHold     ProjectStatus = "On Hold"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusCancelled  ProjectStatus = "Cancelled"
)

// ProjectStatuses lists every status in display order
var ProjectStatuses = []ProjectStatus{
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

// Valid reports whether s is a known status
func (s ProjectStatus) Valid() bool {
	for _, status := range ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// TaskStatus is the board column of a task
type TaskStatus string

const (
	TaskStatusToDo       TaskStatus = "To Do"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusDone       TaskStatus = "Done"
)

var TaskStatuses = []TaskStatus{TaskStatusToDo, TaskStatusInProgress, TaskStatusDone}

func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// TaskPriority ranks tasks
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

var TaskPriorities = []TaskPriority{TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh}

func (p TaskPriority) Valid() bool {
	for _, priority := range TaskPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

// Project is the record returned after a project is created
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	StartDate   string        `json:"start_date"`
	DueDate     string        `json:"due_date"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Workspace groups projects under a name and colour
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// Task is a unit of work inside a project
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     string       `json:"due_date"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ColorOption is a selectable workspace colour
type ColorOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DefaultWorkspaceColor is the blue preselected on the workspace form
const DefaultWorkspaceColor = "#3B82F6"

// WorkspaceColors is the palette offered by the workspace form
var WorkspaceColors = []ColorOption{
	{Name: "Blue", Value: "#3B82F6"},
	{Name: "Green", Value: "#10B981"},
	{Name: "Purple", Value: "#8B5CF6"},
	{Name: "Red", Value: "#EF4444"},
	{Name: "Yellow", Value: "#F59E0B"},
	{Name: "Pink", Value: "#EC4899"},
	{Name: "Indigo", Value: "#6366F1"},
	{Name: "Gray", Value: "#6B7280"},
}
