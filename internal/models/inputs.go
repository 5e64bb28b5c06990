package models

// Form payloads. The validate tags are the form schemas; msg carries the
// inline message shown for a failing field ("rule=message;fallback").

type LoginInput struct {
	Email    string `json:"email" validate:"required,email" msg:"required=Email is required;Invalid email address"`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

type SignupInput struct {
	Name            string `json:"name" validate:"min=2" msg:"Name must be at least 2 characters"`
	Email           string `json:"email" validate:"required,email" msg:"required=Email is required;Invalid email address"`
	Password        string `json:"password" validate:"min=8" msg:"Password must be at least 8 characters"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password" msg:"Passwords do not match"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email" msg:"required=Email is required;Invalid email address"`
}

type ResetPasswordInput struct {
	NewPassword     string `json:"new_password" validate:"min=8" msg:"Password must be at least 8 characters"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=NewPassword" msg:"Passwords do not match"`
	Token           string `json:"token" validate:"required" msg:"Reset token is missing"`
}

type VerifyEmailInput struct {
	Token string `json:"token" validate:"required" msg:"Verification token is missing"`
}

type CreateProjectInput struct {
	Title       string        `json:"title" validate:"min=3" msg:"Title must be at least 3 characters"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status" validate:"projectstatus" msg:"Invalid project status"`
	StartDate   string        `json:"start_date" validate:"min=1" msg:"Start date is required"`
	DueDate     string        `json:"due_date" validate:"min=1" msg:"Due date is required"`
}

// NewCreateProjectInput returns the form's default values
func NewCreateProjectInput() CreateProjectInput {
	return CreateProjectInput{Status: ProjectStatusPlanning}
}

type CreateWorkspaceInput struct {
	Name        string `json:"name" validate:"min=3" msg:"Name must be at least 3 characters"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color" validate:"min=1" msg:"Color is required"`
}

func NewCreateWorkspaceInput() CreateWorkspaceInput {
	return CreateWorkspaceInput{Color: DefaultWorkspaceColor}
}

type CreateTaskInput struct {
	Title       string       `json:"title" validate:"min=3" msg:"Title must be at least 3 characters"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status" validate:"taskstatus" msg:"Invalid task status"`
	Priority    TaskPriority `json:"priority" validate:"taskpriority" msg:"Invalid task priority"`
	DueDate     string       `json:"due_date" validate:"min=1" msg:"Due date is required"`
}

func NewCreateTaskInput() CreateTaskInput {
	return CreateTaskInput{Status: TaskStatusToDo, Priority: TaskPriorityMedium}
}
