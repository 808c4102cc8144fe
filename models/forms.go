package models

import "strings"

// AuthMode selects the auth sub-form and the endpoint it posts to.
type AuthMode string

const (
	ModeLogin    AuthMode = "login"
	ModeRegister AuthMode = "register"
)

// AuthForm holds the login/registration inputs as typed by the user.
type AuthForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Name     string `form:"name"`
	Role     string `form:"role"`
}

// ComplaintForm holds the submission inputs.
type ComplaintForm struct {
	Title        string `form:"title"`
	Description  string `form:"description"`
	DepartmentID int    `form:"department_id"`
	Priority     string `form:"priority"`
	Anonymous    bool   `form:"anonymous"`
}

// NewAuthForm returns the blank form, role preselected to student.
func NewAuthForm() AuthForm {
	return AuthForm{Role: RoleStudent}
}

// NewComplaintForm returns the blank form with the defaults the selectors start on.
func NewComplaintForm() ComplaintForm {
	return ComplaintForm{DepartmentID: 1, Priority: PriorityMedium}
}

// ==== request payloads sent to the API ====

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student admin"`
}

type CreateComplaintRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	DepartmentID int    `json:"department_id" validate:"required,gt=0"`
	Priority     string `json:"priority" validate:"required,oneof=low medium high"`
	Anonymous    bool   `json:"anonymous"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in-progress closed"`
}

func (f AuthForm) LoginRequest() LoginRequest {
	return LoginRequest{
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
}

func (f AuthForm) RegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
		Name:     strings.TrimSpace(f.Name),
		Role:     f.Role,
	}
}

func (f ComplaintForm) Request() CreateComplaintRequest {
	return CreateComplaintRequest{
		Title:        strings.TrimSpace(f.Title),
		Description:  strings.TrimSpace(f.Description),
		DepartmentID: f.DepartmentID,
		Priority:     f.Priority,
		Anonymous:    f.Anonymous,
	}
}

// ==== API responses ====

// AuthResponse is the body of a successful /login or /register. Some
// deployments answer /register with a message only.
type AuthResponse struct {
	Token   string `json:"token"`
	User    *User  `json:"user"`
	Message string `json:"message"`
}

type CreateComplaintResponse struct {
	Message     string `json:"message"`
	ComplaintID string `json:"complaint_id"`
}
