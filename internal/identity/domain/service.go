package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	CreateRole(ctx context.Context, req CreateRoleRequest) (*RoleResponse, error)
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	GetRole(ctx context.Context, id string) (*RoleResponse, error)
	UpdateRole(ctx context.Context, req UpdateRoleRequest) (*RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error

	CreateUser(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	ListUsers(ctx context.Context, req ListUsersRequest) ([]UserResponse, error)
	GetUser(ctx context.Context, id string) (*UserResponse, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type CreateRoleRequest struct {
	Name string `json:"name"`
}

type UpdateRoleRequest struct {
	ID   string
	Name *string `json:"name"`
}

type RoleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   string `json:"role_id"`
	IsActive *bool  `json:"is_active"`
}

type UpdateUserRequest struct {
	ID       string
	Email    *string `json:"email"`
	RoleID   *string `json:"role_id"`
	IsActive *bool   `json:"is_active"`
}

type ListUsersRequest struct {
	RoleID   string
	IsActive *bool
}

type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	RoleID    string    `json:"role_id"`
	RoleName  string    `json:"role_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrInvalidName       = errors.New("invalid_name")
	ErrInvalidUsername   = errors.New("invalid_username")
	ErrInvalidPassword   = errors.New("invalid_password")
	ErrInvalidRole       = errors.New("invalid_role")
	ErrInvalidID         = errors.New("invalid_id")
	ErrDuplicateName     = errors.New("duplicate_name")
	ErrDuplicateUsername = errors.New("duplicate_username")
	ErrNotFound          = errors.New("not_found")
)
