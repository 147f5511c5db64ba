package ports

import (
	"context"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
)

// Overview aggregates the dashboard statistics shown to admins.
type Overview struct {
	TotalProjects int64 `json:"total_projects"`
	Open          int64 `json:"open"`
	InProgress    int64 `json:"in_progress"`
	Completed     int64 `json:"completed"`
	Cancelled     int64 `json:"cancelled"`
	TotalUsers    int64 `json:"total_users"`
}

// AssignInput carries an assignment request. ActorID is the acting admin,
// recorded on the project as the assignment's author.
type AssignInput struct {
	ProjectID string
	UserIDs   []string
	ActorID   string
}

// CreateUserInput provisions a new account. Role defaults to "user" when
// empty.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// ListProjectsInput carries the admin listing parameters.
type ListProjectsInput struct {
	Status string
	Page   int
	Limit  int
}

// ListProjectsResult is a page of projects plus pagination data.
type ListProjectsResult struct {
	Items      []*domain.Project
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AdminService defines the admin-only operations: overview statistics, the
// assignment workflow, status changes, and user administration.
type AdminService interface {
	Overview(ctx context.Context) (*Overview, error)
	ListProjects(ctx context.Context, input ListProjectsInput) (*ListProjectsResult, error)
	ListAssignableProjects(ctx context.Context) ([]*domain.Project, error)
	ListAssignableUsers(ctx context.Context) ([]*domain.User, error)
	ListUserProjects(ctx context.Context, userID string) ([]*domain.Project, error)

	// Assign adds the given users to the project's assignment set. All-or-
	// nothing: the call fails without effect when any id is malformed or does
	// not resolve. Idempotent per id.
	Assign(ctx context.Context, input AssignInput) (*domain.Project, error)

	// ChangeStatus moves the project to status, subject to the configured
	// StatusPolicy. The default policy permits any valid target.
	ChangeStatus(ctx context.Context, projectID string, status domain.ProjectStatus, actorID string) (*domain.Project, error)

	UpdateProject(ctx context.Context, projectID string, input UpdateProjectInput, actorID string) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID, actorID string) error

	ListUsers(ctx context.Context) ([]*domain.User, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// DeleteUser removes the account and pulls its identity from every
	// project's assignment set. Admin accounts cannot be deleted.
	DeleteUser(ctx context.Context, userID string) error
}
