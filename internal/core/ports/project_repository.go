package ports

import (
	"context"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
)

// ListProjectsFilter carries the query parameters for the admin listing.
type ListProjectsFilter struct {
	Status string // optional: filter by project status
	Page   int    // 1-based
	Limit  int    // rows per page (capped by the service)
}

// ProjectRepository defines persistence operations for projects. All updates
// are single-document and rely on the store's native atomicity; there are no
// multi-document transactions.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)

	// ListForUser returns projects visible to the user through any of the
	// three clauses: assignment-set membership, creator, or matching embedded
	// client email.
	ListForUser(ctx context.Context, userID, email string) ([]*domain.Project, error)

	// List returns a page of projects matching filter, newest first, with the
	// total count.
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)

	// ListAssignable returns projects whose assignment set is empty, absent,
	// or null.
	ListAssignable(ctx context.Context) ([]*domain.Project, error)

	// ListByAssignee returns projects that have userID in their assignment set.
	ListByAssignee(ctx context.Context, userID string) ([]*domain.Project, error)

	// AddAssignees adds userIDs to the project's assignment set with set
	// semantics (duplicates absorbed) and records assignedBy as the acting
	// admin, in a single document update.
	AddAssignees(ctx context.Context, projectID string, userIDs []string, assignedBy string) (*domain.Project, error)

	SetStatus(ctx context.Context, projectID string, status domain.ProjectStatus) (*domain.Project, error)
	SetMeetingLink(ctx context.Context, projectID, link string) (*domain.Project, error)
	AddAttachment(ctx context.Context, projectID string, att domain.Attachment) (*domain.Project, error)

	// Update applies the non-nil fields of input to the project.
	Update(ctx context.Context, projectID string, input UpdateProjectInput) (*domain.Project, error)

	Delete(ctx context.Context, projectID string) error

	// RemoveAssignee pulls userID from every project's assignment set.
	// Referential cleanup used by the user-deletion cascade.
	RemoveAssignee(ctx context.Context, userID string) error

	CountByStatus(ctx context.Context) (map[domain.ProjectStatus]int64, error)
}
