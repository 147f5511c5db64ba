package ports

import (
	"context"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves a batch of identities. Malformed ids fail with
	// domain.ErrInvalidInput; ids that do not resolve are simply absent from
	// the result, so callers can detect missing users by length.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// List returns users matching filter, password hash included; handlers
	// must never serialize it.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	CountByEmails(ctx context.Context, emails []string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// ListUsersFilter narrows a user listing. Zero values mean no constraint.
type ListUsersFilter struct {
	Role   string   // exact role match
	Emails []string // restrict to this email set
}
