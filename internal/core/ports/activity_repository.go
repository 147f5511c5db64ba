package ports

import (
	"context"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
)

// ActivityRepository persists audit records of admin mutations.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
}

// ActivityService records audit activities. Implementations may write
// synchronously or hand off to background workers.
type ActivityService interface {
	Record(ctx context.Context, a domain.Activity) error
}
