package ports

import (
	"context"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
)

// AuthService issues session tokens. Registration is administratively closed;
// accounts are provisioned through the admin user operations.
type AuthService interface {
	// Login validates email against the allow-list and the stored credentials
	// and returns a signed, time-limited token plus the resolved user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
