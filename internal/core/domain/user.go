package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the two known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// User models an account that can authenticate against the dashboard.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Allowlist is the set of emails permitted to authenticate, independent of
// which accounts exist in the store. It is injected from configuration so the
// access policy stays data rather than code.
type Allowlist map[string]struct{}

// NewAllowlist builds an Allowlist from a slice of emails. Empty entries are
// dropped.
func NewAllowlist(emails []string) Allowlist {
	al := make(Allowlist, len(emails))
	for _, e := range emails {
		if e != "" {
			al[e] = struct{}{}
		}
	}
	return al
}

// Contains reports whether email may authenticate. Matching is
// case-sensitive, same as the stored email.
func (al Allowlist) Contains(email string) bool {
	_, ok := al[email]
	return ok
}

// Emails returns the allow-list members as a slice, for store queries.
func (al Allowlist) Emails() []string {
	out := make([]string, 0, len(al))
	for e := range al {
		out = append(out, e)
	}
	return out
}
