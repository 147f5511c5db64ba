package ports

import (
	"context"
	"io"
	"time"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
)

// ClientInput holds customer details optionally embedded at creation time.
type ClientInput struct {
	Name        string
	Company     string
	Email       string
	Requirement string
}

// CreateProjectInput carries all data needed to create a project.
type CreateProjectInput struct {
	Name      string
	Deadline  time.Time
	Revenue   float64
	Remark    string
	Client    *ClientInput // optional; embedded when present
	CreatorID string
}

// UpdateProjectInput applies a partial update. Nil fields are left untouched.
type UpdateProjectInput struct {
	Name        *string
	Deadline    *time.Time
	Revenue     *float64
	Remark      *string
	MeetingLink *string
	Status      *domain.ProjectStatus
	Client      *ClientInput
}

// IsZero reports whether no field is set.
func (in UpdateProjectInput) IsZero() bool {
	return in.Name == nil && in.Deadline == nil && in.Revenue == nil &&
		in.Remark == nil && in.MeetingLink == nil && in.Status == nil && in.Client == nil
}

// UploadAttachmentInput carries a multipart upload destined for a project.
type UploadAttachmentInput struct {
	ProjectID    string
	OriginalName string
	MimeType     string
	Size         int64
	Content      io.Reader
}

// ProjectService defines the authenticated (non-admin) project operations.
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	// ListForUser is the self-scoped listing: assignment-set member, creator,
	// or client-email match.
	ListForUser(ctx context.Context, userID, email string) ([]*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, id string, input UpdateProjectInput) (*domain.Project, error)
	// UploadAttachment stores the file bytes and appends the attachment
	// metadata to the project. Attachments are never removed.
	UploadAttachment(ctx context.Context, input UploadAttachmentInput) (*domain.Attachment, error)
	SetMeetingLink(ctx context.Context, id, link string) (*domain.Project, error)
}

// FileStore persists uploaded bytes outside the document store. Its contract
// is deliberately thin: store bytes, return a stored name and retrievable URL.
type FileStore interface {
	Save(ctx context.Context, originalName string, content io.Reader) (storedName, url string, err error)
}
