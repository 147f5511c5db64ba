package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
	"github.com/brc-dashboard/dashboard-api/internal/core/ports"
)

// ProjectService implements the authenticated project operations.
type ProjectService struct {
	repo   ports.ProjectRepository
	files  ports.FileStore
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, files ports.FileStore, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, files: files, logger: logger}
}

// Create persists a new project. When client details are supplied they are
// embedded in the project document; the client has no independent lifecycle.
func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	if input.Name == "" || input.CreatorID == "" {
		return nil, domain.ErrInvalidInput
	}

	project := &domain.Project{
		Name:        input.Name,
		Deadline:    input.Deadline,
		Revenue:     input.Revenue,
		Remark:      input.Remark,
		AssignedBy:  input.CreatorID,
		Status:      domain.StatusOpen,
		Attachments: []domain.Attachment{},
		CreatedAt:   time.Now().UTC(),
	}
	if input.Client != nil {
		project.Client = &domain.Client{
			Name:        input.Client.Name,
			Company:     input.Client.Company,
			Email:       input.Client.Email,
			Requirement: input.Client.Requirement,
		}
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Str("project_name", input.Name).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("creator_id", input.CreatorID).Msg("project created")
	return created, nil
}

// ListForUser returns the self-scoped listing for the user.
func (s *ProjectService) ListForUser(ctx context.Context, userID, email string) ([]*domain.Project, error) {
	return s.repo.ListForUser(ctx, userID, email)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ProjectService) Update(ctx context.Context, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	if input.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if input.Status != nil && !domain.ValidStatus(*input.Status) {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.Update(ctx, id, input)
}

// UploadAttachment stores the bytes first, then appends the metadata to the
// project. A stored file whose metadata write fails is orphaned, not rolled
// back; the file store defines no deletion path.
func (s *ProjectService) UploadAttachment(ctx context.Context, input ports.UploadAttachmentInput) (*domain.Attachment, error) {
	if input.OriginalName == "" || input.Content == nil {
		return nil, domain.ErrInvalidInput
	}

	// Confirm the project exists before writing any bytes.
	if _, err := s.repo.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	storedName, url, err := s.files.Save(ctx, input.OriginalName, input.Content)
	if err != nil {
		s.logger.Error().Err(err).Str("project_id", input.ProjectID).Msg("failed to store attachment")
		return nil, err
	}

	att := domain.Attachment{
		Filename:     storedName,
		OriginalName: input.OriginalName,
		MimeType:     input.MimeType,
		Size:         input.Size,
		URL:          url,
		UploadedAt:   time.Now().UTC(),
	}

	if _, err := s.repo.AddAttachment(ctx, input.ProjectID, att); err != nil {
		return nil, err
	}

	s.logger.Info().Str("project_id", input.ProjectID).Str("filename", storedName).Int64("size", input.Size).Msg("attachment uploaded")
	return &att, nil
}

func (s *ProjectService) SetMeetingLink(ctx context.Context, id, link string) (*domain.Project, error) {
	if link == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.SetMeetingLink(ctx, id, link)
}
