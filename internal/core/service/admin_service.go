package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
	"github.com/brc-dashboard/dashboard-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// OverviewCache abstracts the short-lived statistics cache (Redis).
type OverviewCache interface {
	Get(ctx context.Context) (*ports.Overview, error)
	Set(ctx context.Context, o *ports.Overview) error
}

// AdminService implements the admin-only operations, including the
// project/user assignment workflow.
type AdminService struct {
	projects   ports.ProjectRepository
	users      ports.UserRepository
	activity   ports.ActivityService
	allowlist  domain.Allowlist
	policy     domain.StatusPolicy
	cache      OverviewCache
	bcryptCost int
	log        zerolog.Logger
}

func NewAdminService(
	projects ports.ProjectRepository,
	users ports.UserRepository,
	activity ports.ActivityService,
	allowlist domain.Allowlist,
	policy domain.StatusPolicy,
	cache OverviewCache,
	bcryptCost int,
	log zerolog.Logger,
) *AdminService {
	if policy == nil {
		policy = domain.PermissivePolicy{}
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AdminService{
		projects:   projects,
		users:      users,
		activity:   activity,
		allowlist:  allowlist,
		policy:     policy,
		cache:      cache,
		bcryptCost: bcryptCost,
		log:        log,
	}
}

// Overview returns the dashboard statistics, served from cache when fresh.
// Cache failures degrade to a store read.
func (s *AdminService) Overview(ctx context.Context) (*ports.Overview, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	counts, err := s.projects.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}

	totalUsers, err := s.users.CountByEmails(ctx, s.allowlist.Emails())
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}

	o := &ports.Overview{
		Open:       counts[domain.StatusOpen],
		InProgress: counts[domain.StatusInProgress],
		Completed:  counts[domain.StatusCompleted],
		Cancelled:  counts[domain.StatusCancelled],
		TotalUsers: totalUsers,
	}
	o.TotalProjects = o.Open + o.InProgress + o.Completed + o.Cancelled

	if s.cache != nil {
		if err := s.cache.Set(ctx, o); err != nil {
			s.log.Warn().Err(err).Msg("failed to cache overview")
		}
	}
	return o, nil
}

func (s *AdminService) ListProjects(ctx context.Context, input ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
	if input.Status != "" && !domain.ValidStatus(domain.ProjectStatus(input.Status)) {
		return nil, domain.ErrInvalidStatus
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.projects.List(ctx, ports.ListProjectsFilter{
		Status: input.Status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListProjectsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *AdminService) ListAssignableProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.ListAssignable(ctx)
}

// ListAssignableUsers returns the accounts an admin may assign work to:
// regular users whose email is on the allow-list.
func (s *AdminService) ListAssignableUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx, ports.ListUsersFilter{
		Role:   domain.RoleUser,
		Emails: s.allowlist.Emails(),
	})
}

func (s *AdminService) ListUserProjects(ctx context.Context, userID string) ([]*domain.Project, error) {
	return s.projects.ListByAssignee(ctx, userID)
}

// Assign adds the given users to the project's assignment set. The whole call
// fails without effect when the list is empty, an id is malformed, or any id
// does not resolve to an existing user. Re-assigning an already-assigned user
// is a no-op for that user.
func (s *AdminService) Assign(ctx context.Context, input ports.AssignInput) (*domain.Project, error) {
	if len(input.UserIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	users, err := s.users.FindByIDs(ctx, input.UserIDs)
	if err != nil {
		return nil, err
	}
	if len(users) != len(dedupe(input.UserIDs)) {
		return nil, domain.ErrUserNotFound
	}

	project, err := s.projects.AddAssignees(ctx, input.ProjectID, input.UserIDs, input.ActorID)
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.Activity{
		ProjectID: input.ProjectID,
		ActorID:   input.ActorID,
		Action:    domain.ActivityAssigned,
		Detail:    strings.Join(input.UserIDs, ","),
	})

	s.log.Info().
		Str("project_id", input.ProjectID).
		Strs("user_ids", input.UserIDs).
		Str("actor_id", input.ActorID).
		Msg("users assigned to project")

	return project, nil
}

// ChangeStatus moves the project to status. The target must be one of the
// four enumerated values; beyond that the configured StatusPolicy decides,
// and the default policy allows any move.
func (s *AdminService) ChangeStatus(ctx context.Context, projectID string, status domain.ProjectStatus, actorID string) (*domain.Project, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	current, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !s.policy.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidStatus, current.Status, status)
	}

	project, err := s.projects.SetStatus(ctx, projectID, status)
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.Activity{
		ProjectID: projectID,
		ActorID:   actorID,
		Action:    domain.ActivityStatusChanged,
		Detail:    string(status),
	})
	return project, nil
}

func (s *AdminService) UpdateProject(ctx context.Context, projectID string, input ports.UpdateProjectInput, actorID string) (*domain.Project, error) {
	if input.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if input.Status != nil && !domain.ValidStatus(*input.Status) {
		return nil, domain.ErrInvalidStatus
	}

	project, err := s.projects.Update(ctx, projectID, input)
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.Activity{
		ProjectID: projectID,
		ActorID:   actorID,
		Action:    domain.ActivityUpdated,
	})
	return project, nil
}

func (s *AdminService) DeleteProject(ctx context.Context, projectID, actorID string) error {
	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}

	s.record(ctx, domain.Activity{
		ProjectID: projectID,
		ActorID:   actorID,
		Action:    domain.ActivityDeleted,
	})

	s.log.Info().Str("project_id", projectID).Str("actor_id", actorID).Msg("project deleted")
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx, ports.ListUsersFilter{})
}

func (s *AdminService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user created")
	return created, nil
}

// DeleteUser removes the account after pulling its identity from every
// project's assignment set. Admin accounts cannot be deleted.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == domain.RoleAdmin {
		return domain.ErrForbidden
	}

	if err := s.projects.RemoveAssignee(ctx, userID); err != nil {
		return fmt.Errorf("delete user: unassign: %w", err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}

// record hands an activity to the audit trail. Failures are logged only;
// audit writes never fail the originating operation.
func (s *AdminService) record(ctx context.Context, a domain.Activity) {
	if s.activity == nil {
		return
	}
	a.Timestamp = time.Now().UTC()
	if err := s.activity.Record(ctx, a); err != nil {
		s.log.Warn().Err(err).Str("action", a.Action).Str("project_id", a.ProjectID).Msg("failed to record activity")
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
