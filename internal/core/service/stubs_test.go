package service

import (
	"context"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
	"github.com/brc-dashboard/dashboard-api/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository keyed by user id.
type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := *user
	created.ID = "u" + strconv.Itoa(r.nextID+100)
	r.users[created.ID] = &created
	return &created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if strings.HasPrefix(id, "malformed") {
		return nil, domain.ErrInvalidInput
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	seen := make(map[string]struct{})
	var out []*domain.User
	for _, id := range ids {
		if strings.HasPrefix(id, "malformed") {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListUsersFilter) ([]*domain.User, error) {
	allowed := make(map[string]struct{}, len(filter.Emails))
	for _, e := range filter.Emails {
		allowed[e] = struct{}{}
	}
	var out []*domain.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if len(filter.Emails) > 0 {
			if _, ok := allowed[u.Email]; !ok {
				continue
			}
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) CountByEmails(_ context.Context, emails []string) (int64, error) {
	var n int64
	for _, e := range emails {
		for _, u := range r.users {
			if u.Email == e {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// stubProjectRepo is an in-memory ports.ProjectRepository keyed by project id.
type stubProjectRepo struct {
	projects map[string]*domain.Project
	nextID   int
}

func newStubProjectRepo(projects ...*domain.Project) *stubProjectRepo {
	r := &stubProjectRepo{projects: make(map[string]*domain.Project)}
	for _, p := range projects {
		r.projects[p.ID] = p
	}
	return r
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.nextID++
	created := *p
	created.ID = "p" + strconv.Itoa(r.nextID+100)
	r.projects[created.ID] = &created
	return &created, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return p, nil
}

func (r *stubProjectRepo) ListForUser(_ context.Context, userID, email string) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.sorted() {
		if p.VisibleTo(userID, email) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) List(_ context.Context, filter ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	var matched []*domain.Project
	for _, p := range r.sorted() {
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		matched = append(matched, p)
	}
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubProjectRepo) ListAssignable(_ context.Context) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.sorted() {
		if len(p.AssignedTo) == 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) ListByAssignee(_ context.Context, userID string) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range r.sorted() {
		for _, id := range p.AssignedTo {
			if id == userID {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (r *stubProjectRepo) AddAssignees(_ context.Context, projectID string, userIDs []string, assignedBy string) (*domain.Project, error) {
	p, ok := r.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	existing := make(map[string]struct{}, len(p.AssignedTo))
	for _, id := range p.AssignedTo {
		existing[id] = struct{}{}
	}
	for _, id := range userIDs {
		if _, ok := existing[id]; ok {
			continue
		}
		existing[id] = struct{}{}
		p.AssignedTo = append(p.AssignedTo, id)
	}
	p.AssignedBy = assignedBy
	return p, nil
}

func (r *stubProjectRepo) SetStatus(_ context.Context, projectID string, status domain.ProjectStatus) (*domain.Project, error) {
	p, ok := r.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	p.Status = status
	return p, nil
}

func (r *stubProjectRepo) SetMeetingLink(_ context.Context, projectID, link string) (*domain.Project, error) {
	p, ok := r.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	p.MeetingLink = link
	return p, nil
}

func (r *stubProjectRepo) AddAttachment(_ context.Context, projectID string, att domain.Attachment) (*domain.Project, error) {
	p, ok := r.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	p.Attachments = append(p.Attachments, att)
	return p, nil
}

func (r *stubProjectRepo) Update(_ context.Context, projectID string, input ports.UpdateProjectInput) (*domain.Project, error) {
	p, ok := r.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Deadline != nil {
		p.Deadline = *input.Deadline
	}
	if input.Revenue != nil {
		p.Revenue = *input.Revenue
	}
	if input.Remark != nil {
		p.Remark = *input.Remark
	}
	if input.MeetingLink != nil {
		p.MeetingLink = *input.MeetingLink
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	if input.Client != nil {
		p.Client = &domain.Client{
			Name:        input.Client.Name,
			Company:     input.Client.Company,
			Email:       input.Client.Email,
			Requirement: input.Client.Requirement,
		}
	}
	return p, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, projectID string) error {
	if _, ok := r.projects[projectID]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, projectID)
	return nil
}

func (r *stubProjectRepo) RemoveAssignee(_ context.Context, userID string) error {
	for _, p := range r.projects {
		kept := p.AssignedTo[:0]
		for _, id := range p.AssignedTo {
			if id != userID {
				kept = append(kept, id)
			}
		}
		p.AssignedTo = kept
	}
	return nil
}

func (r *stubProjectRepo) CountByStatus(_ context.Context) (map[domain.ProjectStatus]int64, error) {
	counts := make(map[domain.ProjectStatus]int64)
	for _, p := range r.projects {
		counts[p.Status]++
	}
	return counts, nil
}

func (r *stubProjectRepo) sorted() []*domain.Project {
	out := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// stubActivity records audit calls for assertion.
type stubActivity struct {
	recorded []domain.Activity
	err      error
}

func (a *stubActivity) Record(_ context.Context, act domain.Activity) error {
	if a.err != nil {
		return a.err
	}
	a.recorded = append(a.recorded, act)
	return nil
}

// stubCache is an in-memory OverviewCache.
type stubCache struct {
	value *ports.Overview
	gets  int
	sets  int
}

func (c *stubCache) Get(context.Context) (*ports.Overview, error) {
	c.gets++
	return c.value, nil
}

func (c *stubCache) Set(_ context.Context, o *ports.Overview) error {
	c.sets++
	c.value = o
	return nil
}

// stubFileStore captures saved uploads without touching the filesystem.
type stubFileStore struct {
	savedName string
	content   []byte
	err       error
}

func (s *stubFileStore) Save(_ context.Context, originalName string, content io.Reader) (string, string, error) {
	if s.err != nil {
		return "", "", s.err
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", "", err
	}
	s.content = data
	s.savedName = "stored-" + originalName
	return s.savedName, "/uploads/" + s.savedName, nil
}
