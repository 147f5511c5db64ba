package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
	"github.com/brc-dashboard/dashboard-api/internal/core/ports"
)

// stubAdminService delegates to function fields; unset methods fail the test
// when called.
type stubAdminService struct {
	t              *testing.T
	assignFn       func(ctx context.Context, input ports.AssignInput) (*domain.Project, error)
	changeStatusFn func(ctx context.Context, projectID string, status domain.ProjectStatus, actorID string) (*domain.Project, error)
	listProjectsFn func(ctx context.Context, input ports.ListProjectsInput) (*ports.ListProjectsResult, error)
}

func (s *stubAdminService) Overview(context.Context) (*ports.Overview, error) {
	s.t.Fatalf("unexpected Overview call")
	return nil, nil
}

func (s *stubAdminService) ListProjects(ctx context.Context, input ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
	if s.listProjectsFn == nil {
		s.t.Fatalf("unexpected ListProjects call")
	}
	return s.listProjectsFn(ctx, input)
}

func (s *stubAdminService) ListAssignableProjects(context.Context) ([]*domain.Project, error) {
	s.t.Fatalf("unexpected ListAssignableProjects call")
	return nil, nil
}

func (s *stubAdminService) ListAssignableUsers(context.Context) ([]*domain.User, error) {
	s.t.Fatalf("unexpected ListAssignableUsers call")
	return nil, nil
}

func (s *stubAdminService) ListUserProjects(context.Context, string) ([]*domain.Project, error) {
	s.t.Fatalf("unexpected ListUserProjects call")
	return nil, nil
}

func (s *stubAdminService) Assign(ctx context.Context, input ports.AssignInput) (*domain.Project, error) {
	if s.assignFn == nil {
		s.t.Fatalf("unexpected Assign call")
	}
	return s.assignFn(ctx, input)
}

func (s *stubAdminService) ChangeStatus(ctx context.Context, projectID string, status domain.ProjectStatus, actorID string) (*domain.Project, error) {
	if s.changeStatusFn == nil {
		s.t.Fatalf("unexpected ChangeStatus call")
	}
	return s.changeStatusFn(ctx, projectID, status, actorID)
}

func (s *stubAdminService) UpdateProject(context.Context, string, ports.UpdateProjectInput, string) (*domain.Project, error) {
	s.t.Fatalf("unexpected UpdateProject call")
	return nil, nil
}

func (s *stubAdminService) DeleteProject(context.Context, string, string) error {
	s.t.Fatalf("unexpected DeleteProject call")
	return nil
}

func (s *stubAdminService) ListUsers(context.Context) ([]*domain.User, error) {
	s.t.Fatalf("unexpected ListUsers call")
	return nil, nil
}

func (s *stubAdminService) CreateUser(context.Context, ports.CreateUserInput) (*domain.User, error) {
	s.t.Fatalf("unexpected CreateUser call")
	return nil, nil
}

func (s *stubAdminService) DeleteUser(context.Context, string) error {
	s.t.Fatalf("unexpected DeleteUser call")
	return nil
}

func newAdminContext(t *testing.T, method, path, body string, admin *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if admin != nil {
		c.Set("user", admin)
	}
	return c, rec
}

func TestAdminHandler_Assign(t *testing.T) {
	admin := &domain.User{ID: "admin1", Role: domain.RoleAdmin}
	svc := &stubAdminService{
		t: t,
		assignFn: func(_ context.Context, input ports.AssignInput) (*domain.Project, error) {
			if input.ProjectID != "p1" || input.ActorID != "admin1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if len(input.UserIDs) != 2 {
				t.Fatalf("user ids not forwarded: %v", input.UserIDs)
			}
			return &domain.Project{ID: "p1", Status: domain.StatusOpen, AssignedTo: input.UserIDs, AssignedBy: "admin1"}, nil
		},
	}
	h := NewAdminHandler(svc)

	c, rec := newAdminContext(t, http.MethodPost, "/api/admin/projects/p1/assign", `{"user_ids":["u1","u2"]}`, admin)
	c.SetParamNames("projectId")
	c.SetParamValues("p1")

	if err := h.Assign(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp projectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.AssignedTo) != 2 {
		t.Fatalf("unexpected assignment set: %v", resp.AssignedTo)
	}
}

func TestAdminHandler_Assign_EmptyList(t *testing.T) {
	admin := &domain.User{ID: "admin1", Role: domain.RoleAdmin}
	h := NewAdminHandler(&stubAdminService{t: t})

	c, _ := newAdminContext(t, http.MethodPost, "/api/admin/projects/p1/assign", `{"user_ids":[]}`, admin)
	c.SetParamNames("projectId")
	c.SetParamValues("p1")

	err := h.Assign(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty user_ids, got %v", err)
	}
}

func TestAdminHandler_Assign_MissingUser(t *testing.T) {
	admin := &domain.User{ID: "admin1", Role: domain.RoleAdmin}
	svc := &stubAdminService{
		t: t,
		assignFn: func(context.Context, ports.AssignInput) (*domain.Project, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAdminHandler(svc)

	c, _ := newAdminContext(t, http.MethodPost, "/api/admin/projects/p1/assign", `{"user_ids":["ghost"]}`, admin)
	c.SetParamNames("projectId")
	c.SetParamValues("p1")

	if err := h.Assign(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}

func TestAdminHandler_Assign_WithoutAuthContext(t *testing.T) {
	h := NewAdminHandler(&stubAdminService{t: t})

	c, _ := newAdminContext(t, http.MethodPost, "/api/admin/projects/p1/assign", `{"user_ids":["u1"]}`, nil)
	err := h.Assign(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth context, got %v", err)
	}
}

func TestAdminHandler_ChangeStatus(t *testing.T) {
	admin := &domain.User{ID: "admin1", Role: domain.RoleAdmin}
	svc := &stubAdminService{
		t: t,
		changeStatusFn: func(_ context.Context, projectID string, status domain.ProjectStatus, actorID string) (*domain.Project, error) {
			if projectID != "p1" || status != domain.StatusCancelled || actorID != "admin1" {
				t.Fatalf("unexpected args: %s %s %s", projectID, status, actorID)
			}
			return &domain.Project{ID: "p1", Status: status}, nil
		},
	}
	h := NewAdminHandler(svc)

	c, rec := newAdminContext(t, http.MethodPatch, "/api/admin/projects/p1/status", `{"status":"cancelled"}`, admin)
	c.SetParamNames("projectId")
	c.SetParamValues("p1")

	if err := h.ChangeStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminHandler_ChangeStatus_RejectsUnknownValue(t *testing.T) {
	admin := &domain.User{ID: "admin1", Role: domain.RoleAdmin}
	h := NewAdminHandler(&stubAdminService{t: t})

	c, _ := newAdminContext(t, http.MethodPatch, "/api/admin/projects/p1/status", `{"status":"bogus"}`, admin)
	c.SetParamNames("projectId")
	c.SetParamValues("p1")

	err := h.ChangeStatus(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %v", err)
	}
}

func TestAdminHandler_ListProjects_ParsesQuery(t *testing.T) {
	svc := &stubAdminService{
		t: t,
		listProjectsFn: func(_ context.Context, input ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
			if input.Page != 2 || input.Limit != 5 || input.Status != "open" {
				t.Fatalf("query not forwarded: %+v", input)
			}
			return &ports.ListProjectsResult{Page: 2, Limit: 5, Total: 0, TotalPages: 0}, nil
		},
	}
	h := NewAdminHandler(svc)

	c, rec := newAdminContext(t, http.MethodGet, "/api/admin/projects?page=2&limit=5&status=open", "", nil)
	if err := h.ListProjects(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listProjectsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Pagination.Page != 2 || resp.Pagination.Limit != 5 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
	if resp.Data == nil {
		t.Fatalf("data must serialize as an empty list, not null")
	}
}
