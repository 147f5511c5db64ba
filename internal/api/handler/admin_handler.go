package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/brc-dashboard/dashboard-api/internal/api/metrics"
	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
	"github.com/brc-dashboard/dashboard-api/internal/core/ports"
)

// AdminHandler handles the admin-only routes. Every route is behind the Auth
// and RBAC("admin") middleware.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Overview handles GET /api/admin/overview.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Overview
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/overview [get]
func (h *AdminHandler) Overview(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overview)
}

// ListProjects handles GET /api/admin/projects with page, limit, and status
// query parameters.
//
// @Summary      List projects (paginated)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Rows per page"
// @Param        status  query     string  false  "Filter by status"
// @Success      200     {object}  listProjectsResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/admin/projects [get]
func (h *AdminHandler) ListProjects(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListProjects(c.Request().Context(), ports.ListProjectsInput{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListProjectsResponse(result))
}

// ListAssignableProjects handles GET /api/admin/projects/assignable.
//
// @Summary      List unassigned projects
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   projectResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/projects/assignable [get]
func (h *AdminHandler) ListAssignableProjects(c echo.Context) error {
	projects, err := h.service.ListAssignableProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponses(projects))
}

// ListAssignableUsers handles GET /api/admin/users/assignable.
//
// @Summary      List assignable users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users/assignable [get]
func (h *AdminHandler) ListAssignableUsers(c echo.Context) error {
	users, err := h.service.ListAssignableUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// ListUserProjects handles GET /api/admin/users/:userId/projects.
//
// @Summary      List projects assigned to a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {array}   projectResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/admin/users/{userId}/projects [get]
func (h *AdminHandler) ListUserProjects(c echo.Context) error {
	projects, err := h.service.ListUserProjects(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponses(projects))
}

// Assign handles POST /api/admin/projects/:projectId/assign.
//
// @Summary      Assign users to a project
// @Description  All-or-nothing: fails with no effect when any id is unknown. Idempotent per id.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string         true  "Project id"
// @Param        body       body      assignRequest  true  "User ids to assign"
// @Success      200        {object}  projectResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/admin/projects/{projectId}/assign [post]
func (h *AdminHandler) Assign(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}

	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.Assign(c.Request().Context(), ports.AssignInput{
		ProjectID: c.Param("projectId"),
		UserIDs:   req.UserIDs,
		ActorID:   admin.ID,
	})
	if err != nil {
		return err
	}

	metrics.AssignmentsTotal.Add(float64(len(req.UserIDs)))
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// ChangeStatus handles PATCH /api/admin/projects/:projectId/status.
//
// @Summary      Change a project's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string               true  "Project id"
// @Param        body       body      changeStatusRequest  true  "Target status"
// @Success      200        {object}  projectResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/admin/projects/{projectId}/status [patch]
func (h *AdminHandler) ChangeStatus(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.ChangeStatus(c.Request().Context(), c.Param("projectId"), domain.ProjectStatus(req.Status), admin.ID)
	if err != nil {
		return err
	}

	metrics.StatusChangesTotal.WithLabelValues(req.Status).Inc()
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// UpdateProject handles PUT /api/admin/projects/:projectId.
//
// @Summary      Update a project (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string                true  "Project id"
// @Param        body       body      updateProjectRequest  true  "Fields to update"
// @Success      200        {object}  projectResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/admin/projects/{projectId} [put]
func (h *AdminHandler) UpdateProject(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.service.UpdateProject(c.Request().Context(), c.Param("projectId"), toUpdateInput(req), admin.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProjectResponse(project))
}

// DeleteProject handles DELETE /api/admin/projects/:projectId.
//
// @Summary      Delete a project
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string  true  "Project id"
// @Success      200        {object}  messageResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /api/admin/projects/{projectId} [delete]
func (h *AdminHandler) DeleteProject(c echo.Context) error {
	admin, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProject(c.Request().Context(), c.Param("projectId"), admin.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "project deleted"})
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// CreateUser handles POST /api/admin/users.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.CreateUser(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// DeleteUser handles DELETE /api/admin/users/:userId.
//
// @Summary      Delete a user
// @Description  Removes the account and pulls it from every project's assignment set. Admin accounts cannot be deleted.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User id"
// @Success      200     {object}  messageResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/admin/users/{userId} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("userId")); err != nil {
		return err
	}

	metrics.UsersDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}
