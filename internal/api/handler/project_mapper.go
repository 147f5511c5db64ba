package handler

import (
	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
	"github.com/brc-dashboard/dashboard-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createProjectRequest, creatorID string) ports.CreateProjectInput {
	in := ports.CreateProjectInput{
		Name:      req.Name,
		Deadline:  req.Deadline,
		Revenue:   req.Revenue,
		Remark:    req.Remark,
		CreatorID: creatorID,
	}
	if req.Client != nil {
		in.Client = toClientInput(*req.Client)
	}
	return in
}

func toUpdateInput(req updateProjectRequest) ports.UpdateProjectInput {
	in := ports.UpdateProjectInput{
		Name:        req.Name,
		Deadline:    req.Deadline,
		Revenue:     req.Revenue,
		Remark:      req.Remark,
		MeetingLink: req.MeetingLink,
	}
	if req.Status != nil {
		status := domain.ProjectStatus(*req.Status)
		in.Status = &status
	}
	if req.Client != nil {
		in.Client = toClientInput(*req.Client)
	}
	return in
}

func toClientInput(c clientRequest) *ports.ClientInput {
	return &ports.ClientInput{
		Name:        c.Name,
		Company:     c.Company,
		Email:       c.Email,
		Requirement: c.Requirement,
	}
}

// --- Domain → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	return out
}

func toProjectResponse(p *domain.Project) projectResponse {
	resp := projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Revenue:     p.Revenue,
		AssignedTo:  p.AssignedTo,
		AssignedBy:  p.AssignedBy,
		Remark:      p.Remark,
		MeetingLink: p.MeetingLink,
		Status:      string(p.Status),
		Attachments: toAttachmentResponses(p.Attachments),
		CreatedAt:   p.CreatedAt.UTC(),
	}
	if resp.AssignedTo == nil {
		resp.AssignedTo = []string{}
	}
	if !p.Deadline.IsZero() {
		deadline := p.Deadline.UTC()
		resp.Deadline = &deadline
	}
	if p.Client != nil {
		resp.Client = &clientResponse{
			Name:        p.Client.Name,
			Company:     p.Client.Company,
			Email:       p.Client.Email,
			Requirement: p.Client.Requirement,
		}
	}
	return resp
}

func toProjectResponses(projects []*domain.Project) []projectResponse {
	out := make([]projectResponse, len(projects))
	for i, p := range projects {
		out[i] = toProjectResponse(p)
	}
	return out
}

func toAttachmentResponse(a domain.Attachment) attachmentResponse {
	return attachmentResponse{
		Filename:     a.Filename,
		OriginalName: a.OriginalName,
		MimeType:     a.MimeType,
		Size:         a.Size,
		URL:          a.URL,
		UploadedAt:   a.UploadedAt.UTC(),
	}
}

func toAttachmentResponses(items []domain.Attachment) []attachmentResponse {
	out := make([]attachmentResponse, len(items))
	for i, a := range items {
		out[i] = toAttachmentResponse(a)
	}
	return out
}

func toListProjectsResponse(r *ports.ListProjectsResult) listProjectsResponse {
	return listProjectsResponse{
		Data: toProjectResponses(r.Items),
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
