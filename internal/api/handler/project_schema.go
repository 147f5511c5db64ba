package handler

import "time"

// messageResponse is the envelope for status-only replies.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type clientRequest struct {
	Name        string `json:"name"        validate:"required"`
	Company     string `json:"company"`
	Email       string `json:"email"       validate:"omitempty,email"`
	Requirement string `json:"requirement"`
}

type createProjectRequest struct {
	Name     string         `json:"project_name"     validate:"required"`
	Deadline time.Time      `json:"project_deadline" validate:"required"`
	Revenue  float64        `json:"revenue"          validate:"gte=0"`
	Remark   string         `json:"remark"`
	Client   *clientRequest `json:"client"`
}

// updateProjectRequest is a partial update: nil fields stay untouched.
type updateProjectRequest struct {
	Name        *string        `json:"project_name"`
	Deadline    *time.Time     `json:"project_deadline"`
	Revenue     *float64       `json:"revenue"          validate:"omitempty,gte=0"`
	Remark      *string        `json:"remark"`
	MeetingLink *string        `json:"meeting_link"     validate:"omitempty,url"`
	Status      *string        `json:"status"           validate:"omitempty,oneof=open in_progress completed cancelled"`
	Client      *clientRequest `json:"client"`
}

type meetingLinkRequest struct {
	MeetingLink string `json:"meeting_link" validate:"required,url"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type clientResponse struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Email       string `json:"email"`
	Requirement string `json:"requirement"`
}

type attachmentResponse struct {
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalname"`
	MimeType     string    `json:"mimetype"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type projectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"project_name"`
	Deadline    *time.Time           `json:"project_deadline,omitempty"`
	Revenue     float64              `json:"revenue"`
	AssignedTo  []string             `json:"assigned_to"`
	AssignedBy  string               `json:"assigned_by,omitempty"`
	Remark      string               `json:"remark,omitempty"`
	MeetingLink string               `json:"meeting_link,omitempty"`
	Client      *clientResponse      `json:"client,omitempty"`
	Status      string               `json:"status"`
	Attachments []attachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"created_at"`
}

type uploadResponse struct {
	Message    string             `json:"message"`
	Attachment attachmentResponse `json:"attachment"`
}
