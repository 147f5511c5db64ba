package domain

import "time"

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	StatusOpen       ProjectStatus = "open"
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusCancelled  ProjectStatus = "cancelled"
)

// ValidStatus reports whether s is one of the four enumerated values.
func ValidStatus(s ProjectStatus) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// StatusPolicy decides whether a project may move from one status to another.
// The default policy is permissive: any enumerated status may move to any
// other. A stricter graph can be substituted without changing the status
// operation's signature.
type StatusPolicy interface {
	CanTransition(from, to ProjectStatus) bool
}

// PermissivePolicy allows every transition between valid statuses.
type PermissivePolicy struct{}

func (PermissivePolicy) CanTransition(from, to ProjectStatus) bool {
	return ValidStatus(to)
}

// TransitionTable is a StatusPolicy backed by an explicit adjacency map.
// Statuses absent from the table have no outgoing transitions.
type TransitionTable map[ProjectStatus][]ProjectStatus

func (t TransitionTable) CanTransition(from, to ProjectStatus) bool {
	for _, allowed := range t[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Client holds the customer details optionally embedded in a project at
// creation time. It has no lifecycle of its own.
type Client struct {
	Name        string `json:"name" bson:"name"`
	Company     string `json:"company" bson:"company"`
	Email       string `json:"email" bson:"email"`
	Requirement string `json:"requirement" bson:"requirement"`
}

// Attachment records an uploaded file. Attachments are append-only; no
// mutation or removal path exists.
type Attachment struct {
	Filename     string    `json:"filename" bson:"filename"`
	OriginalName string    `json:"originalname" bson:"originalname"`
	MimeType     string    `json:"mimetype" bson:"mimetype"`
	Size         int64     `json:"size" bson:"size"`
	URL          string    `json:"url" bson:"url"`
	UploadedAt   time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// Project is the core aggregate root.
type Project struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Name        string        `json:"project_name" bson:"project_name"`
	Deadline    time.Time     `json:"project_deadline" bson:"project_deadline,omitempty"`
	Revenue     float64       `json:"revenue" bson:"revenue"`
	AssignedTo  []string      `json:"assigned_to" bson:"-"`
	AssignedBy  string        `json:"assigned_by" bson:"-"`
	Remark      string        `json:"remark" bson:"remark,omitempty"`
	MeetingLink string        `json:"meeting_link" bson:"meeting_link,omitempty"`
	Client      *Client       `json:"client,omitempty" bson:"client,omitempty"`
	Status      ProjectStatus `json:"status" bson:"status"`
	Attachments []Attachment  `json:"attachments" bson:"attachments"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
}

// VisibleTo reports whether user may see the project through the self-scoped
// listing: member of the assignment set, creator, or the embedded client's
// email matches. All three clauses stand on their own.
func (p *Project) VisibleTo(userID, email string) bool {
	for _, id := range p.AssignedTo {
		if id == userID {
			return true
		}
	}
	if p.AssignedBy == userID {
		return true
	}
	if p.Client != nil && p.Client.Email != "" && p.Client.Email == email {
		return true
	}
	return false
}
