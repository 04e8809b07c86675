package entity

import "time"

// Valid ServiceRequest statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// Valid ServiceRequest priorities.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// ServiceRequest is a client's request for a service, tracked through the back office.
type ServiceRequest struct {
	ID                 int       `json:"id"`
	ServiceID          int       `json:"service"`
	ServiceTitle       string    `json:"service_title"`
	ClientName         string    `json:"client_name"`
	ClientEmail        string    `json:"client_email"`
	ClientPhone        string    `json:"client_phone"`
	ProjectTitle       string    `json:"project_title"`
	ProjectDescription string    `json:"project_description"`
	Deadline           string    `json:"deadline"` // date only, ISO 8601
	Budget             string    `json:"budget"`   // free text budget range
	Status             string    `json:"status"`
	Priority           string    `json:"priority"`
	Notes              string    `json:"notes"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
