// Package requests handles service-request and contact-form submissions
// plus the back-office cache of incoming requests.
package requests

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/khadamat/webgate/internal/backend"
	"github.com/khadamat/webgate/internal/domain"
	"github.com/khadamat/webgate/internal/domain/entity"
	"github.com/khadamat/webgate/pkg/logger"
)

// RequestForm is the public service-request submission. Sent as
// multipart/form-data because it may carry attachments.
type RequestForm struct {
	ServiceID          int
	ClientName         string
	ClientEmail        string
	ClientPhone        string
	ProjectTitle       string
	ProjectDescription string
	Deadline           string
	Budget             string
}

// fields maps the form to the backend's multipart field names.
func (f RequestForm) fields() map[string]string {
	return map[string]string{
		"service_id":          fmt.Sprintf("%d", f.ServiceID),
		"client_name":         f.ClientName,
		"client_email":        f.ClientEmail,
		"client_phone":        f.ClientPhone,
		"project_title":       f.ProjectTitle,
		"project_description": f.ProjectDescription,
		"deadline":            f.Deadline,
		"budget":              f.Budget,
	}
}

// Store is the requests domain store.
type Store struct {
	client *backend.Client
	log    *logger.Logger

	mu       sync.RWMutex
	requests []entity.ServiceRequest
	current  *entity.ServiceRequest
	err      string
	success  string
}

// New creates the store.
func New(client *backend.Client, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{client: client, log: log}
}

// SubmitRequest sends a service request (with optional attachments) to
// POST /requests/.
func (s *Store) SubmitRequest(ctx context.Context, form RequestForm, files []backend.MultipartFile) (*entity.ServiceRequest, error) {
	s.setMessages("", "")

	var created entity.ServiceRequest
	if err := s.client.PostMultipart(ctx, "/requests/", form.fields(), files, &created); err != nil {
		s.log.Error().Err(err).Msg("submit service request")
		s.setMessages(submissionError(err, "Failed to submit request"), "")
		return nil, err
	}
	s.setMessages("", "Request submitted successfully!")
	return &created, nil
}

// SubmitContact sends a contact-form message to POST /contact/.
func (s *Store) SubmitContact(ctx context.Context, msg entity.ContactMessage) error {
	s.setMessages("", "")

	if err := s.client.Post(ctx, "/contact/", msg, nil); err != nil {
		s.log.Error().Err(err).Msg("submit contact form")
		s.setMessages(submissionError(err, "Failed to send message"), "")
		return err
	}
	s.setMessages("", "Message sent successfully!")
	return nil
}

// FetchRequests replaces the back-office cache from GET /admin/requests/.
func (s *Store) FetchRequests(ctx context.Context) {
	items, err := backend.GetList[entity.ServiceRequest](ctx, s.client, "/admin/requests/")
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.log.Error().Err(err).Msg("fetch requests")
		s.err = "Failed to fetch requests"
		return
	}
	s.err = ""
	s.requests = items
}

// RequestDetails fetches one request and keeps it as the current one.
func (s *Store) RequestDetails(ctx context.Context, id int) (*entity.ServiceRequest, error) {
	var req entity.ServiceRequest
	if err := s.client.Get(ctx, fmt.Sprintf("/admin/requests/%d/", id), &req); err != nil {
		s.mu.Lock()
		s.err = "Failed to fetch request details"
		s.mu.Unlock()
		s.log.Error().Err(err).Int("id", id).Msg("fetch request details")
		return nil, err
	}
	s.mu.Lock()
	s.err = ""
	s.current = &req
	s.mu.Unlock()
	return &req, nil
}

// UpdateStatus patches a request's status and notes, then updates the
// cached entry (and the current detail) in place.
func (s *Store) UpdateStatus(ctx context.Context, id int, status, notes string) (*entity.ServiceRequest, error) {
	payload := map[string]string{"status": status, "notes": notes}

	var updated entity.ServiceRequest
	if err := s.client.Patch(ctx, fmt.Sprintf("/admin/requests/%d/", id), payload, &updated); err != nil {
		s.mu.Lock()
		s.err = "Failed to update request status"
		s.mu.Unlock()
		s.log.Error().Err(err).Int("id", id).Msg("update request status")
		return nil, err
	}

	s.mu.Lock()
	for i := range s.requests {
		if s.requests[i].ID == id {
			s.requests[i] = updated
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = &updated
	}
	s.err = ""
	s.success = "Request status updated successfully!"
	s.mu.Unlock()
	return &updated, nil
}

// Requests returns the cached back-office requests.
func (s *Store) Requests() []entity.ServiceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requests
}

// Current returns the last fetched request detail, or nil.
func (s *Store) Current() *entity.ServiceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// PendingRequests returns cached requests still awaiting action.
func (s *Store) PendingRequests() []entity.ServiceRequest {
	return s.byStatus(entity.StatusPending)
}

// InProgressRequests returns cached requests being worked on.
func (s *Store) InProgressRequests() []entity.ServiceRequest {
	return s.byStatus(entity.StatusInProgress)
}

// CompletedRequests returns cached requests already done.
func (s *Store) CompletedRequests() []entity.ServiceRequest {
	return s.byStatus(entity.StatusCompleted)
}

func (s *Store) byStatus(status string) []entity.ServiceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.ServiceRequest, 0, len(s.requests))
	for _, r := range s.requests {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// Error returns the store's last error message, or "".
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// SuccessMessage returns the last success message, or "".
func (s *Store) SuccessMessage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.success
}

// ClearError resets the error message.
func (s *Store) ClearError() {
	s.setMessages("", s.SuccessMessage())
}

// ClearSuccessMessage resets the success message.
func (s *Store) ClearSuccessMessage() {
	s.setMessages(s.Error(), "")
}

func (s *Store) setMessages(errMsg, success string) {
	s.mu.Lock()
	s.err = errMsg
	s.success = success
	s.mu.Unlock()
}

// submissionError keeps the backend's structured message when one
// exists, otherwise falls back to a generic one.
func submissionError(err error, fallback string) string {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) && valErr.Message != "" {
		return valErr.Message
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
