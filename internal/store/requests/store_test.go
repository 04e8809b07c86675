package requests_test

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khadamat/webgate/internal/backend"
	"github.com/khadamat/webgate/internal/domain/entity"
	"github.com/khadamat/webgate/internal/storage"
	"github.com/khadamat/webgate/internal/store/requests"
	"github.com/khadamat/webgate/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Test helpers
// ──────────────────────────────────────────────────────────────────────────────

type fixedLocale struct{}

func (fixedLocale) Language() string { return "en" }

func newStore(t *testing.T, handler http.HandlerFunc) *requests.Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := backend.New(backend.Config{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
		Locale:  fixedLocale{},
		State:   storage.NewMemStore(),
		Logger:  logger.Nop(),
	})
	return requests.New(client, logger.Nop())
}

const adminListJSON = `[
	{"id": 1, "project_title": "Site", "status": "pending"},
	{"id": 2, "project_title": "Logo", "status": "in_progress"},
	{"id": 3, "project_title": "App", "status": "pending"},
	{"id": 4, "project_title": "Cards", "status": "completed"}
]`

// ──────────────────────────────────────────────────────────────────────────────
// Submissions
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmitRequest_SendsMultipartFieldsAndFiles(t *testing.T) {
	var (
		gotFields map[string]string
		gotFiles  map[string][]byte
	)
	s := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/requests/", r.URL.Path)
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/form-data", mediaType)

		gotFields = map[string]string{}
		gotFiles = map[string][]byte{}
		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			data, err := io.ReadAll(part)
			require.NoError(t, err)
			if part.FileName() != "" {
				gotFiles[part.FileName()] = data
			} else {
				gotFields[part.FormName()] = string(data)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 10, "project_title": "Site", "status": "pending"}`))
	})

	form := requests.RequestForm{
		ServiceID:    3,
		ClientName:   "Sara",
		ClientEmail:  "sara@example.com",
		ProjectTitle: "Site",
		Deadline:     "2026-10-01",
		Budget:       "$500-1000",
	}
	files := []backend.MultipartFile{
		{Field: "additional_files", Name: "brief.pdf", Content: []byte("pdf-bytes")},
	}

	created, err := s.SubmitRequest(context.Background(), form, files)

	require.NoError(t, err)
	assert.Equal(t, 10, created.ID)
	assert.Equal(t, "Request submitted successfully!", s.SuccessMessage())
	assert.Empty(t, s.Error())

	assert.Equal(t, "3", gotFields["service_id"])
	assert.Equal(t, "Sara", gotFields["client_name"])
	assert.Equal(t, "2026-10-01", gotFields["deadline"])
	assert.Equal(t, []byte("pdf-bytes"), gotFiles["brief.pdf"])
}

func TestSubmitRequest_ValidationMessageIsKept(t *testing.T) {
	s := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"deadline is required"}}`))
	})

	_, err := s.SubmitRequest(context.Background(), requests.RequestForm{}, nil)

	require.Error(t, err)
	assert.Equal(t, "deadline is required", s.Error())
	assert.Empty(t, s.SuccessMessage())
}

func TestSubmitContact_Success(t *testing.T) {
	var got entity.ContactMessage
	s := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/contact/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	err := s.SubmitContact(context.Background(), entity.ContactMessage{
		Name: "Omar", Email: "omar@example.com", Subject: "Hi", Message: "Question",
	})

	require.NoError(t, err)
	assert.Equal(t, "Omar", got.Name)
	assert.Equal(t, "Message sent successfully!", s.SuccessMessage())
}

func TestSubmitContact_FallbackMessageOnOpaqueFailure(t *testing.T) {
	s := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	require.Error(t, s.SubmitContact(context.Background(), entity.ContactMessage{}))
	assert.Equal(t, "Failed to send message", s.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// Back office
// ──────────────────────────────────────────────────────────────────────────────

func TestFetchRequests_StatusBuckets(t *testing.T) {
	s := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(adminListJSON))
	})

	s.FetchRequests(context.Background())

	require.Len(t, s.Requests(), 4)
	assert.Len(t, s.PendingRequests(), 2)
	assert.Len(t, s.InProgressRequests(), 1)
	assert.Len(t, s.CompletedRequests(), 1)
}

func TestUpdateStatus_PatchesCacheAndCurrentInPlace(t *testing.T) {
	s := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/admin/requests/" && r.Method == http.MethodGet:
			w.Write([]byte(adminListJSON))
		case r.URL.Path == "/admin/requests/1/" && r.Method == http.MethodGet:
			w.Write([]byte(`{"id": 1, "project_title": "Site", "status": "pending"}`))
		case r.URL.Path == "/admin/requests/1/" && r.Method == http.MethodPatch:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "in_progress", body["status"])
			assert.Equal(t, "started today", body["notes"])
			w.Write([]byte(`{"id": 1, "project_title": "Site", "status": "in_progress", "notes": "started today"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	s.FetchRequests(context.Background())
	_, err := s.RequestDetails(context.Background(), 1)
	require.NoError(t, err)

	updated, err := s.UpdateStatus(context.Background(), 1, "in_progress", "started today")

	require.NoError(t, err)
	assert.Equal(t, "in_progress", updated.Status)
	assert.Equal(t, "Request status updated successfully!", s.SuccessMessage())

	assert.Equal(t, "in_progress", s.Requests()[0].Status, "the cached list entry is updated in place")
	assert.Equal(t, "in_progress", s.Current().Status, "the open detail follows the update")
	assert.Len(t, s.InProgressRequests(), 2)
}

func TestUpdateStatus_FailureLeavesCacheUntouched(t *testing.T) {
	s := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPatch {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(adminListJSON))
	})

	s.FetchRequests(context.Background())
	_, err := s.UpdateStatus(context.Background(), 1, "completed", "")

	require.Error(t, err)
	assert.Equal(t, "Failed to update request status", s.Error())
	assert.Equal(t, "pending", s.Requests()[0].Status)
}
