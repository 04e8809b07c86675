// Package backend is the single HTTP entry point to the remote REST API.
// Every outgoing request automatically carries the negotiated language and
// the stored credential; response errors are classified here once so the
// stores never branch on response shape.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khadamat/webgate/internal/domain"
	"github.com/khadamat/webgate/internal/storage"
	"github.com/khadamat/webgate/pkg/logger"
)

// DefaultTimeout bounds every outgoing request when no explicit timeout
// is configured. On expiry the failure is classified as a network error.
const DefaultTimeout = 10 * time.Second

// adminLoginRedirect is where the browser is sent after a 401 teardown.
const adminLoginRedirect = "/" + domain.LangEnglish + "/admin/login"

// LocaleProvider yields the language attached to every request as
// Accept-Language. Resolved at request time, not at construction.
type LocaleProvider interface {
	Language() string
}

// Navigator abstracts the browser-location environment: where the user
// currently is and how to force a navigation.
type Navigator interface {
	Location() string
	Navigate(target string)
}

// NopNavigator ignores navigation. Used when no browser environment is
// attached to the client.
type NopNavigator struct{}

func (NopNavigator) Location() string  { return "" }
func (NopNavigator) Navigate(_ string) {}

// Config assembles the client's collaborators.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Locale    LocaleProvider
	State     storage.StateStore
	Navigator Navigator
	Logger    *logger.Logger
}

// Client is the shared request-dispatch object.
type Client struct {
	baseURL string
	http    *http.Client
	locale  LocaleProvider
	state   storage.StateStore
	nav     Navigator
	log     *logger.Logger

	// Process-wide default credential. Mutated by the session store as a
	// side channel; concurrent writers race last-writer-wins.
	mu        sync.RWMutex
	authToken string
}

// New builds the client. The default credential is hydrated from the
// persisted state so a restarted process keeps its session.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	nav := cfg.Navigator
	if nav == nil {
		nav = NopNavigator{}
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		locale:  cfg.Locale,
		state:   cfg.State,
		nav:     nav,
		log:     log,
	}
	if cfg.State != nil {
		c.authToken = cfg.State.Read(storage.KeyAuthToken)
	}
	return c
}

// SetAuthToken installs the default credential attached to subsequent
// requests.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.authToken = token
	c.mu.Unlock()
}

// ClearAuthToken removes the default credential.
func (c *Client) ClearAuthToken() {
	c.mu.Lock()
	c.authToken = ""
	c.mu.Unlock()
}

// AuthToken returns the current default credential, falling back to the
// persisted state when none was installed explicitly.
func (c *Client) AuthToken() string {
	c.mu.RLock()
	tok := c.authToken
	c.mu.RUnlock()
	if tok == "" && c.state != nil {
		tok = c.state.Read(storage.KeyAuthToken)
	}
	return tok
}

// Get performs a GET and decodes the JSON response into out (out may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// GetRaw performs a GET and returns the raw JSON body.
func (c *Client) GetRaw(ctx context.Context, path string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, "", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	raw, contentType, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, raw, contentType, out)
}

// Patch sends body as JSON via PATCH and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	raw, contentType, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, raw, contentType, out)
}

// MultipartFile is one file part of a multipart submission.
type MultipartFile struct {
	Field   string
	Name    string
	Content []byte
}

// PostMultipart sends form fields plus files as multipart/form-data.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []MultipartFile, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field %s: %w", k, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return fmt.Errorf("create form file %s: %w", f.Name, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return fmt.Errorf("write form file %s: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, buf.Bytes(), w.FormDataContentType(), out)
}

func encodeJSON(body any) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encode request body: %w", err)
	}
	return raw, "application/json", nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.locale != nil {
		req.Header.Set("Accept-Language", c.locale.Language())
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if req.Header.Get("Authorization") == "" {
		if tok := c.AuthToken(); tok != "" {
			req.Header.Set("Authorization", "Token "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// No response received: connection failure, timeout or cancellation.
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &domain.NetworkError{Err: err}
	}

	if resp.StatusCode >= 400 {
		return c.classify(method, path, resp.StatusCode, rawBody)
	}

	if out == nil || len(rawBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

// classify maps an error status to the error taxonomy. 401 additionally
// tears down the stored credential and sends the browser to the admin
// login page unless it is already there.
func (c *Client) classify(method, path string, status int, body []byte) error {
	msg := errorMessage(body)

	switch {
	case status == http.StatusUnauthorized:
		c.log.Error().Str("path", path).Msg("unauthorized backend response, clearing credential")
		c.ClearAuthToken()
		if c.state != nil {
			if err := c.state.Delete(storage.KeyAuthToken); err != nil {
				c.log.Error().Err(err).Msg("drop persisted token")
			}
		}
		if loc := c.nav.Location(); !isAdminLoginPath(loc) {
			c.nav.Navigate(adminLoginRedirect)
		}
		return &APIError{Status: status, Message: msg, Kind: domain.ErrUnauthorized}
	case status == http.StatusForbidden:
		c.log.Error().Str("path", path).Msg("backend access forbidden")
		return &APIError{Status: status, Message: msg, Kind: domain.ErrForbidden}
	case status == http.StatusNotFound:
		c.log.Error().Str("path", path).Msg("backend resource not found")
		return &APIError{Status: status, Message: msg, Kind: domain.ErrNotFound}
	case status >= 500:
		c.log.Error().Int("status", status).Str("path", path).Msg("backend server error")
		return &domain.ServerError{Status: status}
	default:
		// 400, 422 and friends: structured rejection surfaced verbatim.
		// Message stays empty when the body carried none, so callers can
		// apply their own fallback.
		c.log.Error().Int("status", status).Str("method", method).Str("path", path).Str("message", msg).Msg("backend rejected request")
		return &domain.ValidationError{Message: msg}
	}
}

// isAdminLoginPath matches the admin login page across every supported
// language, so a 401 on the login page itself never triggers a redirect
// loop.
func isAdminLoginPath(location string) bool {
	for _, lang := range domain.SupportedLanguages {
		if location == "/"+lang+"/admin/login" {
			return true
		}
	}
	return false
}

// APIError is a classified backend rejection. Kind is one of the domain
// sentinels so callers can branch with errors.Is.
type APIError struct {
	Status  int
	Message string
	Kind    error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.Kind
}

// errorMessage normalizes the backend's error body shapes
// ({"error":{"message":...}} or {"message":...}) into a single string.
func errorMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Error != nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return envelope.Message
}
