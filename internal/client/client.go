// Package client is a typed HTTP client for the ats API. It keeps the
// session cookie in a jar, so one Client represents one signed-in user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/hirepipe/ats/internal/core/domain"
)

const (
	defaultTimeout = 15 * time.Second

	// SessionCookieName is the cookie the server keeps the session in.
	SessionCookieName = "ats_session"
)

// Client talks to a single ats server.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	token      string
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. A cookie jar is
// attached when the given client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithSessionToken resumes a session saved from SessionToken.
func WithSessionToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New returns a Client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: base url %q must be absolute", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}
	if c.token != "" {
		c.httpClient.Jar.SetCookies(c.baseURL, []*http.Cookie{{Name: SessionCookieName, Value: c.token, Path: "/"}})
		c.token = ""
	}
	return c, nil
}

// SessionToken returns the current session cookie value, or "" when signed out.
func (c *Client) SessionToken() string {
	for _, ck := range c.httpClient.Jar.Cookies(c.baseURL) {
		if ck.Name == SessionCookieName {
			return ck.Value
		}
	}
	return ""
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []domain.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ats: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("ats: %d %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Register creates an account and signs the client in as that user.
func (c *Client) Register(ctx context.Context, username, password, role string) (*domain.Identity, error) {
	var id domain.Identity
	body := map[string]string{"username": username, "password": password, "role": role}
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Login signs the client in.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.Identity, error) {
	var id domain.Identity
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Logout ends the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// Me returns the signed-in identity.
func (c *Client) Me(ctx context.Context) (*domain.Identity, error) {
	var id domain.Identity
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Jobs lists every job posting.
func (c *Client) Jobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := c.do(ctx, http.MethodGet, "/api/jobs", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// NewJob is the payload for CreateJob.
type NewJob struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

// CreateJob posts a job. Requires a manager session.
func (c *Client) CreateJob(ctx context.Context, job NewJob) (*domain.Job, error) {
	var out domain.Job
	if err := c.do(ctx, http.MethodPost, "/api/jobs", job, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Candidates lists a job's candidates in submission order.
func (c *Client) Candidates(ctx context.Context, jobID int64) ([]domain.Candidate, error) {
	var out []domain.Candidate
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/jobs/%d/candidates", jobID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewCandidate is the payload for CreateCandidate. Stage and Notes are optional.
type NewCandidate struct {
	JobID     int64   `json:"jobId"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	ResumeURL string  `json:"resumeUrl"`
	Stage     string  `json:"stage,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// CreateCandidate submits a candidate. Requires a recruiter session.
func (c *Client) CreateCandidate(ctx context.Context, in NewCandidate) (*domain.Candidate, error) {
	var out domain.Candidate
	if err := c.do(ctx, http.MethodPost, "/api/candidates", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStage moves a candidate to stage.
func (c *Client) UpdateStage(ctx context.Context, candidateID int64, stage domain.Stage) (*domain.Candidate, error) {
	var out domain.Candidate
	body := map[string]string{"stage": string(stage)}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/candidates/%d/stage", candidateID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History returns a candidate's recorded stage changes.
func (c *Client) History(ctx context.Context, candidateID int64) ([]domain.StageEvent, error) {
	var out []domain.StageEvent
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/candidates/%d/history", candidateID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Export is a downloaded spreadsheet.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportCandidates downloads the job's candidates as a spreadsheet.
func (c *Client) ExportCandidates(ctx context.Context, jobID int64) (*Export, error) {
	resp, err := c.send(ctx, http.MethodGet, fmt.Sprintf("/api/jobs/%d/export", jobID), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("client: read export: %w", err)
	}

	out := &Export{
		Filename:    fmt.Sprintf("candidates-%d.xlsx", jobID),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		out.Filename = params["filename"]
	}
	return out, nil
}

// Reset deletes all data. Requires a manager session.
func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/reset", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

// send performs the request and turns non-2xx responses into *APIError.
func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return nil, fmt.Errorf("client: build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var envelope struct {
		Error  string              `json:"error"`
		Fields []domain.FieldError `json:"fields"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Message = envelope.Error
		apiErr.Fields = envelope.Fields
	}
	return nil, apiErr
}
