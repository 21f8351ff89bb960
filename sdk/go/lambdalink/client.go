// Package lambdalink provides a small HTTP client for the Lambda Link
// translation service REST API.
package lambdalink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

// DefaultHTTPTimeout defines the timeout used by clients created without a
// custom http.Client. It is intentionally short to avoid hanging network calls.
const DefaultHTTPTimeout = 15 * time.Second

// Client wraps the HTTP interactions with the Lambda Link REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// TranslateRequest is the payload for a synchronous translation call.
type TranslateRequest struct {
	Text      string `json:"text"`
	Lang      string `json:"lang,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// Token is a single resolved token within a translation result.
type Token struct {
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	Rendering string `json:"rendering,omitempty"`
	Resolved  bool   `json:"resolved"`
}

// TranslationResult holds the rendered text and per-token detail.
type TranslationResult struct {
	Text       string   `json:"text"`
	Type       string   `json:"type,omitempty"`
	Tokens     []Token  `json:"tokens,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// TranslateResponse is the server response for a translation call.
type TranslateResponse struct {
	SessionID string            `json:"session_id,omitempty"`
	Result    TranslationResult `json:"result"`
}

// Session represents a server-side conversation context.
type Session struct {
	ID        string       `json:"id"`
	State     SessionState `json:"state"`
	CreatedAt int64        `json:"created_at"`
	UpdatedAt int64        `json:"updated_at"`
}

// SessionState is the serialized resolution context of a session.
type SessionState struct {
	Domains     []string          `json:"domains,omitempty"`
	Definitions map[string]string `json:"definitions,omitempty"`
}

// JobSubmission is the payload required to create a batch translation job.
type JobSubmission struct {
	Direction string   `json:"direction"`
	Messages  []string `json:"messages"`
}

// JobMessage is the translation result of a single message within a job.
type JobMessage struct {
	Input      string   `json:"input"`
	Output     string   `json:"output"`
	Type       string   `json:"type,omitempty"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// Job describes a batch translation job and its current state.
type Job struct {
	ID         string       `json:"id"`
	Direction  string       `json:"direction"`
	Messages   []string     `json:"messages"`
	Status     string       `json:"status"`
	Attempts   int          `json:"attempts"`
	MaxRetries int          `json:"max_retries"`
	LastError  string       `json:"last_error,omitempty"`
	ErrorCode  string       `json:"error_code,omitempty"`
	Results    []JobMessage `json:"results,omitempty"`
	CreatedAt  int64        `json:"created_at"`
	UpdatedAt  int64        `json:"updated_at"`
}

// APIError represents server side validation or internal errors.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Code != "" {
		return fmt.Sprintf("lambdalink api error (%d): %s - %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("lambdalink api error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether the error is a 404 response from the server.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// NewClient instantiates a client for the Lambda Link API. When httpClient is
// nil, a default client with a sensible timeout is used.
func NewClient(rawURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &Client{baseURL: parsed, httpClient: httpClient}, nil
}

// Translate renders a symbolic message into the requested target language.
func (c *Client) Translate(ctx context.Context, req TranslateRequest) (TranslateResponse, error) {
	var resp TranslateResponse
	if err := c.post(ctx, "/api/v1/translate", req, &resp); err != nil {
		return TranslateResponse{}, err
	}
	return resp, nil
}

// Encode converts an English message into its symbolic form.
func (c *Client) Encode(ctx context.Context, text string) (string, error) {
	var resp struct {
		Encoded string `json:"encoded"`
	}
	payload := struct {
		Text string `json:"text"`
	}{Text: text}
	if err := c.post(ctx, "/api/v1/encode", payload, &resp); err != nil {
		return "", err
	}
	return resp.Encoded, nil
}

// OpenSession creates a new conversation context on the server.
func (c *Client) OpenSession(ctx context.Context) (Session, error) {
	var sess Session
	if err := c.post(ctx, "/api/v1/sessions", struct{}{}, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// GetSession fetches the current state of a session.
func (c *Client) GetSession(ctx context.Context, id string) (Session, error) {
	var sess Session
	endpoint := "/api/v1/sessions?id=" + url.QueryEscape(id)
	if err := c.get(ctx, endpoint, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// CloseSession removes a session from the server.
func (c *Client) CloseSession(ctx context.Context, id string) error {
	endpoint := "/api/v1/sessions?id=" + url.QueryEscape(id)
	req, err := c.newRequest(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// SubmitJob creates a new batch translation job.
func (c *Client) SubmitJob(ctx context.Context, submission JobSubmission) (Job, error) {
	var job Job
	if err := c.post(ctx, "/api/v1/jobs", submission, &job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// GetJob fetches job details by identifier.
func (c *Client) GetJob(ctx context.Context, id string) (Job, error) {
	var job Job
	endpoint := "/api/v1/jobs?id=" + url.QueryEscape(id)
	if err := c.get(ctx, endpoint, &job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// ListJobs returns the most recently updated jobs.
func (c *Client) ListJobs(ctx context.Context, limit int) ([]Job, error) {
	endpoint := "/api/v1/jobs"
	if limit > 0 {
		endpoint = fmt.Sprintf("/api/v1/jobs?limit=%d", limit)
	}
	var jobs []Job
	if err := c.get(ctx, endpoint, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// WaitForJob polls a job until it reaches a terminal state or ctx expires.
func (c *Client) WaitForJob(ctx context.Context, id string, interval time.Duration) (Job, error) {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := c.GetJob(ctx, id)
		if err != nil {
			return Job{}, err
		}
		if job.Status == "succeeded" || job.Status == "failed" {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return Job{}, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) post(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	rel := &url.URL{Path: path.Join(c.baseURL.Path, parsed.Path), RawQuery: parsed.RawQuery}
	u := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("read error response: %w", readErr)
		}
		if len(data) > 0 {
			_ = json.Unmarshal(data, apiErr)
		}
		if apiErr.Message == "" {
			apiErr.Message = string(bytes.TrimSpace(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
