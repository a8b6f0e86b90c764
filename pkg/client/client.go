package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/naveenspark/notas/pkg/domain"
)

// DefaultTimeout bounds a single request when no other timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client is the notes API client. It holds no credentials: every
// authenticated call takes the session explicitly.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a new API client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges a username for a session token.
func (c *Client) Login(ctx context.Context, username string) (*domain.Session, error) {
	username = domain.NormalizeUsername(username)
	if username == "" {
		return nil, fmt.Errorf("client.Login: %w", domain.ErrEmptyUsername)
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/login", "", map[string]string{"username": username}, &resp); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("client.Login: empty token in response")
	}
	return &domain.Session{Username: username, Token: resp.Token}, nil
}

// ListNotes fetches every note owned by the session's user.
// The server answers 404 when the user has no notes; callers check
// IsStatus(err, http.StatusNotFound) to tell that apart from a failure.
func (c *Client) ListNotes(ctx context.Context, sess *domain.Session) ([]domain.Note, error) {
	if !sess.Valid() {
		return nil, fmt.Errorf("client.ListNotes: %w", ErrNoSession)
	}
	var notes []domain.Note
	if err := c.doRequest(ctx, http.MethodGet, "/notes/", sess.Token, nil, &notes); err != nil {
		return nil, fmt.Errorf("client.ListNotes: %w", err)
	}
	return notes, nil
}

// CreateNote creates a new note. The response body is not required.
func (c *Client) CreateNote(ctx context.Context, sess *domain.Session, in domain.NoteInput) error {
	if !sess.Valid() {
		return fmt.Errorf("client.CreateNote: %w", ErrNoSession)
	}
	if err := c.doRequest(ctx, http.MethodPost, "/notes/", sess.Token, in, nil); err != nil {
		return fmt.Errorf("client.CreateNote: %w", err)
	}
	return nil
}

// UpdateNote replaces the fields of an existing note.
func (c *Client) UpdateNote(ctx context.Context, sess *domain.Session, id int, in domain.NoteInput) error {
	if !sess.Valid() {
		return fmt.Errorf("client.UpdateNote: %w", ErrNoSession)
	}
	if err := c.doRequest(ctx, http.MethodPut, notePath(id), sess.Token, in, nil); err != nil {
		return fmt.Errorf("client.UpdateNote: %w", err)
	}
	return nil
}

// DeleteNote deletes a note by ID.
func (c *Client) DeleteNote(ctx context.Context, sess *domain.Session, id int) error {
	if !sess.Valid() {
		return fmt.Errorf("client.DeleteNote: %w", ErrNoSession)
	}
	if err := c.doRequest(ctx, http.MethodDelete, notePath(id), sess.Token, nil, nil); err != nil {
		return fmt.Errorf("client.DeleteNote: %w", err)
	}
	return nil
}

func notePath(id int) string {
	return "/notes/" + strconv.Itoa(id)
}

func (c *Client) doRequest(ctx context.Context, method, path, token string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// The backend expects the bare token, no scheme prefix.
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Str("request_id", reqID).Err(err).Msg("request failed")
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request done")

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: errorDetail(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorDetail extracts the "detail" field of an error body. Validation
// errors carry a list of {msg} objects instead of a string; their messages
// are joined. A body without a usable detail yields "" so callers show
// their own message instead of whatever the server or a proxy sent.
func errorDetail(body []byte) string {
	var apiErr struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &apiErr) != nil || len(apiErr.Detail) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(apiErr.Detail, &s) == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(apiErr.Detail, &items) == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
