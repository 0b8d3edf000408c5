// Package extractclient talks to the job board API on behalf of the posting form.
package extractclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/remotework/jobnexus/internal/entity"
	"go.uber.org/zap"
)

const (
	extractPath = "/api/extract-job"
	jobsPath    = "/api/jobs"

	// DefaultTimeout applies when no *http.Client is supplied.
	DefaultTimeout = 15 * time.Second

	maxBodyBytes = 1 << 20
)

// ErrTransport wraps every failure to get a decodable answer from the API.
var ErrTransport = errors.New("extraction service unreachable or returned an unreadable response")

// APIError is returned by CreateJob when the API rejects a posting.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("job board API error: %d - %s", e.StatusCode, e.Message)
}

// Client calls the extraction and job endpoints of the job board API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract posts url to the extraction endpoint. The service answers errors
// with a JSON body carrying an "error" key, so the body is decoded whatever
// the status code; a failed call, an undecodable body or a JSON null is an
// error.
func (c *Client) Extract(ctx context.Context, url string) (*entity.ExtractionResult, error) {
	var result *entity.ExtractionResult
	status, err := c.postJSON(ctx, extractPath, entity.ExtractionRequest{URL: url}, &result)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("%w: empty body", ErrTransport)
	}
	c.logger.Debug("extraction response",
		zap.String("url", url),
		zap.Int("status", status),
		zap.Bool("failed", result.Failed()),
	)
	return result, nil
}

// CreateJob submits a validated posting.
func (c *Client) CreateJob(ctx context.Context, job *entity.Job) (*entity.Job, error) {
	var body struct {
		entity.Job
		Error string `json:"error"`
	}
	status, err := c.postJSON(ctx, jobsPath, job, &body)
	if err != nil {
		return nil, err
	}
	if status != http.StatusCreated {
		return nil, &APIError{StatusCode: status, Message: body.Error}
	}
	created := body.Job
	return &created, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) (int, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("non-JSON response from job board API",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("content_type", resp.Header.Get("Content-Type")),
		)
		return resp.StatusCode, fmt.Errorf("%w: decoding body: %w", ErrTransport, err)
	}
	return resp.StatusCode, nil
}
