// Package client submits AnalysisRequests to the remote analysis service.
package client

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

	"go.uber.org/zap"

	"github.com/goliatone/go-nutriform/pkg/contract"
	"github.com/goliatone/go-nutriform/pkg/model"
)

const (
	// DefaultPath is the analyze endpoint relative to the base URL.
	DefaultPath = "/analyze"
	// DefaultTimeout bounds a single analysis call.
	DefaultTimeout = 30 * time.Second

	maxErrorBody  = 64 << 10
	maxResultBody = 4 << 20
)

// ErrResponseTooLarge is the cause of a ServiceError whose success body
// exceeds the result size limit.
var ErrResponseTooLarge = errors.New("client: response body too large")

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its Timeout wins over
// WithTimeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithPath overrides DefaultPath.
func WithPath(path string) Option {
	return func(c *Client) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		c.path = path
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithContract checks requests and responses against ct. A violating
// request is never sent.
func WithContract(ct *contract.Contract) Option {
	return func(c *Client) {
		c.contract = ct
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client posts analysis requests as JSON and decodes the result.
type Client struct {
	baseURL    string
	path       string
	timeout    time.Duration
	httpClient *http.Client
	contract   *contract.Contract
	logger     *zap.Logger
}

// New builds a Client for the service at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("client: base URL is required")
	}

	c := &Client{
		baseURL: baseURL,
		path:    DefaultPath,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// URL is the full analyze endpoint.
func (c *Client) URL() string { return c.baseURL + c.path }

// Analyze sends req and returns the decoded result. Failures are either a
// *TransportError or a *ServiceError.
func (c *Client) Analyze(ctx context.Context, req model.AnalysisRequest) (model.AnalysisResult, error) {
	url := c.URL()

	if c.contract != nil {
		if err := c.contract.ValidateRequest(req); err != nil {
			return model.AnalysisResult{}, (&ServiceError{Status: "invalid request", URL: url}).WithCause(err)
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return model.AnalysisResult{}, (&ServiceError{Status: "invalid request", URL: url}).WithCause(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return model.AnalysisResult{}, &TransportError{Method: http.MethodPost, URL: url, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("analysis request failed", zap.String("url", url), zap.Error(err))
		return model.AnalysisResult{}, &TransportError{Method: http.MethodPost, URL: url, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("analysis response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.AnalysisResult{}, c.failure(resp, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResultBody+1))
	if err != nil {
		return model.AnalysisResult{}, &TransportError{Method: http.MethodPost, URL: url, Err: err}
	}
	if len(body) > maxResultBody {
		return model.AnalysisResult{}, c.serviceError(resp, url, nil).WithCause(ErrResponseTooLarge)
	}
	if c.contract != nil {
		if err := c.contract.ValidateResponse(resp.StatusCode, body); err != nil {
			return model.AnalysisResult{}, c.serviceError(resp, url, body).WithCause(err)
		}
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return model.AnalysisResult{}, c.serviceError(resp, url, body).WithCause(fmt.Errorf("decode result: %w", err))
	}
	return result, nil
}

func (c *Client) failure(resp *http.Response, url string) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return c.serviceError(resp, url, nil).WithCause(err)
	}

	svcErr := c.serviceError(resp, url, body)
	var payload model.ErrorResponse
	if json.Unmarshal(body, &payload) == nil {
		if detail, ok := payload.DetailText(); ok {
			svcErr.Detail = detail
		}
	}
	c.logger.Warn("analysis service returned an error",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.String("detail", svcErr.Detail),
	)
	return svcErr
}

func (c *Client) serviceError(resp *http.Response, url string, body []byte) *ServiceError {
	return &ServiceError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        url,
		Body:       string(body),
	}
}
