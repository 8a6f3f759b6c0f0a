package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"

	"github.com/voltride/voltdesk/internal/logger"
)

const defaultTimeout = 15 * time.Second

// Config holds the connection settings for the backend.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Debug   bool
}

// Client talks to the rental backend. All methods take a context and return
// typed records or classified errors.
type Client struct {
	http *resty.Client
}

// NewClient validates the configuration and builds the HTTP client. The
// bearer token is injected through an oauth2 token source so a refreshing
// source can be swapped in without touching call sites.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute with a host, got %q", cfg.BaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL scheme must be http or https, got %q", parsed.Scheme)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("API token is required (set VOLTDESK_API_TOKEN)")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := oauth2.NewClient(ctx, source)
	httpClient.Timeout = timeout

	rc := resty.NewWithClient(httpClient).
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(retryCondition)

	if cfg.Debug {
		rc.SetDebug(true)
	}

	logger.Log.Debugf("API client configured for %s", cfg.BaseURL)

	return &Client{http: rc}, nil
}

// retryCondition retries idempotent reads only. Mutations are never retried
// automatically: after a timeout the operation may have taken effect, and
// resubmitting could apply it twice.
func retryCondition(r *resty.Response, err error) bool {
	var method string
	switch {
	case r != nil && r.Request != nil:
		method = r.Request.Method
	case err != nil:
		// Transport error before a response; resty keeps the request on the
		// response object, so a nil response means we cannot prove the call
		// was a read.
		return false
	}
	if method != http.MethodGet {
		return false
	}

	if err != nil {
		return true
	}

	code := r.StatusCode()
	return code >= 500 || code == http.StatusTooManyRequests
}

// listEnvelope is the backend's list response shape.
type listEnvelope[T any] struct {
	Data       []T       `json:"data"`
	Pagination *PageInfo `json:"pagination"`
}

// dataEnvelope is the backend's single-record response shape.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}

// errorEnvelope is the backend's error response shape.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do executes a prepared request and classifies the outcome.
func (c *Client) do(req *resty.Request, method, path, op string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, wrapTransport(op, err)
	}
	if resp.IsError() {
		return nil, errorFromResponse(resp)
	}
	return resp, nil
}

func errorFromResponse(resp *resty.Response) error {
	apiErr := &APIError{Status: resp.StatusCode()}

	if env, ok := resp.Error().(*errorEnvelope); ok && env != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}

	return apiErr
}

// newRequest prepares a request with the error envelope registered.
func (c *Client) newRequest(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetError(&errorEnvelope{})
}

// collectPages drains a server-paginated list endpoint page by page.
func collectPages[T any](fetch func(page int) ([]T, *PageInfo, error)) ([]T, error) {
	var all []T

	for page := 1; ; page++ {
		items, info, err := fetch(page)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if info == nil || page >= info.TotalPages || len(items) == 0 {
			break
		}
	}

	return all, nil
}
