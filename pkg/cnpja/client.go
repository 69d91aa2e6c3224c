// Package cnpja provides a client for the public CNPJá company registry API.
package cnpja

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Default base URL for the open CNPJá API.
const defaultBaseURL = "https://open.cnpja.com"

// Registry-specific conditions callers branch on. Both must stay
// distinguishable from generic failures: a not-found or rate-limited
// lookup never blocks manual form entry.
var (
	ErrNotFound    = errors.New("cnpja: office not found")
	ErrRateLimited = errors.New("cnpja: rate limited, retry in a few minutes")
)

// Client defines the registry lookup operations.
type Client interface {
	// GetOffice fetches the registry projection for a normalized
	// 14-digit CNPJ.
	GetOffice(ctx context.Context, cnpj string) (*Office, error)
}

// APIError is returned when the registry responds with an unexpected
// non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cnpja: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRatePerMinute sets the client-side request pacing. The open API
// enforces roughly 5 requests per minute; pacing below that avoids 429s.
func WithRatePerMinute(n int) Option {
	return func(c *httpClient) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
		}
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	group   singleflight.Group
}

// NewClient creates a new registry client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(12*time.Second), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOffice fetches one office. Concurrent lookups of the same CNPJ are
// collapsed into a single request. The flight runs detached from the
// initiating caller's cancellation: the request is shared, so one
// caller bailing out must not fail the others. The client's own timeout
// still bounds the request.
func (c *httpClient) GetOffice(ctx context.Context, cnpj string) (*Office, error) {
	if len(cnpj) != 14 {
		return nil, eris.Errorf("cnpja: cnpj must have 14 digits, got %q", cnpj)
	}

	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(cnpj, func() (any, error) {
		return c.fetchOffice(flightCtx, cnpj)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Office), nil
}

func (c *httpClient) fetchOffice(ctx context.Context, cnpj string) (*Office, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "cnpja: rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/office/%s", c.baseURL, cnpj), nil)
	if err != nil {
		return nil, eris.Wrap(err, "cnpja: create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "zemdocs-admin/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "cnpja: execute request")
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "cnpja: read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var office Office
	if err := json.Unmarshal(data, &office); err != nil {
		return nil, eris.Wrap(err, "cnpja: decode response")
	}
	return &office, nil
}
