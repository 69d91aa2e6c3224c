// Package backend provides the authenticated client for the zemdocs
// core API. Every request carries the bearer credential; the credential
// never reaches the browser, which only ever talks to the gateway.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/felipegalvaoz/zemdocs-admin/internal/model"
)

// Client defines the core API operations for empresas.
type Client interface {
	List(ctx context.Context, filter model.ListFilter) (*model.EmpresaPage, error)
	Get(ctx context.Context, id int) (*model.Empresa, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error)
	Create(ctx context.Context, req *model.EmpresaCreate) (*model.Empresa, error)
	CreateFromCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error)
	Update(ctx context.Context, id int, req *model.EmpresaUpdate) (*model.Empresa, error)
	Delete(ctx context.Context, id int) error
}

// APIError is a non-2xx response from the core API. Message carries the
// decoded {error} body; Kind carries the structured error code when the
// backend provides one.
type APIError struct {
	StatusCode int
	Message    string
	Kind       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend: HTTP %d", e.StatusCode)
}

// errorBody is the JSON error envelope used by the core API.
type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.http.Timeout = d
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a core API client for the given origin and bearer
// credential.
func NewClient(baseURL, token string, opts ...Option) Client {
	c := &httpClient{
		baseURL: baseURL,
		token:   token,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches one page of empresas.
func (c *httpClient) List(ctx context.Context, filter model.ListFilter) (*model.EmpresaPage, error) {
	q := url.Values{}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	q.Set("offset", strconv.Itoa(filter.Offset))
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}

	var page model.EmpresaPage
	if err := c.get(ctx, "/api/v1/empresas/?"+q.Encode(), &page); err != nil {
		return nil, eris.Wrap(err, "backend: list empresas")
	}
	return &page, nil
}

// Get fetches one empresa by id.
func (c *httpClient) Get(ctx context.Context, id int) (*model.Empresa, error) {
	var e model.Empresa
	if err := c.get(ctx, fmt.Sprintf("/api/v1/empresas/%d", id), &e); err != nil {
		return nil, eris.Wrapf(err, "backend: get empresa %d", id)
	}
	return &e, nil
}

// GetByCNPJ fetches one empresa by its normalized CNPJ.
func (c *httpClient) GetByCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error) {
	var e model.Empresa
	if err := c.get(ctx, "/api/v1/empresas/cnpj/"+cnpj, &e); err != nil {
		return nil, eris.Wrapf(err, "backend: get empresa by cnpj %s", cnpj)
	}
	return &e, nil
}

// Create posts a full creation payload.
func (c *httpClient) Create(ctx context.Context, req *model.EmpresaCreate) (*model.Empresa, error) {
	var e model.Empresa
	if err := c.post(ctx, "/api/v1/empresas/", req, &e); err != nil {
		return nil, eris.Wrap(err, "backend: create empresa")
	}
	return &e, nil
}

// CreateFromCNPJ asks the backend to consult the registry and create
// the empresa in one shot.
func (c *httpClient) CreateFromCNPJ(ctx context.Context, cnpj string) (*model.Empresa, error) {
	var e model.Empresa
	if err := c.post(ctx, "/api/v1/empresas/criar-por-cnpj/"+cnpj, nil, &e); err != nil {
		return nil, eris.Wrapf(err, "backend: create empresa from cnpj %s", cnpj)
	}
	return &e, nil
}

// Update applies the partial-update payload to one empresa.
func (c *httpClient) Update(ctx context.Context, id int, req *model.EmpresaUpdate) (*model.Empresa, error) {
	var e model.Empresa
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/v1/empresas/%d", id), req, &e); err != nil {
		return nil, eris.Wrapf(err, "backend: update empresa %d", id)
	}
	return &e, nil
}

// Delete removes one empresa.
func (c *httpClient) Delete(ctx context.Context, id int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/empresas/%d", id), nil, nil); err != nil {
		return eris.Wrapf(err, "backend: delete empresa %d", id)
	}
	return nil
}

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *httpClient) post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *httpClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return eris.Wrap(err, "marshal request")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil && eb.Error != "" {
			apiErr.Message = eb.Error
			apiErr.Kind = eb.Kind
		} else {
			apiErr.Message = string(data)
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}
	return nil
}
