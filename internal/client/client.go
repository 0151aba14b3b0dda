// Package client is a Go client for the equipment inventory HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bcnelson/netinventory/internal/domain"
	"github.com/bcnelson/netinventory/internal/version"
)

const apiKeyHeader = "X-API-Key"

type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	return &Client{baseURL: u, apiKey: o.apiKey, httpClient: o.httpClient}, nil
}

// Export is a downloaded snapshot of the inventory.
type Export struct {
	ContentType string
	Filename    string
	Body        []byte
}

// List returns every record matching filter, ordered by id.
func (c *Client) List(ctx context.Context, filter domain.EquipmentFilter) ([]*domain.Equipment, error) {
	q := url.Values{}
	if v := domain.StringValue(filter.Location); v != "" {
		q.Set("location", v)
	}
	if v := domain.StringValue(filter.VLAN); v != "" {
		q.Set("vlan", v)
	}

	var items []*domain.Equipment
	if err := c.doJSON(ctx, http.MethodGet, "/equipements", q, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	var eq domain.Equipment
	if err := c.doJSON(ctx, http.MethodGet, equipmentPath(id), nil, nil, &eq); err != nil {
		return nil, err
	}
	return &eq, nil
}

// Create adds a record and returns its id.
func (c *Client) Create(ctx context.Context, in *domain.EquipmentInput) (int64, error) {
	var resp domain.CreateEquipmentResponse
	if err := c.doJSON(ctx, http.MethodPost, "/equipements", nil, in, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) Update(ctx context.Context, id int64, in *domain.EquipmentInput) error {
	return c.doJSON(ctx, http.MethodPut, equipmentPath(id), nil, in, &domain.MessageResponse{})
}

// Delete removes a record. The server reports success for unknown ids.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, equipmentPath(id), nil, nil, &domain.MessageResponse{})
}

// Export downloads the full inventory as "json" or "csv".
func (c *Client) Export(ctx context.Context, format string) (*Export, error) {
	q := url.Values{}
	if format != "" {
		q.Set("format", format)
	}

	resp, err := c.do(ctx, http.MethodGet, "/export", q, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	exp := &Export{ContentType: resp.Header.Get("Content-Type"), Body: body, Filename: "equipements.json"}
	if strings.HasPrefix(exp.ContentType, "text/csv") {
		exp.Filename = "equipements.csv"
	}
	return exp, nil
}

// Version returns the server's build version and mode.
func (c *Client) Version(ctx context.Context) (*version.Info, error) {
	var info version.Info
	if err := c.doJSON(ctx, http.MethodGet, "/version", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func equipmentPath(id int64) string {
	return "/equipements/" + strconv.FormatInt(id, 10)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	resp, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// do sends the request and converts non-2xx responses into *APIError.
// The caller closes the body of a successful response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Response, error) {
	u := *c.baseURL
	u.Path += path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errResp domain.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.Field = errResp.Field
		}
		return nil, apiErr
	}

	return resp, nil
}
