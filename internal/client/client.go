// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client talks to the citation catalog REST API.
//
// Every method is a single round trip. Non-2xx responses come back as
// *httputil.StatusError; nothing is retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/cite-catalog/internal/httputil"
	"github.com/pdiddy/cite-catalog/pkg/types"
)

const (
	citationsPath = "/api/citations"
	searchPath    = "/api/search"
	exportPath    = "/api/export"
)

// Client is a catalog API client. The zero value is not usable; call New.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	token     string
}

// New returns a client for cfg.BaseURL. When hc is nil a client with
// cfg.Timeout is created.
func New(cfg types.ClientConfig, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		http:      hc,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		token:     cfg.APIToken,
	}
}

// List returns every citation (GET /api/citations).
func (c *Client) List(ctx context.Context) ([]types.Citation, error) {
	var out []types.Citation
	if err := c.doJSON(ctx, http.MethodGet, citationsPath, nil, &out); err != nil {
		return nil, fmt.Errorf("listing citations: %w", err)
	}
	return nonNil(out), nil
}

// Search returns citations matching query (GET /api/search?q=...). The
// query is sent as given; callers trim and route empty queries to List.
func (c *Client) Search(ctx context.Context, query string) ([]types.Citation, error) {
	path := searchPath + "?" + url.Values{"q": {query}}.Encode()

	var out []types.Citation
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("searching citations: %w", err)
	}
	return nonNil(out), nil
}

// Get fetches one full citation (GET /api/citations/{id}).
func (c *Client) Get(ctx context.Context, id string) (types.Citation, error) {
	var out types.Citation
	if err := c.doJSON(ctx, http.MethodGet, itemPath(id), nil, &out); err != nil {
		return types.Citation{}, fmt.Errorf("fetching citation %s: %w", id, err)
	}
	return out, nil
}

// Create stores a new citation (POST /api/citations) and returns it with
// its backend-assigned ID and timestamps.
func (c *Client) Create(ctx context.Context, in types.CitationInput) (types.Citation, error) {
	var out types.Citation
	if err := c.doJSON(ctx, http.MethodPost, citationsPath, in, &out); err != nil {
		return types.Citation{}, fmt.Errorf("creating citation: %w", err)
	}
	return out, nil
}

// Update replaces the editable fields of citation id (PUT /api/citations/{id}).
func (c *Client) Update(ctx context.Context, id string, in types.CitationInput) (types.Citation, error) {
	var out types.Citation
	if err := c.doJSON(ctx, http.MethodPut, itemPath(id), in, &out); err != nil {
		return types.Citation{}, fmt.Errorf("updating citation %s: %w", id, err)
	}
	return out, nil
}

// Delete removes citation id (DELETE /api/citations/{id}). Only the status
// is inspected.
func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, itemPath(id), nil)
	if err != nil {
		return fmt.Errorf("deleting citation %s: %w", id, err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckResponse(resp); err != nil {
		return fmt.Errorf("deleting citation %s: %w", id, err)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// ExportURL returns the absolute download URL for format.
func (c *Client) ExportURL(format types.ExportFormat) string {
	return c.baseURL + exportPath + "?" + url.Values{"format": {string(format)}}.Encode()
}

// Export streams the export payload for format into w and returns the
// number of bytes written. The payload is copied verbatim.
func (c *Client) Export(ctx context.Context, format types.ExportFormat, w io.Writer) (int64, error) {
	path := exportPath + "?" + url.Values{"format": {string(format)}}.Encode()
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return 0, fmt.Errorf("exporting %s: %w", format, err)
	}
	defer resp.Body.Close()

	if err := httputil.CheckResponse(resp); err != nil {
		return 0, fmt.Errorf("exporting %s: %w", format, err)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("writing %s export: %w", format, err)
	}
	return n, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return httputil.DecodeJSON(resp, out)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.http.Do(req)
}

func itemPath(id string) string {
	return citationsPath + "/" + url.PathEscape(id)
}

// nonNil turns a JSON null array into an empty slice.
func nonNil(cs []types.Citation) []types.Citation {
	if cs == nil {
		return []types.Citation{}
	}
	return cs
}
