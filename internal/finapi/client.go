// Package finapi implements the HTTP client for the external Finance API
// (the TPQ backend). The API is a collaborator: this package only moves
// JSON, all reporting logic lives in internal/keuangan.
package finapi

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

	"github.com/google/uuid"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/keuangan"
	"github.com/tpq-asysyafii/tpq-keuangan/internal/platform/httpx"
)

// Client wraps interactions with the Finance API. Every request carries the
// bearer credential and a correlation ID.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient constructs a new client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("finapi: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("finapi: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", httpx.ErrUpstream, method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return c.statusError(resp, method, path)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: decode: %v", httpx.ErrUpstream, method, path, err)
	}
	return nil
}

// statusError surfaces the API's own error message when the body carries
// one, falling back to the status code.
func (c *Client) statusError(resp *http.Response, method, path string) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%w: %s %s: %s", httpx.ErrUpstream, method, path, payload.Error)
	}
	return fmt.Errorf("%w: %s %s: status %d", httpx.ErrUpstream, method, path, resp.StatusCode)
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		return nil
	}
	return url.Values{"limit": []string{strconv.Itoa(limit)}}
}

// ListRekap fetches the ledger period summaries, most recent first.
func (c *Client) ListRekap(ctx context.Context, limit int) ([]keuangan.RekapPeriode, error) {
	var out struct {
		Data []keuangan.RekapPeriode `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/rekap", limitQuery(limit), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListPemakaian fetches expenditure records.
func (c *Client) ListPemakaian(ctx context.Context, limit int) ([]keuangan.Pemakaian, error) {
	var out struct {
		Data []keuangan.Pemakaian `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/pemakaian", limitQuery(limit), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListDonasi fetches donation records.
func (c *Client) ListDonasi(ctx context.Context, limit int) ([]keuangan.Donasi, error) {
	var out struct {
		Data []keuangan.Donasi `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/donasi", limitQuery(limit), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ListSyahriah fetches tuition payment records.
func (c *Client) ListSyahriah(ctx context.Context, limit int) ([]keuangan.Syahriah, error) {
	var out struct {
		Data []keuangan.Syahriah `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/syahriah", limitQuery(limit), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// InformasiTPQ fetches the institution metadata used for letterheads.
func (c *Client) InformasiTPQ(ctx context.Context) (keuangan.InformasiTPQ, error) {
	var out struct {
		Data keuangan.InformasiTPQ `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/informasi-tpq", nil, nil, &out); err != nil {
		return keuangan.InformasiTPQ{}, err
	}
	return out.Data, nil
}

// CreatePemakaian creates an expenditure record.
func (c *Client) CreatePemakaian(ctx context.Context, input keuangan.PemakaianInput) (keuangan.Pemakaian, error) {
	var out struct {
		Data keuangan.Pemakaian `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/pemakaian", nil, input, &out); err != nil {
		return keuangan.Pemakaian{}, err
	}
	return out.Data, nil
}

// UpdatePemakaian updates an existing expenditure record.
func (c *Client) UpdatePemakaian(ctx context.Context, id string, input keuangan.PemakaianInput) (keuangan.Pemakaian, error) {
	var out struct {
		Data keuangan.Pemakaian `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/admin/pemakaian/"+url.PathEscape(id), nil, input, &out); err != nil {
		return keuangan.Pemakaian{}, err
	}
	return out.Data, nil
}

// DeletePemakaian removes an expenditure record.
func (c *Client) DeletePemakaian(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/pemakaian/"+url.PathEscape(id), nil, nil, nil)
}

// GenerateRekap triggers a server-side rebuild of the period summaries.
func (c *Client) GenerateRekap(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/rekap/generate", nil, nil, nil)
}
