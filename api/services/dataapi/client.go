// Package dataapi reads the public BayanLab data API that backs the directory.
package dataapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// APIKeyHeader carries the credential for the list and sync endpoints.
	APIKeyHeader = "X-API-Key"

	errorBodyLimit = 1024
)

var (
	// ErrUpstream indicates the data API failed or answered with a non-2xx status.
	ErrUpstream = errors.New("data api error")
	// ErrUnknownRegion indicates a region code outside the directory's state table.
	ErrUnknownRegion = errors.New("unknown region")
)

// Source is the part of the data API the directory needs.
type Source interface {
	Stats(ctx context.Context) (Stats, error)
	Coverage(ctx context.Context) (Coverage, error)
	Preview(ctx context.Context, region string) (Preview, error)
}

// Client calls the data API over HTTP. One attempt per call.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// HTTPClient exposes the underlying client so tests can intercept it.
func (c *Client) HTTPClient() *http.Client { return c.httpClient }

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.get(ctx, "/v1/stats", nil, &out)
	return out, err
}

func (c *Client) Coverage(ctx context.Context) (Coverage, error) {
	var out Coverage
	err := c.get(ctx, "/v1/coverage", nil, &out)
	return out, err
}

// Preview returns sample names and cities for a region.
func (c *Client) Preview(ctx context.Context, region string) (Preview, error) {
	var out Preview
	err := c.get(ctx, "/v1/preview", url.Values{"region": {region}}, &out)
	return out, err
}

func (c *Client) Eateries(ctx context.Context, p ListParams) (ListResponse[HalalEatery], error) {
	var out ListResponse[HalalEatery]
	err := c.get(ctx, "/v1/halal-eateries", p.values("region", "city", "cuisine", "halal_status", "limit", "offset", "favorites_only"), &out)
	return out, err
}

func (c *Client) Markets(ctx context.Context, p ListParams) (ListResponse[HalalMarket], error) {
	var out ListResponse[HalalMarket]
	err := c.get(ctx, "/v1/halal-markets", p.values("region", "city", "halal_status", "limit", "offset"), &out)
	return out, err
}

func (c *Client) Masajid(ctx context.Context, p ListParams) (ListResponse[Masjid], error) {
	var out ListResponse[Masjid]
	err := c.get(ctx, "/v1/masajid", p.values("region", "city", "denomination", "limit", "offset"), &out)
	return out, err
}

func (c *Client) Businesses(ctx context.Context, p ListParams) (ListResponse[PublicBusiness], error) {
	var out ListResponse[PublicBusiness]
	err := c.get(ctx, "/v1/businesses", p.values("region", "city", "limit", "offset"), &out)
	return out, err
}

// SyncBusinesses pages through the full business records. Requires BAYANLAB_API_KEY.
func (c *Client) SyncBusinesses(ctx context.Context, limit, offset int) (BusinessSyncResponse, error) {
	var out BusinessSyncResponse
	if c.apiKey == "" {
		return out, fmt.Errorf("%w: BAYANLAB_API_KEY not configured", ErrUpstream)
	}
	p := ListParams{Limit: limit, Offset: offset}
	err := c.get(ctx, "/v1/businesses/sync", p.values("limit", "offset"), &out)
	return out, err
}

// publicPaths need no credential. Every other endpoint gets the API key when one
// is configured.
var publicPaths = map[string]bool{
	"/v1/stats":    true,
	"/v1/coverage": true,
	"/v1/preview":  true,
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create data api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" && !publicPaths[path] {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %v", ErrUpstream, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return &StatusError{Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUpstream, path, err)
	}
	return nil
}

// StatusError is a non-2xx answer from the data API.
type StatusError struct {
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("data api error: GET %s status=%d", e.Path, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }

func (p ListParams) values(keys ...string) url.Values {
	v := url.Values{}
	for _, k := range keys {
		switch k {
		case "region":
			setNonEmpty(v, k, p.Region)
		case "city":
			setNonEmpty(v, k, p.City)
		case "cuisine":
			setNonEmpty(v, k, p.Cuisine)
		case "halal_status":
			setNonEmpty(v, k, p.HalalStatus)
		case "denomination":
			setNonEmpty(v, k, p.Denomination)
		case "favorites_only":
			if p.FavoritesOnly {
				v.Set(k, "true")
			}
		case "limit":
			if p.Limit > 0 {
				v.Set(k, strconv.Itoa(p.Limit))
			}
		case "offset":
			if p.Offset > 0 {
				v.Set(k, strconv.Itoa(p.Offset))
			}
		}
	}
	return v
}

func setNonEmpty(v url.Values, key, val string) {
	if val = strings.TrimSpace(val); val != "" {
		v.Set(key, val)
	}
}
