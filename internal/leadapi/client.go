// Package leadapi implements the funnel's service contracts over HTTP.
// Routes are resolved from the embedded OpenAPI contract at construction
// time, so the clients and the published API cannot silently drift apart.
// Every transport failure surfaces as a services.NetworkError.
package leadapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-leadflow/pkg/services"
)

// Option customises client construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// Client talks to the lead-capture API. It satisfies services.AddressLookup,
// services.ParcelLookup, services.EstimateService, and services.LeadService.
type Client struct {
	baseURL    string
	httpClient *http.Client
	endpoints  map[string]endpoint
}

// New constructs a client for the API rooted at baseURL.
func New(ctx context.Context, baseURL string, options ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("leadapi: base url is required")
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("leadapi: parse base url: %w", err)
	}

	endpoints, err := loadEndpoints(ctx)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    trimmed,
		httpClient: http.DefaultClient,
		endpoints:  endpoints,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

type matchesEnvelope struct {
	Data []services.AddressMatch `json:"data"`
}

// Search implements services.AddressLookup.
func (c *Client) Search(ctx context.Context, text string) ([]services.AddressMatch, error) {
	ep := c.endpoints[opSearchAddresses]
	query := url.Values{"q": []string{text}}

	var envelope matchesEnvelope
	if err := c.do(ctx, ep, nil, query, nil, &envelope); err != nil {
		return nil, services.NewNetworkError("address search", err)
	}
	return envelope.Data, nil
}

// Parcel implements services.ParcelLookup.
func (c *Client) Parcel(ctx context.Context, id string) (services.Parcel, error) {
	ep := c.endpoints[opGetParcel]
	params := map[string]string{"id": id}

	var parcel services.Parcel
	if err := c.do(ctx, ep, params, nil, nil, &parcel); err != nil {
		return services.Parcel{}, services.NewNetworkError("parcel lookup", err)
	}
	return parcel, nil
}

// Estimate implements services.EstimateService.
func (c *Client) Estimate(ctx context.Context, req services.EstimateRequest) (services.Estimate, error) {
	ep := c.endpoints[opCreateEstimate]

	var estimate services.Estimate
	if err := c.do(ctx, ep, nil, nil, req, &estimate); err != nil {
		return services.Estimate{}, services.NewNetworkError("estimate", err)
	}
	return estimate, nil
}

// CreateLead implements services.LeadService.
func (c *Client) CreateLead(ctx context.Context, lead services.Lead) error {
	ep := c.endpoints[opCreateLead]
	if err := c.do(ctx, ep, nil, nil, lead, nil); err != nil {
		return services.NewNetworkError("create lead", err)
	}
	return nil
}

// do issues one request against a resolved endpoint: path params substituted,
// query attached, body JSON-encoded when present, response decoded into out
// when non-nil.
func (c *Client) do(ctx context.Context, ep endpoint, pathParams map[string]string, query url.Values, body, out any) error {
	path := ep.path
	for key, value := range pathParams {
		path = strings.ReplaceAll(path, "{"+key+"}", url.PathEscape(value))
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, ep.method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
