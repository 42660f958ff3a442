package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Candidate represents a single place discovered via the external provider,
// not yet persisted locally.
type Candidate struct {
	Name        string `json:"name"`
	Place       string `json:"place"`
	Country     string `json:"country,omitempty"`
	Address     string `json:"address,omitempty"`
	ExternalRef string `json:"external_ref,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Response models the provider's paginated search response.
type Response struct {
	Results      []Candidate `json:"results"`
	TotalResults int         `json:"total_results"`
}

// Searcher defines the provider operations used by the rest of marquee.
type Searcher interface {
	Search(ctx context.Context, query string, opts SearchOptions) (*Response, error)
	GetDetails(ctx context.Context, externalRef string) (*Candidate, error)
}

// Client provides access to the directory search API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ Searcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a directory search client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("directory api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("directory base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchOptions contains optional parameters for a provider search.
type SearchOptions struct {
	Country    string
	MaxResults int
}

// Search queries the provider for candidate places.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("parse directory url: %w", err)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("api_key", c.apiKey)
	if country := strings.TrimSpace(opts.Country); country != "" {
		params.Set("country", country)
	}
	if opts.MaxResults > 0 {
		params.Set("limit", strconv.Itoa(opts.MaxResults))
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload Response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}
	return &payload, nil
}

// GetDetails fetches the full provider record for one external reference,
// used by the background enrichment job after venue creation.
func (c *Client) GetDetails(ctx context.Context, externalRef string) (*Candidate, error) {
	externalRef = strings.TrimSpace(externalRef)
	if externalRef == "" {
		return nil, errors.New("external ref must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/places/" + url.PathEscape(externalRef))
	if err != nil {
		return nil, fmt.Errorf("parse directory url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory details returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload Candidate
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode place details: %w", err)
	}
	return &payload, nil
}
