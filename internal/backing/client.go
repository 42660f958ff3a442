package backing

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
	"time"

	"marquee/internal/venues"
)

// Session is the anonymous session record returned by the backing store.
type Session struct {
	ActorID string `json:"actor_id"`
}

// Client provides access to the backing store API.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

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

// WithTimeout sets the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a backing store client.
func New(baseURL, apiToken string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("backing base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiToken:   strings.TrimSpace(apiToken),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// CurrentSession returns the established anonymous session, if any.
// A missing session reports ErrNotFound.
func (c *Client) CurrentSession(ctx context.Context) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodGet, "/session", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateAnonymousSession asks the backing store to mint a new anonymous
// actor identity.
func (c *Client) CreateAnonymousSession(ctx context.Context) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/session/anonymous", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListVenues returns all venues known to the system of record.
func (c *Client) ListVenues(ctx context.Context) ([]venues.Venue, error) {
	var out []venues.Venue
	if err := c.do(ctx, http.MethodGet, "/venues", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetVenue fetches one venue by id.
func (c *Client) GetVenue(ctx context.Context, id string) (*venues.Venue, error) {
	var out venues.Venue
	if err := c.do(ctx, http.MethodGet, "/venues/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateVenue persists a new venue record.
func (c *Client) CreateVenue(ctx context.Context, v venues.Venue) (*venues.Venue, error) {
	var out venues.Venue
	if err := c.do(ctx, http.MethodPost, "/venues", v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AttachVenuePhoto records a mirrored photo URL against a venue.
func (c *Client) AttachVenuePhoto(ctx context.Context, venueID, photoURL string) error {
	body := map[string]string{"photo_url": photoURL}
	return c.do(ctx, http.MethodPost, "/venues/"+url.PathEscape(venueID)+"/photo", body, nil)
}

// UpdateVenue replaces mutable venue fields (used by background enrichment).
func (c *Client) UpdateVenue(ctx context.Context, v venues.Venue) error {
	if strings.TrimSpace(v.ID) == "" {
		return errors.New("venue id required")
	}
	return c.do(ctx, http.MethodPut, "/venues/"+url.PathEscape(v.ID), v, nil)
}

// ListRatings returns all ratings for a venue.
func (c *Client) ListRatings(ctx context.Context, venueID string) ([]venues.Rating, error) {
	var out []venues.Rating
	path := "/venues/" + url.PathEscape(venueID) + "/ratings"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRatingByActor fetches the single rating one actor holds for one venue.
func (c *Client) GetRatingByActor(ctx context.Context, venueID, actorID string) (*venues.Rating, error) {
	var out venues.Rating
	path := "/venues/" + url.PathEscape(venueID) + "/ratings/" + url.PathEscape(actorID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRating persists a new rating. The store enforces one rating per
// (actor, venue); a second submission reports ErrDuplicate.
func (c *Client) CreateRating(ctx context.Context, r venues.Rating) (*venues.Rating, error) {
	var out venues.Rating
	if err := c.do(ctx, http.MethodPost, "/ratings", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches an actor profile.
func (c *Client) GetProfile(ctx context.Context, actorID string) (*venues.Profile, error) {
	var out venues.Profile
	if err := c.do(ctx, http.MethodGet, "/profiles/"+url.PathEscape(actorID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpsertProfile creates or replaces an actor profile.
func (c *Client) UpsertProfile(ctx context.Context, p venues.Profile) error {
	if strings.TrimSpace(p.ActorID) == "" {
		return errors.New("actor id required")
	}
	return c.do(ctx, http.MethodPut, "/profiles/"+url.PathEscape(p.ActorID), p, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			return &Error{ErrKind: KindTimeout, Message: err.Error()}
		}
		return &Error{ErrKind: KindTransient, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, resp.Body)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isClientTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}

func decodeError(statusCode int, body io.Reader) error {
	var parsed errorBody
	// A malformed error body still classifies by status code.
	_ = json.NewDecoder(io.LimitReader(body, 1<<16)).Decode(&parsed)

	return &Error{
		ErrKind:    classify(statusCode, parsed.Error.Code),
		StatusCode: statusCode,
		Code:       strings.TrimSpace(parsed.Error.Code),
		Message:    strings.TrimSpace(parsed.Error.Message),
	}
}
