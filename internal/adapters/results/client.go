// Package results is a client for the Football-Data.org v4 match feed.
package results

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jsvoboda/tipsheet/internal/domain/model"
)

// Defaults for the results feed.
const (
	DefaultBaseURL = "https://api.football-data.org/v4/matches"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "tipsheet-evaluator/1.0"
)

// Client fetches finished-match results for a calendar date.
type Client struct {
	http      *http.Client
	baseURL   string
	token     string
	userAgent string
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the feed endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithToken sets the X-Auth-Token API key.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a results client.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Feed wire shapes, v4 schema.
type matchesResponse struct {
	Matches []matchDTO `json:"matches"`
}

type matchDTO struct {
	HomeTeam    teamDTO  `json:"homeTeam"`
	AwayTeam    teamDTO  `json:"awayTeam"`
	Status      string   `json:"status"`
	Score       scoreDTO `json:"score"`
	Competition teamDTO  `json:"competition"`
	UTCDate     string   `json:"utcDate"`
}

type teamDTO struct {
	Name string `json:"name"`
}

type scoreDTO struct {
	FullTime goalsDTO `json:"fullTime"`
}

type goalsDTO struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Matches returns all matches for date (ISO YYYY-MM-DD), in feed order.
// An empty day is an empty slice, not an error.
func (c *Client) Matches(ctx context.Context, date string) ([]model.ResultRecord, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	q := u.Query()
	q.Set("dateFrom", date)
	q.Set("dateTo", date)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("X-Auth-Token", c.token)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d %s", ErrFetch, resp.StatusCode, resp.Status)
	}

	var body matchesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	records := make([]model.ResultRecord, 0, len(body.Matches))
	for _, m := range body.Matches {
		records = append(records, model.ResultRecord{
			HomeName:    m.HomeTeam.Name,
			AwayName:    m.AwayTeam.Name,
			Status:      model.Status(m.Status),
			FullTime:    model.Score{Home: m.Score.FullTime.Home, Away: m.Score.FullTime.Away},
			Competition: m.Competition.Name,
			UTCDate:     m.UTCDate,
		})
	}
	return records, nil
}
