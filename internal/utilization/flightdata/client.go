// Package flightdata is the HTTP client for the external flight-tracking
// provider.
package flightdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tailscan/internal/utilization/models"
	"tailscan/pkg/platform/circuit"
	"tailscan/pkg/platform/sentinel"
)

const maxResponseBody = 4 << 20

// Client fetches twelve-month utilization for one aircraft.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *circuit.Breaker
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(cl *Client) { cl.breaker = b }
}

// New builds a client for baseURL. Requests are bounded by timeout.
func New(baseURL, apiKey string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		breaker: circuit.New("flightdata"),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type flightsResponse struct {
	TotalHours12M int             `json:"total_hours_12m"`
	LastTracked   *time.Time      `json:"last_tracked"`
	DataSource    string          `json:"data_source"`
	Flights       []models.Flight `json:"flights"`
}

// Flights returns the provider's report. A 404 is sentinel.ErrNotFound and an
// open breaker is sentinel.ErrUnavailable.
func (c *Client) Flights(ctx context.Context, tail string) (*models.FlightReport, error) {
	if !c.breaker.Allow() {
		return nil, fmt.Errorf("flightdata circuit open: %w", sentinel.ErrUnavailable)
	}
	report, err := c.fetch(ctx, tail)
	switch {
	case err == nil, errors.Is(err, sentinel.ErrNotFound):
		c.breaker.RecordSuccess()
	default:
		c.breaker.RecordFailure()
	}
	return report, err
}

func (c *Client) fetch(ctx context.Context, tail string) (*models.FlightReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/flights/"+url.PathEscape(tail), nil)
	if err != nil {
		return nil, fmt.Errorf("build flightdata request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-apikey", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flightdata request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("flightdata %s: %w", tail, sentinel.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("flightdata returned status %d", resp.StatusCode)
	}

	var body flightsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode flightdata response: %w", err)
	}

	report := &models.FlightReport{
		TotalHours12M: body.TotalHours12M,
		Feed:          models.FeedADSB,
		Flights:       body.Flights,
	}
	if body.DataSource == string(models.FeedMLAT) {
		report.Feed = models.FeedMLAT
	}
	if body.LastTracked != nil {
		report.LastTracked = body.LastTracked.UTC()
	}
	return report, nil
}

// Disabled stands in when no provider URL is configured. Every call fails so
// the cache fills with simulated entries.
type Disabled struct{}

func (Disabled) Flights(context.Context, string) (*models.FlightReport, error) {
	return nil, fmt.Errorf("flightdata not configured: %w", sentinel.ErrUnavailable)
}
