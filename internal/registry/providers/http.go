package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tailscan/internal/registry/models"
	"tailscan/internal/tailnumber"
	"tailscan/pkg/platform/circuit"
)

const maxDiscoveryBody = 1 << 20

// HTTPDiscovery calls a live-discovery endpoint (one per jurisdiction) with
// POST {"tail_number": "..."}.
type HTTPDiscovery struct {
	id      string
	country tailnumber.Country
	url     string
	apiKey  string
	client  *http.Client
	breaker *circuit.Breaker
	clock   func() time.Time
}

// HTTPOption configures an HTTPDiscovery.
type HTTPOption func(*HTTPDiscovery)

func WithHTTPClient(c *http.Client) HTTPOption {
	return func(d *HTTPDiscovery) {
		if c != nil {
			d.client = c
		}
	}
}

func WithAPIKey(key string) HTTPOption {
	return func(d *HTTPDiscovery) { d.apiKey = key }
}

func WithBreaker(b *circuit.Breaker) HTTPOption {
	return func(d *HTTPDiscovery) { d.breaker = b }
}

// NewHTTPDiscovery constructs a live-discovery client for one jurisdiction.
func NewHTTPDiscovery(id string, country tailnumber.Country, url string, opts ...HTTPOption) *HTTPDiscovery {
	d := &HTTPDiscovery{
		id:      id,
		country: country,
		url:     url,
		client:  &http.Client{},
		breaker: circuit.New(id),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func (d *HTTPDiscovery) ID() string                  { return d.id }
func (d *HTTPDiscovery) Country() tailnumber.Country { return d.country }

type discoveryRequest struct {
	TailNumber string `json:"tail_number"`
}

type discoveryResponse struct {
	Found              bool           `json:"found"`
	Data               *discoveryData `json:"data,omitempty"`
	Source             string         `json:"source,omitempty"`
	VerificationStatus string         `json:"verification_status,omitempty"`
	Message            string         `json:"message,omitempty"`
}

type discoveryData struct {
	NNumber      string `json:"n_number"`
	SerialNumber string `json:"serial_number"`
	Manufacturer string `json:"mfr_mdl_code"`
	Model        string `json:"eng_mfr_mdl"`
	YearMfr      string `json:"year_mfr"`
	Name         string `json:"name"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

// Discover implements Discovery.
func (d *HTTPDiscovery) Discover(ctx context.Context, tail string) (*Result, error) {
	if d.breaker != nil && !d.breaker.Allow() {
		return nil, NewProviderError(ErrorCircuitOpen, d.id, "circuit open", nil)
	}

	res, err := d.call(ctx, tail)
	if d.breaker != nil {
		if err != nil && GetCategory(err) != ErrorBadData {
			d.breaker.RecordFailure()
		} else {
			d.breaker.RecordSuccess()
		}
	}
	return res, err
}

func (d *HTTPDiscovery) call(ctx context.Context, tail string) (*Result, error) {
	body, err := json.Marshal(discoveryRequest{TailNumber: tail})
	if err != nil {
		return nil, NewProviderError(ErrorInternal, d.id, "encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return nil, NewProviderError(ErrorInternal, d.id, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.apiKey)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewProviderError(ErrorTimeout, d.id, "discovery timed out", err)
		}
		return nil, NewProviderError(ErrorProviderOutage, d.id, "discovery unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return NotFound(d.id, "not found", d.clock()), nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewProviderError(ErrorAuthentication, d.id, fmt.Sprintf("status %d", resp.StatusCode), nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewProviderError(ErrorRateLimited, d.id, "rate limited", nil)
	case resp.StatusCode >= 500:
		return nil, NewProviderError(ErrorProviderOutage, d.id, fmt.Sprintf("status %d", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, NewProviderError(ErrorBadData, d.id, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var payload discoveryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDiscoveryBody)).Decode(&payload); err != nil {
		return nil, NewProviderError(ErrorBadData, d.id, "decode response", err)
	}
	if !payload.Found {
		return NotFound(d.id, payload.Message, d.clock()), nil
	}
	if payload.Data == nil {
		return nil, NewProviderError(ErrorBadData, d.id, "found without data", nil)
	}

	return &Result{
		ProviderID:         d.id,
		Found:              true,
		Record:             d.toRecord(tail, payload.Data),
		VerificationStatus: payload.VerificationStatus,
		Message:            payload.Message,
		CheckedAt:          d.clock(),
	}, nil
}

func (d *HTTPDiscovery) toRecord(tail string, data *discoveryData) *models.RegistryRecord {
	year, _ := strconv.Atoi(strings.TrimSpace(data.YearMfr))
	return &models.RegistryRecord{
		NNumber:          tailnumber.LookupKey(tail),
		Manufacturer:     data.Manufacturer,
		Model:            data.Model,
		SerialNumber:     data.SerialNumber,
		YearManufactured: year,
		OwnerName:        data.Name,
		City:             data.City,
		Region:           data.State,
		Country:          d.country,
		UpdatedAt:        d.clock(),
	}
}
