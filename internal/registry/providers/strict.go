package providers

import (
	"context"
	"time"

	"tailscan/internal/tailnumber"
)

// Strict answers "not found" for every mark. It stands in for a jurisdiction
// whose live source is not configured, so an unmatched aircraft yields a
// not-found report rather than a guessed identity.
type Strict struct {
	id      string
	country tailnumber.Country
	clock   func() time.Time
}

// NewStrict creates a strict provider for country.
func NewStrict(country tailnumber.Country) *Strict {
	return &Strict{
		id:      "strict-" + string(country),
		country: country,
		clock:   time.Now,
	}
}

func (s *Strict) ID() string                  { return s.id }
func (s *Strict) Country() tailnumber.Country { return s.country }

func (s *Strict) Discover(_ context.Context, _ string) (*Result, error) {
	return NotFound(s.id, "strict reliability mode: estimated data disabled", s.clock()), nil
}
