package providers

import (
	"context"
	"fmt"
	"time"

	"tailscan/internal/registry/models"
	"tailscan/internal/tailnumber"
)

// Discovery is the live-discovery collaborator consulted when the persisted
// registry has no record. One implementation exists per jurisdiction.
//
// A provider must never fabricate an identity: "not found" is a normal,
// expected answer and is reported with Found=false and a nil error.
type Discovery interface {
	// ID returns a unique identifier for this provider instance
	ID() string

	// Country is the jurisdiction whose marks this provider can discover
	Country() tailnumber.Country

	// Discover looks up a canonical tail number
	Discover(ctx context.Context, tail string) (*Result, error)
}

// Result is the answer of a live-discovery call.
type Result struct {
	ProviderID         string
	Found              bool
	Record             *models.RegistryRecord
	VerificationStatus string
	Message            string
	CheckedAt          time.Time
}

// NotFound builds a Found=false result.
func NotFound(providerID, message string, checkedAt time.Time) *Result {
	return &Result{ProviderID: providerID, Message: message, CheckedAt: checkedAt}
}

// Registry maintains discovery providers keyed by jurisdiction.
type Registry struct {
	providers map[tailnumber.Country]Discovery
}

// NewRegistry creates a new empty registry
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[tailnumber.Country]Discovery),
	}
}

// Register adds a provider for its jurisdiction.
func (r *Registry) Register(p Discovery) error {
	country := p.Country()
	if existing, exists := r.providers[country]; exists {
		return fmt.Errorf("provider %s already registered for %s", existing.ID(), country)
	}
	r.providers[country] = p
	return nil
}

// For returns the provider registered for country.
func (r *Registry) For(country tailnumber.Country) (Discovery, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.providers[country]
	return p, ok
}
