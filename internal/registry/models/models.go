// Package models holds the Registry bounded context's data types.
//
// Domain purity: no I/O and no time.Now() calls. Time is received as a
// parameter from the application layer.
package models

import (
	"strings"
	"time"

	"tailscan/internal/tailnumber"
)

// Source records which resolution tier produced an identity.
type Source string

const (
	SourceRegistry      Source = "registry"
	SourceLiveDiscovery Source = "live_discovery"
)

// Verification is the trust level of an identity.
type Verification string

const (
	VerificationVerified  Verification = "verified"
	VerificationEstimated Verification = "estimated"
)

// ParseVerification maps a collaborator's free-form status tag. Anything that
// is not explicitly verified is treated as an estimate.
func ParseVerification(tag string) Verification {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "VERIFIED", "CONFIRMED", "OFFICIAL":
		return VerificationVerified
	default:
		return VerificationEstimated
	}
}

// RegistryRecord is a row of the persisted registry store, keyed by the
// lookup key (US marks without their "N", Canadian marks with "C-").
// Manufacturer and Model are stored as received from the registry import and
// may hold aliases or numeric codes.
type RegistryRecord struct {
	NNumber          string
	Manufacturer     string
	Model            string
	SerialNumber     string
	YearManufactured int
	OwnerName        string
	City             string
	Region           string
	Country          tailnumber.Country
	UpdatedAt        time.Time
}

// AircraftIdentity is a resolved aircraft. It is read-only to every component
// downstream of the resolver.
type AircraftIdentity struct {
	TailNumber       string             `json:"tail_number"`
	Manufacturer     string             `json:"manufacturer"`
	Model            string             `json:"model"`
	SerialNumber     string             `json:"serial_number"`
	YearManufactured int                `json:"year_manufactured,omitempty"`
	OwnerName        string             `json:"owner_name"`
	City             string             `json:"city,omitempty"`
	Region           string             `json:"region,omitempty"`
	Country          tailnumber.Country `json:"country"`
	BrandResolved    bool               `json:"brand_resolved"`
	Source           Source             `json:"source"`
	Verification     Verification       `json:"verification"`
}

// MakeModel is the "MANUFACTURER MODEL" string used for valuation lookups.
func (a AircraftIdentity) MakeModel() string {
	return strings.TrimSpace(a.Manufacturer + " " + a.Model)
}

// Age returns the airframe age in whole years at asOf. ok is false when the
// manufacture year is unknown.
func (a AircraftIdentity) Age(asOf time.Time) (age int, ok bool) {
	if a.YearManufactured <= 0 || a.YearManufactured > asOf.Year() {
		return 0, false
	}
	return asOf.Year() - a.YearManufactured, true
}

// Suggestion is one registry prefix-search hit.
type Suggestion struct {
	TailNumber   string `json:"tail_number"`
	OwnerName    string `json:"owner_name"`
	Manufacturer string `json:"manufacturer"`
}
