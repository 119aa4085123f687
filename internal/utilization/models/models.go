package models

import "time"

// DataSource records where a cache entry's figures came from.
type DataSource string

const (
	// SourceVerifiedLive means the flight-data provider returned flights.
	SourceVerifiedLive DataSource = "verified_live"
	// SourceVerifiedEmpty means the provider answered with no flights.
	SourceVerifiedEmpty DataSource = "verified_empty"
	// SourceSimulated means the provider failed and seeded figures were stored.
	SourceSimulated DataSource = "simulated"
)

// TrackingFeed is the position feed the figures were derived from.
type TrackingFeed string

const (
	FeedADSB TrackingFeed = "adsb"
	FeedMLAT TrackingFeed = "mlat"
)

// Flight is one leg in the trailing twelve months.
type Flight struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	FiledAltitude int    `json:"filed_altitude"`
	FiledETE      int    `json:"filed_ete"`
}

// RawFlights is the provider payload kept with the entry.
type RawFlights struct {
	Flights []Flight `json:"flights"`
}

// CacheEntry is the single utilization row kept per aircraft.
type CacheEntry struct {
	TailNumber    string       `json:"tail_number"`
	TotalHours12M int          `json:"total_hours_12m"`
	LastTracked   time.Time    `json:"last_tracked"`
	Feed          TrackingFeed `json:"feed"`
	Source        DataSource   `json:"data_source"`
	Raw           RawFlights   `json:"raw_json"`
	ExpiresAt     time.Time    `json:"expires_at"`
	LastUpdated   time.Time    `json:"last_updated"`
}

// Fresh reports whether the entry may be served at now. An entry expiring
// exactly at now is stale.
func (e *CacheEntry) Fresh(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// Status is the access outcome of a utilization request.
type Status string

const (
	StatusAvailable Status = "available"
	StatusLocked    Status = "locked"
)

// LockedMessage is returned to basic-plan callers.
const LockedMessage = "Flight utilization data is available on full plans only."

// Result is what callers receive. Entry is nil when Status is locked.
type Result struct {
	Status   Status      `json:"status"`
	Message  string      `json:"message,omitempty"`
	CacheHit bool        `json:"cache_hit,omitempty"`
	Entry    *CacheEntry `json:"data,omitempty"`
}

// FlightReport is what the flight-data provider returns for one aircraft.
type FlightReport struct {
	TotalHours12M int
	LastTracked   time.Time
	Feed          TrackingFeed
	Flights       []Flight
}
