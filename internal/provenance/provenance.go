// Package provenance tags where a reported figure came from, so simulated
// values are never presented with the weight of sourced ones.
package provenance

type Tag string

const (
	Observed      Tag = "observed"
	Simulated     Tag = "simulated"
	Registry      Tag = "registry"
	LiveDiscovery Tag = "live_discovery"
	VerifiedLive  Tag = "verified_live"
	VerifiedEmpty Tag = "verified_empty"
)
