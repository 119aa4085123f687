// Package models holds the caller-facing report shape.
package models

import (
	"time"

	"tailscan/internal/advisory"
	"tailscan/internal/entitlement"
	fmodels "tailscan/internal/forensics/models"
	"tailscan/internal/provenance"
	regmodels "tailscan/internal/registry/models"
	"tailscan/internal/scoring"
	umodels "tailscan/internal/utilization/models"
	"tailscan/internal/valuation"
)

// Report is one forensic scan of one aircraft.
type Report struct {
	ScanID          string                      `json:"scan_id"`
	TailNumber      string                      `json:"tail_number"`
	GeneratedAt     time.Time                   `json:"generated_at"`
	Identity        *regmodels.AircraftIdentity `json:"identity"`
	ConfidenceScore int                         `json:"confidence_score"`
	AuditFindings   []scoring.Finding           `json:"audit_findings"`
	Ownership       Ownership                   `json:"ownership"`
	Valuation       valuation.Estimate          `json:"valuation"`
	RiskAdvisory    advisory.Advisory           `json:"risk_advisory"`
	ForensicCounts  ForensicCounts              `json:"forensic_counts"`
	// SourceRecords is only filled for paid callers.
	SourceRecords *SourceRecords `json:"source_records,omitempty"`
	// Utilization is omitted for unpaid callers and carries a locked status
	// for basic plans.
	Utilization *umodels.Result `json:"utilization,omitempty"`
	Access      Access          `json:"access"`
}

// Ownership is the seeded owner-count estimate used by the churn factor.
type Ownership struct {
	OwnerCount int            `json:"owner_count"`
	Provenance provenance.Tag `json:"provenance"`
}

// ForensicCounts summarises the aggregated records. Occurrences are only
// counted for Canadian marks.
type ForensicCounts struct {
	Accidents   int            `json:"accidents"`
	Occurrences int            `json:"occurrences"`
	Defects     int            `json:"defects"`
	ActiveLien  bool           `json:"active_lien"`
	Provenance  provenance.Tag `json:"provenance"`
}

// SourceRecords are the underlying records per category.
type SourceRecords struct {
	Accidents   []fmodels.AccidentRecord   `json:"accidents"`
	Occurrences []fmodels.OccurrenceRecord `json:"occurrences"`
	Defects     []fmodels.DefectRecord     `json:"defects"`
}

// Access echoes the entitlement the report was cut for.
type Access struct {
	PaymentStatus entitlement.PaymentStatus `json:"payment_status"`
	Plan          entitlement.Plan          `json:"plan"`
}
