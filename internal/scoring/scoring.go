// Package scoring turns aggregated forensic facts into a confidence score
// and one audit finding per evaluated factor.
//
// Pure domain logic: no I/O and no clock.
package scoring

import (
	"fmt"

	"tailscan/internal/forensics/models"
	"tailscan/internal/provenance"
	"tailscan/internal/seed"
)

const (
	baseScore = 100

	AccidentDeduction   = 35
	OccurrenceDeduction = 20
	DefectDeduction     = 15
	LienDeduction       = 20
	MinorChurnDeduction = 5
	MajorChurnDeduction = 10
)

// Factor identifies one scoring rule.
type Factor string

const (
	FactorAccidents   Factor = "accident_history"
	FactorOccurrences Factor = "occurrence_history"
	FactorDefects     Factor = "mechanical_defects"
	FactorChurn       Factor = "ownership_churn"
	FactorLien        Factor = "lien_status"
)

// Status classifies a finding.
type Status string

const (
	StatusPositive Status = "positive"
	StatusNegative Status = "negative"
	StatusCaution  Status = "caution"
)

// Clean-factor markers shown in place of a point delta.
const (
	MarkerVerified = "VERIFIED"
	MarkerClear    = "CLEAR"
	MarkerStable   = "STABLE"
)

// Finding is the audit entry for one factor. Points holds either a signed
// delta such as "-35" or a clean marker.
type Finding struct {
	Factor       Factor         `json:"factor"`
	Reason       string         `json:"reason"`
	Points       string         `json:"points"`
	Deduction    int            `json:"deduction"`
	Status       Status         `json:"status"`
	Significance string         `json:"significance"`
	Provenance   provenance.Tag `json:"provenance"`
}

// Result is a score and its audit trail.
type Result struct {
	Score      int       `json:"score"`
	Findings   []Finding `json:"findings"`
	OwnerCount int       `json:"owner_count"`
}

// OwnerCount is the seeded ownership count, between 1 and 4. It is a
// placeholder and always reported as simulated.
func OwnerCount(tail string) int {
	return seed.Intn(tail, seed.OffsetOwnerCount, 4) + 1
}

// ChurnDeduction maps an owner count to its deduction.
func ChurnDeduction(owners int) int {
	switch {
	case owners > 3:
		return MajorChurnDeduction
	case owners > 1:
		return MinorChurnDeduction
	default:
		return 0
	}
}

// Score evaluates every factor. Findings are ordered accidents, occurrences
// (Canadian marks only), defects, churn, lien.
func Score(facts *models.Facts) Result {
	owners := OwnerCount(facts.TailNumber)
	findings := make([]Finding, 0, 5)

	findings = append(findings, accidentFinding(facts.Accidents))
	if facts.OccurrencesApply() {
		findings = append(findings, occurrenceFinding(len(facts.Occurrences)))
	}
	findings = append(findings,
		defectFinding(len(facts.Defects)),
		churnFinding(owners),
		lienFinding(facts.Lien),
	)

	total := 0
	for _, f := range findings {
		total += f.Deduction
	}
	return Result{
		Score:      max(0, baseScore-total),
		Findings:   findings,
		OwnerCount: owners,
	}
}

// AccidentWeight is the deduction for one accident record.
func AccidentWeight(r models.AccidentRecord) int {
	if r.Deduction != nil && *r.Deduction >= 0 {
		return *r.Deduction
	}
	return AccidentDeduction
}

func accidentFinding(accidents []models.AccidentRecord) Finding {
	if len(accidents) == 0 {
		return clean(FactorAccidents, "NTSB Historical Safety Audit", MarkerVerified,
			"No record of major accidents or FAA-reportable incidents found.")
	}
	total := 0
	for _, r := range accidents {
		total += AccidentWeight(r)
	}
	reason := "NTSB Incident Record Found"
	if len(accidents) > 1 {
		reason = fmt.Sprintf("%d NTSB Incident Records Found", len(accidents))
	}
	return deducted(FactorAccidents, reason, total, StatusNegative,
		"Historical incidents impact structural integrity and resale value.", provenance.Observed)
}

func occurrenceFinding(count int) Finding {
	if count == 0 {
		return clean(FactorOccurrences, "CADORS Safety Audit", MarkerVerified,
			"Clean operational safety record within Canadian airspace.")
	}
	reason := "Safety Occurrence (CADORS)"
	if count > 1 {
		reason = fmt.Sprintf("%d Safety Occurrences (CADORS)", count)
	}
	return deducted(FactorOccurrences, reason, count*OccurrenceDeduction, StatusNegative,
		"Recent safety occurrences or operational deviations recorded.", provenance.Observed)
}

func defectFinding(count int) Finding {
	if count == 0 {
		return clean(FactorDefects, "Mechanical Performance Review", MarkerVerified,
			"Mechanical performance within normal operating parameters.")
	}
	return deducted(FactorDefects, fmt.Sprintf("%d Mechanical SDR Defects", count), DefectDeduction, StatusCaution,
		"Repeated mechanical failures indicate potential component fatigue.", provenance.Observed)
}

func churnFinding(owners int) Finding {
	d := ChurnDeduction(owners)
	if d == 0 {
		f := clean(FactorChurn, "Ownership Continuity Scan", MarkerStable,
			"Stable chain of custody suggests consistent care and pride of ownership.")
		f.Provenance = provenance.Simulated
		return f
	}
	return deducted(FactorChurn, fmt.Sprintf("Ownership Churn (%d owners detected)", owners), d, StatusCaution,
		"Frequent title changes can hide underlying maintenance issues.", provenance.Simulated)
}

func lienFinding(lien bool) Finding {
	if !lien {
		return clean(FactorLien, "FAA Financial Integrity Scan", MarkerClear,
			"Free and clear of recorded financial liens or legal encumbrances.")
	}
	return deducted(FactorLien, "Active Lien/Encumbrance Detected", LienDeduction, StatusNegative,
		"Active financial encumbrances can block title transfer.", provenance.Observed)
}

func clean(factor Factor, reason, marker, significance string) Finding {
	return Finding{
		Factor:       factor,
		Reason:       reason,
		Points:       marker,
		Status:       StatusPositive,
		Significance: significance,
		Provenance:   provenance.Observed,
	}
}

func deducted(factor Factor, reason string, points int, status Status, significance string, tag provenance.Tag) Finding {
	return Finding{
		Factor:       factor,
		Reason:       reason,
		Points:       fmt.Sprintf("-%d", points),
		Deduction:    points,
		Status:       status,
		Significance: significance,
		Provenance:   tag,
	}
}
