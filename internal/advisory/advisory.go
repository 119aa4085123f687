// Package advisory classifies aggregate risk with a strict-priority rule
// ladder and renders the technical narrative. Pure domain logic.
package advisory

import (
	"fmt"
	"time"

	"tailscan/internal/forensics/models"
	regmodels "tailscan/internal/registry/models"
)

// Tier is an ordered risk classification.
type Tier string

const (
	TierLow               Tier = "LOW"
	TierSuspiciousSilence Tier = "SUSPICIOUS_SILENCE"
	TierElevated          Tier = "ELEVATED"
	TierHigh              Tier = "HIGH"
)

var tierRank = map[Tier]int{
	TierLow:               0,
	TierSuspiciousSilence: 1,
	TierElevated:          2,
	TierHigh:              3,
}

// Rank orders tiers from least to most severe.
func (t Tier) Rank() int { return tierRank[t] }

// Verdicts per tier.
const (
	VerdictHigh       = "HIGH RISK DETECTED"
	VerdictElevated   = "CAUTION ADVISED"
	VerdictSuspicious = "INSPECTION RECOMMENDED"
	VerdictClean      = "CLEARANCE GRANTED"
)

const (
	defectThreshold  = 3
	silentAirframeAt = 30
)

// Advisory is the classified risk with its narrative.
type Advisory struct {
	Verdict   string `json:"verdict"`
	Tier      Tier   `json:"risk_tier"`
	Narrative string `json:"narrative"`
}

// Advise applies the ladder; the first matching rule wins:
//  1. accident or active lien: HIGH
//  2. occurrence (Canadian marks) or more than three defects: ELEVATED
//  3. airframe older than 30 years with no defect history: SUSPICIOUS_SILENCE
//  4. otherwise LOW
//
// An unknown manufacture year never triggers rule 3.
func Advise(facts *models.Facts, identity *regmodels.AircraftIdentity, asOf time.Time) Advisory {
	accidents := len(facts.Accidents)
	occurrences := facts.ScoredOccurrences()
	defects := len(facts.Defects)

	// Rule 1
	if accidents > 0 || facts.Lien {
		return Advisory{Verdict: VerdictHigh, Tier: TierHigh, Narrative: highNarrative(identity, accidents, facts.Lien)}
	}

	// Rule 2
	if occurrences > 0 || defects > defectThreshold {
		return Advisory{Verdict: VerdictElevated, Tier: TierElevated, Narrative: elevatedNarrative(identity, occurrences, defects)}
	}

	// Rule 3
	if age, known := identity.Age(asOf); known && age > silentAirframeAt && defects < 1 {
		return Advisory{
			Verdict: VerdictSuspicious,
			Tier:    TierSuspiciousSilence,
			Narrative: fmt.Sprintf(
				"%s is a %d-year-old airframe with no service difficulty reports on file. "+
					"A complete absence of defect history at this age is statistically implausible and "+
					"points to a records gap rather than a clean bill of health. Review the physical logbooks "+
					"before relying on this report.",
				subject(identity), age),
		}
	}

	return Advisory{
		Verdict: VerdictClean,
		Tier:    TierLow,
		Narrative: fmt.Sprintf(
			"No accidents, occurrences, liens or significant defect patterns were found for %s. "+
				"Public records are consistent with a normally maintained airframe; a pre-buy inspection remains standard practice.",
			subject(identity)),
	}
}

func highNarrative(identity *regmodels.AircraftIdentity, accidents int, lien bool) string {
	switch {
	case accidents > 0 && lien:
		return fmt.Sprintf(
			"%s has %s on file and an active lien against its title. Structural history must be verified "+
				"against the repair logs, and the encumbrance must be released before any transfer can close.",
			subject(identity), plural(accidents, "accident record", "accident records"))
	case accidents > 0:
		return fmt.Sprintf(
			"%s has %s on file. Obtain the investigation report and confirm that major repair and "+
				"alteration forms cover every damaged structure.",
			subject(identity), plural(accidents, "accident record", "accident records"))
	default:
		return fmt.Sprintf(
			"An active lien is recorded against %s. Title cannot transfer cleanly until the holder files a release.",
			subject(identity))
	}
}

func elevatedNarrative(identity *regmodels.AircraftIdentity, occurrences, defects int) string {
	switch {
	case occurrences > 0 && defects > defectThreshold:
		return fmt.Sprintf(
			"%s has %s and %d service difficulty reports. The combination suggests operational and mechanical "+
				"issues worth a targeted inspection.",
			subject(identity), plural(occurrences, "safety occurrence", "safety occurrences"), defects)
	case occurrences > 0:
		return fmt.Sprintf(
			"%s has %s recorded in Canadian airspace. Review each occurrence for airframe or powerplant involvement.",
			subject(identity), plural(occurrences, "safety occurrence", "safety occurrences"))
	default:
		return fmt.Sprintf(
			"%s has %d service difficulty reports. Repeated defects indicate component fatigue; focus the "+
				"inspection on the reported systems.",
			subject(identity), defects)
	}
}

func subject(identity *regmodels.AircraftIdentity) string {
	if mm := identity.MakeModel(); mm != "" {
		return fmt.Sprintf("%s (%s)", identity.TailNumber, mm)
	}
	return identity.TailNumber
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
