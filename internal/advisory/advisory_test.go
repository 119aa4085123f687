package advisory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"tailscan/internal/forensics/models"
	regmodels "tailscan/internal/registry/models"
	"tailscan/internal/tailnumber"
)

var asOf = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

func identity(tail string, year int) *regmodels.AircraftIdentity {
	return &regmodels.AircraftIdentity{
		TailNumber:       tail,
		Manufacturer:     "CESSNA",
		Model:            "172N",
		YearManufactured: year,
		Country:          tailnumber.CountryOf(tail),
	}
}

func TestTierOrdering(t *testing.T) {
	assert.Less(t, TierLow.Rank(), TierSuspiciousSilence.Rank())
	assert.Less(t, TierSuspiciousSilence.Rank(), TierElevated.Rank())
	assert.Less(t, TierElevated.Rank(), TierHigh.Rank())
}

func TestAdvise_Ladder(t *testing.T) {
	tests := []struct {
		name     string
		facts    models.Facts
		year     int
		tier     Tier
		verdict  string
		contains string
	}{
		{
			name:     "accident is high",
			facts:    models.Facts{TailNumber: "N9305P", Country: tailnumber.CountryUS, Accidents: make([]models.AccidentRecord, 1)},
			year:     1979,
			tier:     TierHigh,
			verdict:  VerdictHigh,
			contains: "1 accident record on file",
		},
		{
			name:     "lien alone is high",
			facts:    models.Facts{TailNumber: "N9305P", Country: tailnumber.CountryUS, Lien: true},
			year:     2015,
			tier:     TierHigh,
			verdict:  VerdictHigh,
			contains: "active lien",
		},
		{
			name:     "accident and lien",
			facts:    models.Facts{TailNumber: "N9305P", Country: tailnumber.CountryUS, Lien: true, Accidents: make([]models.AccidentRecord, 2)},
			year:     2015,
			tier:     TierHigh,
			verdict:  VerdictHigh,
			contains: "2 accident records on file and an active lien",
		},
		{
			name:     "canadian occurrence is elevated",
			facts:    models.Facts{TailNumber: "C-GWKQ", Country: tailnumber.CountryCA, Occurrences: make([]models.OccurrenceRecord, 1)},
			year:     2015,
			tier:     TierElevated,
			verdict:  VerdictElevated,
			contains: "1 safety occurrence",
		},
		{
			name:    "us occurrence is gated out",
			facts:   models.Facts{TailNumber: "N9305P", Country: tailnumber.CountryUS, Occurrences: make([]models.OccurrenceRecord, 1), Defects: make([]models.DefectRecord, 1)},
			year:    2015,
			tier:    TierLow,
			verdict: VerdictClean,
		},
		{
			name:     "four defects is elevated",
			facts:    models.Facts{TailNumber: "N9305P", Country: tailnumber.CountryUS, Defects: make([]models.DefectRecord, 4)},
			year:     1979,
			tier:     TierElevated,
			verdict:  VerdictElevated,
			contains: "4 service difficulty reports",
		},
		{
			name:     "old airframe with no defects is suspicious",
			facts:    models.Facts{TailNumber: "C-GWKQ", Country: tailnumber.CountryCA},
			year:     1978,
			tier:     TierSuspiciousSilence,
			verdict:  VerdictSuspicious,
			contains: "48-year-old",
		},
		{
			name:    "old airframe with defects is low",
			facts:   models.Facts{TailNumber: "C-GWKQ", Country: tailnumber.CountryCA, Defects: make([]models.DefectRecord, 1)},
			year:    1978,
			tier:    TierLow,
			verdict: VerdictClean,
		},
		{
			name:    "exactly thirty years is not suspicious",
			facts:   models.Facts{TailNumber: "C-GWKQ", Country: tailnumber.CountryCA},
			year:    1996,
			tier:    TierLow,
			verdict: VerdictClean,
		},
		{
			name:    "unknown year skips the silence rule",
			facts:   models.Facts{TailNumber: "C-GWKQ", Country: tailnumber.CountryCA},
			year:    0,
			tier:    TierLow,
			verdict: VerdictClean,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advise(&tt.facts, identity(tt.facts.TailNumber, tt.year), asOf)
			assert.Equal(t, tt.tier, got.Tier)
			assert.Equal(t, tt.verdict, got.Verdict)
			assert.NotEmpty(t, got.Narrative)
			if tt.contains != "" {
				assert.Contains(t, got.Narrative, tt.contains)
			}
		})
	}
}

func TestAdvise_Deterministic(t *testing.T) {
	facts := &models.Facts{TailNumber: "N9305P", Country: tailnumber.CountryUS, Defects: make([]models.DefectRecord, 5)}
	id := identity("N9305P", 1979)
	assert.Equal(t, Advise(facts, id, asOf), Advise(facts, id, asOf))
}
