// Package valuation produces a seeded market value estimate. No comparable
// sales source is integrated, so every estimate is tagged as simulated.
package valuation

import (
	"math"
	"time"

	"tailscan/internal/provenance"
	"tailscan/internal/registry/models"
	"tailscan/internal/seed"
)

const (
	DefaultBasePrice   = 150000
	Currency           = "USD"
	ConfidenceInterval = "±8%"

	newAirframeAge = 10
	oldAirframeAge = 40
)

// Trend is the market direction label.
type Trend string

const (
	TrendAppreciating Trend = "APPRECIATING"
	TrendStable       Trend = "STABLE"
)

// basePrices is keyed by "MANUFACTURER MODEL".
var basePrices = map[string]float64{
	"CESSNA 172N":     110000,
	"PIPER PA-28-161": 95000,
	"BEECH A36":       350000,
	"CIRRUS SR22":     550000,
	"MOONEY M20J":     165000,
}

// Estimate is a valuation with its inputs.
type Estimate struct {
	EstimatedValue     int64          `json:"estimated_value"`
	Currency           string         `json:"currency"`
	ConfidenceInterval string         `json:"confidence_interval"`
	MarketTrend        Trend          `json:"market_trend"`
	BasePrice          int64          `json:"base_price"`
	ConditionFactor    float64        `json:"condition_factor"`
	Provenance         provenance.Tag `json:"provenance"`
}

// BasePrice looks up a make/model string, falling back to the default.
func BasePrice(makeModel string) float64 {
	if p, ok := basePrices[makeModel]; ok {
		return p
	}
	return DefaultBasePrice
}

// ConditionFactor is the seeded multiplier in [0.8, 1.2).
func ConditionFactor(tail string) float64 {
	return seed.Between(tail, seed.OffsetCondition, 0.8, 1.2)
}

// Value estimates the aircraft's market value at asOf.
func Value(identity *models.AircraftIdentity, asOf time.Time) Estimate {
	base := BasePrice(identity.MakeModel())
	value := base

	if age, known := identity.Age(asOf); known {
		switch {
		case age < newAirframeAge:
			value *= 1.2
		case age > oldAirframeAge:
			value *= 0.8
		}
	}

	condition := ConditionFactor(identity.TailNumber)
	value *= condition

	trend := TrendStable
	if seed.UnitInterval(identity.TailNumber, seed.OffsetMarketTrend) > 0.5 {
		trend = TrendAppreciating
	}

	return Estimate{
		EstimatedValue:     int64(math.Round(value/1000) * 1000),
		Currency:           Currency,
		ConfidenceInterval: ConfidenceInterval,
		MarketTrend:        trend,
		BasePrice:          int64(base),
		ConditionFactor:    condition,
		Provenance:         provenance.Simulated,
	}
}
