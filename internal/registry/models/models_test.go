package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseVerification(t *testing.T) {
	assert.Equal(t, VerificationVerified, ParseVerification("VERIFIED"))
	assert.Equal(t, VerificationVerified, ParseVerification(" confirmed "))
	assert.Equal(t, VerificationEstimated, ParseVerification("ESTIMATED"))
	assert.Equal(t, VerificationEstimated, ParseVerification(""))
}

func TestAircraftIdentityAge(t *testing.T) {
	asOf := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

	age, ok := AircraftIdentity{YearManufactured: 1978}.Age(asOf)
	assert.True(t, ok)
	assert.Equal(t, 48, age)

	_, ok = AircraftIdentity{}.Age(asOf)
	assert.False(t, ok, "unknown year")

	_, ok = AircraftIdentity{YearManufactured: 2030}.Age(asOf)
	assert.False(t, ok, "future year is treated as unknown")
}

func TestMakeModel(t *testing.T) {
	assert.Equal(t, "CESSNA 172N", AircraftIdentity{Manufacturer: "CESSNA", Model: "172N"}.MakeModel())
	assert.Equal(t, "CESSNA", AircraftIdentity{Manufacturer: "CESSNA"}.MakeModel())
}
