// Package fixtures holds the demo aircraft loaded into the in-memory stores
// when no database is configured.
package fixtures

import (
	"time"

	fmodels "tailscan/internal/forensics/models"
	fstore "tailscan/internal/forensics/store"
	regmodels "tailscan/internal/registry/models"
	"tailscan/internal/tailnumber"
)

// Registry returns the demo registry rows, keyed the way the registry import
// writes them.
func Registry() []regmodels.RegistryRecord {
	return []regmodels.RegistryRecord{
		{
			NNumber: "9305P", Manufacturer: "PIPER AIRCRAFT INC", Model: "PA-28-161",
			SerialNumber: "28-7916089", YearManufactured: 1979, OwnerName: "BLUE SKY FLYING CLUB",
			City: "SANTA MONICA", Region: "CA", Country: tailnumber.CountryUS,
		},
		{
			NNumber: "904GS", Manufacturer: "CIRRUS DESIGN CORP", Model: "SR22",
			SerialNumber: "5412", YearManufactured: 2020, OwnerName: "GS AVIATION LLC",
			City: "DENVER", Region: "CO", Country: tailnumber.CountryUS,
		},
		{
			NNumber: "C-GWKQ", Manufacturer: "CESSNA", Model: "172N",
			SerialNumber: "17270512", YearManufactured: 1996, OwnerName: "NORTHERN AIR TRAINING",
			City: "WINNIPEG", Region: "MB", Country: tailnumber.CountryCA,
		},
	}
}

// LoadForensics adds the demo forensic records to store.
func LoadForensics(store *fstore.InMemoryStore) {
	store.AddAccident(fmodels.AccidentRecord{
		EventID:   "WPR19CA071",
		TailNum:   "9305P",
		EventDate: time.Date(2019, 2, 14, 0, 0, 0, 0, time.UTC),
		EventType: "ACC",
		Severity:  "Minor",
		Narrative: "Hard landing during crosswind; nose gear collapsed.",
	})
	store.AddDefect(fmodels.DefectRecord{
		ControlNumber: "2021FA0001234",
		TailNum:       "904GS",
		ReportDate:    time.Date(2021, 9, 3, 0, 0, 0, 0, time.UTC),
		PartName:      "ALTERNATOR",
		Description:   "Alternator output intermittent; replaced.",
	})
}
