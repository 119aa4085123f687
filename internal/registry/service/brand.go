package service

import (
	"strings"
	"unicode"
)

const (
	unresolvedBrand = "UNRESOLVED BRAND"
	unresolvedModel = "UNRESOLVED MODEL"
)

// brandAliases maps holding-company and rebrand names to the brand the
// airframe is known by.
var brandAliases = map[string]string{
	"TEXTRON AVIATION":     "CESSNA",
	"TEXTRON":              "CESSNA",
	"RAYTHEON":             "BEECH",
	"RAYTHEON AIRCRAFT":    "BEECH",
	"HAWKER BEECHCRAFT":    "BEECH",
	"BEECHCRAFT":           "BEECH",
	"NEW PIPER":            "PIPER",
	"CIRRUS DESIGN":        "CIRRUS",
	"VIKING AIR":           "DE HAVILLAND",
	"DEHAVILLAND":          "DE HAVILLAND",
	"MOONEY INTERNATIONAL": "MOONEY",
}

var corporateSuffixes = []string{
	" CORPORATION", " CORP", " COMPANY", " CO", " INCORPORATED", " INC",
	" LLC", " LTD", " LIMITED", " AIRCRAFT", " AIRPLANE", " AVIATION INC",
}

// normalizeBrand maps a raw manufacturer field to a recognised brand. ok is
// false when the field is empty or a numeric code leaked from a joined table.
func normalizeBrand(raw string) (brand string, ok bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = strings.NewReplacer(".", "", ",", "").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" || isNumeric(s) {
		return unresolvedBrand, false
	}

	if alias, found := brandAliases[s]; found {
		return alias, true
	}
	for stripped := true; stripped; {
		stripped = false
		for _, suffix := range corporateSuffixes {
			if strings.HasSuffix(s, suffix) && len(s) > len(suffix) {
				s = strings.TrimSuffix(s, suffix)
				stripped = true
			}
		}
		if alias, found := brandAliases[s]; found {
			return alias, true
		}
	}
	if strings.HasPrefix(s, "MOONEY ") {
		return "MOONEY", true
	}
	return s, true
}

// normalizeModel rejects long numeric model codes. Short numeric models such
// as "172" are genuine designations.
func normalizeModel(raw string) (model string, ok bool) {
	s := strings.ToUpper(strings.Join(strings.Fields(raw), " "))
	if s == "" || (isNumeric(s) && len(s) >= 5) {
		return unresolvedModel, false
	}
	return s, true
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != ' ' {
			return false
		}
	}
	return s != ""
}
