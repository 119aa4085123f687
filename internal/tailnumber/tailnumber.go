// Package tailnumber canonicalizes aircraft registration marks.
//
// Two shapes are recognised: US marks ("N" followed by 1-5 alphanumerics) and
// Canadian marks ("C-" followed by 4 letters). Country detection without a
// hint is heuristic: a bare 4-letter input is read as Canadian, so a US mark
// typed without its "N" and made only of letters is misclassified. Callers
// that know the registry should use NormalizeFor.
package tailnumber

import (
	"regexp"
	"strings"
	"unicode"

	dErrors "tailscan/pkg/domain-errors"
)

// Country identifies the registry a mark belongs to.
type Country string

const (
	CountryUS      Country = "US"
	CountryCA      Country = "CA"
	CountryUnknown Country = ""
)

var (
	usMark       = regexp.MustCompile(`^N[A-Z0-9]{1,5}$`)
	caMark       = regexp.MustCompile(`^C-[A-Z]{4}$`)
	fourLetters  = regexp.MustCompile(`^[A-Z]{4}$`)
	bareAlnum    = regexp.MustCompile(`^[A-Z0-9]{3,6}$`)
	bareUSSuffix = regexp.MustCompile(`^[A-Z0-9]{1,5}$`)
)

// ErrInvalid is returned for input that matches neither registry shape.
var ErrInvalid = dErrors.New(dErrors.CodeInvalidInput, "unrecognised tail number format")

// Normalize canonicalizes raw user input. Already canonical marks are returned
// unchanged.
func Normalize(raw string) (string, error) {
	s := clean(raw)
	if s == "" {
		return "", ErrInvalid
	}

	switch {
	case caMark.MatchString(s), usMark.MatchString(s):
		// already canonical
	case strings.HasPrefix(s, "C") && !strings.HasPrefix(s, "C-") && len(s) == 5:
		s = "C-" + s[1:]
	case fourLetters.MatchString(s):
		s = "C-" + s
	case !strings.HasPrefix(s, "N") && !strings.HasPrefix(s, "C-") && bareAlnum.MatchString(s):
		s = "N" + s
	}

	if CountryOf(s) == CountryUnknown {
		return "", ErrInvalid
	}
	return s, nil
}

// NormalizeFor canonicalizes raw input for a known registry, removing the
// guesswork Normalize has to do for short marks.
func NormalizeFor(raw string, country Country) (string, error) {
	s := clean(raw)
	switch country {
	case CountryUS:
		s = strings.TrimPrefix(s, "N")
		if !bareUSSuffix.MatchString(s) {
			return "", ErrInvalid
		}
		return "N" + s, nil
	case CountryCA:
		switch {
		case strings.HasPrefix(s, "C-"):
			s = s[2:]
		case strings.HasPrefix(s, "C") && len(s) == 5:
			s = s[1:]
		}
		if !fourLetters.MatchString(s) {
			return "", ErrInvalid
		}
		return "C-" + s, nil
	default:
		return Normalize(raw)
	}
}

// CountryOf reports the registry of a canonical mark.
func CountryOf(tail string) Country {
	switch {
	case caMark.MatchString(tail):
		return CountryCA
	case usMark.MatchString(tail):
		return CountryUS
	default:
		return CountryUnknown
	}
}

// LookupKey is the registry store key for a canonical mark. US records are
// indexed without the "N" prefix; Canadian records keep "C-".
func LookupKey(tail string) string {
	if CountryOf(tail) == CountryUS {
		return strings.TrimPrefix(tail, "N")
	}
	return tail
}

// SuggestPrefix prepares partial input for a registry prefix search: it is
// uppercased and a Canadian "C" prefix gains its hyphen.
func SuggestPrefix(raw string) string {
	s := clean(raw)
	if strings.HasPrefix(s, "C") && len(s) > 1 && s[1] != '-' {
		s = "C-" + s[1:]
	}
	return s
}

func clean(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, raw)
}
