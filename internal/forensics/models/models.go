// Package models holds forensic record types. Records are append-only facts
// keyed by (tail number, source, source identifier).
package models

import (
	"time"

	"tailscan/internal/tailnumber"
)

// Source names one forensic domain.
type Source string

const (
	SourceAccidents   Source = "ntsb"
	SourceOccurrences Source = "cadors"
	SourceDefects     Source = "sdr"
	SourceLiens       Source = "liens"
)

// AccidentRecord is an accident or incident investigation.
type AccidentRecord struct {
	EventID   string    `json:"event_id"`
	TailNum   string    `json:"tail_number"`
	EventDate time.Time `json:"event_date"`
	EventType string    `json:"event_type"`
	Severity  string    `json:"severity"`
	Narrative string    `json:"narrative,omitempty"`
	// Deduction overrides the default accident weight when the source grades
	// severity itself.
	Deduction *int `json:"deduction,omitempty"`
}

// OccurrenceRecord is a Canadian civil aviation occurrence report.
type OccurrenceRecord struct {
	CadorsNumber   string    `json:"cadors_number"`
	TailNum        string    `json:"tail_number"`
	OccurrenceDate time.Time `json:"occurrence_date"`
	OccurrenceType string    `json:"occurrence_type"`
	Summary        string    `json:"summary,omitempty"`
}

// DefectRecord is a service difficulty report.
type DefectRecord struct {
	ControlNumber string    `json:"control_number"`
	TailNum       string    `json:"tail_number"`
	ReportDate    time.Time `json:"report_date"`
	PartName      string    `json:"part_name"`
	Description   string    `json:"description,omitempty"`
}

// Facts is everything the aggregator learned about one aircraft. Failed
// lists sources that errored and contributed nothing.
type Facts struct {
	TailNumber  string
	Country     tailnumber.Country
	Accidents   []AccidentRecord
	Occurrences []OccurrenceRecord
	Defects     []DefectRecord
	Lien        bool
	Failed      []Source
	FetchedAt   time.Time
}

// OccurrencesApply reports whether occurrence records count for this
// aircraft. They are only meaningful for Canadian marks.
func (f *Facts) OccurrencesApply() bool {
	return f.Country == tailnumber.CountryCA
}

// ScoredOccurrences is the occurrence count after the country gate.
func (f *Facts) ScoredOccurrences() int {
	if !f.OccurrencesApply() {
		return 0
	}
	return len(f.Occurrences)
}

// SourceFailed reports whether src errored during aggregation.
func (f *Facts) SourceFailed(src Source) bool {
	for _, s := range f.Failed {
		if s == src {
			return true
		}
	}
	return false
}
