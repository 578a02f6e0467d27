// Package types provides the core domain records produced by the
// statute ingestion pipeline.
package types

import "fmt"

// TargetLaw identifies a statute to ingest. It is immutable reference
// data created once at configuration time.
type TargetLaw struct {
	// ID is the stable identifier used as the persistence key.
	ID string `json:"id"`

	// Year is the promulgation year in the collection of laws.
	Year int `json:"year"`

	// Number is the promulgation number within the year.
	Number int `json:"number"`

	// Title is the full human-readable title.
	Title string `json:"title"`

	// ShortTitle is an optional short name (e.g. "Trestný zákon").
	ShortTitle string `json:"short_title,omitempty"`

	// Description is free-form operator-facing context.
	Description string `json:"description,omitempty"`
}

// CollectionNumber returns the "number/year" form used by the collection
// of laws, e.g. "300/2005".
func (l TargetLaw) CollectionNumber() string {
	return fmt.Sprintf("%d/%d", l.Number, l.Year)
}

// DocumentStatus classifies a law's standing relative to the reference
// date used during ingestion.
type DocumentStatus string

const (
	// StatusInForce means a published revision covers the reference date.
	StatusInForce DocumentStatus = "in_force"

	// StatusAmended is reserved for downstream change tracking; the
	// version selector never assigns it.
	StatusAmended DocumentStatus = "amended"

	// StatusRepealed means the reference date falls after every
	// revision's coverage.
	StatusRepealed DocumentStatus = "repealed"

	// StatusNotYetInForce means every revision starts after the
	// reference date.
	StatusNotYetInForce DocumentStatus = "not_yet_in_force"

	// StatusUnknown is the zero value before selection runs.
	StatusUnknown DocumentStatus = "unknown"
)

// ParsedProvision is one legal section recovered from a version page.
// Provisions are ordered by document position; order is significant.
type ParsedProvision struct {
	// Reference is the canonical section label, e.g. "§5".
	Reference string `json:"reference"`

	// Chapter is the hierarchy path above the provision, broadest unit
	// first, joined by " / ". Empty when no hierarchy unit precedes it.
	Chapter string `json:"chapter,omitempty"`

	// Section is the bare section number, e.g. "5" or "5a".
	Section string `json:"section"`

	// Title is the provision heading, falling back to the section label.
	Title string `json:"title"`

	// Content is the reconstructed body text, one logical line per
	// newline-separated entry.
	Content string `json:"content"`
}

// ParsedDefinition is a term/definition pair mined from a
// definition-like provision.
type ParsedDefinition struct {
	// ProvisionRef ties the definition back to the provision it was
	// mined from, using the provision's Reference label.
	ProvisionRef string `json:"provision_ref"`

	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// ParsedAct is the aggregate ingestion result for one law. It fully
// supersedes any prior record for the same law ID.
type ParsedAct struct {
	LawID  string `json:"law_id"`
	Year   int    `json:"year"`
	Number int    `json:"number"`

	// Title is the configured human-readable title.
	Title string `json:"title"`

	// ShortTitle is the configured short name, if any.
	ShortTitle string `json:"short_title,omitempty"`

	// FullTitle is the title composed from the version page header,
	// e.g. "Zákon č. 300/2005 Z. z. Trestný zákon".
	FullTitle string `json:"full_title"`

	Status DocumentStatus `json:"status"`

	// IssuedDate is the promulgation date from the page header (ISO),
	// empty when the header carries none.
	IssuedDate string `json:"issued_date,omitempty"`

	// InForceDate is the first-in-force date reported by the version
	// selector (ISO).
	InForceDate string `json:"in_force_date,omitempty"`

	// SourceURL is the canonical URL of the ingested revision.
	SourceURL string `json:"source_url"`

	Provisions  []ParsedProvision  `json:"provisions"`
	Definitions []ParsedDefinition `json:"definitions,omitempty"`
}

// Provision returns the provision with the given reference label, or nil.
func (a *ParsedAct) Provision(reference string) *ParsedProvision {
	for i := range a.Provisions {
		if a.Provisions[i].Reference == reference {
			return &a.Provisions[i]
		}
	}
	return nil
}
