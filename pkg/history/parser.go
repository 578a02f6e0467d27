// Package history parses a law's revision-history listing page and
// selects the revision legally in force at a reference date.
package history

import (
	"errors"
	"regexp"

	"github.com/coolbeans/slovlex/pkg/textutil"
)

// ErrNoHistoryRows is returned when the history page contains no rows
// tagged as history items. Callers must treat this as an ingestion
// failure, not as a law without history.
var ErrNoHistoryRows = errors.New("history: no history rows found")

// HistoryEntry is one row of a law's revision history.
type HistoryEntry struct {
	// Link is the relative link to the revision's document page.
	Link string `json:"link"`

	// InForceFrom is the inclusive effective-from date (ISO). Empty only
	// for not-yet-effective administrative entries.
	InForceFrom string `json:"in_force_from"`

	// InForceTo is the exclusive effective-to date (ISO). Empty means
	// the revision is still open.
	InForceTo string `json:"in_force_to"`

	// Promulgation marks the original publication record, which is not a
	// usable in-force text version and is excluded from selection.
	Promulgation bool `json:"promulgation"`
}

var (
	// historyRowPattern matches one history item row and captures its
	// opening tag attributes and inner markup.
	historyRowPattern = regexp.MustCompile(`(?s)<tr([^>]*class="[^"]*historiaItem[^"]*"[^>]*)>(.*?)</tr>`)

	promulgationAttrPattern = regexp.MustCompile(`data-vyhlasene="([^"]*)"`)
	inForceFromAttrPattern  = regexp.MustCompile(`data-ucinnost-od="([^"]*)"`)
	inForceToAttrPattern    = regexp.MustCompile(`data-ucinnost-do="([^"]*)"`)
	rowLinkPattern          = regexp.MustCompile(`href="([^"]+)"`)

	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseHistoryEntries extracts every history item row from the raw HTML
// of a revision-history listing page. Rows are returned in document
// order without re-sorting. A page with zero rows yields ErrNoHistoryRows.
func ParseHistoryEntries(html string) ([]HistoryEntry, error) {
	rows := historyRowPattern.FindAllStringSubmatch(html, -1)
	if len(rows) == 0 {
		return nil, ErrNoHistoryRows
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		attrs, inner := row[1], row[2]

		entry := HistoryEntry{
			InForceFrom: attrDate(inForceFromAttrPattern, attrs),
			InForceTo:   attrDate(inForceToAttrPattern, attrs),
		}
		if m := promulgationAttrPattern.FindStringSubmatch(attrs); m != nil {
			entry.Promulgation = m[1] == "true"
		}
		if m := rowLinkPattern.FindStringSubmatch(inner); m != nil {
			entry.Link = m[1]
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// attrDate reads a date attribute and normalizes it to ISO form. The
// portal mostly emits ISO dates in data attributes but older pages carry
// the localized display form.
func attrDate(pattern *regexp.Regexp, attrs string) string {
	m := pattern.FindStringSubmatch(attrs)
	if m == nil {
		return ""
	}
	value := textutil.NormalizeWhitespace(textutil.DecodeEntities(m[1]))
	if value == "" || isoDatePattern.MatchString(value) {
		return value
	}
	if iso, ok := textutil.ParseLocalizedDate(value); ok {
		return iso
	}
	return ""
}
