// Package citation formats and parses Slovak collection-of-laws
// citations ("zákon č. 300/2005 Z. z.").
package citation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// collectionSuffix is the collection-of-laws abbreviation.
const collectionSuffix = "Z. z."

// ActCitation identifies an act within the collection of laws.
type ActCitation struct {
	Year   int `json:"year"`
	Number int `json:"number"`
}

// collectionNumberPattern matches "300/2005" with an optional
// "Z. z." / "Z.z." suffix.
var collectionNumberPattern = regexp.MustCompile(`(\d{1,4})/(\d{4})(?:\s*Z\.\s*z\.)?`)

// Format renders the full act citation, e.g. "zákon č. 300/2005 Z. z.".
func (c ActCitation) Format() string {
	return fmt.Sprintf("zákon č. %d/%d %s", c.Number, c.Year, collectionSuffix)
}

// CollectionNumber renders the bare "number/year Z. z." reference.
func (c ActCitation) CollectionNumber() string {
	return fmt.Sprintf("%d/%d %s", c.Number, c.Year, collectionSuffix)
}

// FormatProvision renders a provision-level citation such as
// "§ 5 zákona č. 300/2005 Z. z.". The reference is accepted in either
// the canonical "§5" or the display "§ 5" form.
func (c ActCitation) FormatProvision(reference string) string {
	section := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(reference), "§"))
	return fmt.Sprintf("§ %s zákona č. %d/%d %s", section, c.Number, c.Year, collectionSuffix)
}

// Parse extracts the first collection-number reference from text.
func Parse(text string) (ActCitation, error) {
	m := collectionNumberPattern.FindStringSubmatch(text)
	if m == nil {
		return ActCitation{}, fmt.Errorf("citation: no collection number in %q", text)
	}

	number, err := strconv.Atoi(m[1])
	if err != nil {
		return ActCitation{}, fmt.Errorf("citation: bad number in %q: %w", text, err)
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return ActCitation{}, fmt.Errorf("citation: bad year in %q: %w", text, err)
	}

	return ActCitation{Year: year, Number: number}, nil
}
