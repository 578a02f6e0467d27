package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/coolbeans/slovlex/pkg/textutil"
	"github.com/coolbeans/slovlex/pkg/types"
)

// headingMarkers signal a definitions section by provision heading.
var headingMarkers = []string{
	"vymedzenie pojmov",
	"základné pojmy",
}

// bodyPhrases signal a definitions section by body text ("for the
// purposes of this act ... means / are understood as").
var bodyPhrases = []string{
	"na účely tohto zákona sa rozumie",
	"na účely tohto zákona sa rozumejú",
}

// termSeparators end the term portion of a definition line. The earliest
// occurrence wins.
var termSeparators = []string{
	",",
	";",
	" je ",
	" sú ",
	" sa rozumie",
	" sa považuje",
	" ktorý",
	" ktorá",
	" ktoré",
}

const (
	// minDefinitionLength is the minimum candidate definition length
	// after whitespace normalization.
	minDefinitionLength = 12

	minTermLength = 2
	maxTermLength = 140
)

// letterLinePattern matches a leading "letter) " marker: a single letter
// followed by a closing parenthesis and whitespace.
var letterLinePattern = regexp.MustCompile(`^\p{L}\)\s+(.+)$`)

// MineDefinitions scans definition-like provisions for term/definition
// pairs. Pairs are deduplicated by (provision reference, lowercased
// term) within the document; the first occurrence wins.
func MineDefinitions(provisions []types.ParsedProvision) []types.ParsedDefinition {
	var definitions []types.ParsedDefinition
	seen := make(map[string]bool)

	for _, provision := range provisions {
		if !isDefinitionLike(provision) {
			continue
		}

		for _, line := range strings.Split(provision.Content, "\n") {
			m := letterLinePattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			definition := textutil.NormalizeWhitespace(m[1])
			if utf8.RuneCountInString(definition) < minDefinitionLength {
				continue
			}

			term := termOf(definition)
			termLength := utf8.RuneCountInString(term)
			if termLength < minTermLength || termLength > maxTermLength {
				continue
			}

			key := provision.Reference + "\x00" + strings.ToLower(term)
			if seen[key] {
				continue
			}
			seen[key] = true

			definitions = append(definitions, types.ParsedDefinition{
				ProvisionRef: provision.Reference,
				Term:         term,
				Definition:   definition,
			})
		}
	}

	return definitions
}

// isDefinitionLike reports whether a provision's heading or body signals
// a definitions section. Matching is case-insensitive.
func isDefinitionLike(provision types.ParsedProvision) bool {
	title := strings.ToLower(provision.Title)
	for _, marker := range headingMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}

	body := strings.ToLower(provision.Content)
	for _, phrase := range bodyPhrases {
		if strings.Contains(body, phrase) {
			return true
		}
	}
	return false
}

// termOf takes the text up to the first separator occurrence and
// normalizes it. Without any separator the whole text is the term, which
// the length bounds then usually reject.
func termOf(definition string) string {
	cut := len(definition)
	for _, separator := range termSeparators {
		if i := strings.Index(definition, separator); i >= 0 && i < cut {
			cut = i
		}
	}
	return textutil.NormalizeWhitespace(definition[:cut])
}
