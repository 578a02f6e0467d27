package extract

import (
	"regexp"
	"strings"

	"github.com/coolbeans/slovlex/pkg/textutil"
)

// bodyMarkerPattern matches the four marker kinds that drive body
// reconstruction: paragraph numbers (odsek), letter markers (pismeno),
// point markers (bod) and terminal text blocks.
var bodyMarkerPattern = regexp.MustCompile(`(?s)<span[^>]*class="[^"]*\b(odsek|pismeno|bod|text)\b[^"]*"[^>]*>(.*?)</span>`)

// reconstructBody rebuilds a provision's text from its marker spans.
//
// Odsek, pismeno and bod markers are prefix markers: their cleaned text
// is buffered and space-joined until a text block arrives, which emits
// one logical line of the buffered prefixes followed by the block's
// cleaned text. When the span carries no marker-based lines at all, the
// whole span is treated as a single cleaned block.
//
// Immediately-adjacent duplicate lines are collapsed afterwards; some
// layouts mark up the same line twice.
func reconstructBody(span string) string {
	var lines []string
	var prefixes []string

	for _, m := range bodyMarkerPattern.FindAllStringSubmatch(span, -1) {
		kind, inner := m[1], m[2]
		cleaned := textutil.NormalizeWhitespace(textutil.CleanFragment(inner))

		if kind != "text" {
			if cleaned != "" {
				prefixes = append(prefixes, cleaned)
			}
			continue
		}

		line := cleaned
		if len(prefixes) > 0 {
			line = strings.Join(prefixes, " ") + " " + cleaned
			prefixes = prefixes[:0]
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) == 0 {
		if fallback := textutil.NormalizeWhitespace(textutil.CleanFragment(span)); fallback != "" {
			lines = append(lines, fallback)
		}
	}

	return strings.Join(collapseAdjacentDuplicates(lines), "\n")
}

// collapseAdjacentDuplicates removes consecutive repeats only; the same
// line reappearing later in the body is kept.
func collapseAdjacentDuplicates(lines []string) []string {
	if len(lines) < 2 {
		return lines
	}

	collapsed := lines[:1]
	for _, line := range lines[1:] {
		if line != collapsed[len(collapsed)-1] {
			collapsed = append(collapsed, line)
		}
	}
	return collapsed
}
