package extract

import (
	"regexp"
	"strings"

	"github.com/coolbeans/slovlex/pkg/textutil"
)

// chapterLookbackWindow bounds how far back from a provision's start the
// hierarchy scan reaches. A unit announced more than this many
// characters earlier does not label the provision.
const chapterLookbackWindow = 15000

// chapterSeparator joins hierarchy contributions into the chapter path.
const chapterSeparator = " / "

// hierarchyUnit is one hierarchy kind with its block pattern. Units are
// scanned in fixed order from broadest to narrowest.
type hierarchyUnit struct {
	kind    string
	pattern *regexp.Regexp
}

func unitPattern(class string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)<div[^>]*class="[^"]*\b` + class + `\b[^"]*"[^>]*>(.*?)</div>`)
}

// hierarchyUnits lists part, title, division, subdivision and
// paragraph-group blocks, broadest first.
var hierarchyUnits = []hierarchyUnit{
	{"cast", unitPattern("cast")},
	{"hlava", unitPattern("hlava")},
	{"diel", unitPattern("diel")},
	{"oddiel", unitPattern("oddiel")},
	{"skupina-paragrafov", unitPattern("skupina-paragrafov")},
}

// chapterLabel builds the hierarchy path for a provision starting at
// position start within the truncated root block. For each unit kind the
// last occurrence inside the bounded lookback window contributes its
// label plus optional heading; contributions join broad to narrow.
// Absence of all units yields an empty label.
func chapterLabel(content string, start int) string {
	windowStart := start - chapterLookbackWindow
	if windowStart < 0 {
		windowStart = 0
	}
	window := content[windowStart:start]

	var parts []string
	for _, unit := range hierarchyUnits {
		matches := unit.pattern.FindAllStringSubmatch(window, -1)
		if len(matches) == 0 {
			continue
		}
		if contribution := unitContribution(matches[len(matches)-1][1]); contribution != "" {
			parts = append(parts, contribution)
		}
	}

	return strings.Join(parts, chapterSeparator)
}

// unitContribution merges a unit block's label and optional heading text.
func unitContribution(inner string) string {
	label := ""
	if m := labelPattern.FindStringSubmatch(inner); m != nil {
		label = textutil.CleanFragment(m[1])
	}
	heading := ""
	if m := headingPattern.FindStringSubmatch(inner); m != nil {
		heading = textutil.CleanFragment(m[1])
	}

	if label == "" && heading == "" {
		return textutil.NormalizeWhitespace(textutil.CleanFragment(inner))
	}
	return textutil.NormalizeWhitespace(label + " " + heading)
}
