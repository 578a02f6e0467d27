// Package extract recovers the chapter hierarchy, individual provisions
// and term definitions from one version page of a statute.
package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/coolbeans/slovlex/pkg/textutil"
	"github.com/coolbeans/slovlex/pkg/types"
)

// ErrNoRootBlock is returned when the version page carries no "predpis"
// content block, which indicates a page layout the parser does not
// understand.
var ErrNoRootBlock = errors.New("extract: root content block not found")

// rootMarker opens the substantive content block of a version page.
const rootMarker = `id="predpis"`

// truncationMarkers open the annex and notes blocks that follow the
// substantive text. Parsing stops at whichever appears first.
var truncationMarkers = []string{
	`id="prilohy"`,
	`id="poznamky"`,
	`id="dovodova-sprava"`,
}

// minProvisionLength is the minimum reconstructed body length below
// which a provision is discarded as a structural placeholder.
const minProvisionLength = 5

var (
	// provisionStartPattern matches a section-start tag carrying a
	// per-section id, e.g. <div class="paragraf" id="paragraf-5">.
	provisionStartPattern = regexp.MustCompile(`<(?:div|p)[^>]*\bid="paragraf-([0-9]+[a-z]*)"[^>]*>`)

	labelPattern   = regexp.MustCompile(`(?s)<span[^>]*class="[^"]*\boznacenie\b[^"]*"[^>]*>(.*?)</span>`)
	headingPattern = regexp.MustCompile(`(?s)<span[^>]*class="[^"]*\bnadpis\b[^"]*"[^>]*>(.*?)</span>`)

	citationSpanPattern  = regexp.MustCompile(`(?s)<span[^>]*class="[^"]*\bcislo\b[^"]*"[^>]*>(.*?)</span>`)
	bodyTitleSpanPattern = regexp.MustCompile(`(?s)<span[^>]*class="[^"]*\bnazov\b[^"]*"[^>]*>(.*?)</span>`)
	issuedSpanPattern    = regexp.MustCompile(`(?s)<span[^>]*class="[^"]*\bdatum\b[^"]*"[^>]*>(.*?)</span>`)

	// hierarchyCutPattern matches the opening of any hierarchy unit. A
	// provision's span is cut there so a following chapter block does
	// not bleed into its body text.
	hierarchyCutPattern = regexp.MustCompile(`<div[^>]*class="[^"]*\b(cast|hlava|diel|oddiel|skupina-paragrafov)\b`)

	// sectionSignPattern collapses "§ 5" to the canonical "§5" form.
	sectionSignPattern = regexp.MustCompile(`§\s*`)
)

// Document is the parsed result of one version page.
type Document struct {
	// Citation is the collection number from the page header,
	// e.g. "300/2005 Z. z.".
	Citation string

	// BodyTitle is the statute's own title from the page header.
	BodyTitle string

	// Title is the composed title, "Zákon č. <citation> <body title>",
	// or the citation form alone when the header has no body title.
	Title string

	// IssuedDate is the promulgation date from the header (ISO), empty
	// when the header carries none or it cannot be read.
	IssuedDate string

	// Provisions are the extracted sections in document order.
	Provisions []types.ParsedProvision
}

// ParseVersionPage parses one version page's HTML into a Document.
// It fails only when the root content block is missing; a page that
// parses but yields no provisions returns an empty slice, which callers
// treat as an ingestion failure.
func ParseVersionPage(html string) (*Document, error) {
	rootIndex := strings.Index(html, rootMarker)
	if rootIndex < 0 {
		return nil, ErrNoRootBlock
	}
	content := html[rootIndex:]

	cut := len(content)
	for _, marker := range truncationMarkers {
		if i := strings.Index(content, marker); i > 0 && i < cut {
			cut = i
		}
	}
	content = content[:cut]

	doc := &Document{}
	if m := citationSpanPattern.FindStringSubmatch(content); m != nil {
		doc.Citation = textutil.NormalizeWhitespace(textutil.CleanFragment(m[1]))
	}
	if m := bodyTitleSpanPattern.FindStringSubmatch(content); m != nil {
		doc.BodyTitle = textutil.NormalizeWhitespace(textutil.CleanFragment(m[1]))
	}
	if m := issuedSpanPattern.FindStringSubmatch(content); m != nil {
		if iso, ok := textutil.ParseLocalizedDate(textutil.StripTags(m[1])); ok {
			doc.IssuedDate = iso
		}
	}
	doc.Title = composeTitle(doc.Citation, doc.BodyTitle)

	doc.Provisions = extractProvisions(content)
	return doc, nil
}

// composeTitle builds the document title from the header citation and
// body title.
func composeTitle(citation, bodyTitle string) string {
	switch {
	case citation == "":
		return bodyTitle
	case bodyTitle == "":
		return fmt.Sprintf("Zákon č. %s", citation)
	default:
		return fmt.Sprintf("Zákon č. %s %s", citation, bodyTitle)
	}
}

// extractProvisions finds every provision start marker and parses the
// span up to the next marker (or the end of the truncated root block).
func extractProvisions(content string) []types.ParsedProvision {
	starts := provisionStartPattern.FindAllStringSubmatchIndex(content, -1)

	provisions := make([]types.ParsedProvision, 0, len(starts))
	for i, start := range starts {
		spanEnd := len(content)
		if i+1 < len(starts) {
			spanEnd = starts[i+1][0]
		}
		span := content[start[1]:spanEnd]
		sectionID := content[start[2]:start[3]]

		provision, ok := parseProvisionSpan(span, sectionID)
		if !ok {
			continue
		}
		provision.Chapter = chapterLabel(content, start[0])
		provisions = append(provisions, provision)
	}

	return provisions
}

// parseProvisionSpan parses one provision's span. It reports false when
// the reconstructed body is empty or shorter than the minimum length.
func parseProvisionSpan(span, sectionID string) (types.ParsedProvision, bool) {
	// A hierarchy block between this provision and the next belongs to
	// the following chapter, not to this provision's text.
	if loc := hierarchyCutPattern.FindStringIndex(span); loc != nil {
		span = span[:loc[0]]
	}

	label := ""
	if m := labelPattern.FindStringSubmatch(span); m != nil {
		label = textutil.NormalizeWhitespace(textutil.CleanFragment(m[1]))
	}
	if label == "" {
		label = "§ " + sectionID
	}

	reference := sectionSignPattern.ReplaceAllString(label, "§")
	section := strings.TrimPrefix(reference, "§")

	title := label
	if m := headingPattern.FindStringSubmatch(span); m != nil {
		if heading := textutil.NormalizeWhitespace(textutil.CleanFragment(m[1])); heading != "" {
			title = heading
		}
	}

	body := reconstructBody(stripLabelBlocks(span))
	if utf8.RuneCountInString(body) < minProvisionLength {
		return types.ParsedProvision{}, false
	}

	return types.ParsedProvision{
		Reference: reference,
		Section:   section,
		Title:     title,
		Content:   body,
	}, true
}

// stripLabelBlocks removes the label and heading sub-blocks from a span
// so they do not reappear inside the reconstructed body text.
func stripLabelBlocks(span string) string {
	stripped := labelPattern.ReplaceAllString(span, "")
	return headingPattern.ReplaceAllString(stripped, "")
}
