// Package textutil provides the text and date normalization primitives
// used throughout the extraction pipeline. All functions are pure.
package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// numericEntityPattern matches decimal (&#8211;) and hexadecimal
	// (&#x2013;) character references.
	numericEntityPattern = regexp.MustCompile(`&#(x|X)?([0-9a-fA-F]+);`)

	// brPattern matches <br>, <br/> and <br /> in any casing.
	brPattern = regexp.MustCompile(`(?i)<br\s*/?>`)

	// tagPattern matches any remaining markup tag.
	tagPattern = regexp.MustCompile(`<[^>]*>`)

	// referenceLinkPattern matches inline citation-reference links that
	// carry footnote numerals, e.g. <a class="odkaz" href="...">1)</a>.
	referenceLinkPattern = regexp.MustCompile(`(?s)<a[^>]*class="[^"]*odkaz[^"]*"[^>]*>.*?</a>`)

	// superscriptPattern matches superscript footnote markers.
	superscriptPattern = regexp.MustCompile(`(?s)<sup[^>]*>.*?</sup>`)

	// whitespaceRunPattern matches any run of whitespace.
	whitespaceRunPattern = regexp.MustCompile(`\s+`)
)

// namedEntityReplacer rewrites the named character references that
// appear in the portal's pages. A single left-to-right pass keeps the
// result deterministic: "&amp;quot;" decodes to the literal text
// "&quot;" and is never decoded a second time.
var namedEntityReplacer = strings.NewReplacer(
	"&nbsp;", "\u00a0",
	"&amp;", "&",
	"&quot;", `"`,
	"&apos;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&ndash;", "–",
	"&mdash;", "—",
	"&hellip;", "…",
	"&sect;", "§",
	"&laquo;", "«",
	"&raquo;", "»",
)

// DecodeEntities replaces named and numeric HTML character references
// with their characters. Numeric references are decoded first so that a
// literal "&amp;#39;" survives as "&#39;" text rather than double-decoding.
func DecodeEntities(text string) string {
	decoded := numericEntityPattern.ReplaceAllStringFunc(text, func(entity string) string {
		m := numericEntityPattern.FindStringSubmatch(entity)
		base := 10
		if m[1] != "" {
			base = 16
		}
		code, err := strconv.ParseInt(m[2], base, 32)
		if err != nil || code <= 0 {
			return entity
		}
		return string(rune(code))
	})

	return namedEntityReplacer.Replace(decoded)
}

// StripTags converts <br> tags to newlines, removes all other markup,
// decodes entities and collapses non-breaking spaces to regular spaces.
func StripTags(text string) string {
	stripped := brPattern.ReplaceAllString(text, "\n")
	stripped = tagPattern.ReplaceAllString(stripped, "")
	stripped = DecodeEntities(stripped)
	return strings.ReplaceAll(stripped, "\u00a0", " ")
}

// NormalizeWhitespace collapses any run of whitespace to a single space
// and trims the result.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRunPattern.ReplaceAllString(text, " "))
}

// CleanFragment strips citation-reference links and superscript footnote
// markers before generic tag stripping. The order matters: the footnote
// numerals live inside those elements and would survive a plain StripTags
// and pollute provision text.
func CleanFragment(html string) string {
	cleaned := referenceLinkPattern.ReplaceAllString(html, "")
	cleaned = superscriptPattern.ReplaceAllString(cleaned, "")
	return StripTags(cleaned)
}
