// Package query provides an in-memory full-text search over ingested
// acts with diacritic-insensitive matching, since users search Slovak
// legal text with and without diacritics interchangeably.
package query

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/coolbeans/slovlex/pkg/types"
)

// foldTransformer strips combining marks: NFD decomposition, mark
// removal, NFC recomposition.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lowercases text and removes diacritics, so "zákon" and "zakon"
// compare equal.
func Fold(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// document is one indexed provision.
type document struct {
	lawID     string
	lawTitle  string
	provision types.ParsedProvision
	folded    string
}

// Hit is one search result.
type Hit struct {
	LawID     string `json:"law_id"`
	LawTitle  string `json:"law_title"`
	Reference string `json:"reference"`
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	Score     int    `json:"score"`
}

// Index is an immutable full-text index over a set of acts.
type Index struct {
	documents []document
}

// NewIndex indexes every provision of every act, in document order.
func NewIndex(acts []types.ParsedAct) *Index {
	index := &Index{}
	for _, act := range acts {
		for _, provision := range act.Provisions {
			index.documents = append(index.documents, document{
				lawID:     act.LawID,
				lawTitle:  act.Title,
				provision: provision,
				folded:    Fold(provision.Title + "\n" + provision.Content),
			})
		}
	}
	return index
}

// Search returns provisions matching every term of the query, ranked by
// total occurrence count. lawID, when non-empty, scopes the search to
// one law. limit <= 0 means no limit.
func (ix *Index) Search(queryText, lawID string, limit int) []Hit {
	terms := strings.Fields(Fold(queryText))
	if len(terms) == 0 {
		return nil
	}

	var hits []Hit
	for _, doc := range ix.documents {
		if lawID != "" && doc.lawID != lawID {
			continue
		}

		score := 0
		matched := true
		for _, term := range terms {
			count := strings.Count(doc.folded, term)
			if count == 0 {
				matched = false
				break
			}
			score += count
		}
		if !matched {
			continue
		}

		hits = append(hits, Hit{
			LawID:     doc.lawID,
			LawTitle:  doc.lawTitle,
			Reference: doc.provision.Reference,
			Title:     doc.provision.Title,
			Snippet:   snippet(doc.provision.Content, terms[0]),
			Score:     score,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// snippet returns the first body line containing the term, or the first
// line as a fallback.
func snippet(content, foldedTerm string) string {
	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if strings.Contains(Fold(line), foldedTerm) {
			return line
		}
	}
	return lines[0]
}
