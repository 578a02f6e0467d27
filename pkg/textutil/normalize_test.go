package textutil

import (
	"strings"
	"testing"
)

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"named basics", "a&nbsp;b &amp; c", "a\u00a0b & c"},
		{"quotes and brackets", "&quot;x&quot; &lt;y&gt; &apos;z&apos;", `"x" <y> 'z'`},
		{"dashes and ellipsis", "a&ndash;b&mdash;c&hellip;", "a–b—c…"},
		{"decimal numeric", "&#167; 5", "§ 5"},
		{"hex numeric", "&#xA7; 5", "§ 5"},
		{"unknown entity untouched", "&zzz; stays", "&zzz; stays"},
		{"numeric before named", "&amp;#39;", "&#39;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeEntities(tt.input); got != tt.want {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeEntities_EscapedEntitiesSurvive(t *testing.T) {
	// "&amp;nbsp;" is escaped text, not a non-breaking space; a second
	// decode pass must never happen, on any call.
	input := "&amp;nbsp; &amp;quot;"
	want := "&nbsp; &quot;"
	for i := 0; i < 200; i++ {
		if got := DecodeEntities(input); got != want {
			t.Fatalf("DecodeEntities(%q) = %q on call %d, want %q", input, got, i, want)
		}
	}
}

func TestStripTags(t *testing.T) {
	input := `<p>prvý<br>druhý<br />tretí</p>&nbsp;koniec`
	got := StripTags(input)
	want := "prvý\ndruhý\ntretí koniec"
	if got != want {
		t.Errorf("StripTags = %q, want %q", got, want)
	}
}

func TestStripTags_NonBreakingSpaceCharacter(t *testing.T) {
	got := StripTags("a\u00a0b")
	if got != "a b" {
		t.Errorf("StripTags = %q, want %q", got, "a b")
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	got := NormalizeWhitespace("  viac \t slov\n tu  ")
	if got != "viac slov tu" {
		t.Errorf("NormalizeWhitespace = %q, want %q", got, "viac slov tu")
	}
}

func TestCleanFragment_RemovesReferencesBeforeStripping(t *testing.T) {
	// The footnote numeral inside the reference link and the superscript
	// marker must not leak into the cleaned text.
	input := `text zákona<a class="odkaz" href="/poznamka/1">1)</a> pokračuje<sup>2</sup> ďalej`
	got := CleanFragment(input)
	want := "text zákona pokračuje ďalej"
	if got != want {
		t.Errorf("CleanFragment = %q, want %q", got, want)
	}
}

func TestCleanFragment_KeepsOrdinaryLinks(t *testing.T) {
	input := `pozri <a href="/SK/ZZ/2005/300/">zákon</a>`
	got := CleanFragment(input)
	if !strings.Contains(got, "zákon") {
		t.Errorf("CleanFragment dropped ordinary link text: %q", got)
	}
}

func TestCleanFragment_Idempotent(t *testing.T) {
	// Reprocessing already-clean text must yield the same string.
	clean := CleanFragment(`<span class="text">Na účely tohto zákona sa rozumie…</span>`)
	if again := CleanFragment(clean); again != clean {
		t.Errorf("CleanFragment not idempotent: %q != %q", again, clean)
	}
}
