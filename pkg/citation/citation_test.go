package citation

import "testing"

func TestActCitation_Format(t *testing.T) {
	c := ActCitation{Year: 2005, Number: 300}

	if got := c.Format(); got != "zákon č. 300/2005 Z. z." {
		t.Errorf("Format = %q", got)
	}
	if got := c.CollectionNumber(); got != "300/2005 Z. z." {
		t.Errorf("CollectionNumber = %q", got)
	}
}

func TestActCitation_FormatProvision(t *testing.T) {
	c := ActCitation{Year: 2005, Number: 300}

	tests := []struct {
		reference string
		want      string
	}{
		{"§5", "§ 5 zákona č. 300/2005 Z. z."},
		{"§ 5", "§ 5 zákona č. 300/2005 Z. z."},
		{"§12a", "§ 12a zákona č. 300/2005 Z. z."},
	}
	for _, tt := range tests {
		if got := c.FormatProvision(tt.reference); got != tt.want {
			t.Errorf("FormatProvision(%q) = %q, want %q", tt.reference, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ActCitation
		ok    bool
	}{
		{"bare number", "300/2005", ActCitation{Year: 2005, Number: 300}, true},
		{"with suffix", "300/2005 Z. z.", ActCitation{Year: 2005, Number: 300}, true},
		{"tight suffix", "18/2018 Z.z.", ActCitation{Year: 2018, Number: 18}, true},
		{"inside sentence", "podľa zákona č. 40/1964 Zb. a zákona 18/2018 Z. z.", ActCitation{Year: 1964, Number: 40}, true},
		{"no citation", "žiadny odkaz", ActCitation{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err == nil) != tt.ok {
				t.Fatalf("Parse(%q) error = %v, ok = %v", tt.input, err, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}
