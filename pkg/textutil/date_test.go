package textutil

import "testing"

func TestParseLocalizedDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"accented month", "z 2. októbra 2005", "2005-10-02", true},
		{"unaccented month", "z 2. oktobra 2005", "2005-10-02", true},
		{"zero-padded day", "1. januára 2020", "2020-01-01", true},
		{"two-digit day", "31. decembra 1999", "1999-12-31", true},
		{"embedded in sentence", "Zákon z 25. mája 2018 o ochrane", "2018-05-25", true},
		{"unknown month", "3. brumaire 2005", "", false},
		{"no date at all", "Trestný zákon", "", false},
		{"day out of range", "99. januára 2020", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLocalizedDate(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseLocalizedDate(%q) = (%q, %v), want (%q, %v)",
					tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseLocalizedDate_AccentVariantsAgree(t *testing.T) {
	pairs := [][2]string{
		{"5. februára 2021", "5. februara 2021"},
		{"9. júla 2019", "9. jula 2019"},
		{"15. apríla 2010", "15. aprila 2010"},
		{"20. mája 2015", "20. maja 2015"},
		{"30. júna 2012", "30. juna 2012"},
	}

	for _, pair := range pairs {
		accented, okA := ParseLocalizedDate(pair[0])
		plain, okP := ParseLocalizedDate(pair[1])
		if !okA || !okP || accented != plain {
			t.Errorf("accent variants disagree: %q -> (%q,%v), %q -> (%q,%v)",
				pair[0], accented, okA, pair[1], plain, okP)
		}
	}
}
