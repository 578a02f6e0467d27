package textutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// localizedDatePattern matches "2. októbra 2005" style dates: day, dot,
// genitive month name, four-digit year.
var localizedDatePattern = regexp.MustCompile(`(\d{1,2})\.\s*([\p{L}]+)\s+(\d{4})`)

// slovakMonths maps genitive Slovak month names to two-digit month
// numbers. Source pages are inconsistent about diacritics, so both the
// accented and unaccented spellings map to the same month.
var slovakMonths = map[string]string{
	"januára":    "01",
	"januara":    "01",
	"februára":   "02",
	"februara":   "02",
	"marca":      "03",
	"apríla":     "04",
	"aprila":     "04",
	"mája":       "05",
	"maja":       "05",
	"júna":       "06",
	"juna":       "06",
	"júla":       "07",
	"jula":       "07",
	"augusta":    "08",
	"septembra":  "09",
	"októbra":    "10",
	"oktobra":    "10",
	"novembra":   "11",
	"decembra":   "12",
}

// ParseLocalizedDate converts a Slovak "day. month-name year" phrase to
// an ISO YYYY-MM-DD date. It returns false when no date is present or
// the month name is unrecognized.
func ParseLocalizedDate(text string) (string, bool) {
	m := localizedDatePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	month, ok := slovakMonths[strings.ToLower(m[2])]
	if !ok {
		return "", false
	}

	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return "", false
	}

	return fmt.Sprintf("%s-%s-%02d", m[3], month, day), true
}
