package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/darshana-perera-97/desktop-crud-exe/internal/model"
)

var nonAlpha = regexp.MustCompile(`[^A-Za-z]`)

// GenerateRegID derives the human-readable registration tag from the region
// and GS division: two letters of each label (value as fallback, then a fixed
// placeholder), plus the last five digits of the millisecond timestamp.
// Example: "NO-CO-12345".
//
// This is a display tag, not a key — collisions are possible and accepted;
// only the NIC carries a uniqueness rule.
func GenerateRegID(region, gsDivision *model.Option, now time.Time) string {
	regionPart := initials(optionText(region, "RG"))
	gsPart := initials(optionText(gsDivision, "GS"))
	sequence := lastDigits(now.UnixMilli(), 5)
	return fmt.Sprintf("%s-%s-%s", regionPart, gsPart, sequence)
}

// initials strips non-alphabetic characters, truncates to two characters,
// uppercases, and right-pads with 'X' to exactly two.
func initials(text string) string {
	cleaned := nonAlpha.ReplaceAllString(text, "")
	if len(cleaned) > 2 {
		cleaned = cleaned[:2]
	}
	cleaned = strings.ToUpper(cleaned)
	for len(cleaned) < 2 {
		cleaned += "X"
	}
	return cleaned
}

func optionText(o *model.Option, fallback string) string {
	if o == nil {
		return fallback
	}
	if o.Label != "" {
		return o.Label
	}
	if o.Value != "" {
		return o.Value
	}
	return fallback
}

func lastDigits(n int64, count int) string {
	s := strconv.FormatInt(n, 10)
	if len(s) > count {
		s = s[len(s)-count:]
	}
	// Pads only in the pathological case of a tiny clock value (tests with a
	// fixed epoch-adjacent time).
	for len(s) < count {
		s = "0" + s
	}
	return s
}
