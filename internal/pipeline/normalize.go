package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"pravaah/internal/domain"
)

// AmountNormalizer appends a canonical "TOTAL AMOUNT: <value>" line for the
// first labeled amount found in OCR text, so the classifier and the
// extraction prompt see a consistent marker.
type AmountNormalizer struct {
	pattern *regexp.Regexp
}

// NewAmountNormalizer builds a normalizer for the region's currency symbols.
// Only single-character symbols can sit between the label and the value.
func NewAmountNormalizer(profile domain.RegionProfile) *AmountNormalizer {
	var class strings.Builder
	class.WriteString(`\s:`)
	for _, sym := range profile.CurrencySymbols {
		if utf8.RuneCountInString(sym) == 1 {
			class.WriteString(regexp.QuoteMeta(sym))
		}
	}
	pattern := `(?i)(total|amount|total amount|net amount)[` + class.String() + `]*([\d,]+\.\d{2})`
	return &AmountNormalizer{pattern: regexp.MustCompile(pattern)}
}

// Normalize returns text with the marker line appended, or text unchanged
// when no labeled amount is present.
func (n *AmountNormalizer) Normalize(text string) string {
	m := n.pattern.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	return text + "\nTOTAL AMOUNT: " + m[2] + "\n"
}
