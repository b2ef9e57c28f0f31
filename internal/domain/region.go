package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// RegionProfile carries the locale conventions the pipeline depends on:
// how amounts are written, which tax identifier is checked and the location
// given to the risk model.
type RegionProfile struct {
	Code string
	// CurrencySymbols are stripped from amounts before parsing. The first one
	// is also used when formatting amounts for prompts.
	CurrencySymbols []string
	TaxIDField      string
	TaxIDCheckName  string
	TaxIDPattern    *regexp.Regexp
	Location        string
	// NumberLocale is a BCP 47 tag used when formatting amounts.
	NumberLocale string
}

// India is the only profile currently shipped.
var India = RegionProfile{
	Code:            "IN",
	CurrencySymbols: []string{"₹", "Rs."},
	TaxIDField:      FieldGSTIN,
	TaxIDCheckName:  "GSTIN Format",
	TaxIDPattern:    regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`),
	Location:        "Nagpur, India",
	NumberLocale:    "en-US",
}

var regions = map[string]RegionProfile{
	India.Code: India,
}

// LookupRegion returns the profile registered under code.
func LookupRegion(code string) (RegionProfile, error) {
	p, ok := regions[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return RegionProfile{}, fmt.Errorf("unknown region profile %q", code)
	}
	return p, nil
}

// CurrencySymbol is the symbol shown in front of formatted amounts.
func (p RegionProfile) CurrencySymbol() string {
	if len(p.CurrencySymbols) == 0 {
		return ""
	}
	return p.CurrencySymbols[0]
}

// StripCurrency removes currency symbols, thousands separators and
// surrounding whitespace from an amount string.
func (p RegionProfile) StripCurrency(s string) string {
	for _, sym := range p.CurrencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	return strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
}
