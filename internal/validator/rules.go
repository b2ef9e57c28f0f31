package validator

import (
	"regexp"
	"strconv"

	"pravaah/internal/domain"
)

// Amount bounds, exclusive on both ends.
const (
	minSaneAmount = 0
	maxSaneAmount = 1_000_000
)

type taxIDFormatRule struct {
	field   string
	name    string
	pattern *regexp.Regexp
}

// NewTaxIDFormatRule checks the region's tax identifier (GSTIN for India)
// against its fixed format. It runs only when the field is non-empty.
func NewTaxIDFormatRule(profile domain.RegionProfile) Rule {
	return &taxIDFormatRule{
		field:   profile.TaxIDField,
		name:    profile.TaxIDCheckName,
		pattern: profile.TaxIDPattern,
	}
}

func (r *taxIDFormatRule) RuleKey() string  { return "format.tax_id" }
func (r *taxIDFormatRule) RuleName() string { return r.name }

func (r *taxIDFormatRule) Applies(fields domain.StructuredFields) bool {
	v, ok := fields.Text(r.field)
	return ok && v != ""
}

func (r *taxIDFormatRule) Check(fields domain.StructuredFields) domain.CheckResult {
	v, _ := fields.Text(r.field)
	if r.pattern.MatchString(v) {
		return domain.CheckResult{Outcome: domain.CheckOK}
	}
	return domain.CheckResult{Outcome: domain.CheckInvalid, Message: "Invalid"}
}

type amountSanityRule struct {
	profile domain.RegionProfile
}

// NewAmountSanityRule checks that the total amount parses and lies strictly
// between 0 and 1,000,000.
func NewAmountSanityRule(profile domain.RegionProfile) Rule {
	return &amountSanityRule{profile: profile}
}

func (r *amountSanityRule) RuleKey() string  { return "range.total_amount" }
func (r *amountSanityRule) RuleName() string { return domain.CheckAmountSanity }

func (r *amountSanityRule) Applies(fields domain.StructuredFields) bool {
	return fields.Present(domain.FieldTotalAmount)
}

func (r *amountSanityRule) Check(fields domain.StructuredFields) domain.CheckResult {
	v, _ := fields.Text(domain.FieldTotalAmount)
	amount, err := strconv.ParseFloat(r.profile.StripCurrency(v), 64)
	if err != nil {
		return domain.CheckResult{Outcome: domain.CheckUnparseable, Message: "Could not parse amount."}
	}
	if amount > minSaneAmount && amount < maxSaneAmount {
		return domain.CheckResult{Outcome: domain.CheckOK}
	}
	return domain.CheckResult{Outcome: domain.CheckInvalid, Message: "Amount seems unusually high or low."}
}
