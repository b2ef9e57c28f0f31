package validator

import "pravaah/internal/domain"

// Rule is a single check over extracted fields. A rule that does not apply
// to the fields leaves no entry in the results.
type Rule interface {
	RuleKey() string
	RuleName() string
	Applies(fields domain.StructuredFields) bool
	Check(fields domain.StructuredFields) domain.CheckResult
}

// Validator runs every registered rule against extracted fields.
type Validator struct {
	registry *Registry
}

// New creates a Validator with the built-in rules for the region.
func New(profile domain.RegionProfile) *Validator {
	r := NewRegistry()
	r.Register(NewTaxIDFormatRule(profile))
	r.Register(NewAmountSanityRule(profile))
	return &Validator{registry: r}
}

// NewWithRegistry creates a Validator over a custom rule set.
func NewWithRegistry(r *Registry) *Validator {
	return &Validator{registry: r}
}

// Validate returns one result per applicable rule, keyed by rule name. A nil
// or empty field set yields an empty, non-nil map.
func (v *Validator) Validate(fields domain.StructuredFields) domain.ValidationResults {
	results := domain.ValidationResults{}
	if len(fields) == 0 {
		return results
	}
	for _, rule := range v.registry.All() {
		if rule.Applies(fields) {
			results[rule.RuleName()] = rule.Check(fields)
		}
	}
	return results
}
