package validator_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"pravaah/internal/domain"
	"pravaah/internal/validator"
)

func newValidator() *validator.Validator {
	return validator.New(domain.India)
}

func TestValidate_GSTIN(t *testing.T) {
	v := newValidator()

	got := v.Validate(domain.StructuredFields{"GSTIN": "22AAAAA0000A1Z5"})
	assert.Equal(t, domain.CheckOK, got["GSTIN Format"].Outcome)
	assert.Len(t, got, 1)

	got = v.Validate(domain.StructuredFields{"GSTIN": "bad"})
	assert.Equal(t, domain.CheckInvalid, got["GSTIN Format"].Outcome)
	assert.Equal(t, "❌ Invalid", got["GSTIN Format"].String())
}

func TestValidate_GSTINRequiresUppercaseAndZ(t *testing.T) {
	v := newValidator()

	for _, g := range []string{"22aaaaa0000a1z5", "22AAAAA0000A1X5", "22AAAAA0000A0Z5", "22AAAAA0000A1Z"} {
		got := v.Validate(domain.StructuredFields{"GSTIN": g})
		assert.Equal(t, domain.CheckInvalid, got["GSTIN Format"].Outcome, g)
	}
}

func TestValidate_EmptyGSTINSkipped(t *testing.T) {
	v := newValidator()

	got := v.Validate(domain.StructuredFields{"GSTIN": "", "Vendor Name": "Acme"})
	assert.NotContains(t, got, "GSTIN Format")

	got = v.Validate(domain.StructuredFields{"GSTIN": nil, "Vendor Name": "Acme"})
	assert.NotContains(t, got, "GSTIN Format")
}

func TestValidate_AmountSanity(t *testing.T) {
	v := newValidator()

	tests := []struct {
		amount any
		want   domain.CheckOutcome
	}{
		{"50,000.00", domain.CheckOK},
		{"₹ 999,999.99", domain.CheckOK},
		{"Rs. 1,200", domain.CheckOK},
		{json.Number("250.5"), domain.CheckOK},
		{"2000000", domain.CheckInvalid},
		{"1000000", domain.CheckInvalid},
		{"0", domain.CheckInvalid},
		{"-5", domain.CheckInvalid},
		{"abc", domain.CheckUnparseable},
		{"", domain.CheckUnparseable},
	}
	for _, tt := range tests {
		got := v.Validate(domain.StructuredFields{"Total Amount": tt.amount})
		assert.Equal(t, tt.want, got[domain.CheckAmountSanity].Outcome, "amount %v", tt.amount)
	}
}

func TestValidate_AmountMessages(t *testing.T) {
	v := newValidator()

	got := v.Validate(domain.StructuredFields{"Total Amount": "2000000"})
	assert.Equal(t, "❌ Amount seems unusually high or low.", got[domain.CheckAmountSanity].String())

	got = v.Validate(domain.StructuredFields{"Total Amount": "abc"})
	assert.Equal(t, "⚠️ Could not parse amount.", got[domain.CheckAmountSanity].String())
}

func TestValidate_NullAmountSkipped(t *testing.T) {
	v := newValidator()

	got := v.Validate(domain.StructuredFields{"Total Amount": nil})
	assert.Empty(t, got)
}

func TestValidate_NoFields(t *testing.T) {
	v := newValidator()

	got := v.Validate(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, v.Validate(domain.StructuredFields{}))
}

func TestRegistry_ReplaceKeepsOrder(t *testing.T) {
	r := validator.NewRegistry()
	r.Register(validator.NewTaxIDFormatRule(domain.India))
	r.Register(validator.NewAmountSanityRule(domain.India))
	r.Register(validator.NewTaxIDFormatRule(domain.India))

	all := r.All()
	assert.Len(t, all, 2)
	assert.Equal(t, "format.tax_id", all[0].RuleKey())
	assert.NotNil(t, r.Get("range.total_amount"))
	assert.Nil(t, r.Get("missing"))
}
