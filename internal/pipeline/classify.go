package pipeline

import (
	"strings"

	"pravaah/internal/domain"
)

// DefaultConfidenceThreshold routes anything classified below it to review.
const DefaultConfidenceThreshold = 0.80

type classificationRule struct {
	matches func(lower string) bool
	result  domain.ClassificationResult
}

func allOf(phrases ...string) func(string) bool {
	return func(lower string) bool {
		for _, p := range phrases {
			if !strings.Contains(lower, p) {
				return false
			}
		}
		return true
	}
}

func anyOf(phrases ...string) func(string) bool {
	return func(lower string) bool {
		for _, p := range phrases {
			if strings.Contains(lower, p) {
				return true
			}
		}
		return false
	}
}

// classificationRules is evaluated top to bottom and the first match wins.
// The order is part of the behavior: do not sort it.
var classificationRules = []classificationRule{
	{allOf("invoice number", "total amount"), domain.ClassificationResult{DocumentType: domain.DocTypeInvoice, Confidence: 0.98}},
	{allOf("claim form", "policy number"), domain.ClassificationResult{DocumentType: domain.DocTypeClaimForm, Confidence: 0.97}},
	{allOf("inspection report", "vehicle details"), domain.ClassificationResult{DocumentType: domain.DocTypeInspectionReport, Confidence: 0.96}},
	{anyOf("invoice", "bill"), domain.ClassificationResult{DocumentType: domain.DocTypeInvoice, Confidence: 0.85}},
	{anyOf("claim"), domain.ClassificationResult{DocumentType: domain.DocTypeClaimForm, Confidence: 0.82}},
	{anyOf("inspection report", "vehicle inspection"), domain.ClassificationResult{DocumentType: domain.DocTypeInspectionReport, Confidence: 0.86}},
}

var unknownDocument = domain.ClassificationResult{DocumentType: domain.DocTypeUnknown, Confidence: 0.40}

// Classify assigns a document type by case-insensitive keyword rules.
func Classify(text string) domain.ClassificationResult {
	lower := strings.ToLower(text)
	for _, r := range classificationRules {
		if r.matches(lower) {
			return r.result
		}
	}
	return unknownDocument
}
