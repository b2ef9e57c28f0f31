package domain

import "strings"

// DocumentType is the classifier's verdict on what kind of document was uploaded.
type DocumentType string

const (
	DocTypeInvoice          DocumentType = "Invoice"
	DocTypeClaimForm        DocumentType = "Claim Form"
	DocTypeInspectionReport DocumentType = "Inspection Report"
	DocTypeUnknown          DocumentType = "Unknown Document"
)

// DocumentTypes lists every document type in display order.
var DocumentTypes = []DocumentType{
	DocTypeInvoice,
	DocTypeClaimForm,
	DocTypeInspectionReport,
	DocTypeUnknown,
}

// ParseDocumentType resolves a human-supplied type name, ignoring case and
// surrounding whitespace.
func ParseDocumentType(s string) (DocumentType, error) {
	s = strings.TrimSpace(s)
	for _, t := range DocumentTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", ErrInvalidDocumentType
}

// HasSchema reports whether structured fields are extracted for this type.
func (t DocumentType) HasSchema() bool {
	return t == DocTypeInvoice || t == DocTypeInspectionReport
}

// ProcessingStatus is the terminal status reported for a processed upload.
type ProcessingStatus string

const (
	StatusSentToReview       ProcessingStatus = "Sent to Review Queue"
	StatusProcessingComplete ProcessingStatus = "Processing Complete"
)

// CheckOutcome is the tri-state result of a single validation check.
type CheckOutcome string

const (
	CheckOK          CheckOutcome = "ok"
	CheckInvalid     CheckOutcome = "invalid"
	CheckUnparseable CheckOutcome = "unparseable"
)

// RiskLabel classifies how plausible an invoice amount is.
type RiskLabel string

const (
	RiskReasonable       RiskLabel = "Reasonable"
	RiskSuspiciouslyHigh RiskLabel = "Suspiciously High"
	RiskPotentiallyLow   RiskLabel = "Potentially Low"

	// Sentinel outcomes that never came from a model verdict.
	RiskInsufficientData RiskLabel = "Insufficient Data"
	RiskAnalysisError    RiskLabel = "Analysis Error"
	RiskUnrecognized     RiskLabel = "Unrecognized"
)

// RiskVerdicts are the labels a model is allowed to answer with, each with
// the marker it is displayed with.
var RiskVerdicts = []struct {
	Label  RiskLabel
	Marker string
}{
	{RiskReasonable, "✅"},
	{RiskSuspiciouslyHigh, "⚠️"},
	{RiskPotentiallyLow, "❓"},
}

// Structured field names shared by the prompts, the validator and the log.
const (
	FieldInvoiceNumber = "Invoice Number"
	FieldVendorName    = "Vendor Name"
	FieldInvoiceDate   = "Invoice Date"
	FieldTotalAmount   = "Total Amount"
	FieldGSTIN         = "GSTIN"

	FieldReportID        = "Report ID"
	FieldPolicyNumber    = "Policy Number"
	FieldMake            = "Make"
	FieldModel           = "Model"
	FieldRegistrationNo  = "Registration No"
	FieldVIN             = "VIN"
	FieldDamagesObserved = "Damages Observed"
)

// CheckAmountSanity is the name of the total-amount range check.
const CheckAmountSanity = "Amount Sanity Check"
