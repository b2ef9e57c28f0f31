package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ClassificationResult pairs a document type with the fixed confidence of the
// rule that produced it.
type ClassificationResult struct {
	DocumentType DocumentType `json:"doc_type"`
	Confidence   float64      `json:"confidence"`
}

// StructuredFields holds the fields a model extracted, keyed by field name.
// Values are strings, json.Number, []any or nil.
type StructuredFields map[string]any

// Present reports whether key exists with a non-null value.
func (f StructuredFields) Present(key string) bool {
	v, ok := f[key]
	return ok && v != nil
}

// Text renders a field as a string. It returns false when the field is
// absent or null.
func (f StructuredFields) Text(key string) (string, bool) {
	v, ok := f[key]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprint(t), true
	}
}

// CheckResult is the outcome of one validation check.
type CheckResult struct {
	Outcome CheckOutcome
	Message string
}

// String renders the result the way clients display it.
func (r CheckResult) String() string {
	switch r.Outcome {
	case CheckOK:
		return "✅ OK"
	case CheckInvalid:
		if r.Message == "" {
			return "❌ Invalid"
		}
		return "❌ " + r.Message
	default:
		return "⚠️ " + r.Message
	}
}

// MarshalJSON encodes the result as its display string.
func (r CheckResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// ValidationResults maps a check name to its outcome.
type ValidationResults map[string]CheckResult

// RiskAnalysis is the verdict on whether an invoice amount is plausible.
// Raw is the trimmed model response, empty for sentinel outcomes.
type RiskAnalysis struct {
	Label         RiskLabel
	Justification string
	Raw           string
}

// String renders the verdict for clients. Model verdicts are shown as the
// model wrote them.
func (r RiskAnalysis) String() string {
	switch r.Label {
	case RiskInsufficientData:
		return "N/A - Insufficient data for analysis."
	case RiskAnalysisError:
		return "Error: Could not perform AI analysis."
	case RiskUnrecognized:
		return "Unrecognized - " + r.Raw
	default:
		if r.Raw != "" {
			return r.Raw
		}
		return strings.TrimSpace(string(r.Label) + " - " + r.Justification)
	}
}

// MarshalJSON encodes the verdict as its display string.
func (r RiskAnalysis) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// ProcessingResult is returned for every upload that completes the pipeline.
// The extraction fields stay nil when the document was routed to review.
type ProcessingResult struct {
	Filename          string            `json:"filename"`
	OCRText           string            `json:"ocr_text"`
	DocType           DocumentType      `json:"doc_type"`
	Confidence        float64           `json:"confidence"`
	Status            ProcessingStatus  `json:"status"`
	ExtractedData     StructuredFields  `json:"extracted_data"`
	ValidationResults ValidationResults `json:"validation_results"`
	RiskAnalysis      *RiskAnalysis     `json:"risk_analysis"`
}

// ResolutionResult is returned after a reviewer resolves a queued document.
// Removed is how many queue rows matched the resolved filename.
type ResolutionResult struct {
	Status        string           `json:"status"`
	ExtractedData StructuredFields `json:"extracted_data"`
	Removed       int              `json:"removed"`
}

// LogRecord is the append-only summary written for each extracted document.
type LogRecord struct {
	ID          string       `json:"id" db:"id" bson:"_id"`
	Timestamp   time.Time    `json:"timestamp" db:"logged_at" bson:"timestamp"`
	DocType     DocumentType `json:"doc_type" db:"doc_type" bson:"doc_type"`
	VendorName  string       `json:"vendor_name" db:"vendor_name" bson:"vendor_name"`
	TotalAmount float64      `json:"total_amount" db:"total_amount" bson:"total_amount"`
	InvoiceDate string       `json:"invoice_date" db:"invoice_date" bson:"invoice_date"`
}

// NotAvailable stands in for fields the model did not return.
const NotAvailable = "N/A"

// NewLogRecord summarizes extracted fields. An amount that cannot be parsed
// after dropping thousands separators is recorded as 0.
func NewLogRecord(docType DocumentType, fields StructuredFields, now time.Time) LogRecord {
	rec := LogRecord{
		ID:          uuid.New().String(),
		Timestamp:   now.UTC(),
		DocType:     docType,
		VendorName:  NotAvailable,
		InvoiceDate: NotAvailable,
	}
	if v, ok := fields.Text(FieldVendorName); ok {
		rec.VendorName = v
	}
	if v, ok := fields.Text(FieldInvoiceDate); ok {
		rec.InvoiceDate = v
	}
	if v, ok := fields.Text(FieldTotalAmount); ok {
		amount, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(v, ",", "")), 64)
		if err == nil && !math.IsNaN(amount) && !math.IsInf(amount, 0) {
			rec.TotalAmount = amount
		}
	}
	return rec
}

// ReviewQueueEntry is one document awaiting a human decision on its type.
// ArchiveKey locates the archived upload when archiving is enabled; it is
// never sent to clients, FileURL is.
type ReviewQueueEntry struct {
	Filename   string       `json:"filename"`
	AIGuess    DocumentType `json:"ai_guess"`
	Confidence string       `json:"confidence"`
	ArchiveKey string       `json:"-"`
	FileURL    string       `json:"file_url,omitempty"`
}

// FormatConfidence renders a confidence as a whole percentage, e.g. "85%".
func FormatConfidence(c float64) string {
	return fmt.Sprintf("%.0f%%", c*100)
}

// DashboardKPIs are the headline totals across all log records.
type DashboardKPIs struct {
	TotalDocs     int     `json:"total_docs"`
	TotalInvoices int     `json:"total_invoices"`
	TotalValue    float64 `json:"total_value"`
}

// DashboardCharts carries the chart series.
type DashboardCharts struct {
	DocDistribution map[DocumentType]int `json:"doc_distribution"`
	TopVendors      map[string]float64   `json:"top_vendors"`
}

// Dashboard aggregates the log store. A nil KPIs/Charts pair encodes as
// {"kpis":{},"charts":{}}. VendorRanking holds TopVendors in descending
// order.
type Dashboard struct {
	KPIs          *DashboardKPIs
	Charts        *DashboardCharts
	VendorRanking []VendorTotal
}

// VendorTotal is one vendor's summed invoice amount.
type VendorTotal struct {
	Vendor string  `json:"vendor"`
	Total  float64 `json:"total"`
}

// Empty reports whether the dashboard has no data.
func (d Dashboard) Empty() bool {
	return d.KPIs == nil
}

// MarshalJSON encodes the dashboard in its wire shape.
func (d Dashboard) MarshalJSON() ([]byte, error) {
	if d.Empty() {
		return []byte(`{"kpis":{},"charts":{}}`), nil
	}
	return json.Marshal(struct {
		KPIs   *DashboardKPIs   `json:"kpis"`
		Charts *DashboardCharts `json:"charts"`
	}{d.KPIs, d.Charts})
}
