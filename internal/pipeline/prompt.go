package pipeline

import "pravaah/internal/domain"

// BuildInvoicePrompt returns the extraction prompt for invoices.
func BuildInvoicePrompt(text string) string {
	return `You are a highly efficient data extraction robot. Your only function is to extract information from the text below and return it as a JSON object.
Do not include any conversational text, preamble, or markdown formatting.

From the following invoice text, extract these fields:
- ` + domain.FieldInvoiceNumber + `
- ` + domain.FieldVendorName + `
- ` + domain.FieldInvoiceDate + ` (in YYYY-MM-DD format if possible)
- ` + domain.FieldTotalAmount + ` (as a number, no currency symbols). IMPORTANT: Search for a labeled 'Total Amount'. If you cannot find one, search for the largest clear monetary value. If no clear value can be found, you MUST return ` + "`null`" + `. Do not invent a number.
- ` + domain.FieldGSTIN + ` (if present)

Text:
---
` + text + `
---
`
}

// BuildInspectionPrompt returns the extraction prompt for vehicle inspection reports.
func BuildInspectionPrompt(text string) string {
	return `You are a data extraction robot. Extract the following from the inspection report.
Return ONLY a JSON object. Use ` + "`null`" + ` for missing fields.

- ` + domain.FieldReportID + `
- ` + domain.FieldPolicyNumber + `
- ` + domain.FieldMake + `
- ` + domain.FieldModel + `
- ` + domain.FieldRegistrationNo + `
- ` + domain.FieldVIN + `
- ` + domain.FieldDamagesObserved + ` (as a list of strings)

Text:
---
` + text + `
---
`
}

// BuildRiskPrompt returns the risk-assessment prompt. amount must already be
// formatted with its currency symbol.
func BuildRiskPrompt(vendor, amount, location string) string {
	labels := ""
	for _, v := range domain.RiskVerdicts {
		labels += "- " + v.Marker + " " + string(v.Label) + "\n"
	}
	return `Analyze the following invoice data for financial risk. Your entire response must be one of three labels, followed by a single-sentence justification. Do not add any conversational text.

- Invoice Vendor: "` + vendor + `"
- Invoice Amount: ` + amount + `
- Location Context: ` + location + `

Based on these details, assess the risk of the amount being unreasonable.

Choose one of these three labels for your entire output:
` + labels
}
