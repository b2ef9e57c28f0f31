package pipeline

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pravaah/internal/domain"
	"pravaah/internal/port"
)

// RiskAnalyzer asks an LLM whether an invoice amount is plausible for the
// vendor. It never fails: problems are reported as sentinel verdicts.
type RiskAnalyzer struct {
	llm      port.CompletionClient
	profile  domain.RegionProfile
	location string
	printer  *message.Printer
}

// NewRiskAnalyzer creates a RiskAnalyzer. An empty location falls back to
// the region profile's location.
func NewRiskAnalyzer(llm port.CompletionClient, profile domain.RegionProfile, location string) *RiskAnalyzer {
	if location == "" {
		location = profile.Location
	}
	tag, err := language.Parse(profile.NumberLocale)
	if err != nil {
		tag = language.English
	}
	return &RiskAnalyzer{
		llm:      llm,
		profile:  profile,
		location: location,
		printer:  message.NewPrinter(tag),
	}
}

// Analyze returns a verdict for the extracted invoice fields.
func (a *RiskAnalyzer) Analyze(ctx context.Context, fields domain.StructuredFields) domain.RiskAnalysis {
	amountText, okAmount := fields.Text(domain.FieldTotalAmount)
	vendor, okVendor := fields.Text(domain.FieldVendorName)
	if !okAmount || !okVendor {
		return domain.RiskAnalysis{Label: domain.RiskInsufficientData}
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(amountText, ",", "")), 64)
	if err != nil {
		slog.Warn("pipeline.RiskAnalyzer.Analyze: unparseable amount", "amount", amountText, "error", err)
		return domain.RiskAnalysis{Label: domain.RiskAnalysisError}
	}

	prompt := BuildRiskPrompt(vendor, a.FormatAmount(amount), a.location)
	resp, err := a.llm.Complete(ctx, port.CompletionRequest{Prompt: prompt, Temperature: 0})
	if err != nil {
		slog.Error("pipeline.RiskAnalyzer.Analyze: completion failed", "error", err)
		return domain.RiskAnalysis{Label: domain.RiskAnalysisError}
	}
	return ParseRiskVerdict(resp.Text)
}

// FormatAmount renders amount with the region's currency symbol and two
// decimals, e.g. "₹ 12,345.67".
func (a *RiskAnalyzer) FormatAmount(amount float64) string {
	formatted := a.printer.Sprintf("%.2f", amount)
	if sym := a.profile.CurrencySymbol(); sym != "" {
		return sym + " " + formatted
	}
	return formatted
}

// ParseRiskVerdict accepts a response only if it starts with one of the
// known labels, optionally preceded by its marker. Anything else is
// Unrecognized with the text kept.
func ParseRiskVerdict(text string) domain.RiskAnalysis {
	raw := strings.TrimSpace(text)
	body := stripLeadingMarker(raw)

	for _, v := range domain.RiskVerdicts {
		label := string(v.Label)
		if len(body) < len(label) || !strings.EqualFold(body[:len(label)], label) {
			continue
		}
		rest := body[len(label):]
		if rest != "" {
			r := []rune(rest)[0]
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				continue
			}
		}
		return domain.RiskAnalysis{
			Label:         v.Label,
			Justification: strings.TrimLeft(rest, " \t\n-–—:.*"),
			Raw:           raw,
		}
	}
	return domain.RiskAnalysis{Label: domain.RiskUnrecognized, Justification: raw, Raw: raw}
}

// stripLeadingMarker drops emoji, variation selectors and markdown emphasis
// in front of the label.
func stripLeadingMarker(s string) string {
	return strings.TrimLeftFunc(s, func(r rune) bool {
		switch {
		case r == '*' || r == '_' || r == '"':
			return true
		case unicode.IsSpace(r):
			return true
		case r == '\uFE0F' || r == '\u200D':
			return true
		case unicode.Is(unicode.So, r):
			return true
		}
		return false
	})
}
