package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"pravaah/internal/domain"
	"pravaah/internal/port"
)

// EmptyResponseJSON replaces an empty model answer.
const EmptyResponseJSON = `{"error": "AI returned an empty response."}`

// ExtractionResult is the outcome of a successful model call. Text is the
// sanitized model output. Exactly one of Fields or ParseErr is set.
type ExtractionResult struct {
	DocType  domain.DocumentType
	Text     string
	Model    string
	Fields   domain.StructuredFields
	ParseErr *domain.AIOutputParseError
}

// Parsed returns the extracted fields, or the parse error when the model did
// not answer with a JSON object.
func (r *ExtractionResult) Parsed() (domain.StructuredFields, error) {
	if r.ParseErr != nil {
		return nil, r.ParseErr
	}
	return r.Fields, nil
}

// Extractor pulls structured fields out of document text with an LLM.
type Extractor struct {
	llm port.CompletionClient
}

// NewExtractor creates an Extractor backed by llm.
func NewExtractor(llm port.CompletionClient) *Extractor {
	return &Extractor{llm: llm}
}

// Extract builds the prompt for docType and asks the model for its fields.
// Types without a schema return an empty field set without calling the
// model. A failed call is returned as an error wrapping domain.ErrAIService;
// unparseable output is reported through the result instead.
func (e *Extractor) Extract(ctx context.Context, text string, docType domain.DocumentType) (*ExtractionResult, error) {
	var prompt string
	switch docType {
	case domain.DocTypeInvoice:
		prompt = BuildInvoicePrompt(text)
	case domain.DocTypeInspectionReport:
		prompt = BuildInspectionPrompt(text)
	default:
		return &ExtractionResult{DocType: docType, Text: "{}", Fields: domain.StructuredFields{}}, nil
	}

	resp, err := e.llm.Complete(ctx, port.CompletionRequest{Prompt: prompt, Temperature: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAIService, err)
	}

	res := &ExtractionResult{
		DocType: docType,
		Text:    SanitizeModelJSON(resp.Text),
		Model:   resp.Model,
	}
	fields, err := decodeFields(res.Text)
	if err != nil {
		res.ParseErr = &domain.AIOutputParseError{Raw: res.Text, Err: err}
		return res, nil
	}
	res.Fields = fields
	return res, nil
}

// SanitizeModelJSON trims the model answer and removes markdown code fences.
// Only a zero-length answer maps to EmptyResponseJSON; a whitespace-only one
// sanitizes to "" and fails to parse.
func SanitizeModelJSON(raw string) string {
	if raw == "" {
		return EmptyResponseJSON
	}
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

var errNotObject = errors.New("expected a JSON object")

// decodeFields parses a single JSON object, keeping numbers as json.Number.
func decodeFields(text string) (domain.StructuredFields, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return domain.StructuredFields(obj), nil
}
