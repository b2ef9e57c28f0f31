package port

import "context"

// TextRecognizer extracts text from a staged document (PDF or image).
// Pages are concatenated in order.
type TextRecognizer interface {
	Recognize(ctx context.Context, path string) (string, error)
}
