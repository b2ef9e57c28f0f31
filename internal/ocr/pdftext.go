package ocr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText reads the embedded text layer of a PDF, one page per line
// block. Scanned PDFs usually have no text layer and yield "".
func ExtractPDFText(data []byte) (text string, pages int, err error) {
	// The reader panics on some malformed or unsupported streams.
	defer func() {
		if r := recover(); r != nil {
			text, pages, err = "", 0, fmt.Errorf("reading pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("opening pdf: %w", err)
	}

	pages = reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", pages, fmt.Errorf("extracting text from page %d: %w", i, err)
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), pages, nil
}
