package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine runs Tesseract through gosseract. A fresh client is created
// per image since gosseract clients are not safe for concurrent use.
type TesseractEngine struct {
	languages      []string
	tessdataPrefix string
	dpi            int
	clientFactory  func() *gosseract.Client
}

// NewTesseractEngine constructs a Tesseract-backed engine.
func NewTesseractEngine(languages []string, tessdataPrefix string, dpi int) *TesseractEngine {
	return &TesseractEngine{
		languages:      languages,
		tessdataPrefix: tessdataPrefix,
		dpi:            dpi,
		clientFactory:  gosseract.NewClient,
	}
}

// RecognizeImage returns the text Tesseract finds in an encoded image.
func (e *TesseractEngine) RecognizeImage(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c := e.clientFactory()
	defer func() { _ = c.Close() }()

	if e.tessdataPrefix != "" {
		if err := c.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if e.dpi > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(e.dpi)); err != nil {
			return "", fmt.Errorf("set dpi: %w", err)
		}
	}
	if err := c.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
