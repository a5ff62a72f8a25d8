//go:build cgo && linux

package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Available reports whether a Tesseract backend is compiled in.
func Available() bool { return true }

// ReadText runs Tesseract over the image file and returns the recognized
// text. Tesseract and its English language data must be installed on the
// system.
func ReadText(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}

// ReadDimensions recognizes the image's text and parses the dimension
// annotations out of it. An image with no readable annotations returns an
// empty slice, not an error.
func ReadDimensions(path string) ([]Dimension, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	return ParseDimensions(text), nil
}
