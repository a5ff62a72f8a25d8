//go:build !cgo || !linux

package ocr

// Available reports whether a Tesseract backend is compiled in.
func Available() bool { return false }

// ReadText requires a cgo Linux build; this stub always returns
// ErrUnavailable.
func ReadText(path string) (string, error) {
	return "", ErrUnavailable
}

// ReadDimensions requires a cgo Linux build; this stub always returns
// ErrUnavailable.
func ReadDimensions(path string) ([]Dimension, error) {
	return nil, ErrUnavailable
}
