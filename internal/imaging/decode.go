package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
)

// DecodeError reports bytes that could not be parsed as a supported image.
//
// This is the only hard failure the detection pipeline surfaces: any input
// that decodes produces a result, falling back to synthesized estimates when
// analysis finds nothing. Callers can distinguish it with errors.As.
type DecodeError struct {
	// Err is the underlying decoder error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("undecodable image data: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeBytes parses an in-memory image buffer.
//
// Supported formats: PNG, JPEG, GIF, BMP, and TIFF. The format name returned
// matches the registered decoder ("png", "jpeg", "gif", "bmp", "tiff").
//
// Returns a *DecodeError if the bytes do not form a decodable image.
func DecodeBytes(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}
	return img, format, nil
}

// LoadFile reads and decodes an image from disk.
//
// The raw file contents are returned alongside the decoded image so callers
// can fingerprint the exact bytes (reference-layout lookups key on a content
// hash, which must survive re-encoding differences between decoders).
func LoadFile(path string) (image.Image, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read image file: %w", err)
	}
	img, _, err := DecodeBytes(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, data, nil
}
