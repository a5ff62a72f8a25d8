package imaging

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// jpegQuality matches the quality used for intermediate plan renders;
// annotation overlays survive it without visible banding.
const jpegQuality = 90

// Save encodes img to path, picking the format from the file extension:
// .jpg/.jpeg, .gif, .bmp, .tif/.tiff, or PNG for anything else. The same
// five formats DecodeBytes reads.
func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := encode(f, img, filepath.Ext(path)); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case ".gif":
		return gif.Encode(w, img, nil)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, nil)
	default:
		return png.Encode(w, img)
	}
}
