// Package ocr reads dimension annotations off floor-plan images.
//
// Plans typically label their extents with strings like 30 ft, 24'6" or
// 8.5m. ParseDimensions turns recognized text into decimal feet; the
// calibration layer picks the largest value as the plan-width reference.
//
// Text recognition itself runs through Tesseract (gosseract) and is only
// compiled in with cgo on Linux. Everywhere else ReadText and
// ReadDimensions return ErrUnavailable and callers fall back to assumed
// or manual calibration. Parsing has no build constraints and behaves the
// same in both configurations.
//
// # Prerequisites (cgo builds)
//
// Tesseract and the English language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
package ocr
