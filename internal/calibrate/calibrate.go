// Package calibrate converts pixel measurements into real-world feet.
//
// A Calibration is one feet-per-pixel factor plus its provenance: which
// source produced it and whether a trusted reference backs it. Lengths
// scale linearly and areas quadratically. The default is an explicit 1:1
// mapping with Verified=false; consumers must treat measurements under it
// as placeholders, since they can be off by orders of magnitude.
package calibrate

import (
	"fmt"

	"github.com/floorsight/floorplan-mcp/internal/ocr"
)

// Calibration source names, carried in results so consumers can tell how
// much to trust the measurements.
const (
	SourceDefault    = "default"
	SourceManual     = "manual"
	SourceAssumed    = "assumed_width"
	SourceDimensions = "ocr_dimensions"
)

// DefaultAssumedWidthFt is the typical single-family plan width used when
// the caller asks for an assumed-width calibration without a value.
const DefaultAssumedWidthFt = 40.0

// planMargin is the fraction of the image width the drawing itself is
// assumed to span, the rest being sheet margin.
const planMargin = 0.9

// Calibration converts pixel quantities to feet.
type Calibration struct {
	FeetPerPixel float64 `json:"feet_per_pixel"`
	Source       string  `json:"source"`
	Verified     bool    `json:"verified"`
}

// Default returns the flagged 1:1 fallback used when no calibration
// reference exists.
func Default() Calibration {
	return Calibration{FeetPerPixel: 1.0, Source: SourceDefault, Verified: false}
}

// Manual builds a verified calibration from a user-supplied reference
// length: knownPixels in the image correspond to knownFeet in the world.
func Manual(knownPixels, knownFeet float64) (Calibration, error) {
	if knownPixels <= 0 || knownFeet <= 0 {
		return Calibration{}, fmt.Errorf("calibration reference must be positive: got %v px, %v ft", knownPixels, knownFeet)
	}
	return Calibration{
		FeetPerPixel: knownFeet / knownPixels,
		Source:       SourceManual,
		Verified:     true,
	}, nil
}

// AssumedWidth estimates a scale by assuming the drawn plan is assumedFt
// wide and spans 90% of the image width. Pass assumedFt <= 0 for the
// typical 40 ft house. The result is an estimate and stays unverified.
func AssumedWidth(imageWidthPx int, assumedFt float64) Calibration {
	if assumedFt <= 0 {
		assumedFt = DefaultAssumedWidthFt
	}
	if imageWidthPx < 1 {
		imageWidthPx = 1
	}
	return Calibration{
		FeetPerPixel: assumedFt / (planMargin * float64(imageWidthPx)),
		Source:       SourceAssumed,
		Verified:     false,
	}
}

// FromDimensions calibrates against dimension annotations read off the
// plan: the largest value is taken to label the plan width, spanning 90%
// of the image. Detection never calls this itself; it is the pluggable
// path for callers that ran the OCR reader.
func FromDimensions(dims []ocr.Dimension, imageWidthPx int) (Calibration, error) {
	largest := 0.0
	for _, d := range dims {
		if d.Feet > largest {
			largest = d.Feet
		}
	}
	if largest <= 0 {
		return Calibration{}, fmt.Errorf("no usable dimension among %d annotations", len(dims))
	}
	if imageWidthPx < 1 {
		imageWidthPx = 1
	}
	return Calibration{
		FeetPerPixel: largest / (planMargin * float64(imageWidthPx)),
		Source:       SourceDimensions,
		Verified:     true,
	}, nil
}

// Length converts a pixel distance to feet.
func (c Calibration) Length(px float64) float64 {
	return px * c.FeetPerPixel
}

// Area converts a pixel area to square feet.
func (c Calibration) Area(pxArea float64) float64 {
	return pxArea * c.FeetPerPixel * c.FeetPerPixel
}
