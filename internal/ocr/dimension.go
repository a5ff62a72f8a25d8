package ocr

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
)

// ErrUnavailable reports that no Tesseract backend is compiled into this
// binary. Recognition requires cgo on Linux; parsing always works.
var ErrUnavailable = errors.New("ocr: tesseract backend not built in (requires cgo on linux)")

// Dimension is one real-world measurement parsed from annotation text,
// converted to decimal feet.
type Dimension struct {
	Text string  `json:"text"`
	Feet float64 `json:"feet"`
}

const metersToFeet = 3.28084

// feetPattern matches feet annotations with an optional inches part:
// 24', 24 ft, 24.5 feet, 24'6", 10' - 6". The quote units must sit
// directly on the digits or an apostrophe in prose ("24 'suite'") would
// read as a measurement. Consuming the inches in the same match keeps
// 24'6" from also counting as a bare 24'.
var feetPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(?:'|\s*(?:ft|feet)\b)(?:\s*-?\s*(\d+(?:\.\d+)?)(?:"|\s*(?:in|inches)\b))?`)

// meterPattern matches metric annotations: 8m, 8.5 meters.
var meterPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*m(?:eters?)?\b`)

// ParseDimensions scans recognized text for length annotations and returns
// them in order of appearance, converted to feet. Non-positive values are
// dropped. Unit-less number pairs like 10x20 are deliberately ignored:
// they are indistinguishable from pixel sizes and sheet numbers, and one
// bad match would dominate width calibration.
func ParseDimensions(text string) []Dimension {
	type located struct {
		start int
		dim   Dimension
	}
	var found []located

	for _, m := range feetPattern.FindAllStringSubmatchIndex(text, -1) {
		feet, ok := matchedFloat(text, m, 1)
		if !ok {
			continue
		}
		if inches, ok := matchedFloat(text, m, 2); ok {
			feet += inches / 12
		}
		if feet <= 0 {
			continue
		}
		found = append(found, located{m[0], Dimension{Text: text[m[0]:m[1]], Feet: feet}})
	}

	for _, m := range meterPattern.FindAllStringSubmatchIndex(text, -1) {
		meters, ok := matchedFloat(text, m, 1)
		if !ok || meters <= 0 {
			continue
		}
		found = append(found, located{m[0], Dimension{Text: text[m[0]:m[1]], Feet: meters * metersToFeet}})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })

	dims := make([]Dimension, 0, len(found))
	for _, f := range found {
		dims = append(dims, f.dim)
	}
	return dims
}

// matchedFloat extracts capture group n from a SubmatchIndex result.
func matchedFloat(text string, m []int, n int) (float64, bool) {
	lo, hi := m[2*n], m[2*n+1]
	if lo < 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(text[lo:hi], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
