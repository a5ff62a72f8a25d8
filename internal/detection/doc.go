// Package detection turns a normalized grayscale floor plan into room and
// wall candidates.
//
// Everything here works in processed-pixel coordinates on
// imaging.Grayscale buffers; the engine package owns normalization to the
// [0,1] result space and calibration to feet.
//
// # Strategies
//
// Four detection strategies implement the Strategy interface, ordered by
// capability:
//
//   - structural: multi-threshold Canny edges, Hough extraction with fuzzy
//     angle classification, parallel-stroke consolidation, text
//     suppression, and importance filtering. Handles scans, photographs,
//     and hand sketches.
//   - contour: gradient edges plus connected-component rectangularity
//     scoring. Suited to crisp computer-drawn plans.
//   - adaptive: Otsu-thresholded binarization with a morphological close
//     before region labeling and wall scanning.
//   - simple: fixed-threshold flood fill and scanline runs. The blunt
//     last resort.
//
// DefaultChain returns them in degradation order; a strategy that errors
// or finds no rooms hands over to the next.
//
// # Building blocks
//
// The strategies share a common toolkit: FindRegions (bright flood-fill
// labeling), ScanWalls (dark scanline runs), MergeSegments (endpoint
// coalescing to a fixpoint), HoughSegments and ConsolidateParallel (line
// extraction and double-stroke collapse), FindTextAreas and
// SuppressTextSegments (edge-density text masking), ClassifyRoom
// (area/aspect banding), and EstimateOpenings (door and window counts
// inferred from the wall layout).
//
// # Coordinate system
//
// Origin top-left, X rightward, Y downward. Bounding boxes are inclusive
// on the top-left edge and exclusive on the bottom-right, matching
// image.Rectangle.
//
// # Confidence
//
// Candidates carry scores in [0,1]. Wall confidence reflects angular
// deviation from the nearest plausible wall orientation; room confidence
// depends on the strategy (fixed for simple/adaptive, rectangularity for
// contour, a wall-quality blend for structural). Strokes whose angle
// wanders more than a few degrees off axis are flagged sketchy rather
// than rejected, since hand-drawn plans are a first-class input.
//
// All functions are pure and safe for concurrent use.
package detection
