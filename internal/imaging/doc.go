// Package imaging provides decoding, normalization, and low-level analysis
// primitives for the floor-plan detection pipeline.
//
// The package converts arbitrary input images (PNG, JPEG, GIF, BMP, TIFF)
// into a Grayscale working buffer with a bounded size, then offers the pixel
// operations every detection strategy builds on: binarization, intensity
// statistics, Otsu threshold selection, and Canny edge detection with
// multi-threshold union.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive and (x2,y2) is exclusive
//
// # Intensity Convention
//
// Grayscale buffers store 0 = black ink and 255 = white paper. Detection
// thresholds downstream assume Normalize has run: wall strokes sit below
// 100, open floor above 200.
//
// # Thread Safety
//
// Grayscale buffers are plain data with no internal synchronization.
// Analysis functions never mutate their input, so a single normalized
// buffer can be shared across concurrent detection attempts; mutating
// methods (Set, stretch) must not race with readers.
package imaging
