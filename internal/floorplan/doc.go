// Package floorplan defines the structured model a detection run produces:
// rooms with semantic types, wall segments, and the aggregate result
// returned for every processed image.
//
// Coordinates in finished results are normalized to [0,1] relative to the
// processed image so they survive resizing; lengths, areas, and thickness
// are real-world feet after scale calibration. A result is created fresh
// per request and never mutated after return. Rooms and walls exist only
// within the result that produced them.
package floorplan
