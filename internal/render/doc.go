// Package render draws detection results onto plan images for visual
// inspection.
//
// Overlay paints translucent room fills colored by semantic type, room
// outlines, wall strokes colored by wall type, and room labels onto a
// copy of the source image. Result coordinates are normalized, so the
// overlay lands correctly on the original image regardless of how far
// the pipeline downscaled its working buffer.
//
// Drawing is plain bounds-checked pixel work; the only text machinery is
// the fixed 7x13 bitmap face, which stays legible at plan sizes without
// pulling in font loading.
package render
