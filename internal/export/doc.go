// Package export converts a finished detection result into extruded 3D
// geometry for downstream rendering.
//
// The model is a flat vertex and face soup in feet, Y up: the plan's X
// axis maps to X, its Y axis to Z. Each room contributes a floor slab at
// ground level and a ceiling slab at the configured height; each wall
// contributes one vertical quad whose height depends on the wall type
// (exterior walls carry the roof line, so they extrude taller than
// interior partitions). A wall-modification overlay lets callers add,
// remove, or replace segments before extrusion, keyed by the symmetric
// wall key.
//
// Extrusion is a pure transform of the result it is handed; it touches
// no pipeline state and fails only on missing input.
package export
