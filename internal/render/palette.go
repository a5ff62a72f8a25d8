package render

import (
	"fmt"
	"image/color"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/floorsight/floorplan-mcp/internal/floorplan"
)

// Stroke and label colors. Wall strokes darken with structural weight so
// the envelope and bearing lines read at a glance.
var (
	exteriorStroke = mustHex("#8B0000")
	interiorStroke = mustHex("#708090")
	bearingStroke  = mustHex("#1C1C1C")

	labelInk  = mustHex("#1A1A1A")
	labelCard = color.NRGBA{R: 255, G: 255, B: 255, A: 210}

	unknownRoomFill = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
)

// WallColor returns the stroke color for a wall type.
func WallColor(t floorplan.WallType) color.NRGBA {
	switch t {
	case floorplan.WallExterior:
		return exteriorStroke
	case floorplan.WallLoadBearing:
		return bearingStroke
	default:
		return interiorStroke
	}
}

// RoomColor returns the fill color for a room type: the classification
// set spread evenly around the HSV wheel in declaration order, so the
// same type always renders the same hue.
func RoomColor(t floorplan.RoomType) color.NRGBA {
	types := floorplan.RoomTypes()
	for i, known := range types {
		if known == t {
			hue := float64(i) * 360.0 / float64(len(types))
			r, g, b := colorful.Hsv(hue, 0.55, 0.95).RGB255()
			return color.NRGBA{R: r, G: g, B: b, A: 255}
		}
	}
	return unknownRoomFill
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA", with the hash optional.
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

func mustHex(hex string) color.NRGBA {
	c, err := parseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
