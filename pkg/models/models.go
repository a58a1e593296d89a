package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PageDimensions holds a page size in document-space points.
type PageDimensions struct {
	Width  float64
	Height float64
}

// Point is a position in display pixels unless stated otherwise.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Rect is an axis-aligned rectangle. In display space it is anchored at its
// top-left corner; in document space at its bottom-left corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// ParseHexColor parses "#rrggbb" (or "rrggbb") into an RGB value.
func ParseHexColor(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// Hex returns the "#rrggbb" form of the color.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
