// Copyright © 2026 Orrery contributors.

package orrery

import (
	"encoding/json"
	"fmt"
)

// Color is an 8-bit RGBA color. The core treats it as opaque presentational
// data: it is carried through with a Body and persisted, but never
// consulted by any physics stage.
type Color struct {
	A, R, G, B uint8
}

// Opaque returns a fully opaque color (A=255) from the given RGB channels.
func Opaque(r, g, b uint8) Color { return Color{A: 255, R: r, G: g, B: b} }

// String renders the color as "#AARRGGBB", the form used by the persisted
// state format (§6).
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
}

// ParseColor parses the "#AARRGGBB" form back into a Color.
func ParseColor(s string) (Color, error) {
	var c Color
	if len(s) != 9 || s[0] != '#' {
		return c, NewInvalidInput("color must be \"#AARRGGBB\": " + s)
	}
	var a, r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02X%02X%02X%02X", &a, &r, &g, &b); err != nil {
		return c, NewInvalidInput("malformed color string: " + s)
	}
	return Color{A: a, R: r, G: g, B: b}, nil
}

// MarshalJSON renders the color in its "#AARRGGBB" persisted form (§6).
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON parses the "#AARRGGBB" persisted form back into a Color.
func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
