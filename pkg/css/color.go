package css

import (
	"strconv"
	"strings"
)

type Color struct {
	R, G, B uint8
}

var namedColors = map[string]Color{
	"red":     {255, 0, 0},
	"green":   {0, 128, 0},
	"blue":    {0, 0, 255},
	"yellow":  {255, 255, 0},
	"cyan":    {0, 255, 255},
	"magenta": {255, 0, 255},
	"white":   {255, 255, 255},
	"black":   {0, 0, 0},
	"gray":    {128, 128, 128},
	"grey":    {128, 128, 128},
	"orange":  {255, 165, 0},
	"purple":  {128, 0, 128},
	"silver":  {192, 192, 192},
	"navy":    {0, 0, 128},
	"teal":    {0, 128, 128},
}

// ParseColor parses named colors and #rgb / #rrggbb hex colors.
func ParseColor(colorStr string) (Color, bool) {
	colorStr = strings.ToLower(strings.TrimSpace(colorStr))
	if c, ok := namedColors[colorStr]; ok {
		return c, true
	}
	if !strings.HasPrefix(colorStr, "#") {
		return Color{}, false
	}
	hex := colorStr[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

// GetColor returns the text color (default: black)
func (s *Style) GetColor() Color {
	return s.colorOr("color", Color{})
}

// GetBackgroundColor returns the background color and whether one is set.
func (s *Style) GetBackgroundColor() (Color, bool) {
	for _, p := range []string{"background-color", "background"} {
		if v, ok := s.Get(p); ok {
			if c, ok := ParseColor(v); ok {
				return c, true
			}
		}
	}
	return Color{}, false
}

// GetBorderColor returns the color of one border side, falling back to the
// text color as CSS does.
func (s *Style) GetBorderColor(side string) Color {
	return s.colorOr("border-"+side+"-color", s.GetColor())
}

func (s *Style) colorOr(property string, def Color) Color {
	if v, ok := s.Get(property); ok {
		if c, ok := ParseColor(v); ok {
			return c
		}
	}
	return def
}
