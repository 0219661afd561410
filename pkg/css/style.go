package css

import (
	"strconv"
	"strings"
)

// Style is the set of computed property values for one element.
type Style struct {
	Properties map[string]string
}

func NewStyle() *Style {
	return &Style{Properties: make(map[string]string)}
}

func (s *Style) Get(property string) (string, bool) {
	val, ok := s.Properties[property]
	return val, ok
}

func (s *Style) Set(property, value string) {
	s.Properties[property] = value
}

func (s *Style) GetLength(property string) (float64, bool) {
	val, ok := s.Get(property)
	if !ok {
		return 0, false
	}
	return ParseLength(val)
}

// ParseLength parses a length value (e.g., "100px" or "100")
func ParseLength(val string) (float64, bool) {
	val = strings.TrimSpace(val)
	switch val {
	case "thin":
		return 1, true
	case "medium":
		return 3, true
	case "thick":
		return 5, true
	}
	val = strings.TrimSuffix(val, "px")
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false
	}
	return num, true
}

// BoxEdge represents the four sides of a box (top, right, bottom, left)
type BoxEdge struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Horizontal returns Left + Right.
func (b BoxEdge) Horizontal() float64 { return b.Left + b.Right }

// Vertical returns Top + Bottom.
func (b BoxEdge) Vertical() float64 { return b.Top + b.Bottom }

// GetMargin returns the margin values for all four sides
func (s *Style) GetMargin() BoxEdge {
	return s.edge("margin-%s")
}

// GetPadding returns the padding values for all four sides
func (s *Style) GetPadding() BoxEdge {
	return s.edge("padding-%s")
}

// GetBorderWidth returns the border width for all four sides. A side whose
// border-style is none or hidden has zero width.
func (s *Style) GetBorderWidth() BoxEdge {
	e := s.edge("border-%s-width")
	for _, side := range []struct {
		name string
		v    *float64
	}{{"top", &e.Top}, {"right", &e.Right}, {"bottom", &e.Bottom}, {"left", &e.Left}} {
		if st, ok := s.Get("border-" + side.name + "-style"); ok && (st == "none" || st == "hidden") {
			*side.v = 0
		}
	}
	return e
}

func (s *Style) edge(pattern string) BoxEdge {
	at := func(side string) float64 {
		return s.getLengthOrZero(strings.Replace(pattern, "%s", side, 1))
	}
	return BoxEdge{Top: at("top"), Right: at("right"), Bottom: at("bottom"), Left: at("left")}
}

// getLengthOrZero returns the length value or 0 if not found
func (s *Style) getLengthOrZero(property string) float64 {
	val, ok := s.GetLength(property)
	if !ok {
		return 0
	}
	return val
}

// ParseInlineStyle parses the value of a style attribute.
func ParseInlineStyle(styleAttr string) *Style {
	style := NewStyle()
	for _, decl := range strings.Split(styleAttr, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		property := strings.TrimSpace(strings.ToLower(parts[0]))
		value := strings.TrimSpace(parts[1])
		value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		expandShorthand(style, property, value)
	}
	return style
}

// expandShorthand expands shorthand CSS properties into individual properties
func expandShorthand(style *Style, property, value string) {
	switch property {
	case "margin", "padding":
		expandBoxProperty(style, property+"-%s", value)
	case "border-width":
		expandBoxProperty(style, "border-%s-width", value)
	case "border-style":
		expandBoxProperty(style, "border-%s-style", value)
	case "border-color":
		expandBoxProperty(style, "border-%s-color", value)
	case "border":
		for _, side := range []string{"top", "right", "bottom", "left"} {
			expandBorderSide(style, side, value)
		}
	case "border-top", "border-right", "border-bottom", "border-left":
		expandBorderSide(style, strings.TrimPrefix(property, "border-"), value)
	default:
		style.Set(property, value)
	}
}

// expandBoxProperty expands four-sided shorthands.
// Supports: "10px" (all), "10px 20px" (vertical horizontal),
// "10px 20px 30px" (top h bottom), "10px 20px 30px 40px" (t r b l)
func expandBoxProperty(style *Style, pattern, value string) {
	parts := strings.Fields(value)
	var t, r, b, l string
	switch len(parts) {
	case 1:
		t, r, b, l = parts[0], parts[0], parts[0], parts[0]
	case 2:
		t, r, b, l = parts[0], parts[1], parts[0], parts[1]
	case 3:
		t, r, b, l = parts[0], parts[1], parts[2], parts[1]
	case 4:
		t, r, b, l = parts[0], parts[1], parts[2], parts[3]
	default:
		return
	}
	set := func(side, v string) { style.Set(strings.Replace(pattern, "%s", side, 1), v) }
	set("top", t)
	set("right", r)
	set("bottom", b)
	set("left", l)
}

// expandBorderSide expands "1px solid black" for one side.
func expandBorderSide(style *Style, side, value string) {
	prefix := "border-" + side
	for _, part := range strings.Fields(value) {
		switch {
		case isBorderStyle(part):
			style.Set(prefix+"-style", part)
		case isLength(part):
			style.Set(prefix+"-width", part)
		default:
			style.Set(prefix+"-color", part)
		}
	}
	if _, ok := style.Get(prefix + "-style"); !ok {
		style.Set(prefix+"-style", "none")
	}
	if _, ok := style.Get(prefix + "-width"); !ok {
		style.Set(prefix+"-width", "medium")
	}
}

func isBorderStyle(v string) bool {
	switch v {
	case "none", "hidden", "solid", "dotted", "dashed", "double", "groove", "ridge", "inset", "outset":
		return true
	}
	return false
}

func isLength(v string) bool {
	_, ok := ParseLength(v)
	return ok
}

// Text helpers

// GetFontSize returns the font-size in pixels (default: 16px)
func (s *Style) GetFontSize() float64 {
	if size, ok := s.GetLength("font-size"); ok {
		return size
	}
	return 16.0
}

// IsBold reports whether font-weight is bold or at least 600.
func (s *Style) IsBold() bool {
	w, ok := s.Get("font-weight")
	if !ok {
		return false
	}
	if w == "bold" || w == "bolder" {
		return true
	}
	n, err := strconv.Atoi(w)
	return err == nil && n >= 600
}

// GetLineHeight returns the line-height in pixels (default: 1.2 * font-size)
func (s *Style) GetLineHeight() float64 {
	if lh, ok := s.Get("line-height"); ok {
		if v, ok := ParseLength(lh); ok {
			if !strings.HasSuffix(strings.TrimSpace(lh), "px") {
				return v * s.GetFontSize()
			}
			return v
		}
	}
	return s.GetFontSize() * 1.2
}

// GetDisplay returns the display value, defaulting to inline.
func (s *Style) GetDisplay() string {
	if d, ok := s.Get("display"); ok {
		return d
	}
	return "inline"
}

// Table helpers

const (
	BorderCollapseSeparate = "separate"
	BorderCollapseCollapse = "collapse"
)

func (s *Style) GetBorderCollapse() string {
	if v, ok := s.Get("border-collapse"); ok && v == BorderCollapseCollapse {
		return BorderCollapseCollapse
	}
	return BorderCollapseSeparate
}

// GetBorderSpacing returns the horizontal border-spacing.
func (s *Style) GetBorderSpacing() float64 {
	v, ok := s.Get("border-spacing")
	if !ok {
		return 0
	}
	parts := strings.Fields(v)
	if len(parts) == 0 {
		return 0
	}
	n, _ := ParseLength(parts[0])
	return n
}
