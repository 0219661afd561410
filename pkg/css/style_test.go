package css

import "testing"

func TestParseInlineStyle(t *testing.T) {
	style := ParseInlineStyle("width: 100px; height: 50px;")
	if w, ok := style.GetLength("width"); !ok || w != 100.0 {
		t.Errorf("expected width=100, got %f", w)
	}
	if h, ok := style.GetLength("height"); !ok || h != 50.0 {
		t.Errorf("expected height=50, got %f", h)
	}
}

func TestExpandPadding(t *testing.T) {
	tests := []struct {
		value string
		want  BoxEdge
	}{
		{"4px", BoxEdge{4, 4, 4, 4}},
		{"1px 2px", BoxEdge{1, 2, 1, 2}},
		{"1px 2px 3px", BoxEdge{1, 2, 3, 2}},
		{"1px 2px 3px 4px", BoxEdge{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		got := ParseInlineStyle("padding: " + tt.value).GetPadding()
		if got != tt.want {
			t.Errorf("padding: %s => %+v, want %+v", tt.value, got, tt.want)
		}
	}
}

func TestBorderShorthand(t *testing.T) {
	style := ParseInlineStyle("border: 2px solid black; border-left: 5px solid red")
	bw := style.GetBorderWidth()
	if bw.Left != 5 || bw.Right != 2 || bw.Top != 2 {
		t.Errorf("unexpected border widths %+v", bw)
	}
	if c := style.GetBorderColor("left"); c != (Color{255, 0, 0}) {
		t.Errorf("left border color = %+v", c)
	}
	if bw.Horizontal() != 7 {
		t.Errorf("Horizontal() = %v, want 7", bw.Horizontal())
	}
}

func TestBorderStyleNoneHasNoWidth(t *testing.T) {
	style := ParseInlineStyle("border: 3px none")
	if bw := style.GetBorderWidth(); bw.Left != 0 {
		t.Errorf("border-style none should give zero width, got %v", bw.Left)
	}
}

func TestLineHeight(t *testing.T) {
	if lh := ParseInlineStyle("font-size: 10px").GetLineHeight(); lh != 12 {
		t.Errorf("default line-height = %v, want 12", lh)
	}
	if lh := ParseInlineStyle("font-size: 10px; line-height: 2").GetLineHeight(); lh != 20 {
		t.Errorf("unitless line-height = %v, want 20", lh)
	}
	if lh := ParseInlineStyle("line-height: 18px").GetLineHeight(); lh != 18 {
		t.Errorf("px line-height = %v, want 18", lh)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"red", Color{255, 0, 0}, true},
		{"#fff", Color{255, 255, 255}, true},
		{"#336699", Color{0x33, 0x66, 0x99}, true},
		{"#12", Color{}, false},
		{"nonsense", Color{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, %v", tt.in, got, ok)
		}
	}
}

func TestTableHelpers(t *testing.T) {
	s := ParseInlineStyle("border-collapse: collapse; border-spacing: 4px 2px")
	if s.GetBorderCollapse() != BorderCollapseCollapse {
		t.Error("expected collapse")
	}
	if s.GetBorderSpacing() != 4 {
		t.Errorf("spacing = %v", s.GetBorderSpacing())
	}
	if NewStyle().GetBorderCollapse() != BorderCollapseSeparate {
		t.Error("default should be separate")
	}
}
