package css

import (
	"testing"

	"rtable/pkg/dom"
)

func computeFor(t *testing.T, markup, sheet string, width float64) (*dom.Document, map[string]*Style) {
	t.Helper()
	doc, err := dom.Parse(markup)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ss, err := ParseStylesheet(sheet)
	if err != nil {
		t.Fatalf("stylesheet error: %v", err)
	}
	styles := ComputeStyles(doc.Root, []*Stylesheet{ss}, width)
	byID := make(map[string]*Style)
	for n, s := range styles {
		if id, ok := dom.GetAttribute(n, "id"); ok {
			byID[id] = s
		}
	}
	return doc, byID
}

func TestComputeStyle_ElementSelector(t *testing.T) {
	_, styles := computeFor(t, `<div id="d">x</div>`, `div { color: red; }`, 800)
	if color, ok := styles["d"].Get("color"); !ok || color != "red" {
		t.Errorf("expected color='red', got '%s'", color)
	}
}

func TestComputeStyle_SpecificityOverride(t *testing.T) {
	_, styles := computeFor(t, `<div id="d" class="highlight">x</div>`, `
		.highlight { color: blue; }
		div { color: red; }
	`, 800)
	if color, _ := styles["d"].Get("color"); color != "blue" {
		t.Errorf("class selector should win, got %q", color)
	}
}

func TestComputeStyle_InlineWins(t *testing.T) {
	_, styles := computeFor(t, `<div id="d" class="c" style="width: 40px">x</div>`, `.c { width: 10px; }`, 800)
	if w, _ := styles["d"].GetLength("width"); w != 40 {
		t.Errorf("inline width should win, got %v", w)
	}
}

func TestComputeStyle_ImportantBeatsInline(t *testing.T) {
	_, styles := computeFor(t, `<table><tr><td id="c" class="js-cell-collapsed" style="display: table-cell">x</td></tr></table>`,
		`.js-cell-collapsed { display: none !important; }`, 800)
	if d := styles["c"].GetDisplay(); d != "none" {
		t.Errorf("display = %q, want none", d)
	}
}

func TestComputeStyle_Inheritance(t *testing.T) {
	_, styles := computeFor(t, `<table id="t"><tr><td id="c"><span id="s">x</span></td></tr></table>`,
		`table { font-size: 20px; } td { font-weight: bold; }`, 800)
	if fs := styles["s"].GetFontSize(); fs != 20 {
		t.Errorf("font-size should inherit, got %v", fs)
	}
	if !styles["s"].IsBold() {
		t.Error("font-weight should inherit")
	}
}

func TestComputeStyle_MediaQuery(t *testing.T) {
	sheet := `td { padding: 8px; } @media (max-width: 500px) { td { padding: 2px; } }`
	_, wide := computeFor(t, `<table><tr><td id="c">x</td></tr></table>`, sheet, 800)
	if p := wide["c"].GetPadding().Left; p != 8 {
		t.Errorf("wide padding = %v, want 8", p)
	}
	_, narrow := computeFor(t, `<table><tr><td id="c">x</td></tr></table>`, sheet, 400)
	if p := narrow["c"].GetPadding().Left; p != 2 {
		t.Errorf("narrow padding = %v, want 2", p)
	}
}

func TestSpecificity(t *testing.T) {
	tests := []struct {
		sel  string
		want int
	}{
		{"td", 1},
		{".js-head-collapsed", 10},
		{"th.js-head-collapsed", 11},
		{"#t td", 101},
		{"table > tbody td:first-child", 13},
		{"[hidden]", 10},
		{"*", 0},
	}
	for _, tt := range tests {
		if got := Specificity(tt.sel); got != tt.want {
			t.Errorf("Specificity(%q) = %d, want %d", tt.sel, got, tt.want)
		}
	}
}
