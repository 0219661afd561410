package text

import "testing"

func TestFixed(t *testing.T) {
	m := Fixed{Ratio: 0.5}
	if w := m.Width("abcd", 10, false); w != 20 {
		t.Errorf("Width = %v, want 20", w)
	}
	if w := m.Width("héllo", 10, true); w != 25 {
		t.Errorf("Width should count runes, got %v", w)
	}
}

func TestGoFontWidths(t *testing.T) {
	g, err := NewGoFont()
	if err != nil {
		t.Fatal(err)
	}
	short := g.Width("ab", 16, false)
	long := g.Width("abcdef", 16, false)
	if short <= 0 || long <= short {
		t.Errorf("expected growing widths, got %v then %v", short, long)
	}
	if big := g.Width("ab", 32, false); big <= short {
		t.Errorf("larger size should be wider: %v vs %v", big, short)
	}
	if again := g.Width("ab", 16, false); again != short {
		t.Error("cached width should be stable")
	}
	if g.Face(16, true) == nil {
		t.Error("bold face expected")
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  a \n\t b  "); got != "a b" {
		t.Errorf("Normalize = %q", got)
	}
}
