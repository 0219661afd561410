package dom

import (
	"testing"
)

func TestClassListAdd(t *testing.T) {
	n := NewElement("div", "class", "a")
	AddClass(n, "b", "c")
	if got, _ := GetAttribute(n, "class"); got != "a b c" {
		t.Errorf("class = %q", got)
	}
}

func TestClassListAddNoDuplicate(t *testing.T) {
	n := NewElement("div", "class", "a b")
	AddClass(n, "a")
	if got, _ := GetAttribute(n, "class"); got != "a b" {
		t.Errorf("should not duplicate: %q", got)
	}
}

func TestClassListRemove(t *testing.T) {
	n := NewElement("div", "class", "a b c")
	RemoveClass(n, "b")
	if got, _ := GetAttribute(n, "class"); got != "a c" {
		t.Errorf("class = %q", got)
	}
	RemoveClass(n, "a", "c")
	if _, ok := GetAttribute(n, "class"); ok {
		t.Error("empty class attribute should be dropped")
	}
}

func TestClassListToggle(t *testing.T) {
	n := NewElement("div", "class", "a")
	if !ToggleClass(n, "b") {
		t.Error("toggle add should return true")
	}
	if ToggleClass(n, "a") {
		t.Error("toggle remove should return false")
	}
	if got, _ := GetAttribute(n, "class"); got != "b" {
		t.Errorf("class = %q", got)
	}
}

func TestFindByClass(t *testing.T) {
	doc := parseHTML(t, `<div id="r"><span class="js-x y">1</span><span class="js-x-y">2</span><b class="y js-x">3</b></div>`)
	r := FindByID(doc.Root, "r")
	got := FindByClass(r, "js-x")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if TextContent(got[0]) != "1" || TextContent(got[1]) != "3" {
		t.Error("matches should be in document order")
	}
	if FirstByClass(r, "missing") != nil {
		t.Error("no match expected")
	}
	if FindByClass(r, "") != nil {
		t.Error("empty class should match nothing")
	}
}
