package dom

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parseHTML(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := Parse(s)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return doc
}

func TestParseCollectsStylesAndScripts(t *testing.T) {
	doc := parseHTML(t, `<html><head><link rel="stylesheet" href="a.css"><link rel="icon" href="i.png">
<style>td { padding: 2px }</style><link rel="Alternate Stylesheet" href="b.css"></head>
<body><script>var x = 1;</script><script src="ext.js"></script><p>hi</p></body></html>`)
	if len(doc.Stylesheets) != 3 {
		t.Fatalf("unexpected stylesheets: %+v", doc.Stylesheets)
	}
	if doc.Stylesheets[0].Href != "a.css" || doc.Stylesheets[2].Href != "b.css" {
		t.Errorf("linked stylesheets out of order: %+v", doc.Stylesheets)
	}
	if !strings.Contains(doc.Stylesheets[1].Text, "padding") || doc.Stylesheets[1].Href != "" {
		t.Errorf("unexpected inline stylesheet: %+v", doc.Stylesheets[1])
	}
	if len(doc.Scripts) != 1 || doc.Scripts[0] != "var x = 1;" {
		t.Errorf("unexpected scripts: %q", doc.Scripts)
	}
}

func TestInsertBeforeDetachesFirst(t *testing.T) {
	doc := parseHTML(t, `<div id="a"><span id="s">x</span></div><div id="b"><em id="e"></em></div>`)
	s := FindByID(doc.Root, "s")
	e := FindByID(doc.Root, "e")
	InsertBefore(s, e)
	if s.Parent != e.Parent {
		t.Fatal("span should have moved next to em")
	}
	if PrevElementSibling(e) != s {
		t.Error("span should be the previous sibling of em")
	}
	if len(Children(FindByID(doc.Root, "a"))) != 0 {
		t.Error("old parent should be empty")
	}
}

func TestPrependAndRemove(t *testing.T) {
	doc := parseHTML(t, `<div id="p"><b>1</b><i>2</i></div>`)
	p := FindByID(doc.Root, "p")
	u := NewElement("u")
	Prepend(p, u)
	if FirstElementChild(p) != u {
		t.Fatal("prepended element should be first")
	}
	Remove(u)
	if u.Parent != nil || len(Children(p)) != 2 {
		t.Error("remove should detach the element")
	}
	Remove(u) // detached: no-op
}

func TestCloneNode(t *testing.T) {
	doc := parseHTML(t, `<table><tr><th id="h" class="x" colspan="2">Name <b>bold</b></th></tr></table>`)
	th := FindByID(doc.Root, "h")

	shallow := CloneNode(th, false)
	if shallow.FirstChild != nil {
		t.Error("shallow clone should have no children")
	}
	if v, _ := GetAttribute(shallow, "colspan"); v != "2" {
		t.Errorf("attributes should be copied, got colspan=%q", v)
	}
	SetAttribute(shallow, "colspan", "3")
	if v, _ := GetAttribute(th, "colspan"); v != "2" {
		t.Error("clone attributes must not alias the original")
	}

	deep := CloneNode(th, true)
	if deep.Parent != nil {
		t.Error("clone should be detached")
	}
	if got := TextContent(deep); got != "Name bold" {
		t.Errorf("deep clone text = %q", got)
	}
}

func TestClosestAndContains(t *testing.T) {
	doc := parseHTML(t, `<table id="t"><tr><th><span id="s">+</span></th></tr></table>`)
	s := FindByID(doc.Root, "s")
	th := Closest(s, "th")
	if th == nil || th.Data != "th" {
		t.Fatal("closest th not found")
	}
	if !Contains(FindByID(doc.Root, "t"), s) {
		t.Error("table should contain span")
	}
	if Contains(s, th) {
		t.Error("span should not contain its ancestor")
	}
	if Closest(s, "td") != nil {
		t.Error("no td ancestor expected")
	}
}

func TestReplaceChildrenAndSerialize(t *testing.T) {
	doc := parseHTML(t, `<div id="d"><p>a</p></div>`)
	d := FindByID(doc.Root, "d")
	if err := SetInnerHTML(d, `<span class="x">+</span>text`); err != nil {
		t.Fatal(err)
	}
	if got := Serialize(d); got != `<span class="x">+</span>text` {
		t.Errorf("innerHTML = %q", got)
	}
	if got := SerializeOuter(d); got != `<div id="d"><span class="x">+</span>text</div>` {
		t.Errorf("outerHTML = %q", got)
	}
}

func TestHideShow(t *testing.T) {
	n := NewElement("th")
	Hide(n)
	if !IsHidden(n) {
		t.Fatal("expected hidden")
	}
	Show(n)
	if IsHidden(n) {
		t.Fatal("expected visible")
	}
}

func TestIndexInParent(t *testing.T) {
	doc := parseHTML(t, `<ul id="l"><li>a</li> <li id="b">b</li></ul>`)
	if got := IndexInParent(FindByID(doc.Root, "b")); got != 1 {
		t.Errorf("IndexInParent = %d, want 1", got)
	}
	if IndexInParent(&html.Node{Type: html.ElementNode, Data: "x"}) != -1 {
		t.Error("detached node should report -1")
	}
}
