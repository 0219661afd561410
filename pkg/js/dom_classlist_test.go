package js

import (
	"testing"

	"rtable/pkg/dom"
)

func TestClassListAddRemove(t *testing.T) {
	doc := parseHTML(t, `<table><tr><th id="h" class="a">x</th></tr></table>`)
	run(t, doc, `
		var cl = document.getElementById("h").classList;
		cl.add("js-head-collapsed", "b");
		cl.add("a");
		if (cl.length !== 3) throw new Error("length: " + cl.length);
		cl.remove("a");
		if (cl.contains("a")) throw new Error("a still present");
		if (cl.value !== "js-head-collapsed b") throw new Error("value: " + cl.value);
		if (cl[0] !== "js-head-collapsed") throw new Error("index 0: " + cl[0]);
		if (cl.item(5) !== null) throw new Error("item out of range");
	`)
	if !dom.HasClass(dom.FindByID(doc.Root, "h"), "b") {
		t.Error("class b not written to the node")
	}
}

func TestClassListToggle(t *testing.T) {
	doc := parseHTML(t, `<div id="d"></div>`)
	run(t, doc, `
		var cl = document.getElementById("d").classList;
		if (cl.toggle("x") !== true) throw new Error("toggle on");
		if (cl.toggle("x") !== false) throw new Error("toggle off");
		if (cl.toggle("y", true) !== true) throw new Error("forced on");
		if (cl.toggle("y", true) !== true) throw new Error("forced on twice");
		if (cl.toggle("y", false) !== false) throw new Error("forced off");
		if (cl.length !== 0) throw new Error("length: " + cl.length);
	`)
	if _, ok := dom.GetAttribute(dom.FindByID(doc.Root, "d"), "class"); ok {
		t.Error("empty class attribute left behind")
	}
}

func TestClassListInvalidToken(t *testing.T) {
	doc := parseHTML(t, `<div id="d"></div>`)
	run(t, doc, `
		var threw = false;
		try { document.getElementById("d").classList.add("a b"); } catch (e) { threw = true; }
		if (!threw) throw new Error("expected whitespace token to throw");
	`)
}

func TestClassName(t *testing.T) {
	doc := parseHTML(t, `<div id="d" class="one"></div>`)
	run(t, doc, `
		var d = document.getElementById("d");
		if (d.className !== "one") throw new Error("className: " + d.className);
		d.className = "two three";
		if (!d.classList.contains("three")) throw new Error("classList after className");
	`)
}
