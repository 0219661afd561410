package js

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"rtable/pkg/dom"
)

func parseHTML(t *testing.T, s string) *dom.Document {
	t.Helper()
	doc, err := dom.Parse(s)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return doc
}

// run executes script against doc with a fresh engine and fails the test
// if it throws.
func run(t *testing.T, doc *dom.Document, script string, opts ...Option) *Engine {
	t.Helper()
	engine := New(opts...)
	doc.Scripts = append(doc.Scripts, script)
	if err := engine.Execute(doc); err != nil {
		t.Fatal(err)
	}
	return engine
}

func TestGetElementById(t *testing.T) {
	doc := parseHTML(t, `<div id="foo">hello</div>`)
	run(t, doc, `
		var el = document.getElementById("foo");
		if (el === null) throw new Error("element not found");
		if (el.id !== "foo") throw new Error("wrong id: " + el.id);
		if (el.tagName !== "DIV") throw new Error("wrong tagName: " + el.tagName);
	`)
}

func TestGetElementByIdNotFound(t *testing.T) {
	doc := parseHTML(t, `<div>hello</div>`)
	run(t, doc, `
		var el = document.getElementById("nonexistent");
		if (el !== null) throw new Error("expected null, got: " + el);
	`)
}

func TestGetElementsByTagName(t *testing.T) {
	doc := parseHTML(t, `<p>one</p><p>two</p><div>three</div>`)
	run(t, doc, `
		var ps = document.getElementsByTagName("p");
		if (ps.length !== 2) throw new Error("expected 2 p tags, got: " + ps.length);
	`)
}

func TestGetElementsByClassName(t *testing.T) {
	doc := parseHTML(t, `<div class="a b">one</div><div class="a">two</div><div class="c">three</div>`)
	run(t, doc, `
		var els = document.getElementsByClassName("a");
		if (els.length !== 2) throw new Error("expected 2 elements with class a, got: " + els.length);
	`)
}

func TestSetTextContent(t *testing.T) {
	doc := parseHTML(t, `<p id="target">original <b>bold</b></p>`)
	run(t, doc, `document.getElementById("target").textContent = "changed";`)

	node := dom.FindByID(doc.Root, "target")
	if got := dom.TextContent(node); got != "changed" {
		t.Errorf("textContent = %q, want %q", got, "changed")
	}
	if len(dom.Children(node)) != 0 {
		t.Errorf("element children survived textContent assignment")
	}
}

func TestInnerHTML(t *testing.T) {
	doc := parseHTML(t, `<div id="box"></div>`)
	run(t, doc, `
		var box = document.getElementById("box");
		box.innerHTML = '<span class="x">a</span><span>b</span>';
		if (box.children.length !== 2) throw new Error("children: " + box.children.length);
		if (box.innerHTML !== '<span class="x">a</span><span>b</span>') throw new Error("innerHTML: " + box.innerHTML);
	`)
}

func TestIdentity(t *testing.T) {
	doc := parseHTML(t, `<div id="a"><span id="b"></span></div>`)
	run(t, doc, `
		var a = document.getElementById("a");
		if (a !== document.getElementById("a")) throw new Error("proxies differ");
		if (document.getElementById("b").parentElement !== a) throw new Error("parent differs");
	`)
}

func TestAttributes(t *testing.T) {
	doc := parseHTML(t, `<table id="t" data-start="first"></table>`)
	run(t, doc, `
		var t = document.getElementById("t");
		if (t.getAttribute("data-start") !== "first") throw new Error("getAttribute");
		if (t.getAttribute("missing") !== null) throw new Error("missing attribute should be null");
		t.setAttribute("data-collapse-direction", "ltr");
		if (!t.hasAttribute("data-collapse-direction")) throw new Error("hasAttribute");
		t.removeAttribute("data-start");
		if (t.hasAttribute("data-start")) throw new Error("removeAttribute");
	`)
	v, ok := dom.GetAttribute(dom.FindByID(doc.Root, "t"), "data-collapse-direction")
	if !ok || v != "ltr" {
		t.Errorf("data-collapse-direction = %q, %v", v, ok)
	}
}

func TestScriptError(t *testing.T) {
	doc := parseHTML(t, `<div></div>`)
	doc.Scripts = append(doc.Scripts, `var ok = 1;`, `throw new Error("boom");`)
	err := New().Execute(doc)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "script 1:") {
		t.Errorf("error = %q, want script index", err)
	}
}

func TestScriptsFromDocument(t *testing.T) {
	doc := parseHTML(t, `<p id="p">a</p><script>document.getElementById("p").className = "done";</script>`)
	if err := New().Execute(doc); err != nil {
		t.Fatal(err)
	}
	if !dom.HasClass(dom.FindByID(doc.Root, "p"), "done") {
		t.Errorf("inline script did not run")
	}
}

func TestConsoleLogs(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	doc := parseHTML(t, `<div></div>`)
	run(t, doc, `console.log("hello", 42); console.warn("careful");`, WithLogger(log))

	out := buf.String()
	if !strings.Contains(out, "hello 42") {
		t.Errorf("missing console.log output in %q", out)
	}
	if !strings.Contains(out, "level=warning") || !strings.Contains(out, "careful") {
		t.Errorf("missing console.warn output in %q", out)
	}
}

func TestRun(t *testing.T) {
	doc := parseHTML(t, `<ul><li>a</li><li>b</li></ul>`)
	v, err := New().Run(doc.Root, `document.querySelectorAll("li").length`)
	if err != nil {
		t.Fatal(err)
	}
	if v != int64(2) {
		t.Errorf("Run = %#v, want 2", v)
	}
}
