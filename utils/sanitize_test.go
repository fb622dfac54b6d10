package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var unsafeInputs = []string{
	`<script>alert(1)</script><b>ok</b>`,
	`<SCRIPT src="https://evil.example/x.js"></SCRIPT>hello`,
	`<p onclick="steal()">hi</p>`,
	`<img src="https://example.com/a.png" onerror="alert(1)">`,
	`<a href="javascript:alert(1)">click</a>`,
	`<a href="JaVaScRiPt:alert(1)" title="t">click</a>`,
	`<a href="&#106;avascript:alert(1)">click</a>`,
	`<svg onload="alert(1)"><circle r="1"></circle></svg>`,
	`<iframe src="javascript:alert(1)"></iframe>text`,
	`<div style="background:url(javascript:alert(1))">styled</div>`,
	`<form action="https://evil.example"><input value="x"><button onclick="go()">send</button></form>`,
	`<style>body{display:none}</style><p>after</p>`,
	`<object data="x.swf"></object><embed src="x.swf">`,
}

func TestSanitize_Example(t *testing.T) {
	assert.Equal(t, "<b>ok</b>", Sanitize(`<script>alert(1)</script><b>ok</b>`))
}

func TestSanitize_StripsExecutableConstructs(t *testing.T) {
	for _, in := range unsafeInputs {
		out := strings.ToLower(Sanitize(in))
		assert.NotContains(t, out, "<script", in)
		assert.NotContains(t, out, "javascript:", in)
		for _, handler := range []string{"onclick", "onerror", "onload"} {
			assert.NotContains(t, out, handler, in)
		}
		for _, tag := range []string{"<iframe", "<svg", "<form", "<input", "<style", "<object", "<embed"} {
			assert.NotContains(t, out, tag, in)
		}
	}
}

func TestSanitize_KeepsTextOfStrippedElements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bad anchor keeps label", in: `<a href="javascript:alert(1)">click</a>`, want: "click"},
		{name: "event handler dropped", in: `<p onclick="steal()">hi</p>`, want: "<p>hi</p>"},
		{name: "unknown wrapper", in: `<font color="red"><b>bold</b></font>`, want: "<b>bold</b>"},
		{name: "form controls", in: `<form><button>send</button></form>`, want: "send"},
		{name: "style attribute", in: `<div style="color:red">styled</div>`, want: "<div>styled</div>"},
		{name: "empty", in: "", want: ""},
		{name: "plain text", in: "just words", want: "just words"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_PreservesCleanInput(t *testing.T) {
	clean := `<h2>Title</h2><p>Some <b>bold</b> and <em>em</em> text with a <a href="https://example.com/x" title="t">link</a>.</p>` +
		`<ul><li>one</li><li>two</li></ul><blockquote>quote</blockquote>`
	assert.Equal(t, clean, Sanitize(clean))

	img := Sanitize(`<p><img src="https://example.com/a.png" alt="pic" width="10" height="20"></p>`)
	assert.Contains(t, img, `src="https://example.com/a.png"`)
	assert.Contains(t, img, `alt="pic"`)
	assert.Contains(t, img, `width="10"`)
	assert.Contains(t, img, `height="20"`)

	table := Sanitize(`<table><thead><tr><th>h</th></tr></thead><tbody><tr><td colspan="2">cell</td></tr></tbody></table>`)
	assert.Contains(t, table, `<th>h</th>`)
	assert.Contains(t, table, `<td colspan="2">cell</td>`)
}

func TestSanitize_DropsAttributesOutsideAllowList(t *testing.T) {
	out := Sanitize(`<img src="/a.png" alt="a" class="big" id="x" data-x="1">`)
	assert.Contains(t, out, `src="/a.png"`)
	assert.NotContains(t, out, "class=")
	assert.NotContains(t, out, "id=")
	assert.NotContains(t, out, "data-x")
}

func TestSanitize_RepairsMalformedMarkup(t *testing.T) {
	assert.Equal(t, "<b>unclosed</b>", Sanitize("<b>unclosed"))
	assert.Equal(t, "stray", Sanitize("</i>stray"))
	assert.Equal(t, `<a href="https://e.example"><b>nest</b></a>`, Sanitize(`<a href="https://e.example"><b>nest</a></b>`))
}

func TestSanitize_Idempotent(t *testing.T) {
	corpus := append([]string{
		"",
		"a < b && c > d",
		"<b>unclosed",
		"<p><div>x</p></div>",
		"</i>stray",
		"<<>>",
		"<table><td>cell",
		`<ul><li>a<script>x</script></li></ul>`,
		`<p>it's "quoted"</p>`,
		`<a href="/relative/path?q=1&amp;r=2">rel</a>`,
		"<template><tr><td>x</td></tr></template>",
		"<table><tr><td><template><td>y</td></template></td></tr></table>",
		"<template><li>orphan</li></template><template><td>c</td></template>",
		"<select><option>o</option></select><table><caption><template><th>z</th></template></caption></table>",
	}, unsafeInputs...)

	for _, in := range corpus {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), in)
	}
}

func TestSanitize_ContextElementsYieldStableMarkup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "rows inside template", in: "<template><tr><td>x</td></tr></template>", want: "x"},
		{
			name: "cell inside template inside cell",
			in:   "<table><tr><td><template><td>y</td></template></td></tr></table>",
			want: "<table><tbody><tr><td></td><td>y</td></tr></tbody></table>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Sanitize(tt.in)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, out, normalizeFragment(out), "output must survive a re-parse unchanged")
		})
	}
}

func TestAllowList_HasNoExecutableElements(t *testing.T) {
	forbidden := map[string]bool{
		"script": true, "style": true, "iframe": true, "object": true, "embed": true,
		"form": true, "input": true, "button": true, "svg": true, "math": true, "link": true, "meta": true,
	}
	for _, tag := range allowedTags {
		assert.False(t, forbidden[tag], tag)
	}
	for tag, attrs := range allowedAttrs {
		assert.Contains(t, allowedTags, tag)
		for _, a := range attrs {
			assert.False(t, strings.HasPrefix(a, "on"), "%s on %s", a, tag)
			assert.NotEqual(t, "style", a)
		}
	}
}
