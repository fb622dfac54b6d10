package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var sanitizer = newSanitizerPolicy()

// maxSanitizePasses bounds the re-parse loop; real input settles in two passes.
const maxSanitizePasses = 8

func newSanitizerPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes(allowedURLSchemes...)
	p.AllowElements(allowedTags...)
	for tag, attrs := range allowedAttrs {
		p.AllowAttrs(attrs...).OnElements(tag)
	}
	return p
}

// Sanitize cleans an untrusted HTML fragment so it can be stored and rendered unescaped.
// It never fails: disallowed markup is stripped and its text kept, except for
// script-like elements whose content is dropped too.
//
// Unwrapping a context element such as <template> can leave markup that parses
// differently the next time (a bare <tr>, a <td> inside a <td>), so the
// parse and filter steps repeat until the output no longer changes.
func Sanitize(raw string) string {
	out := sanitizer.Sanitize(normalizeFragment(raw))
	for i := 1; i < maxSanitizePasses; i++ {
		next := sanitizer.Sanitize(normalizeFragment(out))
		if next == out {
			break
		}
		out = next
	}
	return out
}

// normalizeFragment parses raw as body content and renders it back, which closes
// open tags and repairs nesting before the allow-list is applied.
func normalizeFragment(raw string) string {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(raw), body)
	if err != nil {
		return raw
	}
	var b strings.Builder
	for _, n := range nodes {
		if err := html.Render(&b, n); err != nil {
			return raw
		}
	}
	return b.String()
}
