// Package templates embeds the server-rendered pages.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every page. safeHTML marks already-sanitized post bodies as trusted markup;
// it must never receive anything that did not come out of utils.Sanitize or site config.
func Load() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}).ParseFS(files, "*.html")
}
