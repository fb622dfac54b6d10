package utils

// The HTML allow-list applied to post bodies. Anything not named here is
// stripped; element text survives unless the element is script-like.

var allowedTags = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"p", "br", "hr", "div", "span",
	"b", "strong", "i", "em", "u", "s", "strike", "del", "ins", "mark",
	"small", "sub", "sup", "abbr", "code", "pre", "kbd",
	"blockquote", "q", "cite",
	"ul", "ol", "li", "dl", "dt", "dd",
	"table", "caption", "thead", "tbody", "tfoot", "tr", "th", "td",
	"figure", "figcaption",
	"a", "img",
}

var allowedAttrs = map[string][]string{
	"a":          {"href", "target", "title"},
	"img":        {"src", "alt", "width", "height"},
	"abbr":       {"title"},
	"blockquote": {"cite"},
	"q":          {"cite"},
	"ol":         {"start"},
	"td":         {"colspan", "rowspan"},
	"th":         {"colspan", "rowspan"},
}

// URL-valued attributes (href, src, cite) must use one of these schemes or be relative.
var allowedURLSchemes = []string{"http", "https", "mailto"}
