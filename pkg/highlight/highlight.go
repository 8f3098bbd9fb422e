// Package highlight turns code text into highlighted HTML token spans.
// The surrounding <pre><code> wrapper is produced by the caller.
package highlight

import (
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is the chroma style used for inline styles when classes are off.
const DefaultStyle = "github"

// Highlighter renders code as HTML-safe markup. ok is false when the language
// is unknown to the highlighter; callers then fall back to plain escaping.
type Highlighter interface {
	Highlight(code, lang string) (out string, ok bool)
}

// Plain escapes code without adding any markup.
type Plain struct{}

// Highlight implements Highlighter.
func (Plain) Highlight(code, _ string) (string, bool) {
	return html.EscapeString(code), true
}

// Options configures a Chroma highlighter.
type Options struct {
	// Style names a chroma style. Ignored when Classes is true.
	Style string

	// Classes emits CSS class names instead of inline styles.
	Classes bool
}

// Chroma highlights code with github.com/alecthomas/chroma.
type Chroma struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChroma creates a Chroma highlighter.
func NewChroma(opts Options) *Chroma {
	styleName := opts.Style
	if styleName == "" {
		styleName = DefaultStyle
	}

	return &Chroma{
		style: styles.Get(styleName),
		formatter: chromahtml.New(
			chromahtml.WithClasses(opts.Classes),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// Highlight implements Highlighter.
func (c *Chroma) Highlight(code, lang string) (string, bool) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return "", false
	}

	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}

	var out strings.Builder
	if err := c.formatter.Format(&out, c.style, iterator); err != nil {
		return "", false
	}

	return out.String(), true
}
