// Package render produces the HTML for the Markdown constructs the template
// compiler customises: fenced code, headings, links and tables.
//
// Base renders them the way a standard Markdown renderer would. Decorate wraps
// any Renderer with the Angular-specific rewrites and returns a new value; the
// wrapped renderer is never modified, so independent compilers never share
// state.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/yaklabco/mdtmpl/pkg/highlight"
)

// Renderer renders individual Markdown constructs to HTML strings.
type Renderer interface {
	// Code renders a code block. escaped reports whether code is already
	// HTML-escaped.
	Code(code, lang string, escaped bool) string

	// Heading renders a heading whose inline content is already HTML.
	Heading(text string, level int, id string) string

	// Link renders an inline link whose text is already HTML.
	Link(href, title, text string) string

	// Table renders a table. header holds the rendered header cells
	// (<th>...</th> elements) and body the rendered rows (<tr>...</tr>).
	Table(header, body string) string
}

// Base is the undecorated renderer.
type Base struct {
	// Highlighter highlights code. Nil means plain escaping.
	Highlighter highlight.Highlighter
}

var _ Renderer = (*Base)(nil)

// NewBase creates a Base renderer using hl for code.
func NewBase(hl highlight.Highlighter) *Base {
	return &Base{Highlighter: hl}
}

// Code implements Renderer.
func (b *Base) Code(code, lang string, escaped bool) string {
	lang = fenceLanguage(lang)
	code = strings.TrimSuffix(code, "\n") + "\n"

	body := code
	if !escaped {
		body = b.highlight(code, lang)
	}

	if lang == "" {
		return "<pre><code>" + body + "</code></pre>\n"
	}
	return `<pre><code class="language-` + html.EscapeString(lang) + `">` + body + "</code></pre>\n"
}

func (b *Base) highlight(code, lang string) string {
	if b.Highlighter != nil {
		if out, ok := b.Highlighter.Highlight(code, lang); ok {
			return out
		}
	}
	return html.EscapeString(code)
}

// Heading implements Renderer.
func (b *Base) Heading(text string, level int, id string) string {
	level = max(1, min(level, 6))
	if id == "" {
		return fmt.Sprintf("<h%d>%s</h%d>\n", level, text, level)
	}
	return fmt.Sprintf("<h%d id=\"%s\">%s</h%d>\n", level, html.EscapeString(id), text, level)
}

// Link implements Renderer.
func (b *Base) Link(href, title, text string) string {
	var out strings.Builder
	out.WriteString(`<a href="`)
	out.WriteString(html.EscapeString(href))
	out.WriteString(`"`)
	if title != "" {
		out.WriteString(` title="`)
		out.WriteString(html.EscapeString(title))
		out.WriteString(`"`)
	}
	out.WriteString(">")
	out.WriteString(text)
	out.WriteString("</a>")
	return out.String()
}

// Table implements Renderer. An empty header omits the <thead> entirely.
func (b *Base) Table(header, body string) string {
	var out strings.Builder
	out.WriteString("<table>\n")
	if header != "" {
		out.WriteString("<thead>\n<tr>\n")
		out.WriteString(header)
		out.WriteString("\n</tr>\n</thead>\n")
	}
	if body != "" {
		out.WriteString("<tbody>\n")
		out.WriteString(body)
		out.WriteString("</tbody>\n")
	}
	out.WriteString("</table>\n")
	return out.String()
}

// fenceLanguage returns the first word of a fence info string.
func fenceLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
