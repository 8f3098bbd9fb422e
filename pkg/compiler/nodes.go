package compiler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdtmpl/pkg/langdetect"
	"github.com/yaklabco/mdtmpl/pkg/render"
)

func newReader(source []byte) text.Reader {
	return text.NewReader(source)
}

// nodeRenderer routes goldmark nodes through a render.Renderer. Inline
// content (heading text, link text, table cells) is rendered by goldmark
// first and handed over as HTML.
type nodeRenderer struct {
	out             render.Renderer
	md              goldmark.Markdown
	source          []byte
	detect          bool
	defaultLanguage string

	// line is the source line of the block being rendered, stamped on
	// diagnostics reported while rendering it.
	line        int
	diagnostics []render.Diagnostic
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(east.KindTable, r.renderTable)
}

func (r *nodeRenderer) collect(d render.Diagnostic) {
	if d.Line == 0 {
		d.Line = r.line
	}
	r.diagnostics = append(r.diagnostics, d)
}

func (r *nodeRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	var lang string
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		lang = string(fenced.Language(source))
	}

	var code strings.Builder
	lines := node.Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		code.Write(segment.Value(source))
	}

	if lang == "" {
		lang = r.inferLanguage(code.String())
	}

	r.line = r.lineOf(node)
	_, _ = w.WriteString(r.out.Code(code.String(), lang, false))
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) inferLanguage(code string) string {
	if r.detect {
		if lang := langdetect.Detect([]byte(code)); lang != langdetect.Text {
			return lang
		}
	}
	return r.defaultLanguage
}

func (r *nodeRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	heading, ok := node.(*ast.Heading)
	if !ok {
		return ast.WalkContinue, fmt.Errorf("unexpected node %s for heading", node.Kind())
	}

	text, err := r.renderChildren(source, heading)
	if err != nil {
		return ast.WalkStop, err
	}

	var id string
	if value, ok := heading.AttributeString("id"); ok {
		if raw, ok := value.([]byte); ok {
			id = string(raw)
		}
	}

	r.line = r.lineOf(heading)
	_, _ = w.WriteString(r.out.Heading(text, heading.Level, id))
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	link, ok := node.(*ast.Link)
	if !ok {
		return ast.WalkContinue, fmt.Errorf("unexpected node %s for link", node.Kind())
	}

	text, err := r.renderChildren(source, link)
	if err != nil {
		return ast.WalkStop, err
	}

	href := string(util.URLEscape(link.Destination, true))
	_, _ = w.WriteString(r.out.Link(href, string(link.Title), text))
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderTable(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	var header, body strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch row := child.(type) {
		case *east.TableHeader:
			cells, err := r.renderCells(source, row, "th")
			if err != nil {
				return ast.WalkStop, err
			}
			header.WriteString(cells)
		case *east.TableRow:
			cells, err := r.renderCells(source, row, "td")
			if err != nil {
				return ast.WalkStop, err
			}
			body.WriteString("<tr>\n")
			body.WriteString(cells)
			body.WriteString("\n</tr>\n")
		}
	}

	r.line = r.lineOf(node)
	_, _ = w.WriteString(r.out.Table(header.String(), body.String()))
	return ast.WalkSkipChildren, nil
}

// renderCells renders the cells of a header or body row, joined by newlines.
func (r *nodeRenderer) renderCells(source []byte, row ast.Node, tag string) (string, error) {
	var cells []string
	for child := row.FirstChild(); child != nil; child = child.NextSibling() {
		content, err := r.renderChildren(source, child)
		if err != nil {
			return "", err
		}

		align := ""
		if cell, ok := child.(*east.TableCell); ok && cell.Alignment != east.AlignNone {
			align = fmt.Sprintf(" align=\"%s\"", cell.Alignment.String())
		}

		cells = append(cells, fmt.Sprintf("<%s%s>%s</%s>", tag, align, content, tag))
	}
	return strings.Join(cells, "\n"), nil
}

// renderChildren renders the children of node with the full renderer, so
// nested overrides (a link inside a heading) still apply.
func (r *nodeRenderer) renderChildren(source []byte, node ast.Node) (string, error) {
	var buf bytes.Buffer
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if err := r.md.Renderer().Render(&buf, source, child); err != nil {
			return "", fmt.Errorf("render %s: %w", child.Kind(), err)
		}
	}
	return buf.String(), nil
}

// lineOf returns the 1-based line of a block node's first line, or 0.
func (r *nodeRenderer) lineOf(node ast.Node) int {
	lines := node.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	return bytes.Count(r.source[:lines.At(0).Start], []byte("\n")) + 1
}
