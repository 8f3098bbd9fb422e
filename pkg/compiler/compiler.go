// Package compiler compiles one Markdown document into an Angular component
// template fragment using goldmark for parsing and the render package for
// the constructs the documentation site customises.
package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdtmpl/pkg/highlight"
	"github.com/yaklabco/mdtmpl/pkg/render"
)

// Flavors accepted by Options.Flavor.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// overridePriority ranks the template renderer ahead of goldmark's HTML
// renderer (1000) and the GFM table renderer (500).
const overridePriority = 100

// ErrMalformedDirectives is returned in strict mode when a document contains
// directives that could not be rewritten.
var ErrMalformedDirectives = errors.New("document has malformed directives")

// Container wraps the compiled fragment.
type Container struct {
	// Class is the class attribute of the wrapping div.
	Class string

	// Ref is the template reference variable, without "#".
	Ref string
}

// DefaultContainer is the wrapper used by the documentation pages.
func DefaultContainer() Container {
	return Container{Class: "content", Ref: "contentReference"}
}

// Options configures a Compiler.
type Options struct {
	// Flavor selects CommonMark or GFM (tables, strikethrough, autolinks).
	Flavor string

	// Highlighter highlights code blocks. Nil means plain escaping.
	Highlighter highlight.Highlighter

	// DetectLanguage guesses a language for fences without one.
	DetectLanguage bool

	// DefaultLanguage is used for fences without a language when detection
	// is off or inconclusive. Empty leaves them untagged.
	DefaultLanguage string

	// Container wraps the output. The zero value means DefaultContainer.
	Container Container

	// Strict turns malformed directives into a compile error.
	Strict bool
}

// Result is a compiled document.
type Result struct {
	// HTML is the wrapped template fragment.
	HTML []byte

	// Diagnostics lists constructs that were rendered as written rather than
	// rewritten.
	Diagnostics []render.Diagnostic
}

// HasErrors reports whether any diagnostic has error severity.
func (r *Result) HasErrors() bool {
	return lo.SomeBy(r.Diagnostics, func(d render.Diagnostic) bool {
		return d.Severity == render.SeverityError
	})
}

// Compiler turns Markdown into template fragments. It holds no per-document
// state and is safe for concurrent use.
type Compiler struct {
	opts   Options
	parser parser.Parser
	base   render.Renderer
}

// New creates a Compiler.
func New(opts Options) *Compiler {
	if opts.Container == (Container{}) {
		opts.Container = DefaultContainer()
	}
	if opts.Flavor != FlavorCommonMark {
		opts.Flavor = FlavorGFM
	}

	return &Compiler{
		opts:   opts,
		parser: newMarkdown(opts.Flavor, nil).Parser(),
		base:   render.NewBase(opts.Highlighter),
	}
}

// Compile converts source into a wrapped fragment. Every call decorates the
// base renderer afresh, so correlation ids restart at 1 for each document.
func (c *Compiler) Compile(ctx context.Context, source []byte) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compile cancelled: %w", err)
	}

	doc := c.parser.Parse(newReader(source))

	nodes := &nodeRenderer{
		detect:          c.opts.DetectLanguage,
		defaultLanguage: c.opts.DefaultLanguage,
		source:          source,
	}
	nodes.out = render.Decorate(c.base, render.WithReporter(nodes.collect))
	nodes.md = newMarkdown(c.opts.Flavor, nodes)

	var body bytes.Buffer
	if err := nodes.md.Renderer().Render(&body, source, doc); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	result := &Result{
		HTML:        c.wrap(body.Bytes()),
		Diagnostics: nodes.diagnostics,
	}

	if c.opts.Strict && result.HasErrors() {
		errs := lo.FilterMap(result.Diagnostics, func(d render.Diagnostic, _ int) (error, bool) {
			if d.Severity != render.SeverityError {
				return nil, false
			}
			return fmt.Errorf("line %d: %s", d.Line, d.Message), true
		})
		return result, errors.Join(append([]error{ErrMalformedDirectives}, errs...)...)
	}

	return result, nil
}

func (c *Compiler) wrap(body []byte) []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, "<div class=\"%s\" #%s>\n", c.opts.Container.Class, c.opts.Container.Ref)
	out.Write(body)
	if len(body) > 0 && body[len(body)-1] != '\n' {
		out.WriteByte('\n')
	}
	out.WriteString("</div>\n")
	return out.Bytes()
}

// newMarkdown configures goldmark for a flavor. overrides may be nil when
// only the parser is needed.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newMarkdown(flavor string, overrides renderer.NodeRenderer) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	}

	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	if overrides != nil {
		opts = append(opts, goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(overrides, overridePriority)),
		))
	}

	return goldmark.New(opts...)
}
