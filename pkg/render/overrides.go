package render

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtmpl/pkg/directive"
	"github.com/yaklabco/mdtmpl/pkg/markup"
)

// Angular names emitted by the overrides.
const (
	// AnchorAttr marks headings as deep-link targets.
	AnchorAttr = "appAnchor"

	// RouterLinkAttr replaces href on internal links.
	RouterLinkAttr = "routerLink"

	// TabsElement is the TS/JS tab switcher placed in filename labels.
	TabsElement = "app-tabs"

	// ExtensionPipe maps a .ts filename to .js when JavaScript is active.
	ExtensionPipe = "extension"

	// SwitchLanguage is the highlighter language of both switcher variants.
	SwitchLanguage = "typescript"

	// EmptyHeaderSentinel is the rendered header of a table whose only
	// header cell is empty.
	EmptyHeaderSentinel = "<th></th>"
)

// Severity of a Diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic codes identify the kind of problem independent of its message.
const (
	CodeMalformedDirective = "malformed-directive"
	CodeMissingTag         = "missing-tag"
)

// Diagnostic reports a construct that could not be rewritten as written.
type Diagnostic struct {
	Severity Severity
	Code     string

	// Line is the 1-based source line, filled in by the caller that knows it.
	Line int

	Message string

	// Err is the underlying error, if any. Malformed directives carry a
	// *directive.Error.
	Err error
}

// Reporter receives diagnostics as they are produced.
type Reporter func(Diagnostic)

// Option configures Decorate.
type Option func(*Overrides)

// WithIDs sets the correlation id source. The default is a fresh Counter.
func WithIDs(ids IDSource) Option {
	return func(o *Overrides) { o.ids = ids }
}

// WithReporter sets the diagnostic sink. The default discards diagnostics.
func WithReporter(report Reporter) Option {
	return func(o *Overrides) { o.report = report }
}

// Overrides is a Renderer that adds the Angular rewrites on top of another
// Renderer.
type Overrides struct {
	base   Renderer
	ids    IDSource
	report Reporter
}

var _ Renderer = (*Overrides)(nil)

// Decorate wraps base with the template rewrites. Each call returns an
// independent value with its own correlation ids.
func Decorate(base Renderer, opts ...Option) *Overrides {
	o := &Overrides{
		base:   base,
		ids:    NewCounter(DefaultIDPrefix),
		report: func(Diagnostic) {},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Code implements Renderer. In priority order: a @@filename block gets a label
// and tab switcher, a @@switch block gets both variants with escaped braces,
// anything else is rendered normally with a leading newline and escaped
// braces. Malformed directives are reported and the block is rendered as
// ordinary code, marker included.
func (o *Overrides) Code(code, lang string, escaped bool) string {
	return o.code(code, lang, escaped, "")
}

func (o *Overrides) code(code, lang string, escaped bool, ref string) string {
	if idx := directive.Index(code, directive.FilenameMarker); idx >= 0 {
		parsed, err := directive.ParseFilename(code, idx)
		if err != nil {
			o.malformed(err)
			return o.plain(code, lang, escaped)
		}
		return o.filename(parsed, lang, escaped)
	}

	if idx := directive.Index(code, directive.SwitchMarker); idx >= 0 {
		parsed, err := directive.ParseSwitch(code, idx)
		if err != nil {
			o.malformed(err)
			return o.plain(code, lang, escaped)
		}
		return markup.EscapeBrackets(o.switcher(parsed, escaped, ref))
	}

	return o.plain(code, lang, escaped)
}

func (o *Overrides) plain(code, lang string, escaped bool) string {
	out := o.base.Code(code, lang, escaped)
	out = markup.InsertAfter(out, markup.EndOfOpeningTag, "\n")
	return markup.EscapeBrackets(out)
}

// filename emits the label, then the body rendered with the new id so a
// nested @@switch can bind its visibility to the label's tabs. The marker has
// already been consumed, so the recursion is bounded.
func (o *Overrides) filename(parsed directive.Filename, lang string, escaped bool) string {
	ref := o.ids.Next()

	var out strings.Builder
	out.WriteString(`<span class="filename">`)
	if parsed.Name != "" {
		fmt.Fprintf(&out, "{{ '%s' | %s: %s.isJsActive }}", parsed.Name, ExtensionPipe, ref)
	}
	fmt.Fprintf(&out, "<%s #%s></%s>", TabsElement, ref, TabsElement)
	out.WriteString("</span>")
	body := strings.TrimLeft(parsed.Body, "\r\n")
	out.WriteString(strings.TrimSpace(o.code(body, lang, escaped, ref)))
	return out.String()
}

func (o *Overrides) switcher(parsed directive.Switch, escaped bool, ref string) string {
	typeScript := o.base.Code(parsed.TypeScript, SwitchLanguage, escaped)
	javaScript := o.base.Code(parsed.JavaScript, SwitchLanguage, escaped)

	if ref != "" {
		typeScript = o.inject(typeScript, fmt.Sprintf(`[class.hide]="%s.isJsActive"`, ref))
		javaScript = o.inject(javaScript, fmt.Sprintf(`[class.hide]="!%s.isJsActive"`, ref))
	}

	return typeScript + javaScript
}

func (o *Overrides) inject(fragment, attr string) string {
	out, ok := markup.InjectAttr(fragment, markup.AnyTag, attr)
	if !ok {
		o.report(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeMissingTag,
			Message:  fmt.Sprintf("rendered code has no opening tag to carry %s", attr),
		})
	}
	return out
}

func (o *Overrides) malformed(err error) {
	o.report(Diagnostic{
		Severity: SeverityError,
		Code:     CodeMalformedDirective,
		Message:  err.Error(),
		Err:      err,
	})
}

// Heading implements Renderer by marking the heading as an anchor target.
func (o *Overrides) Heading(text string, level int, id string) string {
	out := o.base.Heading(text, level, id)
	injected, ok := markup.InjectAttr(out, markup.IsHeading, AnchorAttr)
	if !ok {
		o.report(Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeMissingTag,
			Message:  "rendered heading has no heading tag",
		})
	}
	return injected
}

// Link implements Renderer. Links without "http" are internal routes and get
// routerLink instead of href.
func (o *Overrides) Link(href, title, text string) string {
	out := o.base.Link(href, title, text)
	if strings.Contains(href, "http") {
		return out
	}
	renamed, _ := markup.RenameAttr(out, markup.Tag("a"), "href", RouterLinkAttr)
	return renamed
}

// Table implements Renderer, dropping a header whose only cell is empty.
func (o *Overrides) Table(header, body string) string {
	if strings.TrimSpace(header) == EmptyHeaderSentinel {
		return o.base.Table("", body)
	}
	return o.base.Table(header, body)
}
