// Package markup provides the string-level HTML helpers used by the template
// compiler: bracket escaping for Angular templates, marker-relative text
// insertion, and attribute edits on the first matching start tag of a fragment.
package markup

import "strings"

// Entities that stand in for literal braces so Angular does not read them as
// interpolation delimiters.
const (
	OpenBraceEntity  = "&#123;"
	CloseBraceEntity = "&#125;"
)

// EndOfOpeningTag is the marker after which a rendered code block receives
// its leading newline.
const EndOfOpeningTag = `">`

//nolint:gochecknoglobals // Read-only replacer.
var bracketReplacer = strings.NewReplacer("{", OpenBraceEntity, "}", CloseBraceEntity)

// EscapeBrackets replaces every "{" and "}" in html with their numeric
// character references. It is not idempotent: an escaped string escaped again
// is unchanged only because the entities contain no braces.
func EscapeBrackets(html string) string {
	return bracketReplacer.Replace(html)
}

// InsertAfter inserts text immediately after the first occurrence of marker.
// When marker does not occur, html is returned unchanged.
func InsertAfter(html, marker, text string) string {
	idx := strings.Index(html, marker)
	if idx < 0 {
		return html
	}
	pos := idx + len(marker)
	return html[:pos] + text + html[pos:]
}

// InsertAt splices text into s at byte offset pos. Offsets outside s are
// clamped to its bounds.
func InsertAt(s string, pos int, text string) string {
	pos = max(0, min(pos, len(s)))
	return s[:pos] + text + s[pos:]
}
