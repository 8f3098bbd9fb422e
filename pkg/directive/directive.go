// Package directive parses the pseudo-directives that documentation authors
// embed in fenced code blocks:
//
//	@@filename(app.module.ts)   labels the block and adds a TS/JS tab switcher
//	@@switch                    separates the TypeScript and JavaScript variants
//
// Parsing is strict about delimiters: a marker without its closing delimiter,
// or a marker repeated where the renderer would recurse on it, yields an
// *Error instead of a best-effort slice.
package directive

import (
	"errors"
	"fmt"
	"strings"
)

// Directive markers, matched literally.
const (
	FilenameMarker = "@@filename"
	SwitchMarker   = "@@switch"
)

// ErrMalformed is the sentinel wrapped by every *Error.
var ErrMalformed = errors.New("malformed directive")

// Error describes a directive that cannot be rewritten safely.
type Error struct {
	// Marker is the directive marker involved.
	Marker string

	// Offset is the byte offset of the marker in the code block.
	Offset int

	// Reason explains what is wrong.
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Marker, e.Offset, e.Reason)
}

// Unwrap lets errors.Is match ErrMalformed.
func (e *Error) Unwrap() error {
	return ErrMalformed
}

// Index returns the offset of the first occurrence of marker in code, or -1.
func Index(code, marker string) int {
	return strings.Index(code, marker)
}

// Filename is a parsed @@filename directive.
type Filename struct {
	// Name is the text between the parentheses. It may be empty.
	Name string

	// Body is everything after the closing parenthesis, untrimmed. It is
	// rendered as the labelled code block.
	Body string
}

// ParseFilename parses the @@filename directive whose marker starts at index.
// The argument runs from the "(" directly after the marker to the first ")".
// Text before the marker is discarded.
func ParseFilename(code string, index int) (Filename, error) {
	start := index + len(FilenameMarker)
	if start >= len(code) || code[start] != '(' {
		return Filename{}, &Error{Marker: FilenameMarker, Offset: index, Reason: `expected "(" after marker`}
	}

	end := strings.IndexByte(code[start:], ')')
	if end < 0 {
		return Filename{}, &Error{Marker: FilenameMarker, Offset: index, Reason: `missing closing ")"`}
	}
	end += start

	name := code[start+1 : end]
	if strings.ContainsAny(name, "\r\n") {
		return Filename{}, &Error{Marker: FilenameMarker, Offset: index, Reason: "filename spans multiple lines"}
	}
	if strings.ContainsRune(name, '\'') {
		return Filename{}, &Error{Marker: FilenameMarker, Offset: index, Reason: "filename contains a quote"}
	}

	body := code[end+1:]
	if next := strings.Index(body, FilenameMarker); next >= 0 {
		return Filename{}, &Error{
			Marker: FilenameMarker,
			Offset: end + 1 + next,
			Reason: "repeated marker in one code block",
		}
	}

	return Filename{Name: strings.TrimSpace(name), Body: body}, nil
}

// Switch is a parsed @@switch directive.
type Switch struct {
	// TypeScript is the trimmed text before the marker.
	TypeScript string

	// JavaScript is the trimmed text after the marker.
	JavaScript string
}

// ParseSwitch splits code at the @@switch marker starting at index.
func ParseSwitch(code string, index int) (Switch, error) {
	if index < 0 || index+len(SwitchMarker) > len(code) || code[index:index+len(SwitchMarker)] != SwitchMarker {
		return Switch{}, &Error{Marker: SwitchMarker, Offset: index, Reason: "marker not found at offset"}
	}

	typeScript := strings.TrimSpace(code[:index])
	rest := code[index+len(SwitchMarker):]
	javaScript := strings.TrimSpace(rest)

	if next := strings.Index(rest, SwitchMarker); next >= 0 {
		return Switch{}, &Error{
			Marker: SwitchMarker,
			Offset: index + len(SwitchMarker) + next,
			Reason: "repeated marker in one code block",
		}
	}
	if typeScript == "" {
		return Switch{}, &Error{Marker: SwitchMarker, Offset: index, Reason: "no TypeScript code before marker"}
	}
	if javaScript == "" {
		return Switch{}, &Error{Marker: SwitchMarker, Offset: index, Reason: "no JavaScript code after marker"}
	}

	return Switch{TypeScript: typeScript, JavaScript: javaScript}, nil
}
