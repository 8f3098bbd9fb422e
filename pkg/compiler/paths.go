package compiler

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultComponentSuffix is appended to the document name to form the
// template file name.
const DefaultComponentSuffix = ".component.html"

// ErrOutsideRoot is returned when a source file is not under the content root.
var ErrOutsideRoot = errors.New("path is outside the content root")

// Layout maps Markdown sources under SourceRoot to templates under DestRoot.
type Layout struct {
	SourceRoot string
	DestRoot   string

	// Suffix replaces the Markdown extension. Empty means DefaultComponentSuffix.
	Suffix string
}

// Destination returns the template path for source:
// <SourceRoot>/<rel>/<name>.md becomes <DestRoot>/<rel>/<name><Suffix>.
func (l Layout) Destination(source string) (string, error) {
	rel, err := filepath.Rel(l.SourceRoot, source)
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", source, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, source)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	segments := strings.Split(rel, "/")

	suffix := l.Suffix
	if suffix == "" {
		suffix = DefaultComponentSuffix
	}
	segments[len(segments)-1] += suffix

	return filepath.Join(append([]string{l.DestRoot}, segments...)...), nil
}
