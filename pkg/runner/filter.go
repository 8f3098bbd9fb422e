package runner

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

// Filter decides which paths under Root are Markdown sources. Dotfiles and
// dot-directories are always skipped.
type Filter struct {
	Root       string
	Extensions []string
	Ignore     []string
}

// SkipDir reports whether the directory at path should not be descended
// into. Root itself is never skipped.
func (f Filter) SkipDir(path string) bool {
	rel, ok := f.rel(path)
	if !ok {
		return true
	}
	if rel == "." {
		return false
	}
	return hidden(rel) || f.ignored(rel)
}

// Accepts reports whether the file at path is a source to compile.
func (f Filter) Accepts(path string) bool {
	rel, ok := f.rel(path)
	if !ok || rel == "." {
		return false
	}
	if !f.hasExtension(path) {
		return false
	}
	return !hidden(rel) && !f.ignored(rel)
}

func (f Filter) rel(path string) (string, bool) {
	rel, err := filepath.Rel(f.Root, path)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

func (f Filter) hasExtension(path string) bool {
	extensions := f.Extensions
	if len(extensions) == 0 {
		extensions = DefaultExtensions()
	}

	ext := strings.ToLower(filepath.Ext(path))
	return lo.ContainsBy(extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

// ignored matches rel against the ignore patterns. A pattern also matches
// everything below a directory it matches.
func (f Filter) ignored(rel string) bool {
	return lo.SomeBy(f.Ignore, func(pattern string) bool {
		dir := strings.TrimSuffix(strings.TrimSuffix(filepath.ToSlash(pattern), "/**"), "/")
		return match(dir, rel) || match(dir+"/**", rel)
	})
}

func match(pattern, rel string) bool {
	matched, err := doublestar.Match(pattern, rel)
	return err == nil && matched
}

func hidden(rel string) bool {
	return lo.SomeBy(strings.Split(rel, "/"), func(segment string) bool {
		return strings.HasPrefix(segment, ".") && segment != "." && segment != ".."
	})
}
