// Package langdetect guesses a fence language for code blocks written
// without one, so the highlighter still has a lexer to work with.
// It relies on go-enry and a few patterns common in framework documentation.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fence tags returned by Detect.
const (
	TypeScript = "typescript"
	JavaScript = "javascript"
	JSON       = "json"
	YAML       = "yaml"
	HTML       = "html"
	Bash       = "bash"
	Text       = "text"
)

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// Candidates offered to the enry classifier.
	classifierCandidates = []string{
		"TypeScript", "JavaScript", "Shell", "JSON", "YAML", "HTML", "CSS", "GraphQL", "Dockerfile",
	}

	// Decorators and type annotations are what tell TypeScript apart from JavaScript.
	decoratorPattern  = regexp.MustCompile(`(?m)^\s*@[A-Z][A-Za-z]*\(`)
	annotationPattern = regexp.MustCompile(`\b(private|public|readonly|protected)\s+\w+\s*:|\)\s*:\s*[A-Z][\w<>\[\]]*\s*\{|\binterface\s+[A-Z]\w*\s*\{`)
	importPattern     = regexp.MustCompile(`(?m)^\s*import\s+(\{[^}]*\}|\*\s+as\s+\w+|\w+)\s+from\s+['"]`)
	shellPattern      = regexp.MustCompile(`(?m)^\s*\$?\s*(npm|npx|yarn|pnpm|nest|git|docker|curl|cd|mkdir)\s`)
)

// Detect returns the fence tag for content, or Text when nothing is certain.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(trimmed); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

func detectByPattern(trimmed []byte) string {
	text := string(trimmed)

	switch {
	case decoratorPattern.MatchString(text), annotationPattern.MatchString(text):
		return TypeScript
	case importPattern.MatchString(text):
		// Imports alone do not settle TS versus JS; docs default to TS.
		return TypeScript
	case isJSON(trimmed):
		return JSON
	case isHTML(trimmed):
		return HTML
	case shellPattern.MatchString(text):
		return Bash
	case isYAML(trimmed):
		return YAML
	case strings.Contains(text, "=>"), strings.Contains(text, "module.exports"), strings.Contains(text, "require("):
		return JavaScript
	}

	return ""
}

func isJSON(trimmed []byte) bool {
	first, last := trimmed[0], trimmed[len(trimmed)-1]
	return (first == '{' && last == '}' || first == '[' && last == ']') && bytes.Contains(trimmed, []byte(`":`))
}

func isHTML(trimmed []byte) bool {
	if trimmed[0] != '<' {
		return false
	}
	lower := bytes.ToLower(trimmed)
	return bytes.HasPrefix(lower, []byte("<!doctype")) || bytes.Contains(lower, []byte("</"))
}

// isYAML requires two or more "key: value" style lines and nothing that looks
// like a statement.
func isYAML(trimmed []byte) bool {
	keys := 0
	for _, line := range bytes.Split(trimmed, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.ContainsAny(line, "(){};") {
			return false
		}
		if bytes.HasPrefix(line, []byte("- ")) || bytes.Contains(line, []byte(": ")) || bytes.HasSuffix(line, []byte(":")) {
			keys++
		}
	}
	return keys >= 2
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return Bash
	}
	return strings.ToLower(lang)
}
