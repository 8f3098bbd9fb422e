package markup

import (
	"strings"

	"golang.org/x/net/html"
)

// TagMatcher reports whether a lower-cased tag name is the one to edit.
type TagMatcher func(name string) bool

// AnyTag matches the first start tag of a fragment.
func AnyTag(string) bool { return true }

// Tag matches start tags with the given name.
func Tag(name string) TagMatcher {
	name = strings.ToLower(name)
	return func(n string) bool { return n == name }
}

// IsHeading matches h1 through h6.
func IsHeading(name string) bool {
	return len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6'
}

// StartTag locates a start tag inside a fragment.
type StartTag struct {
	// Name is the lower-cased tag name.
	Name string

	// Offset is the byte offset of the tag's "<" in the fragment.
	Offset int

	// Raw is the unmodified text of the tag, from "<" to ">".
	Raw string
}

// NameEnd returns the fragment offset just past the tag name.
func (t StartTag) NameEnd() int {
	return t.Offset + 1 + len(t.Name)
}

// FindStartTag returns the first start tag (or self-closing tag) in fragment
// accepted by match. Offsets are computed from the tokenizer's raw token
// text, so they index into the original, unnormalized fragment.
func FindStartTag(fragment string, match TagMatcher) (StartTag, bool) {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	offset := 0

	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			return StartTag{}, false
		}

		start := offset
		offset += len(tokenizer.Raw())

		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}

		name, _ := tokenizer.TagName()
		if !match(string(name)) {
			continue
		}

		return StartTag{
			Name:   string(name),
			Offset: start,
			Raw:    fragment[start:offset],
		}, true
	}
}

// InjectAttr inserts attr (for example `appAnchor` or `[class.hide]="x"`)
// right after the tag name of the first start tag accepted by match.
// It reports false, and returns fragment unchanged, when no tag matches.
func InjectAttr(fragment string, match TagMatcher, attr string) (string, bool) {
	tag, ok := FindStartTag(fragment, match)
	if !ok {
		return fragment, false
	}
	return InsertAt(fragment, tag.NameEnd(), " "+attr), true
}

// RenameAttr renames attribute from to to on the first start tag accepted by
// match. Attribute values and every other part of the fragment are left
// byte-for-byte intact. It reports false when no tag matches or the tag has
// no such attribute.
func RenameAttr(fragment string, match TagMatcher, from, to string) (string, bool) {
	tag, ok := FindStartTag(fragment, match)
	if !ok {
		return fragment, false
	}

	for _, span := range attrSpans(tag.Raw, len(tag.Name)+1) {
		if !strings.EqualFold(tag.Raw[span.start:span.end], from) {
			continue
		}
		start := tag.Offset + span.start
		end := tag.Offset + span.end
		return fragment[:start] + to + fragment[end:], true
	}

	return fragment, false
}

// span is a half-open byte range.
type span struct {
	start int
	end   int
}

// attrSpans returns the ranges of attribute names within a raw start tag,
// scanning from pos (just past the tag name).
func attrSpans(raw string, pos int) []span {
	var spans []span

	for pos < len(raw) {
		pos = skipSpace(raw, pos)
		if pos >= len(raw) || raw[pos] == '>' {
			break
		}
		if raw[pos] == '/' {
			pos++
			continue
		}

		nameStart := pos
		for pos < len(raw) && !isSpace(raw[pos]) && raw[pos] != '=' && raw[pos] != '>' && raw[pos] != '/' {
			pos++
		}
		spans = append(spans, span{start: nameStart, end: pos})

		pos = skipSpace(raw, pos)
		if pos >= len(raw) || raw[pos] != '=' {
			continue
		}
		pos = skipSpace(raw, pos+1)
		pos = skipValue(raw, pos)
	}

	return spans
}

func skipValue(raw string, pos int) int {
	if pos >= len(raw) {
		return pos
	}
	if quote := raw[pos]; quote == '"' || quote == '\'' {
		end := strings.IndexByte(raw[pos+1:], quote)
		if end < 0 {
			return len(raw)
		}
		return pos + 1 + end + 1
	}
	for pos < len(raw) && !isSpace(raw[pos]) && raw[pos] != '>' {
		pos++
	}
	return pos
}

func skipSpace(raw string, pos int) int {
	for pos < len(raw) && isSpace(raw[pos]) {
		pos++
	}
	return pos
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
