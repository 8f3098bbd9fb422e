package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtmpl/pkg/highlight"
)

func TestPlain(t *testing.T) {
	t.Parallel()

	out, ok := highlight.Plain{}.Highlight(`if (a < b && c > "d") {}`, "typescript")
	require.True(t, ok)
	assert.Equal(t, "if (a &lt; b &amp;&amp; c &gt; &#34;d&#34;) {}", out)
}

func TestChroma_KnownLanguage(t *testing.T) {
	t.Parallel()

	hl := highlight.NewChroma(highlight.Options{Classes: true})
	out, ok := hl.Highlight("const answer = 42;\n", "typescript")

	require.True(t, ok)
	assert.Contains(t, out, "answer")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "<span")
	assert.NotContains(t, out, "<pre")
}

func TestChroma_EscapesMarkup(t *testing.T) {
	t.Parallel()

	hl := highlight.NewChroma(highlight.Options{})
	out, ok := hl.Highlight("<app-root></app-root>\n", "html")

	require.True(t, ok)
	assert.NotContains(t, out, "<app-root>")
}

func TestChroma_UnknownLanguage(t *testing.T) {
	t.Parallel()

	hl := highlight.NewChroma(highlight.Options{})

	_, ok := hl.Highlight("x", "no-such-language")
	assert.False(t, ok)

	_, ok = hl.Highlight("x", "")
	assert.False(t, ok)
}
