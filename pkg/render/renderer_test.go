package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdtmpl/pkg/highlight"
	"github.com/yaklabco/mdtmpl/pkg/render"
)

func TestBase_Code(t *testing.T) {
	t.Parallel()

	base := render.NewBase(highlight.Plain{})

	tests := []struct {
		name    string
		code    string
		lang    string
		escaped bool
		want    string
	}{
		{
			name: "with language",
			code: "const x = 1;",
			lang: "typescript",
			want: "<pre><code class=\"language-typescript\">const x = 1;\n</code></pre>\n",
		},
		{
			name: "info string keeps first word",
			code: "a < b\n",
			lang: "ts title=x",
			want: "<pre><code class=\"language-ts\">a &lt; b\n</code></pre>\n",
		},
		{
			name: "no language",
			code: "plain",
			want: "<pre><code>plain\n</code></pre>\n",
		},
		{
			name:    "already escaped",
			code:    "a &lt; b",
			lang:    "ts",
			escaped: true,
			want:    "<pre><code class=\"language-ts\">a &lt; b\n</code></pre>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, base.Code(tt.code, tt.lang, tt.escaped))
		})
	}
}

func TestBase_NilHighlighterEscapes(t *testing.T) {
	t.Parallel()

	base := &render.Base{}
	assert.Equal(t, "<pre><code class=\"language-x\">&lt;b&gt;\n</code></pre>\n", base.Code("<b>", "x", false))
}

func TestBase_Heading(t *testing.T) {
	t.Parallel()

	base := render.NewBase(nil)
	assert.Equal(t, "<h3 id=\"title\">Title</h3>\n", base.Heading("Title", 3, "title"))
	assert.Equal(t, "<h1>Intro</h1>\n", base.Heading("Intro", 1, ""))
	assert.Equal(t, "<h6>Deep</h6>\n", base.Heading("Deep", 9, ""))
}

func TestBase_Link(t *testing.T) {
	t.Parallel()

	base := render.NewBase(nil)
	assert.Equal(t, `<a href="/docs/intro">Intro</a>`, base.Link("/docs/intro", "", "Intro"))
	assert.Equal(t, `<a href="/a?b=1&amp;c=2" title="A &#34;b&#34;">x</a>`, base.Link("/a?b=1&c=2", `A "b"`, "x"))
}

func TestBase_Table(t *testing.T) {
	t.Parallel()

	base := render.NewBase(nil)
	assert.Equal(t,
		"<table>\n<thead>\n<tr>\n<th>Name</th>\n</tr>\n</thead>\n<tbody>\n<tr><td>x</td></tr></tbody>\n</table>\n",
		base.Table("<th>Name</th>", "<tr><td>x</td></tr>"),
	)
	assert.Equal(t,
		"<table>\n<tbody>\n<tr><td>x</td></tr></tbody>\n</table>\n",
		base.Table("", "<tr><td>x</td></tr>"),
	)
}

func TestCounter(t *testing.T) {
	t.Parallel()

	ids := render.NewCounter(render.DefaultIDPrefix)
	got := []string{ids.Next(), ids.Next()}
	for range 12 {
		ids.Next()
	}
	got = append(got, ids.Next())

	assert.Equal(t, []string{"app1", "app2", "appf"}, got)
}
