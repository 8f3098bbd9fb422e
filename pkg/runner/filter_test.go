package runner_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdtmpl/pkg/runner"
)

func TestFilter_Accepts(t *testing.T) {
	t.Parallel()

	filter := runner.Filter{
		Root:   "content",
		Ignore: []string{"drafts", "**/*.wip.md"},
	}

	tests := []struct {
		path string
		want bool
	}{
		{"content/introduction.md", true},
		{"content/techniques/caching.md", true},
		{"content/INTRO.MD", true},
		{"content/notes.txt", false},
		{"content/.hidden.md", false},
		{"content/.git/readme.md", false},
		{"content/drafts/next.md", false},
		{"content/recipes/cqrs.wip.md", false},
		{"other/intro.md", false},
		{"content", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, filter.Accepts(filepath.FromSlash(tt.path)))
		})
	}
}

func TestFilter_SkipDir(t *testing.T) {
	t.Parallel()

	filter := runner.Filter{Root: "content", Ignore: []string{"drafts/**"}}

	assert.False(t, filter.SkipDir("content"))
	assert.False(t, filter.SkipDir(filepath.Join("content", "techniques")))
	assert.True(t, filter.SkipDir(filepath.Join("content", ".cache")))
	assert.True(t, filter.SkipDir(filepath.Join("content", "drafts")))
	assert.True(t, filter.SkipDir("elsewhere"))
}
