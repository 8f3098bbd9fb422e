package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtmpl/pkg/compiler"
	"github.com/yaklabco/mdtmpl/pkg/fsutil"
	"github.com/yaklabco/mdtmpl/pkg/highlight"
	"github.com/yaklabco/mdtmpl/pkg/render"
	"github.com/yaklabco/mdtmpl/pkg/runner"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newPipeline(t *testing.T, strict bool) (*runner.Pipeline, string, string) {
	t.Helper()

	dir := t.TempDir()
	src := filepath.Join(dir, "content")
	dest := filepath.Join(dir, "pages")
	require.NoError(t, os.MkdirAll(src, 0o755))

	c := compiler.New(compiler.Options{Highlighter: highlight.Plain{}, Strict: strict})
	return runner.NewPipeline(c, compiler.Layout{SourceRoot: src, DestRoot: dest}), src, dest
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"introduction.md":        "# Intro",
		"techniques/caching.md":  "# Caching",
		"techniques/logger.md":   "# Logger",
		"techniques/image.png":   "",
		".github/template.md":    "",
		"drafts/next.md":         "",
		"recipes/.scratch.md":    "",
		"recipes/cqrs.md":        "# CQRS",
		"recipes/cqrs.wip.md":    "",
		"faq/errors.markdown":    "",
		"faq/nested/deep/one.md": "# One",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		SourceRoot: root,
		Ignore:     []string{"drafts", "**/*.wip.md"},
	})
	require.NoError(t, err)

	want := []string{
		filepath.Join(root, "faq", "nested", "deep", "one.md"),
		filepath.Join(root, "introduction.md"),
		filepath.Join(root, "recipes", "cqrs.md"),
		filepath.Join(root, "techniques", "caching.md"),
		filepath.Join(root, "techniques", "logger.md"),
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("Discover() mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	file := filepath.Join(root, "intro.md")
	require.NoError(t, os.WriteFile(file, []byte("# x"), 0o644))

	_, err := runner.Discover(context.Background(), runner.Options{SourceRoot: filepath.Join(root, "missing")})
	require.Error(t, err)

	_, err = runner.Discover(context.Background(), runner.Options{SourceRoot: file})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{SourceRoot: root})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_Process(t *testing.T) {
	t.Parallel()

	pipeline, src, dest := newPipeline(t, false)
	writeTree(t, src, map[string]string{"techniques/caching.md": "# Caching\n"})

	path := filepath.Join(src, "techniques", "caching.md")
	wantDest := filepath.Join(dest, "techniques", "caching.component.html")

	outcome := pipeline.Process(context.Background(), path)
	require.NoError(t, outcome.Error)
	assert.Equal(t, runner.StatusWritten, outcome.Status)
	assert.Equal(t, wantDest, outcome.Destination)

	got, err := os.ReadFile(wantDest)
	require.NoError(t, err)
	assert.Contains(t, string(got), `<h1 appAnchor id="caching">Caching</h1>`)

	again := pipeline.Process(context.Background(), path)
	assert.Equal(t, runner.StatusUnchanged, again.Status)
}

func TestPipeline_ProcessMissingSource(t *testing.T) {
	t.Parallel()

	pipeline, src, dest := newPipeline(t, false)

	outcome := pipeline.Process(context.Background(), filepath.Join(src, "gone.md"))
	assert.Equal(t, runner.StatusFailed, outcome.Status)
	require.ErrorIs(t, outcome.Error, fsutil.ErrNotFound)
	assert.NoFileExists(t, filepath.Join(dest, "gone.component.html"))
}

func TestPipeline_ProcessStrict(t *testing.T) {
	t.Parallel()

	pipeline, src, dest := newPipeline(t, true)
	writeTree(t, src, map[string]string{"bad.md": "```ts\n@@filename(x\n```\n"})

	outcome := pipeline.Process(context.Background(), filepath.Join(src, "bad.md"))
	assert.Equal(t, runner.StatusFailed, outcome.Status)
	require.ErrorIs(t, outcome.Error, compiler.ErrMalformedDirectives)
	assert.Len(t, outcome.Errors(), 1)
	assert.NoFileExists(t, filepath.Join(dest, "bad.component.html"))
}

func TestPipeline_ProcessCheck(t *testing.T) {
	t.Parallel()

	pipeline, src, dest := newPipeline(t, false)
	pipeline.Check = true
	writeTree(t, src, map[string]string{"intro.md": "# Intro\n"})

	path := filepath.Join(src, "intro.md")
	template := filepath.Join(dest, "intro.component.html")
	ctx := context.Background()

	missing := pipeline.Process(ctx, path)
	require.NoError(t, missing.Error)
	assert.Equal(t, runner.StatusStale, missing.Status)
	assert.Contains(t, missing.Diff, "--- /dev/null")
	assert.Contains(t, missing.Diff, `+<h1 appAnchor id="intro">Intro</h1>`)
	assert.NoFileExists(t, template)

	writeTree(t, dest, map[string]string{"intro.component.html": "<div>old</div>\n"})
	changed := pipeline.Process(ctx, path)
	assert.Equal(t, runner.StatusStale, changed.Status)
	assert.Contains(t, changed.Diff, "-<div>old</div>")

	pipeline.Check = false
	require.Equal(t, runner.StatusWritten, pipeline.Process(ctx, path).Status)

	pipeline.Check = true
	fresh := pipeline.Process(ctx, path)
	assert.Equal(t, runner.StatusUnchanged, fresh.Status)
	assert.Empty(t, fresh.Diff)
}

func TestPipeline_Remove(t *testing.T) {
	t.Parallel()

	pipeline, src, dest := newPipeline(t, false)
	writeTree(t, dest, map[string]string{"faq/errors.component.html": "<div></div>"})

	outcome := pipeline.Remove(context.Background(), filepath.Join(src, "faq", "errors.md"))
	require.NoError(t, outcome.Error)
	assert.Equal(t, runner.StatusRemoved, outcome.Status)
	assert.NoFileExists(t, filepath.Join(dest, "faq", "errors.component.html"))

	outcome = pipeline.Remove(context.Background(), filepath.Join(src, "faq", "errors.md"))
	assert.Equal(t, runner.StatusUnchanged, outcome.Status)
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	pipeline, src, dest := newPipeline(t, false)
	writeTree(t, src, map[string]string{
		"introduction.md":       "# Introduction\n",
		"techniques/caching.md": "```ts\n@@filename(cache.ts)\nconst a = 1;\n```\n",
		"techniques/broken.md":  "```ts\n@@switch\n```\n",
		"first-steps.md":        "[Next](/techniques/caching)\n",
	})

	result, err := runner.New(pipeline).Run(context.Background(), runner.Options{SourceRoot: src, Jobs: 2})
	require.NoError(t, err)

	paths := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		paths = append(paths, f.Path)
	}
	want := []string{
		filepath.Join(src, "first-steps.md"),
		filepath.Join(src, "introduction.md"),
		filepath.Join(src, "techniques", "broken.md"),
		filepath.Join(src, "techniques", "caching.md"),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("Run() order mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 4, result.Stats.FilesDiscovered)
	assert.Equal(t, 4, result.Stats.FilesWritten)
	assert.Equal(t, 0, result.Stats.FilesFailed)
	assert.Equal(t, 1, result.Stats.FilesWithIssues)
	assert.Equal(t, 1, result.Stats.DiagnosticsBySeverity[render.SeverityError])
	assert.True(t, result.HasFailures())
	assert.Empty(t, result.Failed())

	assert.FileExists(t, filepath.Join(dest, "techniques", "caching.component.html"))
	assert.FileExists(t, filepath.Join(dest, "first-steps.component.html"))

	second, err := runner.New(pipeline).Run(context.Background(), runner.Options{SourceRoot: src})
	require.NoError(t, err)
	assert.Equal(t, 4, second.Stats.FilesUnchanged)
}

func TestRunner_RunCancelled(t *testing.T) {
	t.Parallel()

	pipeline, src, _ := newPipeline(t, false)
	writeTree(t, src, map[string]string{"a.md": "# a\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(pipeline).Run(ctx, runner.Options{SourceRoot: src})
	require.ErrorIs(t, err, context.Canceled)
}
