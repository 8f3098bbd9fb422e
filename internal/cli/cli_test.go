package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdtmpl/internal/cli"
	"github.com/yaklabco/mdtmpl/pkg/fsutil"
)

var testInfo = cli.BuildInfo{
	Version: "test-version",
	Commit:  "test-commit",
	Date:    "test-date",
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--color", "never"))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// newSite creates a content tree plus a config file pointing at it.
func newSite(t *testing.T, files map[string]string, extra string) (string, string) {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		writeFile(t, filepath.Join(root, "content", filepath.FromSlash(name)), content)
	}

	configPath := filepath.Join(root, ".mdtmpl.yml")
	writeFile(t, configPath, "src: content\ndest: pages\n"+extra)

	return root, configPath
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	if cmd.Use != "mdtmpl" {
		t.Errorf("expected Use to be 'mdtmpl', got %q", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("expected Short and Long descriptions to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"build", "watch", "compile", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"build":   {"src", "dest", "ignore", "flavor", "strict", "jobs", "format", "summary", "compact", "check", "diff"},
		"watch":   {"src", "dest", "ignore", "flavor", "strict", "initial-build"},
		"compile": {"flavor", "strict"},
		"init":    {"force", "output"},
	}

	cmd := cli.NewRootCommand(testInfo)
	for name, flags := range tests {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Fatalf("%s command not found: %v", name, err)
		}
		for _, flag := range flags {
			if subCmd.Flags().Lookup(flag) == nil {
				t.Errorf("expected %s to have flag --%s", name, flag)
			}
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}

	for _, want := range []string{"test-version", "test-commit", "test-date"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected version output to contain %q, got %q", want, stdout)
		}
	}
}

func TestHelpIsStyled(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "build", "--help")
	if err != nil {
		t.Fatalf("help failed: %v", err)
	}

	for _, want := range []string{"Usage:", "Flags:", "--strict", "Global Flags:", "--config"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected help to contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestBuildCommand(t *testing.T) {
	t.Parallel()

	root, configPath := newSite(t, map[string]string{
		"introduction.md":      "# Introduction\n\nSee [first steps](/first-steps).\n",
		"techniques/cache.md":  "## Caching\n",
		"techniques/.draft.md": "# Draft\n",
	}, "")

	stdout, _, err := execute(t, "build", "--config", configPath)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if !strings.Contains(stdout, "2 files compiled (2 written, 0 unchanged)") {
		t.Errorf("unexpected summary: %q", stdout)
	}

	intro, err := os.ReadFile(filepath.Join(root, "pages", "introduction.component.html"))
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if !strings.Contains(string(intro), `<a routerLink="/first-steps">first steps</a>`) {
		t.Errorf("unexpected template:\n%s", intro)
	}

	if _, err := os.Stat(filepath.Join(root, "pages", "techniques", "cache.component.html")); err != nil {
		t.Errorf("expected nested template: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "pages", "techniques", ".draft.component.html")); err == nil {
		t.Error("dotfile should not be compiled")
	}

	stdout, _, err = execute(t, "build", "--config", configPath)
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if !strings.Contains(stdout, "(0 written, 2 unchanged)") {
		t.Errorf("expected unchanged templates on rebuild, got %q", stdout)
	}
}

func TestBuildCommand_StrictFailure(t *testing.T) {
	t.Parallel()

	root, configPath := newSite(t, map[string]string{
		"broken.md": "```ts\n@@filename(app.ts\nconst a = 1;\n```\n",
	}, "")

	stdout, _, err := execute(t, "build", "--config", configPath, "--strict")
	if !errors.Is(err, cli.ErrBuildFailed) {
		t.Fatalf("expected ErrBuildFailed, got %v", err)
	}
	if got := cli.ExitCode(err); got != cli.ExitBuildErrors {
		t.Errorf("expected exit code %d, got %d", cli.ExitBuildErrors, got)
	}
	if !strings.Contains(stdout, "broken.md") {
		t.Errorf("expected the failing file to be reported, got %q", stdout)
	}

	if _, err := os.Stat(filepath.Join(root, "pages", "broken.component.html")); err == nil {
		t.Error("strict failure must not write a template")
	}
}

func TestBuildCommand_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, configPath := newSite(t, nil, "flavor: markdown-extra\n")

	_, _, err := execute(t, "build", "--config", configPath)
	if got := cli.ExitCode(err); got != cli.ExitConfigError {
		t.Errorf("expected exit code %d, got %d (%v)", cli.ExitConfigError, got, err)
	}
}

func TestCompileCommand(t *testing.T) {
	t.Parallel()

	root, configPath := newSite(t, map[string]string{
		"faq.md": "### Why?\n\nBecause.\n",
	}, "")

	stdout, _, err := execute(t, "compile", "--config", configPath, filepath.Join(root, "content", "faq.md"))
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if !strings.Contains(stdout, `<h3 appAnchor id="why">`) {
		t.Errorf("unexpected output:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Join(root, "pages")); err == nil {
		t.Error("compile must not write templates")
	}
}

func TestCompileCommand_Diagnostics(t *testing.T) {
	t.Parallel()

	root, configPath := newSite(t, map[string]string{
		"broken.md": "```ts\n@@filename(app.ts\n```\n",
	}, "")
	path := filepath.Join(root, "content", "broken.md")

	stdout, stderr, err := execute(t, "compile", "--config", configPath, path)
	if err != nil {
		t.Fatalf("lenient compile failed: %v", err)
	}
	if stdout == "" {
		t.Error("expected lenient compile to print the template")
	}
	if !strings.Contains(stderr, "broken.md:2") {
		t.Errorf("expected a diagnostic on line 2, got %q", stderr)
	}

	stdout, _, err = execute(t, "compile", "--config", configPath, "--strict", path)
	if !errors.Is(err, cli.ErrBuildFailed) {
		t.Fatalf("expected ErrBuildFailed, got %v", err)
	}
	if stdout != "" {
		t.Errorf("strict failure must not print a template, got %q", stdout)
	}
}

func TestCompileCommand_MissingFile(t *testing.T) {
	t.Parallel()

	_, configPath := newSite(t, nil, "")

	_, _, err := execute(t, "compile", "--config", configPath, filepath.Join(t.TempDir(), "missing.md"))
	if !errors.Is(err, fsutil.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := cli.ExitCode(err); got != cli.ExitIOError {
		t.Errorf("expected exit code %d, got %d", cli.ExitIOError, got)
	}
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".mdtmpl.yml")

	if _, _, err := execute(t, "init", "--output", output); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	for _, want := range []string{"# mdtmpl configuration.", "src: content", "dest: src/app/homepage/pages"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("expected config to contain %q, got:\n%s", want, content)
		}
	}

	_, _, err = execute(t, "init", "--output", output)
	if got := cli.ExitCode(err); got != cli.ExitInvalidUsage {
		t.Errorf("expected existing file to be a usage error, got %d (%v)", got, err)
	}

	if _, _, err := execute(t, "init", "--output", output, "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}
}

func TestUsageErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"build", "--no-such-flag"}},
		{"missing file argument", []string{"compile"}},
		{"extra argument", []string{"version", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, tt.args...)
			if got := cli.ExitCode(err); got != cli.ExitInvalidUsage {
				t.Errorf("expected exit code %d, got %d (%v)", cli.ExitInvalidUsage, got, err)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"build failed", cli.ErrBuildFailed, cli.ExitBuildErrors},
		{"config", cli.ErrConfig, cli.ExitConfigError},
		{"not found", fsutil.ErrNotFound, cli.ExitIOError},
		{"permission", fsutil.ErrPermissionDenied, cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestBuildCommand_JSONReport(t *testing.T) {
	t.Parallel()

	_, configPath := newSite(t, map[string]string{
		"intro.md": "# Intro\n",
	}, "")

	stdout, _, err := execute(t, "build", "--config", configPath, "--format", "json")
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	var report struct {
		Files []struct {
			Status string `json:"status"`
		} `json:"files"`
		Summary struct {
			FilesWritten int `json:"filesWritten"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("report is not JSON: %v\n%s", err, stdout)
	}
	if len(report.Files) != 1 || report.Files[0].Status != "written" || report.Summary.FilesWritten != 1 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestBuildCommand_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "build", "--format", "xml")
	if got := cli.ExitCode(err); got != cli.ExitInvalidUsage {
		t.Errorf("expected exit code %d, got %d (%v)", cli.ExitInvalidUsage, got, err)
	}
}

func TestBuildCommand_Check(t *testing.T) {
	t.Parallel()

	root, configPath := newSite(t, map[string]string{
		"intro.md": "# Intro\n",
	}, "")
	template := filepath.Join(root, "pages", "intro.component.html")

	stdout, _, err := execute(t, "build", "--config", configPath, "--check", "--diff")
	if !errors.Is(err, cli.ErrBuildFailed) {
		t.Fatalf("expected a missing template to fail the check, got %v", err)
	}
	if !strings.Contains(stdout, "1 file stale") || !strings.Contains(stdout, "+<h1 appAnchor") {
		t.Errorf("expected a stale report with a diff, got:\n%s", stdout)
	}
	if _, err := os.Stat(template); err == nil {
		t.Fatal("check must not write templates")
	}

	if _, _, err := execute(t, "build", "--config", configPath); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, _, err := execute(t, "build", "--config", configPath, "--check"); err != nil {
		t.Errorf("expected fresh templates to pass the check, got %v", err)
	}

	_, _, err = execute(t, "build", "--config", configPath, "--diff")
	if got := cli.ExitCode(err); got != cli.ExitInvalidUsage {
		t.Errorf("expected --diff without --check to be a usage error, got %d (%v)", got, err)
	}
}
