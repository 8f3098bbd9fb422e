// Package config defines the configuration types for mdtmpl.
// These types are pure data structures with no dependency on the loader.
package config

import "github.com/samber/lo"

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Defaults used by NewConfig.
const (
	DefaultSrc             = "content"
	DefaultDest            = "src/app/homepage/pages"
	DefaultComponentSuffix = ".component.html"
	DefaultHighlightStyle  = "github"
	DefaultContainerClass  = "content"
	DefaultContainerRef    = "contentReference"
)

// ContainerConfig describes the element wrapping every generated template.
type ContainerConfig struct {
	Class string `yaml:"class,omitempty"`
	Ref   string `yaml:"ref,omitempty"`
}

// HighlightConfig controls syntax highlighting of code blocks.
type HighlightConfig struct {
	// Style is a chroma style name, used when Classes is false.
	Style string `yaml:"style,omitempty"`

	// Classes emits CSS classes instead of inline styles.
	Classes *bool `yaml:"classes,omitempty"`

	// DetectLanguage guesses the language of fences without one.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// DefaultLanguage applies to fences without a language when detection
	// is off or inconclusive.
	DefaultLanguage string `yaml:"default_language,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Src is the content root holding the Markdown sources.
	Src string `yaml:"src,omitempty"`

	// Dest is the output root for generated templates.
	Dest string `yaml:"dest,omitempty"`

	// Extensions are the source file extensions, with leading dot.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains doublestar patterns, relative to Src, to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// ComponentSuffix replaces the source extension in output names.
	ComponentSuffix string `yaml:"component_suffix,omitempty"`

	Container ContainerConfig `yaml:"container,omitempty"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor,omitempty"`

	Highlight HighlightConfig `yaml:"highlight,omitempty"`

	// Strict fails a file whose directives are malformed instead of
	// rendering them as plain code.
	Strict *bool `yaml:"strict,omitempty"`

	// InitialBuild compiles the whole tree before watching.
	InitialBuild *bool `yaml:"initial_build,omitempty"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config with the defaults for the documentation site.
func NewConfig() *Config {
	return &Config{
		Src:             DefaultSrc,
		Dest:            DefaultDest,
		Extensions:      []string{".md"},
		ComponentSuffix: DefaultComponentSuffix,
		Container: ContainerConfig{
			Class: DefaultContainerClass,
			Ref:   DefaultContainerRef,
		},
		Flavor: FlavorGFM,
		Highlight: HighlightConfig{
			Style:          DefaultHighlightStyle,
			Classes:        lo.ToPtr(false),
			DetectLanguage: lo.ToPtr(true),
		},
		Strict:       lo.ToPtr(false),
		InitialBuild: lo.ToPtr(false),
		Jobs:         0, // 0 means use runtime.NumCPU
	}
}

// IsStrict reports whether strict mode is on.
func (c *Config) IsStrict() bool {
	return lo.FromPtr(c.Strict)
}

// WantsInitialBuild reports whether watch should build the tree first.
func (c *Config) WantsInitialBuild() bool {
	return lo.FromPtr(c.InitialBuild)
}

// UsesClasses reports whether highlighting emits CSS classes.
func (h HighlightConfig) UsesClasses() bool {
	return lo.FromPtr(h.Classes)
}

// Detects reports whether untagged fences get a guessed language.
func (h HighlightConfig) Detects() bool {
	return lo.FromPtr(h.DetectLanguage)
}
