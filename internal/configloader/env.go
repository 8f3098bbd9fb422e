package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/mdtmpl/pkg/config"
)

// envVarPrefix is the prefix for all mdtmpl environment variables.
const envVarPrefix = "MDTMPL_"

// envField applies one environment variable to the configuration.
type envField struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

// envFields maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envFields = map[string]envField{
	"SRC": {"Content root holding the Markdown sources", func(cfg *config.Config, v string) error {
		cfg.Src = v
		return nil
	}},
	"DEST": {"Output root for generated templates", func(cfg *config.Config, v string) error {
		cfg.Dest = v
		return nil
	}},
	"IGNORE": {"Comma-separated list of ignore patterns", func(cfg *config.Config, v string) error {
		cfg.Ignore = parseSliceValue(v)
		return nil
	}},
	"FLAVOR": {"Markdown flavor: commonmark or gfm", func(cfg *config.Config, v string) error {
		cfg.Flavor = config.Flavor(v)
		return nil
	}},
	"HIGHLIGHT_STYLE": {"Chroma style for inline highlighting", func(cfg *config.Config, v string) error {
		cfg.Highlight.Style = v
		return nil
	}},
	"HIGHLIGHT_CLASSES": {"Emit CSS classes instead of inline styles: true or false", boolField(func(cfg *config.Config) **bool {
		return &cfg.Highlight.Classes
	})},
	"STRICT": {"Fail files with malformed directives: true or false", boolField(func(cfg *config.Config) **bool {
		return &cfg.Strict
	})},
	"JOBS": {"Number of parallel workers (0 = auto)", func(cfg *config.Config, v string) error {
		jobs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer %q", v)
		}
		cfg.Jobs = jobs
		return nil
	}},
}

func boolField(field func(cfg *config.Config) **bool) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		*field(cfg) = &b
		return nil
	}
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MDTMPL_ (e.g., MDTMPL_SRC).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, field := range envFields {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := field.apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envFields))
	for suffix, field := range envFields {
		vars[envVarPrefix+suffix] = field.description
	}
	return vars
}
