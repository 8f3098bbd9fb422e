package configloader

import "github.com/yaklabco/mdtmpl/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if set, so false can win
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	mergeString(&result.Src, override.Src)
	mergeString(&result.Dest, override.Dest)
	mergeString(&result.ComponentSuffix, override.ComponentSuffix)
	mergeString(&result.Container.Class, override.Container.Class)
	mergeString(&result.Container.Ref, override.Container.Ref)
	mergeString(&result.Highlight.Style, override.Highlight.Style)
	mergeString(&result.Highlight.DefaultLanguage, override.Highlight.DefaultLanguage)

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	mergeBool(&result.Highlight.Classes, override.Highlight.Classes)
	mergeBool(&result.Highlight.DetectLanguage, override.Highlight.DetectLanguage)
	mergeBool(&result.Strict, override.Strict)
	mergeBool(&result.InitialBuild, override.InitialBuild)

	if override.Extensions != nil {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}

func mergeString(dst *string, override string) {
	if override != "" {
		*dst = override
	}
}

func mergeBool(dst **bool, override *bool) {
	if override != nil {
		v := *override
		*dst = &v
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
