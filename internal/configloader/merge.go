package configloader

import "github.com/yaklabco/deeplinks/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// A field overrides only when it is set (non-zero) in override, so a layer
// that omits a key never resets what a lower layer chose.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Version != 0 {
		result.Version = override.Version
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if len(override.Exclude) > 0 {
		result.Exclude = override.Exclude
	}
	if override.MaxRanges != 0 {
		result.MaxRanges = override.MaxRanges
	}

	return &result
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
