package configloader

import "github.com/yaklabco/markuplint/pkg/config"

// merge returns base with override layered on top. Non-zero scalars win,
// non-nil slices replace, booleans only ever switch on, and rule settings
// overlay position by position.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := base.Clone()

	overlay(&out.Format, override.Format)
	overlay(&out.Color, override.Color)
	overlay(&out.Jobs, override.Jobs)
	overlay(&out.Backups.Mode, override.Backups.Mode)
	overlay(&out.Cache.Dir, override.Cache.Dir)

	for _, flag := range []struct {
		dst *bool
		src bool
	}{
		{&out.Fix, override.Fix},
		{&out.DryRun, override.DryRun},
		{&out.NoBackups, override.NoBackups},
		{&out.Markdown, override.Markdown},
		{&out.Backups.Enabled, override.Backups.Enabled},
		{&out.Cache.Enabled, override.Cache.Enabled},
	} {
		*flag.dst = *flag.dst || flag.src
	}

	if override.Ignore != nil {
		out.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		out.Extensions = override.Extensions
	}

	out.Rules = mergeRules(out.Rules, override.Rules)
	return out
}

func overlay[T comparable](dst *T, src T) {
	var zero T
	if src != zero {
		*dst = src
	}
}

// mergeRules overlays each override setting onto the base setting of the
// same rule. Rules only present in one map are copied.
func mergeRules(base, override map[string]config.RuleSetting) map[string]config.RuleSetting {
	out := make(map[string]config.RuleSetting, len(base)+len(override))
	for name, setting := range base {
		out[name] = setting.Clone()
	}
	for name, setting := range override {
		out[name] = setting.Overlay(out[name])
	}
	return out
}

// MergeAll folds configs left to right; later entries win.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, cfg := range configs {
		out = merge(out, cfg)
	}
	return out
}
