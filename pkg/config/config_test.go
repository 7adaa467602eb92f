package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markuplint/pkg/config"
)

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.Severity
		wantErr bool
	}{
		{input: "off", want: config.SeverityOff},
		{input: "Warn", want: config.SeverityWarn},
		{input: "warning", want: config.SeverityWarn},
		{input: "ERROR", want: config.SeverityError},
		{input: "2", want: config.SeverityError},
		{input: "info", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseSeverity(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRuleSetting_Overlay(t *testing.T) {
	t.Parallel()

	defaults := config.RuleSetting{"error", "always"}

	tests := []struct {
		name string
		user config.RuleSetting
		want config.RuleSetting
	}{
		{name: "severity only", user: config.RuleSetting{"error"}, want: config.RuleSetting{"error", "always"}},
		{name: "both", user: config.RuleSetting{"warn", "never"}, want: config.RuleSetting{"warn", "never"}},
		{name: "empty", user: nil, want: config.RuleSetting{"error", "always"}},
		{name: "longer", user: config.RuleSetting{"off", "x", 3}, want: config.RuleSetting{"off", "x", 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.user.Overlay(defaults))
		})
	}

	assert.Equal(t, config.RuleSetting{"error", "always"}, defaults, "defaults must not be modified")
}

func TestRuleSetting_Severity(t *testing.T) {
	t.Parallel()

	sev, err := config.RuleSetting{"warning", 2}.Severity()
	require.NoError(t, err)
	assert.Equal(t, config.SeverityWarn, sev)

	sev, err = config.RuleSetting{false}.Severity()
	require.NoError(t, err)
	assert.Equal(t, config.SeverityOff, sev)

	_, err = config.RuleSetting{}.Severity()
	require.Error(t, err)

	_, err = config.RuleSetting{3.5}.Severity()
	require.Error(t, err)
}

func TestDecode_YAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
rules:
  no-unclosed-tag: error
  attr-indent: [warn, 4]
ignore:
  - "vendor/**"
markdown: true
cache:
  enabled: true
`)

	cfg, err := config.Decode(config.FileFormatYAML, data)
	require.NoError(t, err)

	assert.Equal(t, config.RuleSetting{"error"}, cfg.Rules["no-unclosed-tag"])
	assert.Equal(t, config.RuleSetting{"warn", 4}, cfg.Rules["attr-indent"])
	assert.Equal(t, []string{"vendor/**"}, cfg.Ignore)
	assert.True(t, cfg.Markdown)
	assert.True(t, cfg.Cache.Enabled)
}

func TestDecode_YAMLInvalidSetting(t *testing.T) {
	t.Parallel()

	_, err := config.Decode(config.FileFormatYAML, []byte("rules:\n  attr-indent:\n    size: 2\n"))
	require.Error(t, err)
}

func TestDecode_TOML(t *testing.T) {
	t.Parallel()

	data := []byte(`
markdown = true

[rules]
"no-unclosed-tag" = "warn"
"attr-indent" = ["error", 4]

[backups]
enabled = false
`)

	cfg, err := config.Decode(config.FileFormatTOML, data)
	require.NoError(t, err)

	assert.Equal(t, config.RuleSetting{"warn"}, cfg.Rules["no-unclosed-tag"])
	assert.Equal(t, config.RuleSetting{"error", int64(4)}, cfg.Rules["attr-indent"])
	assert.True(t, cfg.Markdown)
	assert.False(t, cfg.Backups.Enabled)
}

func TestEncode_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, format := range []config.FileFormat{config.FileFormatYAML, config.FileFormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.Rules["attr-indent"] = config.Setting(config.SeverityWarn, 4)

			data, err := cfg.Encode(format)
			require.NoError(t, err)

			decoded, err := config.Decode(format, data)
			require.NoError(t, err)

			sev, err := decoded.Rules["attr-indent"].Severity()
			require.NoError(t, err)
			assert.Equal(t, config.SeverityWarn, sev)
			assert.Len(t, decoded.Rules["attr-indent"], 2)
			assert.Equal(t, cfg.Extensions, decoded.Extensions)
		})
	}
}

func TestFileFormatFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.FileFormatTOML, config.FileFormatFor(".markuplint.TOML"))
	assert.Equal(t, config.FileFormatYAML, config.FileFormatFor(".markuplint.yml"))
	assert.Equal(t, config.FileFormatYAML, config.FileFormatFor("config"))
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())

	original := config.NewConfig()
	original.Rules["attr-indent"] = config.RuleSetting{"error", 2}
	original.Ignore = []string{"a"}
	original.Fix = true

	clone := original.Clone()
	clone.Rules["attr-indent"][1] = 8
	clone.Ignore[0] = "b"

	assert.Equal(t, 2, original.Rules["attr-indent"][1])
	assert.Equal(t, "a", original.Ignore[0])
	assert.True(t, clone.Fix)
}

func TestConfig_Fingerprint(t *testing.T) {
	t.Parallel()

	a := config.NewConfig()
	a.Rules["attr-indent"] = config.RuleSetting{"error", 2}
	a.Rules["no-unclosed-tag"] = config.RuleSetting{"error"}

	b := config.NewConfig()
	b.Rules["no-unclosed-tag"] = config.RuleSetting{"error"}
	b.Rules["attr-indent"] = config.RuleSetting{"error", 2}
	b.Fix = true

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Rules["attr-indent"] = config.RuleSetting{"error", 4}
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	format, err := config.ParseOutputFormat("")
	require.NoError(t, err)
	assert.Equal(t, config.FormatText, format)

	format, err = config.ParseOutputFormat("SARIF")
	require.NoError(t, err)
	assert.Equal(t, config.FormatSARIF, format)

	_, err = config.ParseOutputFormat("table")
	require.Error(t, err)
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	rules := []config.RuleInfo{
		{Name: "attr-indent", Description: "Attribute indentation", Defaults: config.RuleSetting{"error", 2}, Fixable: true},
		{Name: "no-unclosed-tag", Description: "Closing tags match", Defaults: config.RuleSetting{"error", "always"}},
	}

	for _, format := range []config.FileFormat{config.FileFormatYAML, config.FileFormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			data := config.GenerateTemplate(config.TemplateOptions{Format: format, Rules: rules})

			cfg, err := config.Decode(format, data)
			require.NoError(t, err)
			require.Len(t, cfg.Rules, 2)
			assert.Equal(t, "always", cfg.Rules["no-unclosed-tag"][1])
			assert.Contains(t, string(data), "(fixable)")
		})
	}
}
