package config

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileFormat is the serialization of a config file.
type FileFormat string

const (
	FileFormatYAML FileFormat = "yaml"
	FileFormatTOML FileFormat = "toml"
)

// FileFormatFor picks the format from a file name. Anything that is not
// .toml is read as YAML.
func FileFormatFor(path string) FileFormat {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FileFormatTOML
	}
	return FileFormatYAML
}

// Decode parses config bytes in the given format. Fields missing from
// data are left at their zero value.
func Decode(format FileFormat, data []byte) (*Config, error) {
	cfg := &Config{}

	switch format {
	case FileFormatTOML:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case FileFormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleSetting)
	}

	return cfg, nil
}

// Encode serializes the persisted fields of the configuration.
func (c *Config) Encode(format FileFormat) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FileFormatTOML:
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
	case FileFormatYAML:
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(c); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("close encoder: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	return buf.Bytes(), nil
}

// Fingerprint is a stable hash of everything that changes lint results:
// rule settings and Markdown handling.
func (c *Config) Fingerprint() string {
	subset := struct {
		Rules    map[string]RuleSetting `yaml:"rules"`
		Markdown bool                   `yaml:"markdown"`
	}{Rules: c.Rules, Markdown: c.Markdown}

	// yaml.v3 sorts map keys, so equal configs encode identically.
	data, err := yaml.Marshal(subset)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", subset))
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
