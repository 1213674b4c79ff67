// Package types holds configuration types for scriptgrant.yaml.
package types

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/initializ/scriptgrant/metadata"
)

// DefaultOutDir is the bundler output directory used when out_dir is unset.
const DefaultOutDir = "dist"

// Config represents the top-level scriptgrant.yaml configuration.
type Config struct {
	OutDir      string       `yaml:"out_dir"`
	Chunks      []string     `yaml:"chunks,omitempty"`       // doublestar globs, default **/*.js
	Exclude     []string     `yaml:"exclude,omitempty"`      // doublestar globs
	ExtraGrants []string     `yaml:"extra_grants,omitempty"` // regexp fragments
	Header      HeaderConfig `yaml:"header,omitempty"`
	Report      string       `yaml:"report,omitempty"` // JSON report path, relative to out_dir
}

// HeaderConfig configures generation of the metadata block.
type HeaderConfig struct {
	Enabled *bool    `yaml:"enabled,omitempty"`
	Entries []string `yaml:"entries,omitempty"` // doublestar globs of entry chunks
	Meta    Meta     `yaml:"meta,omitempty"`
}

// Active reports whether a metadata block should be generated.
func (h HeaderConfig) Active() bool {
	if len(h.Meta) == 0 {
		return false
	}
	return h.Enabled == nil || *h.Enabled
}

// Meta is the ordered list of metadata directives. In YAML it is a mapping
// whose order is kept; a sequence value yields one directive per item, and
// an empty or true value yields a valueless directive such as @noframes.
type Meta []metadata.Directive

// UnmarshalYAML decodes the mapping node by hand to preserve key order.
func (m *Meta) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: meta must be a mapping", node.Line)
	}

	var out Meta
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return fmt.Errorf("line %d: meta keys must be non-empty strings", key.Line)
		}

		switch val.Kind {
		case yaml.ScalarNode:
			switch {
			case val.Tag == "!!null":
				out = append(out, metadata.Directive{Key: key.Value})
			case val.Tag == "!!bool":
				var on bool
				if err := val.Decode(&on); err != nil {
					return fmt.Errorf("meta %s: %w", key.Value, err)
				}
				if on {
					out = append(out, metadata.Directive{Key: key.Value})
				}
			default:
				out = append(out, metadata.Directive{Key: key.Value, Value: val.Value})
			}
		case yaml.SequenceNode:
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return fmt.Errorf("line %d: meta %s items must be scalars", item.Line, key.Value)
				}
				out = append(out, metadata.Directive{Key: key.Value, Value: item.Value})
			}
		default:
			return fmt.Errorf("line %d: meta %s must be a scalar or a list", val.Line, key.Value)
		}
	}

	*m = out
	return nil
}

// Values returns the values of every directive with the given key.
func (m Meta) Values(key string) []string {
	var out []string
	for _, d := range m {
		if d.Key == key {
			out = append(out, d.Value)
		}
	}
	return out
}

// ParseConfig parses raw YAML bytes into a Config and fills defaults.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scriptgrant config: %w", err)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	return &cfg, nil
}
