// Package config locates and loads scriptgrant.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/initializ/scriptgrant/types"
)

// DefaultFileName is the config file looked up when none is given.
const DefaultFileName = "scriptgrant.yaml"

// LoadConfig reads and parses a scriptgrant.yaml file from the given path.
func LoadConfig(path string) (*types.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scriptgrant config %s: %w", path, err)
	}
	return types.ParseConfig(data)
}

// LoadOrDefault loads path when it exists and returns the default config
// when it does not. Any other read or parse failure is returned.
func LoadOrDefault(path string) (*types.Config, bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg, err := types.ParseConfig(nil)
		return cfg, false, err
	}
	cfg, err := LoadConfig(path)
	return cfg, err == nil, err
}

// ResolveOutDir returns the absolute output directory. A relative out_dir
// is taken relative to the directory holding the config file.
func ResolveOutDir(cfgPath string, cfg *types.Config) string {
	if filepath.IsAbs(cfg.OutDir) {
		return cfg.OutDir
	}
	return filepath.Join(filepath.Dir(cfgPath), cfg.OutDir)
}
