package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/initializ/scriptgrant/config"
	"github.com/initializ/scriptgrant/runtime"
	"github.com/initializ/scriptgrant/types"
	"github.com/initializ/scriptgrant/validate"
)

// project is the resolved config for one command invocation.
type project struct {
	cfgPath string
	cfg     *types.Config
	found   bool // false when running on defaults
	outDir  string
}

func absConfigPath() (string, error) {
	if filepath.IsAbs(cfgFile) {
		return cfgFile, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return filepath.Join(wd, cfgFile), nil
}

// loadProject reads the config, or defaults when the file does not exist,
// applies --out-dir and checks the result. Validation errors are printed and
// returned as one error.
func loadProject() (*project, error) {
	cfgPath, err := absConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, found, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if outDirFlag != "" {
		// --out-dir is relative to the working directory, not the config.
		abs, err := filepath.Abs(outDirFlag)
		if err != nil {
			return nil, fmt.Errorf("resolving --out-dir: %w", err)
		}
		cfg.OutDir = abs
	}

	result := validate.ValidateConfig(cfg)
	if !result.IsValid() {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", e)
		}
		return nil, fmt.Errorf("config validation failed: %d error(s)", len(result.Errors))
	}

	return &project{
		cfgPath: cfgPath,
		cfg:     cfg,
		found:   found,
		outDir:  config.ResolveOutDir(cfgPath, cfg),
	}, nil
}

func newLogger() runtime.Logger {
	return runtime.NewJSONLogger(os.Stderr, verbose)
}
