// Package build holds the stages of the scriptgrant build pipeline.
package build

import (
	"fmt"

	"github.com/initializ/scriptgrant/plugins"
	"github.com/initializ/scriptgrant/plugins/extractgrant"
	"github.com/initializ/scriptgrant/plugins/header"
	"github.com/initializ/scriptgrant/runtime"
	"github.com/initializ/scriptgrant/types"
)

// NewRegistry registers the plugins the config asks for: the header plugin
// when a metadata block is configured, then the grant plugin. Collaborators
// are resolved before it returns.
func NewRegistry(cfg *types.Config, logger runtime.Logger, dryRun bool) (*plugins.Registry, error) {
	if logger == nil {
		logger = runtime.NopLogger{}
	}
	reg := plugins.NewRegistry()

	if cfg.Header.Active() {
		hp := header.New(header.Options{
			Directives: cfg.Header.Meta,
			Entries:    cfg.Header.Entries,
			Logger:     logger,
		})
		if err := reg.Register(hp); err != nil {
			return nil, err
		}
	}

	opts := []extractgrant.Option{extractgrant.WithLogger(logger)}
	if dryRun {
		opts = append(opts, extractgrant.WithDryRun())
	}
	gp, err := extractgrant.New(cfg.ExtraGrants, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating grant plugin: %w", err)
	}
	if err := reg.Register(gp); err != nil {
		return nil, err
	}

	if err := reg.Resolve(); err != nil {
		return nil, err
	}
	return reg, nil
}
