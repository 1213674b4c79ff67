package build

import (
	"context"
	"fmt"

	"github.com/initializ/scriptgrant/bundle"
	"github.com/initializ/scriptgrant/pipeline"
	"github.com/initializ/scriptgrant/plugins"
	"github.com/initializ/scriptgrant/plugins/extractgrant"
)

// LoadStage reads the bundler output directory into bc.Bundle.
type LoadStage struct{}

func (s *LoadStage) Name() string { return "load-bundle" }

func (s *LoadStage) Execute(ctx context.Context, bc *pipeline.BuildContext) error {
	b, err := bundle.LoadDir(bc.Opts.OutputDir, bundle.LoadOptions{
		Chunks:  bc.Config.Chunks,
		Exclude: bc.Config.Exclude,
	})
	if err != nil {
		return err
	}
	bc.Bundle = b
	chunks := b.Count(bundle.KindChunk)
	if chunks == 0 {
		bc.AddWarning(fmt.Sprintf("no chunks matched in %s", bc.Opts.OutputDir))
	}
	bc.Logger.Debug("bundle loaded", map[string]any{
		"dir":    bc.Opts.OutputDir,
		"chunks": chunks,
		"assets": b.Count(bundle.KindAsset),
	})
	return nil
}

// PluginsStage builds the plugin registry from config unless one is already
// set on the context.
type PluginsStage struct{}

func (s *PluginsStage) Name() string { return "register-plugins" }

func (s *PluginsStage) Execute(ctx context.Context, bc *pipeline.BuildContext) error {
	if bc.Registry != nil {
		return bc.Registry.Resolve()
	}
	reg, err := NewRegistry(bc.Config, bc.Logger, bc.Opts.DryRun)
	if err != nil {
		return err
	}
	bc.Registry = reg
	return nil
}

// HookStage runs every plugin subscribed to Hook over the bundle.
type HookStage struct {
	Hook plugins.HookPoint
}

func (s *HookStage) Name() string { return "hook-" + string(s.Hook) }

func (s *HookStage) Execute(ctx context.Context, bc *pipeline.BuildContext) error {
	if err := bc.Registry.Run(ctx, s.Hook, bc.Bundle); err != nil {
		return err
	}
	if gp, ok := bc.Registry.Get(extractgrant.Name).(*extractgrant.Plugin); ok && s.Hook == plugins.HookGenerateBundlePost {
		bc.Reports = append([]extractgrant.FileReport(nil), gp.Reports()...)
	}
	return nil
}

// WriteStage writes changed chunks back to the output directory. It is a
// no-op in dry-run mode.
type WriteStage struct{}

func (s *WriteStage) Name() string { return "write-bundle" }

func (s *WriteStage) Execute(ctx context.Context, bc *pipeline.BuildContext) error {
	if bc.Opts.DryRun {
		for _, c := range bc.Bundle.Dirty() {
			bc.Logger.Debug("dry run, not writing", map[string]any{"file": c.FileName})
		}
		return nil
	}
	written, err := bundle.WriteDir(bc.Opts.OutputDir, bc.Bundle)
	if err != nil {
		return err
	}
	bc.Written = written
	return nil
}

// Default returns the standard build stages in order.
func Default() []pipeline.Stage {
	return []pipeline.Stage{
		&LoadStage{},
		&PluginsStage{},
		&HookStage{Hook: plugins.HookGenerateBundle},
		&HookStage{Hook: plugins.HookGenerateBundlePost},
		&WriteStage{},
		&ReportStage{},
	}
}
