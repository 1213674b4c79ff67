package pipeline

import (
	"github.com/initializ/scriptgrant/bundle"
	"github.com/initializ/scriptgrant/plugins"
	"github.com/initializ/scriptgrant/plugins/extractgrant"
	"github.com/initializ/scriptgrant/runtime"
	"github.com/initializ/scriptgrant/types"
)

// BuildContext carries all state through the build pipeline.
type BuildContext struct {
	Opts     PipelineOptions
	Config   *types.Config
	Bundle   *bundle.Bundle
	Registry *plugins.Registry
	Reports  []extractgrant.FileReport
	Written  []string // chunk file names written back to OutputDir
	Warnings []string
	Verbose  bool
	Logger   runtime.Logger
}

// NewBuildContext creates a BuildContext with the given options and a
// logger that discards everything.
func NewBuildContext(opts PipelineOptions) *BuildContext {
	return &BuildContext{
		Opts:   opts,
		Logger: runtime.NopLogger{},
	}
}

// AddWarning appends a warning message to the build context.
func (bc *BuildContext) AddWarning(msg string) {
	bc.Warnings = append(bc.Warnings, msg)
}

// Missing returns the reports of chunks that lacked grants.
func (bc *BuildContext) Missing() []extractgrant.FileReport {
	var out []extractgrant.FileReport
	for _, r := range bc.Reports {
		if len(r.Added) > 0 {
			out = append(out, r)
		}
	}
	return out
}
