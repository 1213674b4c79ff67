// Package pipeline provides a sequential stage-based execution pipeline.
package pipeline

import (
	"context"
	"fmt"
)

// Stage is a single unit of work in a build pipeline.
type Stage interface {
	Name() string
	Execute(ctx context.Context, bc *BuildContext) error
}

// PipelineOptions carries shared configuration for all pipeline stages.
type PipelineOptions struct {
	WorkDir    string
	OutputDir  string // bundler output directory being post-processed
	ConfigPath string
	DryRun     bool // detect and report only, never write chunks
}

// Pipeline executes a sequence of stages in order.
type Pipeline struct {
	stages []Stage
}

// New creates a Pipeline from the given stages.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run executes each stage sequentially. It stops on the first error.
func (p *Pipeline) Run(ctx context.Context, bc *BuildContext) error {
	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline cancelled before stage %s: %w", s.Name(), err)
		}
		bc.Logger.Debug("stage start", map[string]any{"stage": s.Name()})
		if err := s.Execute(ctx, bc); err != nil {
			return fmt.Errorf("stage %s: %w", s.Name(), err)
		}
	}
	return nil
}
