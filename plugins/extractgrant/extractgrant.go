// Package extractgrant implements the plugin that adds missing @grant
// declarations to every userscript chunk of a bundle.
package extractgrant

import (
	"context"

	"github.com/initializ/scriptgrant/bundle"
	"github.com/initializ/scriptgrant/grant"
	"github.com/initializ/scriptgrant/metadata"
	"github.com/initializ/scriptgrant/plugins"
	"github.com/initializ/scriptgrant/plugins/header"
	"github.com/initializ/scriptgrant/runtime"
)

// Name is the registry name of the plugin.
const Name = "scriptcat-extract-grant"

// FileReport describes what happened to one chunk.
type FileReport struct {
	FileName string        `json:"file"`
	Outcome  grant.Outcome `json:"outcome"`
	Used     []string      `json:"used,omitempty"`
	Added    []string      `json:"added,omitempty"`
}

// Plugin runs grant detection over every script chunk after the other
// bundle plugins are done.
type Plugin struct {
	detector *grant.Detector
	logger   runtime.Logger
	headers  plugins.HeaderSource
	dryRun   bool
	reports  []FileReport
}

// Option configures the plugin.
type Option func(*Plugin)

// WithLogger sets the logger.
func WithLogger(l runtime.Logger) Option {
	return func(p *Plugin) { p.logger = l }
}

// WithHeaderSource supplies parsed headers directly instead of resolving
// them from the registry.
func WithHeaderSource(src plugins.HeaderSource) Option {
	return func(p *Plugin) { p.headers = src }
}

// WithDryRun reports missing grants without changing any chunk.
func WithDryRun() Option {
	return func(p *Plugin) { p.dryRun = true }
}

// New creates the plugin. appendGrant lists extra API name patterns to
// treat as grantable; it fails if any of them is not a valid expression.
func New(appendGrant []string, opts ...Option) (*Plugin, error) {
	d, err := grant.NewDetector(appendGrant)
	if err != nil {
		return nil, err
	}
	p := &Plugin{detector: d, logger: runtime.NopLogger{}}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

func (p *Plugin) Name() string    { return Name }
func (p *Plugin) Version() string { return "1.0.0" }

func (p *Plugin) Hooks() []plugins.HookPoint {
	return []plugins.HookPoint{plugins.HookGenerateBundlePost}
}

// Resolve picks up the header plugin when it is registered.
func (p *Plugin) Resolve(r *plugins.Registry) error {
	if p.headers == nil {
		p.headers = r.LookupHeaderSource(header.Name)
	}
	return nil
}

func (p *Plugin) Execute(ctx context.Context, hook plugins.HookPoint, b *bundle.Bundle) error {
	p.reports = p.reports[:0]
	for _, c := range b.Chunks() {
		if !c.IsScript() || c.Code == "" {
			continue
		}

		res := grant.Process(c.Code, p.detector, p.headerFor(c.FileName))
		p.reports = append(p.reports, FileReport{
			FileName: c.FileName,
			Outcome:  res.Outcome,
			Used:     res.Used,
			Added:    res.Added,
		})

		if res.Outcome != grant.OutcomePatched {
			p.logger.Debug("chunk skipped", map[string]any{"file": c.FileName, "reason": string(res.Outcome)})
			continue
		}
		if p.dryRun {
			p.logger.Warn("missing grants", map[string]any{"file": c.FileName, "grants": res.Added})
			continue
		}
		c.SetCode(res.Code)
		p.logger.Info("grants added", map[string]any{"file": c.FileName, "grants": res.Added})
	}
	return nil
}

// Reports returns the per-chunk results of the last run, ordered by file name.
func (p *Plugin) Reports() []FileReport {
	return p.reports
}

func (p *Plugin) headerFor(fileName string) *metadata.Header {
	if p.headers == nil {
		return nil
	}
	return p.headers.HeaderFor(fileName)
}
