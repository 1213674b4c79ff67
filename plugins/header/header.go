// Package header implements the plugin that writes a "// ==UserScript=="
// block from configuration into entry chunks.
package header

import (
	"context"

	"github.com/initializ/scriptgrant/bundle"
	"github.com/initializ/scriptgrant/metadata"
	"github.com/initializ/scriptgrant/plugins"
	"github.com/initializ/scriptgrant/runtime"
)

// Name is the registry name other plugins use to find this one.
const Name = "userscript-header"

// Options configures the header plugin.
type Options struct {
	// Directives are written in order; the key column is padded to the
	// longest key.
	Directives []metadata.Directive
	// Entries are doublestar patterns selecting the chunks that receive the
	// block. Empty selects every script chunk.
	Entries []string
	Logger  runtime.Logger
}

// Plugin prepends the configured metadata block to entry chunks that do not
// carry one yet and remembers which chunks it wrote.
type Plugin struct {
	header  *metadata.Header
	entries []string
	logger  runtime.Logger
	written map[string]bool
}

// New creates the header plugin. The block is parsed once here.
func New(opts Options) *Plugin {
	logger := opts.Logger
	if logger == nil {
		logger = runtime.NopLogger{}
	}
	return &Plugin{
		header:  metadata.NewHeader(opts.Directives),
		entries: opts.Entries,
		logger:  logger,
		written: make(map[string]bool),
	}
}

func (p *Plugin) Name() string    { return Name }
func (p *Plugin) Version() string { return "1.0.0" }

func (p *Plugin) Hooks() []plugins.HookPoint {
	return []plugins.HookPoint{plugins.HookGenerateBundle}
}

func (p *Plugin) Execute(ctx context.Context, hook plugins.HookPoint, b *bundle.Bundle) error {
	block := p.header.Render()
	for _, c := range b.Chunks() {
		if !c.IsScript() {
			continue
		}
		if len(p.entries) > 0 && !bundle.Match(p.entries, c.FileName) {
			continue
		}
		if _, ok := metadata.Locate(c.Code); ok {
			p.logger.Debug("chunk already has a metadata block", map[string]any{"file": c.FileName})
			continue
		}
		c.SetCode(block + c.Code)
		p.written[c.FileName] = true
		p.logger.Info("metadata block written", map[string]any{
			"file":       c.FileName,
			"directives": len(p.header.Directives),
		})
	}
	return nil
}

// HeaderFor returns the parsed block for chunks this plugin wrote.
func (p *Plugin) HeaderFor(fileName string) *metadata.Header {
	if !p.written[fileName] {
		return nil
	}
	return p.header
}

// Header returns the configured block.
func (p *Plugin) Header() *metadata.Header {
	return p.header
}
