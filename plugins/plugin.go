// Package plugins provides a plugin registry and hook system for the
// bundle post-processing pipeline.
package plugins

import (
	"context"
	"fmt"
	"sync"

	"github.com/initializ/scriptgrant/bundle"
	"github.com/initializ/scriptgrant/metadata"
)

// HookPoint identifies when a plugin hook fires.
type HookPoint string

const (
	// HookGenerateBundle fires once the bundle is loaded, before it is written.
	HookGenerateBundle HookPoint = "generate-bundle"
	// HookGenerateBundlePost fires after every HookGenerateBundle plugin ran.
	HookGenerateBundlePost HookPoint = "generate-bundle:post"
)

// Plugin is the interface that bundle plugins must implement.
type Plugin interface {
	// Name returns the unique plugin name.
	Name() string
	// Version returns the plugin version.
	Version() string
	// Hooks returns the set of hook points this plugin wants to intercept.
	Hooks() []HookPoint
	// Execute runs the plugin logic for the given hook point. Plugins mutate
	// chunks in place.
	Execute(ctx context.Context, hook HookPoint, b *bundle.Bundle) error
}

// Resolver is implemented by plugins that look up other plugins. Resolve is
// called once, after registration and before any hook runs.
type Resolver interface {
	Resolve(r *Registry) error
}

// HeaderSource is implemented by plugins that already hold the parsed
// metadata block of the chunks they generated, so others can reuse it
// instead of re-parsing text. HeaderFor returns nil for any other chunk.
type HeaderSource interface {
	HeaderFor(fileName string) *metadata.Header
}

// Registry stores registered plugins in registration order.
type Registry struct {
	mu      sync.RWMutex
	order   []Plugin
	plugins map[string]Plugin
}

// NewRegistry creates an empty plugin registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin to the registry. It returns an error if a plugin
// with the same name is already registered.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.plugins[p.Name()]; exists {
		return fmt.Errorf("plugin %q already registered", p.Name())
	}
	r.plugins[p.Name()] = p
	r.order = append(r.order, p)
	return nil
}

// Get returns a plugin by name, or nil if not found.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.plugins[name]
}

// Plugins returns all plugins in registration order.
func (r *Registry) Plugins() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, len(r.order))
	copy(out, r.order)
	return out
}

// Resolve lets every Resolver plugin look up its collaborators.
func (r *Registry) Resolve() error {
	for _, p := range r.Plugins() {
		res, ok := p.(Resolver)
		if !ok {
			continue
		}
		if err := res.Resolve(r); err != nil {
			return fmt.Errorf("plugin %s resolve: %w", p.Name(), err)
		}
	}
	return nil
}

// Run executes, in registration order, every plugin subscribed to hook.
func (r *Registry) Run(ctx context.Context, hook HookPoint, b *bundle.Bundle) error {
	for _, p := range r.Plugins() {
		if !subscribes(p, hook) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("hook %s cancelled before plugin %s: %w", hook, p.Name(), err)
		}
		if err := p.Execute(ctx, hook, b); err != nil {
			return fmt.Errorf("plugin %s %s: %w", p.Name(), hook, err)
		}
	}
	return nil
}

// LookupHeaderSource returns the named plugin as a HeaderSource, or nil
// when it is absent or does not publish headers.
func (r *Registry) LookupHeaderSource(name string) HeaderSource {
	src, ok := r.Get(name).(HeaderSource)
	if !ok {
		return nil
	}
	return src
}

func subscribes(p Plugin, hook HookPoint) bool {
	for _, h := range p.Hooks() {
		if h == hook {
			return true
		}
	}
	return false
}
