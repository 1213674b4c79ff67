// Package bundle holds the in-memory output of one build, keyed by file name.
package bundle

import (
	"sort"
	"strings"
)

// Kind distinguishes executable chunks from other emitted files.
type Kind string

const (
	KindChunk Kind = "chunk"
	KindAsset Kind = "asset"
)

// ScriptSuffix is the name suffix a chunk must carry to be treated as a script.
const ScriptSuffix = "js"

// Chunk is one emitted file.
type Chunk struct {
	FileName string
	Kind     Kind
	Code     string
	Dirty    bool // Code was changed since load
}

// IsScript reports whether the chunk is an executable script chunk.
func (c *Chunk) IsScript() bool {
	return c.Kind == KindChunk && strings.HasSuffix(c.FileName, ScriptSuffix)
}

// SetCode replaces the chunk text and marks it dirty when it differs.
func (c *Chunk) SetCode(code string) {
	if code == c.Code {
		return
	}
	c.Code = code
	c.Dirty = true
}

// Bundle maps file names to chunks.
type Bundle struct {
	chunks map[string]*Chunk
}

// New creates an empty Bundle.
func New() *Bundle {
	return &Bundle{chunks: make(map[string]*Chunk)}
}

// Add stores a chunk, replacing any chunk with the same file name.
func (b *Bundle) Add(c *Chunk) {
	b.chunks[c.FileName] = c
}

// Get returns the chunk for name, or nil.
func (b *Bundle) Get(name string) *Chunk {
	return b.chunks[name]
}

// Len returns the number of files in the bundle.
func (b *Bundle) Len() int {
	return len(b.chunks)
}

// Count returns the number of files of the given kind.
func (b *Bundle) Count(kind Kind) int {
	n := 0
	for _, c := range b.chunks {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// FileNames returns all file names in sorted order.
func (b *Bundle) FileNames() []string {
	names := make([]string, 0, len(b.chunks))
	for name := range b.chunks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chunks returns all chunks ordered by file name.
func (b *Bundle) Chunks() []*Chunk {
	names := b.FileNames()
	out := make([]*Chunk, 0, len(names))
	for _, name := range names {
		out = append(out, b.chunks[name])
	}
	return out
}

// Dirty returns the chunks changed since load, ordered by file name.
func (b *Bundle) Dirty() []*Chunk {
	var out []*Chunk
	for _, c := range b.Chunks() {
		if c.Dirty {
			out = append(out, c)
		}
	}
	return out
}
