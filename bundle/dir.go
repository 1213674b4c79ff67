package bundle

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultChunkPatterns select the files loaded as executable chunks.
var DefaultChunkPatterns = []string{"**/*.js", "**/*.mjs", "**/*.cjs"}

// LoadOptions controls which files LoadDir reads.
type LoadOptions struct {
	// Chunks are doublestar patterns, relative to the directory, for files
	// loaded as chunks. Empty means DefaultChunkPatterns.
	Chunks []string
	// Exclude patterns drop files entirely.
	Exclude []string
}

// LoadDir reads the build output in dir into a Bundle. File names use
// forward slashes relative to dir. Files not selected as chunks are added
// as assets with their contents left unread.
func LoadDir(dir string, opts LoadOptions) (*Bundle, error) {
	chunkPatterns := normalizePatterns(opts.Chunks)
	if len(chunkPatterns) == 0 {
		chunkPatterns = DefaultChunkPatterns
	}
	exclude := normalizePatterns(opts.Exclude)

	b := New()
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matchesAny(exclude, rel) {
			return nil
		}

		if !matchesAny(chunkPatterns, rel) {
			b.Add(&Chunk{FileName: rel, Kind: KindAsset})
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}
		b.Add(&Chunk{FileName: rel, Kind: KindChunk, Code: string(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading bundle from %s: %w", dir, err)
	}
	return b, nil
}

// WriteDir writes every dirty chunk back under dir and clears its dirty
// flag. It returns the file names written.
func WriteDir(dir string, b *Bundle) ([]string, error) {
	var written []string
	for _, c := range b.Dirty() {
		path := filepath.Join(dir, filepath.FromSlash(c.FileName))
		mode := os.FileMode(0644)
		if info, err := os.Stat(path); err == nil {
			mode = info.Mode().Perm()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, fmt.Errorf("creating directory for %s: %w", c.FileName, err)
		}
		if err := os.WriteFile(path, []byte(c.Code), mode); err != nil {
			return written, fmt.Errorf("writing %s: %w", c.FileName, err)
		}
		c.Dirty = false
		written = append(written, c.FileName)
	}
	return written, nil
}

// ValidPattern reports whether p is a well-formed doublestar pattern.
func ValidPattern(p string) bool {
	return doublestar.ValidatePattern(filepath.ToSlash(p))
}

func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, filepath.ToSlash(p))
	}
	return out
}

func matchesAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Match reports whether rel matches any of patterns.
func Match(patterns []string, rel string) bool {
	return matchesAny(normalizePatterns(patterns), filepath.ToSlash(rel))
}
