package runtime

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// FileWatcher polls a directory for changes and invokes a callback.
type FileWatcher struct {
	dir        string
	onChange   func()
	logger     Logger
	interval   time.Duration
	debounce   time.Duration
	ignore     []string
	mu         sync.Mutex
	lastModMap map[string]time.Time
}

// NewFileWatcher creates a watcher that polls dir every second for changes
// in script and config files. onChange is called (debounced) when changes
// are detected.
func NewFileWatcher(dir string, onChange func(), logger Logger) *FileWatcher {
	return &FileWatcher{
		dir:        dir,
		onChange:   onChange,
		logger:     logger,
		interval:   time.Second,
		debounce:   300 * time.Millisecond,
		lastModMap: make(map[string]time.Time),
	}
}

// Ignore adds doublestar patterns, relative to the watched directory, whose
// matches never trigger a reload.
func (w *FileWatcher) Ignore(patterns ...string) {
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			w.ignore = append(w.ignore, filepath.ToSlash(p))
		}
	}
}

var watchedExtensions = map[string]bool{
	".js": true, ".mjs": true, ".cjs": true, ".ts": true,
	".json": true, ".yaml": true, ".yml": true,
}

var skippedDirs = map[string]bool{
	".git": true, "node_modules": true, ".vite": true,
}

// Watch starts polling until ctx is cancelled. It blocks.
func (w *FileWatcher) Watch(ctx context.Context) {
	w.mu.Lock()
	w.lastModMap = w.scan()
	w.mu.Unlock()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.detectChanges() {
				w.logger.Info("file change detected, rebuilding", map[string]any{"dir": w.dir})
				// Wait briefly for batched writes.
				time.Sleep(w.debounce)
				w.onChange()
				w.mu.Lock()
				w.lastModMap = w.scan()
				w.mu.Unlock()
			}
		}
	}
}

func (w *FileWatcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range w.ignore {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func (w *FileWatcher) scan() map[string]time.Time {
	modMap := make(map[string]time.Time)
	_ = filepath.WalkDir(w.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.dir && (skippedDirs[d.Name()] || w.ignored(path)) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !watchedExtensions[ext] || w.ignored(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		modMap[path] = info.ModTime()
		return nil
	})
	return modMap
}

func (w *FileWatcher) detectChanges() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	current := w.scan()
	changed := false

	for path, modTime := range current {
		if prev, ok := w.lastModMap[path]; !ok || !modTime.Equal(prev) {
			changed = true
			break
		}
	}

	if !changed {
		for path := range w.lastModMap {
			if _, ok := current[path]; !ok {
				changed = true
				break
			}
		}
	}

	if changed {
		w.lastModMap = current
	}
	return changed
}
