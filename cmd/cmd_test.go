package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
	return path
}

// useConfig points the global --config flag at path for the test.
func useConfig(t *testing.T, path string) {
	t.Helper()
	oldCfg, oldOut := cfgFile, outDirFlag
	cfgFile, outDirFlag = path, ""
	t.Cleanup(func() { cfgFile, outDirFlag = oldCfg, oldOut })
}
