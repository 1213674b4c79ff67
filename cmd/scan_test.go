package cmd

import (
	"strings"
	"testing"

	"github.com/initializ/scriptgrant/grant"
	"github.com/initializ/scriptgrant/internal/tui"
	"github.com/initializ/scriptgrant/pipeline"
	"github.com/initializ/scriptgrant/plugins/extractgrant"
)

func TestRunScan_Check(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestFile(t, dir, "scriptgrant.yaml", "out_dir: dist\n")
	writeTestFile(t, dir, "dist/main.user.js", testScript)
	useConfig(t, cfgPath)

	oldCheck := scanCheck
	defer func() { scanCheck = oldCheck }()

	scanCheck = false
	if err := runScan(nil, nil); err != nil {
		t.Fatalf("runScan() error: %v", err)
	}

	scanCheck = true
	err := runScan(nil, nil)
	if err == nil || !strings.Contains(err.Error(), "1 chunk(s) missing grants") {
		t.Fatalf("runScan() error = %v, want missing grants", err)
	}
}

func TestRunScan_CheckPassesWhenDeclared(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeTestFile(t, dir, "scriptgrant.yaml", "out_dir: dist\n")
	declared := strings.Replace(testScript, "// ==/UserScript==", "// @grant GM_setValue\n// ==/UserScript==", 1)
	writeTestFile(t, dir, "dist/main.user.js", declared)
	useConfig(t, cfgPath)

	oldCheck := scanCheck
	scanCheck = true
	defer func() { scanCheck = oldCheck }()

	if err := runScan(nil, nil); err != nil {
		t.Fatalf("runScan() error: %v", err)
	}
}

func TestRenderScan(t *testing.T) {
	bc := pipeline.NewBuildContext(pipeline.PipelineOptions{})
	bc.Reports = []extractgrant.FileReport{
		{FileName: "a.user.js", Outcome: grant.OutcomePatched, Used: []string{"GM_setValue"}, Added: []string{"GM_setValue"}},
		{FileName: "b.user.js", Outcome: grant.OutcomeDeclared, Used: []string{"GM_addStyle"}},
		{FileName: "vendor.js", Outcome: grant.OutcomeNoHeader},
	}

	out := renderScan(bc, tui.NewStyleSet(tui.DarkTheme))
	for _, want := range []string{"a.user.js", "missing GM_setValue", "b.user.js", "1 grant(s) declared", "3 script chunk(s) scanned, 1 missing grants"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "vendor.js") {
		t.Errorf("skipped chunks should only show in verbose mode:\n%s", out)
	}
}
