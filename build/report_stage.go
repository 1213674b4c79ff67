package build

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/initializ/scriptgrant/grant"
	"github.com/initializ/scriptgrant/pipeline"
	"github.com/initializ/scriptgrant/plugins/extractgrant"
)

// Report is the JSON document written to the config's report path.
type Report struct {
	BuiltAt   string                    `json:"built_at"`
	OutputDir string                    `json:"output_dir"`
	Patched   int                       `json:"patched"`
	Files     []extractgrant.FileReport `json:"files"`
}

// ReportStage writes the grant report when the config names a report path.
// A relative path is resolved against the output directory. Nothing is
// written in dry-run mode.
type ReportStage struct{}

func (s *ReportStage) Name() string { return "write-grant-report" }

func (s *ReportStage) Execute(ctx context.Context, bc *pipeline.BuildContext) error {
	if bc.Config.Report == "" {
		return nil
	}
	if bc.Opts.DryRun {
		bc.Logger.Debug("dry run, not writing grant report", map[string]any{"path": bc.Config.Report})
		return nil
	}

	report := Report{
		BuiltAt:   time.Now().UTC().Format(time.RFC3339),
		OutputDir: bc.Opts.OutputDir,
		Files:     bc.Reports,
	}
	if report.Files == nil {
		report.Files = []extractgrant.FileReport{}
	}
	for _, r := range bc.Reports {
		if r.Outcome == grant.OutcomePatched {
			report.Patched++
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling grant report: %w", err)
	}

	outPath := bc.Config.Report
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(bc.Opts.OutputDir, outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("writing grant report: %w", err)
	}

	bc.Logger.Info("grant report written", map[string]any{"path": outPath, "patched": report.Patched})
	return nil
}
