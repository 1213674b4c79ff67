package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/initializ/scriptgrant/build"
	"github.com/initializ/scriptgrant/pipeline"
	"github.com/initializ/scriptgrant/runtime"
)

var (
	buildWatch  bool
	buildDryRun bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Add missing @grant lines to the bundler output",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().BoolVarP(&buildWatch, "watch", "w", false, "re-run whenever the output directory changes")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "report missing grants without writing files")
}

func runBuild(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	bc, err := buildOnce(context.Background(), logger, buildDryRun)
	if err != nil {
		return err
	}
	printBuildResult(bc)

	if !buildWatch {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nStopping watch...")
		cancel()
	}()

	rebuild := func(ctx context.Context) (*pipeline.BuildContext, error) {
		return buildOnce(ctx, logger, buildDryRun)
	}
	poll := func(ctx context.Context, t watchTarget, onChange func()) {
		w := runtime.NewFileWatcher(t.dir, onChange, logger)
		if t.report != "" {
			w.Ignore(t.report)
		}
		w.Watch(ctx)
	}
	watchBuild(ctx, bc, rebuild, poll, logger)
	return nil
}

// watchTarget is what one file watcher polls: the output directory and the
// report inside it, which must not trigger a rebuild of its own.
type watchTarget struct {
	dir    string
	report string
}

func targetOf(bc *pipeline.BuildContext) watchTarget {
	t := watchTarget{dir: bc.Opts.OutputDir}
	if r := bc.Config.Report; r != "" && !filepath.IsAbs(r) {
		t.report = r
	}
	return t
}

// watchBuild rebuilds on every change until ctx is done. When a rebuild
// resolves a different target, because out_dir or report changed in the
// config, polling moves to the new target.
func watchBuild(
	ctx context.Context,
	bc *pipeline.BuildContext,
	rebuild func(context.Context) (*pipeline.BuildContext, error),
	poll func(context.Context, watchTarget, func()),
	logger runtime.Logger,
) {
	for ctx.Err() == nil {
		target := targetOf(bc)
		pollCtx, stop := context.WithCancel(ctx)

		fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", target.dir)
		poll(pollCtx, target, func() {
			next, err := rebuild(ctx)
			if err != nil {
				logger.Error("rebuild failed", map[string]any{"error": err.Error()})
				return
			}
			printBuildResult(next)
			if targetOf(next) != target {
				bc = next
				stop()
			}
		})
		stop()
	}
}

// buildOnce loads the config fresh and runs the default pipeline.
func buildOnce(ctx context.Context, logger runtime.Logger, dryRun bool) (*pipeline.BuildContext, error) {
	proj, err := loadProject()
	if err != nil {
		return nil, err
	}

	bc := pipeline.NewBuildContext(pipeline.PipelineOptions{
		WorkDir:    filepath.Dir(proj.cfgPath),
		OutputDir:  proj.outDir,
		ConfigPath: proj.cfgPath,
		DryRun:     dryRun,
	})
	bc.Config = proj.cfg
	bc.Verbose = verbose
	bc.Logger = logger

	if !proj.found {
		logger.Debug("no config file, using defaults", map[string]any{"path": proj.cfgPath})
	}

	if err := pipeline.New(build.Default()...).Run(ctx, bc); err != nil {
		return nil, fmt.Errorf("build failed: %w", err)
	}
	return bc, nil
}

func printBuildResult(bc *pipeline.BuildContext) {
	for _, w := range bc.Warnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
	}
	if bc.Opts.DryRun {
		fmt.Printf("Dry run complete. %d chunk(s) missing grants in %s\n", len(bc.Missing()), bc.Opts.OutputDir)
		return
	}
	fmt.Printf("Build complete. Patched %d chunk(s) in %s\n", len(bc.Written), bc.Opts.OutputDir)
}
