package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/initializ/scriptgrant/grant"
	"github.com/initializ/scriptgrant/internal/tui"
	"github.com/initializ/scriptgrant/internal/tui/steps"
	"github.com/initializ/scriptgrant/templates"
	"github.com/initializ/scriptgrant/types"
	"github.com/initializ/scriptgrant/util"
	"github.com/initializ/scriptgrant/validate"
)

const configTemplate = "scriptgrant.yaml.tmpl"

// initOptions holds the answers collected by flags or the wizard.
type initOptions struct {
	Name           string
	Namespace      string
	Match          []string
	Grants         []string
	OutDir         string
	NonInteractive bool
	Force          bool
}

// templateData is passed to the config template.
type templateData struct {
	Name      string
	Namespace string
	Match     []string
	Grants    []string
	OutDir    string
	Entry     string
}

var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a scriptgrant.yaml for a userscript project",
	Long:  "Write a scriptgrant.yaml with a metadata block for the entry script. Runs a wizard on a terminal and reads flags otherwise.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().StringP("name", "n", "", "script name (@name)")
	initCmd.Flags().String("namespace", "", "script namespace (@namespace)")
	initCmd.Flags().StringSlice("match", nil, "match patterns (@match), e.g. https://example.com/*")
	initCmd.Flags().StringSlice("grants", nil, "grants to declare up front, e.g. GM_setValue,GM_addStyle")
	initCmd.Flags().Bool("non-interactive", false, "run without the wizard (requires --name and --match)")
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	opts := &initOptions{OutDir: types.DefaultOutDir}

	if len(args) > 0 {
		opts.Name = args[0]
	}
	if n, _ := cmd.Flags().GetString("name"); n != "" {
		opts.Name = n
	}
	opts.Namespace, _ = cmd.Flags().GetString("namespace")
	opts.Match, _ = cmd.Flags().GetStringSlice("match")
	opts.Grants, _ = cmd.Flags().GetStringSlice("grants")
	opts.NonInteractive, _ = cmd.Flags().GetBool("non-interactive")
	opts.Force, _ = cmd.Flags().GetBool("force")
	if outDirFlag != "" {
		opts.OutDir = outDirFlag
	}

	cfgPath, err := absConfigPath()
	if err != nil {
		return err
	}
	if !opts.Force {
		if _, err := os.Stat(cfgPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
		}
	}

	if opts.NonInteractive || !term.IsTerminal(int(os.Stdin.Fd())) {
		err = collectNonInteractive(opts)
	} else {
		err = collectInteractive(opts)
	}
	if err != nil {
		return err
	}

	if err := writeConfig(cfgPath, opts); err != nil {
		return err
	}

	fmt.Printf("\nCreated %s\n", cfgPath)
	fmt.Printf("  Run your bundler, then: scriptgrant build\n")
	return nil
}

func collectNonInteractive(opts *initOptions) error {
	if opts.Name == "" {
		return fmt.Errorf("--name is required in non-interactive mode")
	}
	if len(opts.Match) == 0 {
		return fmt.Errorf("--match is required in non-interactive mode")
	}
	for _, m := range opts.Match {
		if err := steps.ValidateMatch(m); err != nil {
			return fmt.Errorf("invalid --match %q: %w", m, err)
		}
	}
	if err := checkGrantNames(opts.Grants); err != nil {
		return err
	}
	if opts.Namespace == "" {
		opts.Namespace = defaultNamespace(opts.Name)
	}
	return nil
}

func collectInteractive(opts *initOptions) error {
	styles := tui.NewStyleSet(tui.DetectTheme(themeOverride))

	wizardSteps := []tui.Step{
		steps.NewTextStep(styles, steps.TextStepConfig{
			Title:       "Script Name",
			Label:       "What is the script called?",
			Placeholder: "My Userscript",
			Prefill:     opts.Name,
			Validate: func(v string) error {
				if v == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			},
			Hint: func(v string) string { return "→ " + util.EntryFileName(v) },
			Apply: func(ctx *tui.WizardContext, v string) {
				ctx.Name = v
			},
		}),
		steps.NewTextStep(styles, steps.TextStepConfig{
			Title:       "Namespace",
			Label:       "Namespace (leave empty for the default)",
			Placeholder: "https://github.com/you",
			Prefill:     opts.Namespace,
			Apply: func(ctx *tui.WizardContext, v string) {
				if v == "" {
					v = defaultNamespace(ctx.Name)
				}
				ctx.Namespace = v
			},
		}),
		steps.NewMatchStep(styles, opts.Match),
		steps.NewGrantsStep(styles, steps.CommonGrants, opts.Grants),
		steps.NewReviewStep(styles),
	}

	wizard := tui.NewWizard(tui.DetectTheme(themeOverride), appVersion,
		tui.WizardContext{OutDir: opts.OutDir}, wizardSteps...)

	if _, err := tea.NewProgram(wizard, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	if err := wizard.Err(); err != nil {
		return err
	}
	if !wizard.Done() {
		return tui.ErrCancelled
	}

	ctx := wizard.Answers()
	opts.Name = ctx.Name
	opts.Namespace = ctx.Namespace
	opts.Match = ctx.Match
	opts.Grants = ctx.Grants
	return nil
}

// checkGrantNames rejects names the detector would never report, since a
// declared grant that no code can match is almost always a typo.
func checkGrantNames(names []string) error {
	d, err := grant.NewDetector(nil)
	if err != nil {
		return err
	}
	for _, n := range names {
		found := d.Detect(n)
		if len(found) != 1 || found[0] != n {
			return fmt.Errorf("unknown grant %q", n)
		}
	}
	return nil
}

func defaultNamespace(name string) string {
	return "userscript/" + util.Slugify(name)
}

func buildTemplateData(opts *initOptions) templateData {
	return templateData{
		Name:      opts.Name,
		Namespace: opts.Namespace,
		Match:     opts.Match,
		Grants:    opts.Grants,
		OutDir:    opts.OutDir,
		Entry:     util.EntryFileName(opts.Name),
	}
}

// renderConfig executes the embedded config template.
func renderConfig(opts *initOptions) (string, error) {
	tmplContent, err := templates.GetInitTemplate(configTemplate)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", configTemplate, err)
	}

	tmpl, err := template.New(configTemplate).
		Funcs(template.FuncMap{"quote": strconv.Quote}).
		Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", configTemplate, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, buildTemplateData(opts)); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", configTemplate, err)
	}
	return b.String(), nil
}

func writeConfig(path string, opts *initOptions) error {
	content, err := renderConfig(opts)
	if err != nil {
		return err
	}

	// The rendered file must pass the same checks build applies.
	cfg, err := types.ParseConfig([]byte(content))
	if err != nil {
		return fmt.Errorf("generated config is invalid: %w", err)
	}
	result := validate.ValidateConfig(cfg)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
	}
	if !result.IsValid() {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", e)
		}
		return fmt.Errorf("generated config is invalid: %d error(s)", len(result.Errors))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
