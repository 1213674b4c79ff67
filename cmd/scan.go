package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/initializ/scriptgrant/grant"
	"github.com/initializ/scriptgrant/internal/tui"
	"github.com/initializ/scriptgrant/pipeline"
)

var scanCheck bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the @grant lines each userscript is missing",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanCheck, "check", false, "exit with an error when any chunk is missing grants")
}

func runScan(cmd *cobra.Command, args []string) error {
	bc, err := buildOnce(context.Background(), newLogger(), true)
	if err != nil {
		return err
	}

	fmt.Print(renderScan(bc, tui.NewStyleSet(tui.DetectTheme(themeOverride))))

	missing := bc.Missing()
	if scanCheck && len(missing) > 0 {
		return fmt.Errorf("%d chunk(s) missing grants", len(missing))
	}
	return nil
}

// renderScan formats one line per script chunk followed by a summary.
func renderScan(bc *pipeline.BuildContext, styles *tui.StyleSet) string {
	var b strings.Builder

	width := 0
	for _, r := range bc.Reports {
		if len(r.FileName) > width {
			width = len(r.FileName)
		}
	}

	for _, r := range bc.Reports {
		name := r.FileName + strings.Repeat(" ", width-len(r.FileName))
		switch r.Outcome {
		case grant.OutcomePatched:
			fmt.Fprintf(&b, "  %s %s  %s\n",
				styles.ErrorTxt.Render("✗"),
				styles.PrimaryTxt.Render(name),
				styles.WarningTxt.Render("missing "+strings.Join(r.Added, ", ")))
		case grant.OutcomeDeclared:
			fmt.Fprintf(&b, "  %s %s  %s\n",
				styles.SuccessTxt.Render("✓"),
				styles.PrimaryTxt.Render(name),
				styles.DimTxt.Render(fmt.Sprintf("%d grant(s) declared", len(r.Used))))
		default:
			if verbose {
				fmt.Fprintf(&b, "  %s %s  %s\n",
					styles.DimTxt.Render("-"),
					styles.DimTxt.Render(name),
					styles.DimTxt.Render(string(r.Outcome)))
			}
		}
	}

	missing := len(bc.Missing())
	summary := fmt.Sprintf("%d script chunk(s) scanned, %d missing grants", len(bc.Reports), missing)
	if missing > 0 {
		fmt.Fprintf(&b, "\n%s\n", styles.WarningTxt.Render(summary))
	} else {
		fmt.Fprintf(&b, "\n%s\n", styles.SuccessTxt.Render(summary))
	}
	return b.String()
}
