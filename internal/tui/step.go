package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Step is one page of the init wizard.
type Step interface {
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) (Step, tea.Cmd)
	View(width int) string
	Complete() bool
	// Summary is shown next to the step once it is done.
	Summary() string
	// Apply writes collected data to the wizard context.
	Apply(ctx *WizardContext)
}

// Preparer is implemented by steps that render from earlier answers. The
// wizard calls Prepare each time the step becomes current.
type Preparer interface {
	Prepare(ctx *WizardContext)
}

// RenderProgress renders finished steps with their summaries followed by the
// active step's title.
func RenderProgress(steps []Step, current int, styles *StyleSet, width int) string {
	var out string

	for i := 0; i < current && i < len(steps); i++ {
		badge := styles.StepBadgeComplete.Render("✓")
		title := styles.PrimaryTxt.Bold(true).Render(steps[i].Title())
		out += fmt.Sprintf("  %s  %s\n", badge, title)
		out += fmt.Sprintf("       %s\n\n", styles.SecondaryTxt.Render(steps[i].Summary()))
	}

	if current < len(steps) {
		numStr := fmt.Sprintf("%d/%d", current+1, len(steps))
		badge := styles.StepBadgeActive.Render(numStr)
		title := styles.PrimaryTxt.Bold(true).Render(steps[current].Title())
		dividerLen := width - 10 - lipgloss.Width(numStr) - lipgloss.Width(steps[current].Title())
		if dividerLen < 2 {
			dividerLen = 2
		}
		divider := styles.DimTxt.Render(" " + strings.Repeat("─", dividerLen))
		out += fmt.Sprintf("  %s  %s%s\n", badge, title, divider)
	}

	return out
}
