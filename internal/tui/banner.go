package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderBanner returns the header shown above the wizard.
func RenderBanner(styles *StyleSet, version string, width int) string {
	if version == "" {
		version = "dev"
	}

	title := styles.Banner.Render("scriptgrant") + "  " + styles.VersionPill.Render("v"+version)
	subtitle := styles.Subtitle.Render("Keep userscript @grant declarations in step with the code.")

	dividerWidth := width - 4
	if dividerWidth < 20 {
		dividerWidth = 20
	}
	if dividerWidth > 60 {
		dividerWidth = 60
	}
	divider := lipgloss.NewStyle().
		Foreground(styles.Theme.Border).
		Render(strings.Repeat("─", dividerWidth))

	return fmt.Sprintf("  %s\n  %s\n  %s\n\n", title, subtitle, divider)
}
