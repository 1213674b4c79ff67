package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeEnv overrides theme detection when --theme is not given.
const ThemeEnv = "SCRIPTGRANT_THEME"

// TermTheme holds all color values for a TUI theme.
type TermTheme struct {
	Name string

	Accent    lipgloss.Color
	AccentDim lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Dim       lipgloss.Color

	Border       lipgloss.Color
	ActiveBorder lipgloss.Color
}

// DarkTheme is the default theme.
var DarkTheme = TermTheme{
	Name:         "dark",
	Accent:       lipgloss.Color("#14b8a6"),
	AccentDim:    lipgloss.Color("#0f766e"),
	Success:      lipgloss.Color("#22c55e"),
	Warning:      lipgloss.Color("#eab308"),
	Error:        lipgloss.Color("#ef4444"),
	Primary:      lipgloss.Color("#e5e7eb"),
	Secondary:    lipgloss.Color("#9ca3af"),
	Dim:          lipgloss.Color("#4b5563"),
	Border:       lipgloss.Color("#374151"),
	ActiveBorder: lipgloss.Color("#14b8a6"),
}

// LightTheme is used on light terminal backgrounds.
var LightTheme = TermTheme{
	Name:         "light",
	Accent:       lipgloss.Color("#0f766e"),
	AccentDim:    lipgloss.Color("#115e59"),
	Success:      lipgloss.Color("#15803d"),
	Warning:      lipgloss.Color("#a16207"),
	Error:        lipgloss.Color("#b91c1c"),
	Primary:      lipgloss.Color("#111827"),
	Secondary:    lipgloss.Color("#374151"),
	Dim:          lipgloss.Color("#6b7280"),
	Border:       lipgloss.Color("#d1d5db"),
	ActiveBorder: lipgloss.Color("#0f766e"),
}

// DetectTheme picks a theme from the flag value, then SCRIPTGRANT_THEME,
// then the COLORFGBG background hint. Dark is the fallback.
func DetectTheme(flagVal string) TermTheme {
	if t, ok := themeByName(flagVal); ok {
		return t
	}
	if t, ok := themeByName(os.Getenv(ThemeEnv)); ok {
		return t
	}

	// COLORFGBG is "fg;bg"; 7 and 15 are light backgrounds.
	if colorfgbg := os.Getenv("COLORFGBG"); colorfgbg != "" {
		parts := strings.Split(colorfgbg, ";")
		if len(parts) >= 2 {
			bg := parts[len(parts)-1]
			if bg == "15" || bg == "7" {
				return LightTheme
			}
		}
	}

	return DarkTheme
}

func themeByName(name string) (TermTheme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dark":
		return DarkTheme, true
	case "light":
		return LightTheme, true
	}
	return TermTheme{}, false
}

// StyleSet contains lipgloss styles derived from a theme.
type StyleSet struct {
	Theme TermTheme

	Subtitle     lipgloss.Style
	AccentTxt    lipgloss.Style
	DimTxt       lipgloss.Style
	SuccessTxt   lipgloss.Style
	WarningTxt   lipgloss.Style
	ErrorTxt     lipgloss.Style
	PrimaryTxt   lipgloss.Style
	SecondaryTxt lipgloss.Style

	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	KbdKey  lipgloss.Style
	KbdDesc lipgloss.Style

	Banner lipgloss.Style

	SummaryKey   lipgloss.Style
	SummaryValue lipgloss.Style
	BorderedBox  lipgloss.Style

	StepBadgeComplete lipgloss.Style
	StepBadgeActive   lipgloss.Style

	VersionPill lipgloss.Style
}

// NewStyleSet creates a StyleSet from a theme.
func NewStyleSet(theme TermTheme) *StyleSet {
	badge := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Padding(0, 1)

	return &StyleSet{
		Theme: theme,

		Subtitle:     lipgloss.NewStyle().Foreground(theme.Secondary),
		AccentTxt:    lipgloss.NewStyle().Foreground(theme.Accent),
		DimTxt:       lipgloss.NewStyle().Foreground(theme.Dim),
		SuccessTxt:   lipgloss.NewStyle().Foreground(theme.Success),
		WarningTxt:   lipgloss.NewStyle().Foreground(theme.Warning),
		ErrorTxt:     lipgloss.NewStyle().Foreground(theme.Error),
		PrimaryTxt:   lipgloss.NewStyle().Foreground(theme.Primary),
		SecondaryTxt: lipgloss.NewStyle().Foreground(theme.Secondary),

		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ActiveBorder),
		InactiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		KbdKey: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Background(theme.Dim).
			Padding(0, 1),
		KbdDesc: lipgloss.NewStyle().Foreground(theme.Dim),

		Banner: lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),

		SummaryKey:   lipgloss.NewStyle().Foreground(theme.Secondary),
		SummaryValue: lipgloss.NewStyle().Foreground(theme.Primary).Bold(true),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StepBadgeComplete: badge.Background(theme.Success),
		StepBadgeActive:   badge.Background(theme.Accent),
		VersionPill:       badge.Background(theme.AccentDim),
	}
}
