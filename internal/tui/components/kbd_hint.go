package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is one keyboard shortcut hint.
type KeyBinding struct {
	Key  string
	Desc string
}

// KbdHint renders a horizontal row of keyboard hints.
type KbdHint struct {
	Bindings  []KeyBinding
	KeyStyle  lipgloss.Style
	DescStyle lipgloss.Style
}

// NewKbdHint creates a KbdHint with the given styles.
func NewKbdHint(keyStyle, descStyle lipgloss.Style, bindings ...KeyBinding) KbdHint {
	return KbdHint{
		Bindings:  bindings,
		KeyStyle:  keyStyle,
		DescStyle: descStyle,
	}
}

// View renders the keyboard hints.
func (k KbdHint) View() string {
	parts := make([]string, 0, len(k.Bindings))
	for _, b := range k.Bindings {
		parts = append(parts, k.KeyStyle.Render(b.Key)+" "+k.DescStyle.Render(b.Desc))
	}
	return "  " + strings.Join(parts, "    ")
}

// InputHints are shown under text inputs.
func InputHints() []KeyBinding {
	return []KeyBinding{
		{Key: "⏎", Desc: "submit"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}

// ListInputHints are shown under text inputs that accept several values.
func ListInputHints() []KeyBinding {
	return []KeyBinding{
		{Key: "⏎", Desc: "add"},
		{Key: "⏎ on empty", Desc: "done"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}

// MultiSelectHints are shown under checkbox lists.
func MultiSelectHints() []KeyBinding {
	return []KeyBinding{
		{Key: "↑↓", Desc: "navigate"},
		{Key: "space", Desc: "toggle"},
		{Key: "⏎", Desc: "confirm"},
		{Key: "esc", Desc: "back"},
	}
}

// ReviewHints are shown on the review step.
func ReviewHints() []KeyBinding {
	return []KeyBinding{
		{Key: "⏎", Desc: "write config"},
		{Key: "esc", Desc: "back"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}
