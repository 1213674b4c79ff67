package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MultiSelectItem represents an option in a multi-select list.
type MultiSelectItem struct {
	Label       string
	Value       string
	Description string
	Checked     bool
}

// SelectStyles groups the styles a MultiSelect renders with.
type SelectStyles struct {
	Accent         lipgloss.Color
	Primary        lipgloss.Color
	Secondary      lipgloss.Color
	Dim            lipgloss.Color
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style
	KbdKey         lipgloss.Style
	KbdDesc        lipgloss.Style
}

// MultiSelect is a navigable checkbox list.
type MultiSelect struct {
	Items  []MultiSelectItem
	cursor int
	done   bool

	styles SelectStyles
	kbd    KbdHint
}

// NewMultiSelect creates a new multi-select component.
func NewMultiSelect(items []MultiSelectItem, styles SelectStyles) MultiSelect {
	return MultiSelect{
		Items:  items,
		styles: styles,
		kbd:    NewKbdHint(styles.KbdKey, styles.KbdDesc, MultiSelectHints()...),
	}
}

// Init resets done state so the component can be re-used after back-navigation.
func (m *MultiSelect) Init() tea.Cmd {
	m.done = false
	return nil
}

// Update handles keyboard input.
func (m MultiSelect) Update(msg tea.Msg) (MultiSelect, tea.Cmd) {
	if m.done || len(m.Items) == 0 {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			m.done = true
		}
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.Items)-1 {
				m.cursor++
			}
		case " ":
			m.Items[m.cursor].Checked = !m.Items[m.cursor].Checked
		case "enter":
			m.done = true
		}
	}

	return m, nil
}

// View renders the multi-select list.
func (m MultiSelect) View(width int) string {
	var out string

	itemWidth := width - 6
	if itemWidth < 30 {
		itemWidth = 30
	}

	for i, item := range m.Items {
		isCursor := i == m.cursor

		checkbox := lipgloss.NewStyle().Foreground(m.styles.Dim).Render("☐")
		if item.Checked {
			checkbox = lipgloss.NewStyle().Foreground(m.styles.Accent).Render("☑")
		}

		labelColor := m.styles.Secondary
		border := m.styles.InactiveBorder
		if isCursor {
			labelColor = m.styles.Primary
			border = m.styles.ActiveBorder
		}
		label := lipgloss.NewStyle().Foreground(labelColor).Bold(isCursor).Render(item.Label)

		line := "  " + checkbox + "  " + label
		if isCursor && item.Description != "" {
			pad := itemWidth - lipgloss.Width(line) - lipgloss.Width(item.Description) - 4
			if pad < 2 {
				pad = 2
			}
			line += strings.Repeat(" ", pad) + lipgloss.NewStyle().Foreground(m.styles.Secondary).Render(item.Description)
		}

		out += "  " + border.Width(itemWidth).Render(line) + "\n"
	}

	out += "\n" + m.kbd.View()
	return out
}

// Done returns true when selection is confirmed.
func (m MultiSelect) Done() bool {
	return m.done
}

// SelectedValues returns the values of all checked items.
func (m MultiSelect) SelectedValues() []string {
	var vals []string
	for _, item := range m.Items {
		if item.Checked {
			vals = append(vals, item.Value)
		}
	}
	return vals
}
