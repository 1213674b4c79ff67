package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// SummaryRow is a key/value pair in a SummaryBox.
type SummaryRow struct {
	Key   string
	Value string
}

// SummaryBox renders a two column key/value grid in a bordered box.
type SummaryBox struct {
	Rows []SummaryRow

	KeyStyle    lipgloss.Style
	ValueStyle  lipgloss.Style
	BorderStyle lipgloss.Style
}

// NewSummaryBox creates a new summary box.
func NewSummaryBox(rows []SummaryRow, keyStyle, valueStyle, borderStyle lipgloss.Style) SummaryBox {
	return SummaryBox{
		Rows:        rows,
		KeyStyle:    keyStyle,
		ValueStyle:  valueStyle,
		BorderStyle: borderStyle,
	}
}

// View renders the summary box.
func (s SummaryBox) View(width int) string {
	boxWidth := width - 8
	if boxWidth < 30 {
		boxWidth = 30
	}

	keyWidth := 0
	for _, row := range s.Rows {
		if w := lipgloss.Width(row.Key); w > keyWidth {
			keyWidth = w
		}
	}

	var content string
	for _, row := range s.Rows {
		key := s.KeyStyle.Width(keyWidth + 2).Render(row.Key)
		content += fmt.Sprintf("%s%s\n", key, s.ValueStyle.Render(row.Value))
	}

	return "  " + s.BorderStyle.Width(boxWidth).Render(content)
}
