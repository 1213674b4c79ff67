package steps

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/scriptgrant/internal/tui"
	"github.com/initializ/scriptgrant/internal/tui/components"
)

func inputStyles(s *tui.StyleSet) components.InputStyles {
	return components.InputStyles{
		Accent:  s.Theme.Accent,
		Label:   s.AccentTxt,
		Border:  s.InactiveBorder,
		Error:   s.ErrorTxt,
		Hint:    s.DimTxt,
		KbdKey:  s.KbdKey,
		KbdDesc: s.KbdDesc,
	}
}

func selectStyles(s *tui.StyleSet) components.SelectStyles {
	return components.SelectStyles{
		Accent:         s.Theme.Accent,
		Primary:        s.Theme.Primary,
		Secondary:      s.Theme.Secondary,
		Dim:            s.Theme.Dim,
		ActiveBorder:   s.ActiveBorder,
		InactiveBorder: s.InactiveBorder,
		KbdKey:         s.KbdKey,
		KbdDesc:        s.KbdDesc,
	}
}

func complete() tea.Msg { return tui.StepCompleteMsg{} }

func back() tea.Msg { return tui.StepBackMsg{} }
