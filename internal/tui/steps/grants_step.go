package steps

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/scriptgrant/internal/tui"
	"github.com/initializ/scriptgrant/internal/tui/components"
)

// GrantInfo describes an API offered in the grants step.
type GrantInfo struct {
	Name        string
	Description string
}

// CommonGrants are the APIs offered for pre-declaration. Anything else the
// script uses is added at build time.
var CommonGrants = []GrantInfo{
	{"GM_getValue", "read stored values"},
	{"GM_setValue", "persist values"},
	{"GM_deleteValue", "remove stored values"},
	{"GM_listValues", "list stored keys"},
	{"GM_addStyle", "inject CSS"},
	{"GM_xmlhttpRequest", "cross-origin requests"},
	{"GM_download", "download files"},
	{"GM_notification", "desktop notifications"},
	{"GM_openInTab", "open tabs"},
	{"GM_setClipboard", "write the clipboard"},
	{"GM_registerMenuCommand", "menu entries"},
	{"unsafeWindow", "page window object"},
	{"window.onurlchange", "SPA navigation events"},
	{"window.close", "close the tab"},
	{"window.focus", "focus the tab"},
}

// GrantsStep lets the user pre-declare grants.
type GrantsStep struct {
	styles      *tui.StyleSet
	grants      []GrantInfo
	multiSelect components.MultiSelect
	complete    bool
	selected    []string
}

// NewGrantsStep creates a new grants step with the given choices checked.
func NewGrantsStep(styles *tui.StyleSet, grants []GrantInfo, checked []string) *GrantsStep {
	on := make(map[string]bool, len(checked))
	for _, c := range checked {
		on[c] = true
	}

	items := make([]components.MultiSelectItem, 0, len(grants))
	for _, g := range grants {
		items = append(items, components.MultiSelectItem{
			Label:       g.Name,
			Value:       g.Name,
			Description: g.Description,
			Checked:     on[g.Name],
		})
	}

	return &GrantsStep{
		styles:      styles,
		grants:      grants,
		multiSelect: components.NewMultiSelect(items, selectStyles(styles)),
	}
}

func (s *GrantsStep) Title() string { return "Grants" }

func (s *GrantsStep) Init() tea.Cmd {
	s.complete = false
	return s.multiSelect.Init()
}

func (s *GrantsStep) Update(msg tea.Msg) (tui.Step, tea.Cmd) {
	if s.complete {
		return s, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		return s, back
	}

	updated, cmd := s.multiSelect.Update(msg)
	s.multiSelect = updated

	if s.multiSelect.Done() {
		s.complete = true
		s.selected = s.multiSelect.SelectedValues()
		return s, complete
	}
	return s, cmd
}

func (s *GrantsStep) View(width int) string {
	out := "\n  " + s.styles.AccentTxt.Render("Declare grants up front? Undeclared APIs are added on build.") + "\n\n"
	return out + s.multiSelect.View(width)
}

func (s *GrantsStep) Complete() bool {
	return s.complete
}

func (s *GrantsStep) Summary() string {
	if len(s.selected) == 0 {
		return "detect on build"
	}
	return strings.Join(s.selected, ", ")
}

func (s *GrantsStep) Apply(ctx *tui.WizardContext) {
	ctx.Grants = s.selected
}
