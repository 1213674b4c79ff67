package steps

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/scriptgrant/internal/tui"
	"github.com/initializ/scriptgrant/internal/tui/components"
)

// MatchStep collects the @match patterns the script runs on.
type MatchStep struct {
	styles   *tui.StyleSet
	input    components.TextInput
	complete bool
	matches  []string
}

// NewMatchStep creates a new match pattern step. Prefilled patterns complete
// the step without prompting.
func NewMatchStep(styles *tui.StyleSet, prefill []string) *MatchStep {
	s := &MatchStep{styles: styles, matches: prefill}
	s.input = s.newInput()
	return s
}

func (s *MatchStep) newInput() components.TextInput {
	return components.NewListInput(
		"Which pages should the script run on?",
		"https://example.com/*",
		ValidateMatch,
		inputStyles(s.styles),
	)
}

// ValidateMatch checks a single @match pattern.
func ValidateMatch(v string) error {
	if v == "" {
		return fmt.Errorf("at least one match pattern is required")
	}
	if strings.ContainsAny(v, " \t") {
		return fmt.Errorf("match patterns cannot contain whitespace")
	}
	if !strings.Contains(v, "://") && v != "<all_urls>" {
		return fmt.Errorf("expected scheme://host/path or <all_urls>")
	}
	return nil
}

func (s *MatchStep) Title() string { return "Match Patterns" }

func (s *MatchStep) Init() tea.Cmd {
	if len(s.matches) > 0 && !s.complete {
		s.complete = true
		return complete
	}
	s.complete = false
	s.matches = nil
	s.input = s.newInput()
	return s.input.Init()
}

func (s *MatchStep) Update(msg tea.Msg) (tui.Step, tea.Cmd) {
	if s.complete {
		return s, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		return s, back
	}

	updated, cmd := s.input.Update(msg)
	s.input = updated

	if s.input.Done() {
		s.complete = true
		s.matches = s.input.Values()
		return s, complete
	}
	return s, cmd
}

func (s *MatchStep) View(width int) string {
	return s.input.View(width)
}

func (s *MatchStep) Complete() bool {
	return s.complete
}

func (s *MatchStep) Summary() string {
	return strings.Join(s.matches, ", ")
}

func (s *MatchStep) Apply(ctx *tui.WizardContext) {
	ctx.Match = s.matches
}
