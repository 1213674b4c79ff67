package steps

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/scriptgrant/internal/tui"
	"github.com/initializ/scriptgrant/internal/tui/components"
)

// TextStep collects a single value and stores it with apply.
type TextStep struct {
	title    string
	input    components.TextInput
	complete bool
	value    string
	prefill  string
	apply    func(ctx *tui.WizardContext, value string)
}

// TextStepConfig describes a TextStep.
type TextStepConfig struct {
	Title       string
	Label       string
	Placeholder string
	// Default is used when the user submits an empty value.
	Default string
	// Prefill completes the step without prompting.
	Prefill  string
	Validate func(string) error
	Hint     func(string) string
	Apply    func(ctx *tui.WizardContext, value string)
}

// NewTextStep creates a new single value step.
func NewTextStep(styles *tui.StyleSet, cfg TextStepConfig) *TextStep {
	validate := cfg.Validate
	if cfg.Default != "" {
		inner := validate
		validate = func(v string) error {
			if v == "" || inner == nil {
				return nil
			}
			return inner(v)
		}
	}

	input := components.NewTextInput(cfg.Label, cfg.Placeholder, validate, inputStyles(styles))
	if cfg.Hint != nil {
		input = input.WithHint(cfg.Hint)
	}

	return &TextStep{
		title:   cfg.Title,
		input:   input,
		value:   cfg.Default,
		prefill: cfg.Prefill,
		apply:   cfg.Apply,
	}
}

func (s *TextStep) Title() string { return s.title }

func (s *TextStep) Init() tea.Cmd {
	if s.prefill != "" {
		s.complete = true
		s.value = s.prefill
		return complete
	}
	s.complete = false
	s.input.Reset()
	return s.input.Init()
}

func (s *TextStep) Update(msg tea.Msg) (tui.Step, tea.Cmd) {
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
		if v := s.input.Value(); v != "" {
			s.value = v
		}
		return s, complete
	}

	return s, cmd
}

func (s *TextStep) View(width int) string {
	return s.input.View(width)
}

func (s *TextStep) Complete() bool {
	return s.complete
}

func (s *TextStep) Summary() string {
	return s.value
}

func (s *TextStep) Apply(ctx *tui.WizardContext) {
	if s.apply != nil {
		s.apply(ctx, s.value)
	}
}
