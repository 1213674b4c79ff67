package steps

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/scriptgrant/internal/tui"
	"github.com/initializ/scriptgrant/internal/tui/components"
)

// ReviewStep shows the collected answers and asks for confirmation. The
// config file is written by the caller after the wizard exits.
type ReviewStep struct {
	styles   *tui.StyleSet
	summary  components.SummaryBox
	complete bool
	kbd      components.KbdHint
}

// NewReviewStep creates a new review step.
func NewReviewStep(styles *tui.StyleSet) *ReviewStep {
	return &ReviewStep{
		styles: styles,
		kbd:    components.NewKbdHint(styles.KbdKey, styles.KbdDesc, components.ReviewHints()...),
	}
}

// Prepare builds the summary from wizard context.
func (s *ReviewStep) Prepare(ctx *tui.WizardContext) {
	s.complete = false
	s.summary = components.NewSummaryBox(ctx.ReviewRows(), s.styles.SummaryKey, s.styles.SummaryValue, s.styles.BorderedBox)
}

func (s *ReviewStep) Title() string { return "Review" }

func (s *ReviewStep) Init() tea.Cmd {
	s.complete = false
	return nil
}

func (s *ReviewStep) Update(msg tea.Msg) (tui.Step, tea.Cmd) {
	if s.complete {
		return s, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			s.complete = true
			return s, complete
		case "esc", "backspace":
			return s, back
		}
	}
	return s, nil
}

func (s *ReviewStep) View(width int) string {
	out := s.summary.View(width) + "\n\n"
	out += s.kbd.View()
	return out
}

func (s *ReviewStep) Complete() bool {
	return s.complete
}

func (s *ReviewStep) Summary() string {
	return "confirmed"
}

func (s *ReviewStep) Apply(ctx *tui.WizardContext) {}
