package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/scriptgrant/internal/tui/components"
)

// ErrCancelled is reported by Wizard.Err after ctrl+c.
var ErrCancelled = errors.New("init cancelled")

// WizardContext holds the answers collected by the init wizard.
type WizardContext struct {
	Name      string
	Namespace string
	Match     []string
	Grants    []string
	OutDir    string // shown on the review page, never asked for
}

// ReviewRows lists the answers in the order the review page shows them.
func (c *WizardContext) ReviewRows() []components.SummaryRow {
	grants := "detect on build"
	if len(c.Grants) > 0 {
		grants = strings.Join(c.Grants, ", ")
	}
	rows := []components.SummaryRow{
		{Key: "Name", Value: c.Name},
		{Key: "Namespace", Value: c.Namespace},
		{Key: "Match", Value: strings.Join(c.Match, ", ")},
		{Key: "Grants", Value: grants},
	}
	if c.OutDir != "" {
		rows = append(rows, components.SummaryRow{Key: "Output", Value: c.OutDir})
	}
	return rows
}

type wizardState int

const (
	wizardRunning wizardState = iota
	wizardDone
	wizardCancelled
)

// Wizard walks the user through the init steps and collects the answers
// into a WizardContext.
type Wizard struct {
	styles  *StyleSet
	version string
	steps   []Step
	pos     int
	answers WizardContext
	width   int
	state   wizardState
}

// NewWizard creates a wizard over steps. seed carries values known before
// the first step, such as the output directory from the config.
func NewWizard(theme TermTheme, version string, seed WizardContext, steps ...Step) *Wizard {
	return &Wizard{
		styles:  NewStyleSet(theme),
		version: version,
		steps:   steps,
		answers: seed,
		width:   80,
	}
}

func (w *Wizard) Init() tea.Cmd {
	return w.enter(0)
}

// enter makes step i current, letting it read earlier answers first.
func (w *Wizard) enter(i int) tea.Cmd {
	if i >= len(w.steps) {
		w.state = wizardDone
		return tea.Quit
	}
	w.pos = i
	if p, ok := w.steps[i].(Preparer); ok {
		p.Prepare(&w.answers)
	}
	return w.steps[i].Init()
}

func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if w.state != wizardRunning {
		return w, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		return w, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			w.state = wizardCancelled
			return w, tea.Quit
		}
	case StepCompleteMsg:
		w.steps[w.pos].Apply(&w.answers)
		return w, w.enter(w.pos + 1)
	case StepBackMsg:
		if w.pos == 0 {
			return w, nil
		}
		return w, w.enter(w.pos - 1)
	}

	if len(w.steps) == 0 {
		return w, nil
	}
	next, cmd := w.steps[w.pos].Update(msg)
	w.steps[w.pos] = next
	return w, cmd
}

func (w *Wizard) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(RenderBanner(w.styles, w.version, w.width))
	b.WriteString("\n")
	b.WriteString(RenderProgress(w.steps, w.pos, w.styles, w.width))
	b.WriteString("\n")
	if w.state == wizardRunning && w.pos < len(w.steps) {
		b.WriteString(w.steps[w.pos].View(w.width))
	}
	b.WriteString("\n")
	return b.String()
}

// Answers returns the collected answers.
func (w *Wizard) Answers() WizardContext {
	return w.answers
}

// Err returns ErrCancelled if the user quit before the last step.
func (w *Wizard) Err() error {
	if w.state == wizardCancelled {
		return ErrCancelled
	}
	return nil
}

// Done reports whether every step completed.
func (w *Wizard) Done() bool {
	return w.state == wizardDone
}
