package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// InputStyles groups the styles a TextInput renders with.
type InputStyles struct {
	Accent  lipgloss.Color
	Label   lipgloss.Style
	Border  lipgloss.Style
	Error   lipgloss.Style
	Hint    lipgloss.Style
	KbdKey  lipgloss.Style
	KbdDesc lipgloss.Style
}

// TextInput is a styled text entry component wrapping bubbles/textinput.
// In list mode every submitted value is collected and an empty submit
// finishes the input.
type TextInput struct {
	Label      string
	input      textinput.Model
	done       bool
	err        string
	list       bool
	values     []string
	validateFn func(string) error
	hintFn     func(string) string

	styles InputStyles
	kbd    KbdHint
}

// NewTextInput creates a single value text input.
func NewTextInput(label, placeholder string, validateFn func(string) error, styles InputStyles) TextInput {
	return newTextInput(label, placeholder, false, validateFn, styles)
}

// NewListInput creates a text input that collects several values.
func NewListInput(label, placeholder string, validateFn func(string) error, styles InputStyles) TextInput {
	return newTextInput(label, placeholder, true, validateFn, styles)
}

func newTextInput(label, placeholder string, list bool, validateFn func(string) error, styles InputStyles) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 200
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.Accent)

	hints := InputHints()
	if list {
		hints = ListInputHints()
	}

	return TextInput{
		Label:      label,
		input:      ti,
		list:       list,
		validateFn: validateFn,
		styles:     styles,
		kbd:        NewKbdHint(styles.KbdKey, styles.KbdDesc, hints...),
	}
}

// WithHint sets a function that renders a hint line from the current value.
func (t TextInput) WithHint(fn func(string) string) TextInput {
	t.hintFn = fn
	return t
}

// Init starts the cursor blinking.
func (t TextInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.done {
		return t, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		val := strings.TrimSpace(t.input.Value())
		if t.list && val == "" && len(t.values) > 0 {
			t.done = true
			t.err = ""
			return t, nil
		}
		if t.validateFn != nil {
			if err := t.validateFn(val); err != nil {
				t.err = err.Error()
				return t, nil
			}
		}
		t.err = ""
		if t.list {
			t.values = append(t.values, val)
			t.input.SetValue("")
			return t, nil
		}
		t.done = true
		return t, nil
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	t.err = ""
	return t, cmd
}

// View renders the text input.
func (t TextInput) View(width int) string {
	out := "\n  " + t.styles.Label.Render(t.Label) + "\n\n"

	for _, v := range t.values {
		out += "  " + t.styles.Hint.Render("+ "+v) + "\n"
	}
	if len(t.values) > 0 {
		out += "\n"
	}

	inputWidth := width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	t.input.Width = inputWidth

	out += "  " + t.styles.Border.Width(inputWidth).Render(t.input.View()) + "\n"

	if t.err != "" {
		out += "  " + t.styles.Error.Render("✗ "+t.err) + "\n"
	}

	if t.hintFn != nil && t.input.Value() != "" {
		if hint := t.hintFn(t.input.Value()); hint != "" {
			out += "  " + t.styles.Hint.Render(hint) + "\n"
		}
	}

	out += "\n" + t.kbd.View()
	return out
}

// Done returns true when input is submitted.
func (t TextInput) Done() bool {
	return t.done
}

// Reset reopens a finished input so the user can edit it again.
func (t *TextInput) Reset() {
	t.done = false
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.input.Value())
}

// Values returns the values collected in list mode.
func (t TextInput) Values() []string {
	return t.values
}

// SetValue sets the input value.
func (t *TextInput) SetValue(v string) {
	t.input.SetValue(v)
}
