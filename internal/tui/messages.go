package tui

// StepBackMsg is emitted by a step when the user asks to return to the
// previous step.
type StepBackMsg struct{}

// StepCompleteMsg is emitted by a step when it finishes.
type StepCompleteMsg struct{}
