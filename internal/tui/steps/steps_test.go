package steps

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/initializ/scriptgrant/internal/tui"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func msgOf(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func nameStep(styles *tui.StyleSet, prefill string) *TextStep {
	return NewTextStep(styles, TextStepConfig{
		Title:   "Script Name",
		Label:   "name",
		Prefill: prefill,
		Validate: func(v string) error {
			if v == "" {
				return fmt.Errorf("name is required")
			}
			return nil
		},
		Apply: func(ctx *tui.WizardContext, v string) { ctx.Name = v },
	})
}

func TestTextStep(t *testing.T) {
	styles := tui.NewStyleSet(tui.DarkTheme)
	s := nameStep(styles, "")
	s.Init()

	if _, cmd := s.Update(enter); cmd != nil || s.Complete() {
		t.Fatal("empty submit should fail validation")
	}

	s.Update(typeText("Tab Saver"))
	_, cmd := s.Update(enter)
	if _, ok := msgOf(cmd).(tui.StepCompleteMsg); !ok {
		t.Fatalf("expected StepCompleteMsg, got %T", msgOf(cmd))
	}

	ctx := &tui.WizardContext{}
	s.Apply(ctx)
	if ctx.Name != "Tab Saver" || s.Summary() != "Tab Saver" {
		t.Errorf("Name = %q, Summary = %q", ctx.Name, s.Summary())
	}
}

func TestTextStep_Prefill(t *testing.T) {
	s := nameStep(tui.NewStyleSet(tui.DarkTheme), "Given")
	if _, ok := msgOf(s.Init()).(tui.StepCompleteMsg); !ok {
		t.Fatal("prefilled step should complete on Init")
	}
	if s.Summary() != "Given" {
		t.Errorf("Summary() = %q", s.Summary())
	}
}

func TestTextStep_Default(t *testing.T) {
	s := NewTextStep(tui.NewStyleSet(tui.DarkTheme), TextStepConfig{
		Title:   "Namespace",
		Default: "fallback",
		Apply:   func(ctx *tui.WizardContext, v string) { ctx.Namespace = v },
	})
	s.Init()
	s.Update(enter)

	ctx := &tui.WizardContext{}
	s.Apply(ctx)
	if ctx.Namespace != "fallback" {
		t.Errorf("Namespace = %q", ctx.Namespace)
	}
}

func TestMatchStep(t *testing.T) {
	s := NewMatchStep(tui.NewStyleSet(tui.DarkTheme), nil)
	s.Init()

	s.Update(typeText("example.com"))
	s.Update(enter)
	if s.Complete() {
		t.Fatal("invalid pattern should not complete")
	}

	s.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	for _, p := range []string{"https://a.example/*", "https://b.example/*"} {
		s.input.SetValue(p)
		s.Update(enter)
	}
	_, cmd := s.Update(enter)
	if _, ok := msgOf(cmd).(tui.StepCompleteMsg); !ok {
		t.Fatalf("empty submit after values should complete, got %T", msgOf(cmd))
	}

	ctx := &tui.WizardContext{}
	s.Apply(ctx)
	want := []string{"https://a.example/*", "https://b.example/*"}
	if !reflect.DeepEqual(ctx.Match, want) {
		t.Errorf("Match = %v, want %v", ctx.Match, want)
	}
}

func TestValidateMatch(t *testing.T) {
	for _, ok := range []string{"https://example.com/*", "*://*/*", "<all_urls>"} {
		if err := ValidateMatch(ok); err != nil {
			t.Errorf("ValidateMatch(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "example.com", "https://a b/"} {
		if err := ValidateMatch(bad); err == nil {
			t.Errorf("ValidateMatch(%q) should fail", bad)
		}
	}
}

func TestGrantsStep(t *testing.T) {
	s := NewGrantsStep(tui.NewStyleSet(tui.DarkTheme), CommonGrants[:3], []string{"GM_setValue"})
	s.Init()

	s.Update(space) // GM_getValue
	s.Update(down)
	s.Update(down)
	s.Update(space) // GM_deleteValue
	_, cmd := s.Update(enter)
	if _, ok := msgOf(cmd).(tui.StepCompleteMsg); !ok {
		t.Fatalf("expected StepCompleteMsg, got %T", msgOf(cmd))
	}

	ctx := &tui.WizardContext{}
	s.Apply(ctx)
	want := []string{"GM_getValue", "GM_setValue", "GM_deleteValue"}
	if !reflect.DeepEqual(ctx.Grants, want) {
		t.Errorf("Grants = %v, want %v", ctx.Grants, want)
	}
}

func TestWizard_FlowWithBack(t *testing.T) {
	styles := tui.NewStyleSet(tui.DarkTheme)
	review := NewReviewStep(styles)
	w := tui.NewWizard(tui.DarkTheme, "test", tui.WizardContext{OutDir: "dist"},
		nameStep(styles, ""),
		NewGrantsStep(styles, CommonGrants[:2], nil),
		review,
	)
	w.Init()

	send := func(msg tea.Msg) tea.Cmd {
		_, cmd := w.Update(msg)
		return cmd
	}
	// step feeds a key press and delivers the step's own message back.
	step := func(msg tea.Msg) {
		if next := msgOf(send(msg)); next != nil {
			switch next.(type) {
			case tui.StepCompleteMsg, tui.StepBackMsg:
				send(next)
			}
		}
	}

	send(typeText("Demo"))
	step(enter) // name -> grants
	step(esc)   // back to name
	step(enter) // name -> grants again
	step(space)
	step(enter) // grants -> review
	if w.Done() {
		t.Fatal("wizard finished before review")
	}
	if view := review.View(80); !strings.Contains(view, "dist") || !strings.Contains(view, "GM_getValue") {
		t.Errorf("review does not show the answers:\n%s", view)
	}
	step(enter) // review -> done

	if !w.Done() || w.Err() != nil {
		t.Fatalf("Done=%v Err=%v", w.Done(), w.Err())
	}
	got := w.Answers()
	if got.Name != "Demo" || got.OutDir != "dist" || !reflect.DeepEqual(got.Grants, []string{"GM_getValue"}) {
		t.Errorf("answers = %+v", got)
	}
}

func TestWizard_CtrlCCancels(t *testing.T) {
	w := tui.NewWizard(tui.DarkTheme, "", tui.WizardContext{}, NewReviewStep(tui.NewStyleSet(tui.DarkTheme)))
	w.Init()
	w.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !errors.Is(w.Err(), tui.ErrCancelled) || w.Done() {
		t.Errorf("Err=%v Done=%v", w.Err(), w.Done())
	}
	// Further input is ignored once cancelled.
	w.Update(enter)
	if w.Done() {
		t.Error("cancelled wizard completed")
	}
}

func TestWizardContext_ReviewRows(t *testing.T) {
	ctx := &tui.WizardContext{Name: "Demo", Match: []string{"a://b", "<all_urls>"}}
	rows := ctx.ReviewRows()
	if len(rows) != 4 {
		t.Fatalf("rows = %+v, want four without an output directory", rows)
	}
	if rows[2].Value != "a://b, <all_urls>" || rows[3].Value != "detect on build" {
		t.Errorf("rows = %+v", rows)
	}
	ctx.OutDir = "build"
	if rows = ctx.ReviewRows(); rows[len(rows)-1].Key != "Output" {
		t.Errorf("last row = %+v, want Output", rows[len(rows)-1])
	}
}
