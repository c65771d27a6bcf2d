package tui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/exp/teatest/v2"
	"github.com/evanschultz/jot/internal/app"
)

func newTeatestModel() Model {
	ctrl := app.NewController(app.SequenceIDs("t-"), nil, app.ControllerConfig{
		AddDuration:  40 * time.Millisecond,
		FadeDuration: 40 * time.Millisecond,
	})
	return NewModel(ctrl, WithFrameInterval(5*time.Millisecond), WithClipboard(func(string) error { return nil }))
}

// TestModelWithTeatest verifies a full add, toggle and delete session.
func TestModelWithTeatest(t *testing.T) {
	tm := teatest.NewTestModel(t, newTeatestModel(), teatest.WithInitialTermSize(120, 35))
	t.Cleanup(func() {
		_ = tm.Quit()
	})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "Simple To-Do List")
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	sendText(tm, "Buy milk")
	tm.Send(tea.KeyPressMsg{Code: tea.KeyEnter})
	sendText(tm, "Walk dog")
	tm.Send(tea.KeyPressMsg{Code: tea.KeyEnter})
	tm.Send(tea.KeyPressMsg{Code: tea.KeyTab})
	tm.Send(tea.KeyPressMsg{Code: 'x', Text: "x"})
	tm.Send(tea.KeyPressMsg{Code: 'j', Text: "j"})
	tm.Send(tea.KeyPressMsg{Code: 'd', Text: "d"})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "removed")
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Send(tea.KeyPressMsg{Code: 'q', Text: "q"})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final, ok := tm.FinalModel(t).(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", tm.FinalModel(t))
	}
	tasks := final.ctrl.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" || !tasks[0].Completed {
		t.Fatalf("unexpected final tasks %#v", tasks)
	}
}

// TestModelWithTeatestHelp verifies the help overlay renders and closes.
func TestModelWithTeatestHelp(t *testing.T) {
	tm := teatest.NewTestModel(t, newTeatestModel(), teatest.WithInitialTermSize(120, 35))
	t.Cleanup(func() {
		_ = tm.Quit()
	})

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "Nothing to do yet.")
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Send(tea.KeyPressMsg{Code: tea.KeyTab})
	tm.Send(tea.KeyPressMsg{Code: '?', Text: "?"})
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return strings.Contains(string(out), "Keys")
	}, teatest.WithDuration(2*time.Second), teatest.WithCheckInterval(10*time.Millisecond))

	tm.Send(tea.KeyPressMsg{Code: tea.KeyEscape})
	tm.Send(tea.KeyPressMsg{Code: 'q', Text: "q"})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}

func sendText(tm *teatest.TestModel, text string) {
	for _, r := range text {
		tm.Send(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}
