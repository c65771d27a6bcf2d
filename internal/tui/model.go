// Package tui renders the to-do list controller as a Bubble Tea program.
package tui

import (
	"fmt"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/evanschultz/jot/internal/app"
)

// focusArea identifies which pane receives key presses.
type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

// frameMsg carries the wall time of one animation frame.
type frameMsg time.Time

// copiedMsg reports the result of a clipboard write.
type copiedMsg struct {
	text string
	err  error
}

// Model is the Bubble Tea model wrapping an app.Controller.
type Model struct {
	ctrl    *app.Controller
	input   textinput.Model
	help    help.Model
	keys    keyMap
	helpBox *helpOverlay

	title         string
	focus         focusArea
	cursor        int
	showHelp      bool
	ticking       bool
	frameInterval time.Duration
	copyText      func(string) error
	status        string

	width  int
	height int
}

// NewModel constructs a model around ctrl. A nil controller gets a
// default one.
func NewModel(ctrl *app.Controller, opts ...Option) Model {
	if ctrl == nil {
		ctrl = app.NewController(nil, nil, app.DefaultControllerConfig())
	}
	h := help.New()
	h.ShowAll = false
	in := textinput.New()
	in.Prompt = "› "
	in.Placeholder = "Add or edit a task"
	in.CharLimit = 0 // unbounded, like the controller

	m := Model{
		ctrl:          ctrl,
		input:         in,
		help:          h,
		keys:          newKeyMap(),
		helpBox:       &helpOverlay{},
		title:         "Simple To-Do List",
		focus:         focusInput,
		frameInterval: defaultFrameInterval,
		copyText:      systemClipboard,
		status:        "ready",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.syncInput()
	m.input.Focus()
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		return m.advance(time.Time(msg))

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("copied %q", truncate(msg.text, 32))
		return m, nil

	case tea.KeyPressMsg:
		if m.showHelp {
			return m.handleHelpKey(msg)
		}
		if m.focus == focusInput {
			return m.handleInputKey(msg)
		}
		return m.handleListKey(msg)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// handleHelpKey closes the help overlay; every other key is swallowed.
func (m Model) handleHelpKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp), msg.String() == "esc", msg.String() == "q":
		m.showHelp = false
		m.status = "ready"
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.submit):
		m.submit()
		return m, m.startFrames()
	case key.Matches(msg, m.keys.focusNext):
		m.focusList()
		return m, nil
	case key.Matches(msg, m.keys.back):
		if _, editing := m.ctrl.Mode().(app.Editing); editing {
			m.ctrl.CancelEdit()
			m.syncInput()
			m.status = "edit canceled"
			return m, nil
		}
		m.focusList()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.ctrl.UpdateDraft(m.input.Value())
		return m, cmd
	}
}

func (m Model) handleListKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.showHelp = true
		m.status = "help"
		return m, nil
	case key.Matches(msg, m.keys.focusNext), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.submit):
		return m, m.focusInput()
	case key.Matches(msg, m.keys.moveUp):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		m.moveCursor(1)
		return m, nil
	}

	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.toggle):
		m.ctrl.ToggleCompletion(row.ID)
		if task, ok := m.ctrl.Task(row.ID); ok && task.Completed {
			m.status = "marked done"
		} else {
			m.status = "marked not done"
		}
		return m, nil
	case key.Matches(msg, m.keys.edit):
		m.ctrl.BeginEdit(row.ID)
		m.syncInput()
		m.status = "editing"
		return m, m.focusInput()
	case key.Matches(msg, m.keys.delete):
		m.ctrl.DeleteTask(row.ID)
		m.status = "deleting"
		return m, m.startFrames()
	case key.Matches(msg, m.keys.copy):
		write := m.copyText
		text := row.Text
		return m, func() tea.Msg {
			return copiedMsg{text: text, err: write(text)}
		}
	}
	return m, nil
}

// submit dispatches enter to add or save and reports the outcome.
func (m *Model) submit() {
	before := len(m.ctrl.Tasks())
	_, wasEditing := m.ctrl.Mode().(app.Editing)
	m.ctrl.UpdateDraft(m.input.Value())
	m.ctrl.Submit()
	_, stillEditing := m.ctrl.Mode().(app.Editing)

	switch {
	case wasEditing && stillEditing:
		m.status = "task text cannot be blank"
	case wasEditing:
		m.status = "saved"
	case len(m.ctrl.Tasks()) > before:
		m.status = "added"
	default:
		m.status = "nothing to add"
	}
	m.syncInput()
}

// advance applies one animation frame and schedules the next while
// anything is still moving.
func (m Model) advance(now time.Time) (tea.Model, tea.Cmd) {
	for _, ev := range m.ctrl.Advance(now) {
		if ev.Kind == app.EventTaskRemoved {
			m.status = fmt.Sprintf("removed %q", truncate(ev.Text, 32))
		}
	}
	if m.input.Value() != m.ctrl.Draft() {
		m.syncInput()
	}
	m.clampCursor()
	if m.ctrl.Animating() {
		return m, m.tick()
	}
	m.ticking = false
	return m, nil
}

// startFrames starts the frame ticker unless it is already running or
// nothing is animating.
func (m *Model) startFrames() tea.Cmd {
	if m.ticking || !m.ctrl.Animating() {
		return nil
	}
	m.ticking = true
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) syncInput() {
	m.input.SetValue(m.ctrl.Draft())
	m.input.CursorEnd()
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *Model) focusList() {
	m.focus = focusList
	m.input.Blur()
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	m.cursor = clamp(m.cursor, 0, len(m.ctrl.Tasks())-1)
}

func (m Model) selectedRow() (app.Row, bool) {
	rows := m.ctrl.Render().Rows
	if len(rows) == 0 {
		return app.Row{}, false
	}
	return rows[clamp(m.cursor, 0, len(rows)-1)], true
}

// TaskCount reports how many tasks are in the list, including ones
// still fading out.
func (m Model) TaskCount() int {
	return len(m.ctrl.Tasks())
}
