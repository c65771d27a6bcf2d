package app

import (
	"slices"
	"strings"
	"time"

	"github.com/evanschultz/jot/internal/anim"
	"github.com/evanschultz/jot/internal/domain"
)

// Default animation timings.
const (
	DefaultAddDuration  = 300 * time.Millisecond
	DefaultFadeDuration = 300 * time.Millisecond
)

// ControllerConfig holds animation settings for the controller.
type ControllerConfig struct {
	AddDuration  time.Duration
	AddEasing    anim.Easing
	FadeDuration time.Duration
	FadeEasing   anim.Easing
}

// DefaultControllerConfig returns the stock timings: a 300ms ease-out
// scale-in and a 300ms ease-in-out fade-out.
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		AddDuration:  DefaultAddDuration,
		AddEasing:    anim.EaseOut,
		FadeDuration: DefaultFadeDuration,
		FadeEasing:   anim.EaseInOut,
	}
}

// ControllerOption configures optional controller collaborators.
type ControllerOption func(*Controller)

// WithLogger attaches a structured logger.
func WithLogger(logger Logger) ControllerOption {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// EventKind identifies an animation milestone reported by Advance.
type EventKind string

// Animation milestones.
const (
	EventAddSettled  EventKind = "add_settled"
	EventTaskRemoved EventKind = "task_removed"
)

// Event reports one animation milestone.
type Event struct {
	Kind   EventKind
	TaskID string
	Text   string
}

// Controller owns the task list, the input mode, and the per-task
// animation handles. It is driven from a single goroutine.
type Controller struct {
	idGen  IDGenerator
	clock  Clock
	cfg    ControllerConfig
	logger Logger

	tasks []domain.Task
	mode  InputMode

	// fade holds opacity for every live task; it only animates during removal.
	fade map[string]*anim.Scalar
	// scale holds one scale-in handle per creation, dropped once it settles.
	scale    map[string]*anim.Scalar
	removing map[string]struct{}
}

// NewController constructs an empty controller in composing mode.
func NewController(idGen IDGenerator, clock Clock, cfg ControllerConfig, opts ...ControllerOption) *Controller {
	if idGen == nil {
		idGen = UUIDv7
	}
	if clock == nil {
		clock = time.Now
	}
	defaults := DefaultControllerConfig()
	if cfg.AddEasing == nil {
		cfg.AddEasing = defaults.AddEasing
	}
	if cfg.FadeEasing == nil {
		cfg.FadeEasing = defaults.FadeEasing
	}
	cfg.AddDuration = max(cfg.AddDuration, 0)
	cfg.FadeDuration = max(cfg.FadeDuration, 0)

	c := &Controller{
		idGen:    idGen,
		clock:    clock,
		cfg:      cfg,
		logger:   noopLogger{},
		mode:     Composing{},
		fade:     map[string]*anim.Scalar{},
		scale:    map[string]*anim.Scalar{},
		removing: map[string]struct{}{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Tasks returns a copy of the task list in display order.
func (c *Controller) Tasks() []domain.Task {
	return slices.Clone(c.tasks)
}

// Task returns the task with id.
func (c *Controller) Task(id string) (domain.Task, bool) {
	idx := domain.IndexOf(c.tasks, id)
	if idx < 0 {
		return domain.Task{}, false
	}
	return c.tasks[idx], true
}

// Mode returns the current input mode.
func (c *Controller) Mode() InputMode {
	return c.mode
}

// Draft returns the text currently held by the input field.
func (c *Controller) Draft() string {
	return draftOf(c.mode)
}

// Removing reports whether id has a fade-out in flight.
func (c *Controller) Removing(id string) bool {
	_, ok := c.removing[id]
	return ok
}

// UpdateDraft replaces the draft of the current mode.
func (c *Controller) UpdateDraft(text string) {
	c.mode = withDraft(c.mode, text)
}

// Submit adds a task while composing and saves the edit while editing.
func (c *Controller) Submit() {
	switch c.mode.(type) {
	case Editing:
		c.SaveEdit()
	default:
		c.AddTask()
	}
}

// AddTask appends a task built from the draft and starts its scale-in.
// It does nothing while editing or when the draft is blank.
func (c *Controller) AddTask() (domain.Task, bool) {
	composing, ok := c.mode.(Composing)
	if !ok {
		return domain.Task{}, false
	}
	if strings.TrimSpace(composing.Draft) == "" {
		c.logger.Debug("add ignored", "reason", "blank draft")
		return domain.Task{}, false
	}

	now := c.clock()
	task, err := domain.NewTask(c.idGen(), composing.Draft, now)
	if err != nil {
		c.logger.Debug("add ignored", "reason", err)
		return domain.Task{}, false
	}
	if domain.IndexOf(c.tasks, task.ID) >= 0 {
		c.logger.Info("add ignored", "reason", "duplicate id", "task_id", task.ID)
		return domain.Task{}, false
	}

	c.tasks = append(c.tasks, task)
	c.fade[task.ID] = anim.NewScalar(1)
	scale := anim.NewScalar(0)
	scale.AnimateTo(1, c.cfg.AddDuration, c.cfg.AddEasing, now)
	c.scale[task.ID] = scale
	c.mode = Composing{}

	c.logger.Debug("task added", "task_id", task.ID, "created_at", task.CreatedAt, "count", len(c.tasks))
	return task, true
}

// DeleteTask fades the task out; it leaves the list once the fade
// completes in Advance. Deleting again restarts the fade from the
// current opacity.
func (c *Controller) DeleteTask(id string) {
	if domain.IndexOf(c.tasks, id) < 0 {
		return
	}
	fade, ok := c.fade[id]
	if !ok {
		fade = anim.NewScalar(1)
		c.fade[id] = fade
	}
	fade.AnimateTo(0, c.cfg.FadeDuration, c.cfg.FadeEasing, c.clock())
	_, again := c.removing[id]
	c.removing[id] = struct{}{}
	c.logger.Debug("task fading out", "task_id", id, "restarted", again)
}

// ToggleCompletion flips the completed flag of one task.
func (c *Controller) ToggleCompletion(id string) {
	idx := domain.IndexOf(c.tasks, id)
	if idx < 0 {
		return
	}
	c.tasks[idx].ToggleCompleted()
	c.logger.Debug("task toggled", "task_id", id, "completed", c.tasks[idx].Completed)
}

// BeginEdit loads the task text into the draft. Any unsaved draft,
// including one for another task, is discarded.
func (c *Controller) BeginEdit(id string) {
	task, ok := c.Task(id)
	if !ok {
		return
	}
	c.mode = Editing{TaskID: id, Draft: task.Text}
	c.logger.Debug("edit started", "task_id", id)
}

// SaveEdit writes the draft back to the edited task and returns to
// composing. A blank draft is ignored and editing continues.
func (c *Controller) SaveEdit() {
	editing, ok := c.mode.(Editing)
	if !ok {
		return
	}
	idx := domain.IndexOf(c.tasks, editing.TaskID)
	if idx < 0 {
		c.mode = Composing{}
		return
	}
	if err := c.tasks[idx].Rename(editing.Draft); err != nil {
		c.logger.Debug("save ignored", "task_id", editing.TaskID, "reason", err)
		return
	}
	c.mode = Composing{}
	c.logger.Debug("edit saved", "task_id", editing.TaskID)
}

// CancelEdit abandons the current edit and clears the draft.
func (c *Controller) CancelEdit() {
	editing, ok := c.mode.(Editing)
	if !ok {
		return
	}
	c.mode = Composing{}
	c.logger.Debug("edit canceled", "task_id", editing.TaskID)
}

// Animating reports whether any timeline is still in flight.
func (c *Controller) Animating() bool {
	for _, s := range c.scale {
		if s.Active() {
			return true
		}
	}
	for _, s := range c.fade {
		if s.Active() {
			return true
		}
	}
	return false
}

// Advance samples every timeline at now, removes tasks whose fade-out
// has completed, and reports the milestones reached in display order.
func (c *Controller) Advance(now time.Time) []Event {
	var events []Event
	var removed []string
	for _, task := range c.tasks {
		if s, ok := c.scale[task.ID]; ok {
			if _, done := s.Step(now); done {
				delete(c.scale, task.ID)
				events = append(events, Event{Kind: EventAddSettled, TaskID: task.ID, Text: task.Text})
			}
		}
		if f, ok := c.fade[task.ID]; ok {
			_, done := f.Step(now)
			if _, fading := c.removing[task.ID]; fading && done {
				removed = append(removed, task.ID)
			}
		}
	}
	if len(removed) == 0 {
		return events
	}

	for _, id := range removed {
		idx := domain.IndexOf(c.tasks, id)
		task := c.tasks[idx]
		c.tasks = slices.Delete(c.tasks, idx, idx+1)
		delete(c.fade, id)
		delete(c.scale, id)
		delete(c.removing, id)
		if editing, ok := c.mode.(Editing); ok && editing.TaskID == id {
			c.mode = Composing{}
		}
		events = append(events, Event{Kind: EventTaskRemoved, TaskID: id, Text: task.Text})
		c.logger.Debug("task removed", "task_id", id, "count", len(c.tasks))
	}
	return events
}

// Render builds the view-facing snapshot of the controller.
func (c *Controller) Render() RenderModel {
	rows := make([]Row, 0, len(c.tasks))
	for _, task := range c.tasks {
		row := Row{
			ID:        task.ID,
			Text:      task.Text,
			Completed: task.Completed,
			Opacity:   1,
			Scale:     1,
			Removing:  c.Removing(task.ID),
		}
		if f, ok := c.fade[task.ID]; ok {
			row.Opacity = f.Value()
		}
		if s, ok := c.scale[task.ID]; ok {
			row.Scale = s.Value()
		}
		rows = append(rows, row)
	}

	out := RenderModel{
		Rows:        rows,
		Draft:       c.Draft(),
		Mode:        KindOf(c.mode),
		ButtonLabel: ButtonLabelAdd,
	}
	if editing, ok := c.mode.(Editing); ok {
		out.EditingID = editing.TaskID
		out.ButtonLabel = ButtonLabelSave
	}
	return out
}
