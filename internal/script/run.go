package script

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/evanschultz/jot/internal/app"
)

// settle limits.
const (
	settleFrame     = 16 * time.Millisecond
	maxSettleFrames = 100_000
)

// Runtime errors.
var (
	ErrUnknownRef   = errors.New("unknown task reference")
	ErrNeverSettles = errors.New("animations did not settle")
)

// Entry records the outcome of one replayed step.
type Entry struct {
	Step   Step
	At     time.Duration
	Events []app.Event
	Tasks  int
	Mode   app.ModeKind
}

// Result is the outcome of a replay.
type Result struct {
	Final   app.RenderModel
	Entries []Entry
	Elapsed time.Duration
}

// Runner replays steps against its own controller and virtual clock.
type Runner struct {
	ctrl  *app.Controller
	start time.Time
	now   time.Time
}

// NewRunner builds a runner whose controller issues sequential ids
// ("t-000001", ...) and reads time from the runner's virtual clock.
func NewRunner(start time.Time, cfg app.ControllerConfig, opts ...app.ControllerOption) *Runner {
	r := &Runner{start: start, now: start}
	r.ctrl = app.NewController(app.SequenceIDs("t-"), r.clock, cfg, opts...)
	return r
}

// Controller exposes the controller under replay.
func (r *Runner) Controller() *app.Controller {
	return r.ctrl
}

func (r *Runner) clock() time.Time {
	return r.now
}

// Run executes steps in order and returns the final render model.
func (r *Runner) Run(ctx context.Context, steps []Step) (Result, error) {
	entries := make([]Entry, 0, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		events, err := r.apply(ctx, step)
		if err != nil {
			return Result{}, fmt.Errorf("line %d (%s): %w", step.Line, step.Op, err)
		}
		entries = append(entries, Entry{
			Step:   step,
			At:     r.now.Sub(r.start),
			Events: events,
			Tasks:  len(r.ctrl.Tasks()),
			Mode:   app.KindOf(r.ctrl.Mode()),
		})
	}
	return Result{
		Final:   r.ctrl.Render(),
		Entries: entries,
		Elapsed: r.now.Sub(r.start),
	}, nil
}

func (r *Runner) apply(ctx context.Context, step Step) ([]app.Event, error) {
	switch step.Op {
	case OpDraft:
		r.ctrl.UpdateDraft(step.Arg)
	case OpAdd:
		r.ctrl.UpdateDraft(step.Arg)
		r.ctrl.Submit()
	case OpSubmit:
		r.ctrl.Submit()
	case OpSave:
		r.ctrl.SaveEdit()
	case OpCancel:
		r.ctrl.CancelEdit()
	case OpToggle, OpEdit, OpDelete:
		id, err := r.resolve(step.Arg)
		if err != nil {
			return nil, err
		}
		switch step.Op {
		case OpToggle:
			r.ctrl.ToggleCompletion(id)
		case OpEdit:
			r.ctrl.BeginEdit(id)
		default:
			r.ctrl.DeleteTask(id)
		}
	case OpWait:
		r.now = r.now.Add(step.Wait)
		return r.ctrl.Advance(r.now), nil
	case OpSettle:
		return r.settle(ctx)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
	}
	return nil, nil
}

// resolve maps a 1-based row number or a literal id onto a task id.
// Literal ids pass through unchecked so that stale ids stay no-ops.
func (r *Runner) resolve(ref string) (string, error) {
	n, err := strconv.Atoi(ref)
	if err != nil {
		return ref, nil
	}
	rows := r.ctrl.Render().Rows
	if n < 1 || n > len(rows) {
		return "", fmt.Errorf("%w: row %d of %d", ErrUnknownRef, n, len(rows))
	}
	return rows[n-1].ID, nil
}

// settle advances the clock frame by frame until no timeline is in flight.
func (r *Runner) settle(ctx context.Context) ([]app.Event, error) {
	var events []app.Event
	for range maxSettleFrames {
		if !r.ctrl.Animating() {
			return events, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.now = r.now.Add(settleFrame)
		events = append(events, r.ctrl.Advance(r.now)...)
	}
	return nil, ErrNeverSettles
}
