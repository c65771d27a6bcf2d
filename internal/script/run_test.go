package script

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/evanschultz/jot/internal/anim"
	"github.com/evanschultz/jot/internal/app"
)

var replayStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func linearConfig() app.ControllerConfig {
	return app.ControllerConfig{
		AddDuration:  300 * time.Millisecond,
		AddEasing:    anim.Linear,
		FadeDuration: 300 * time.Millisecond,
		FadeEasing:   anim.Linear,
	}
}

func replay(t *testing.T, src string) Result {
	t.Helper()
	steps, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	res, err := NewRunner(replayStart, linearConfig()).Run(context.Background(), steps)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return res
}

// TestRunBuyMilk verifies add, settle, toggle, delete and fade-out end to end.
func TestRunBuyMilk(t *testing.T) {
	res := replay(t, `
add Buy milk
settle
toggle 1
delete 1
wait 150ms
wait 150ms
`)
	if len(res.Final.Rows) != 0 {
		t.Fatalf("expected empty list, got %#v", res.Final.Rows)
	}
	if len(res.Entries) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(res.Entries))
	}

	added := res.Entries[0]
	if added.Tasks != 1 || added.Mode != app.ModeComposing {
		t.Fatalf("unexpected add entry %#v", added)
	}
	settled := res.Entries[1]
	if len(settled.Events) != 1 || settled.Events[0].Kind != app.EventAddSettled || settled.Events[0].Text != "Buy milk" {
		t.Fatalf("unexpected settle events %#v", settled.Events)
	}
	half := res.Entries[4]
	if half.Tasks != 1 || len(half.Events) != 0 {
		t.Fatalf("task removed before its fade finished: %#v", half)
	}
	gone := res.Entries[5]
	if gone.Tasks != 0 || len(gone.Events) != 1 || gone.Events[0].Kind != app.EventTaskRemoved {
		t.Fatalf("unexpected removal entry %#v", gone)
	}
	if gone.Events[0].TaskID != "t-000001" {
		t.Fatalf("expected sequential id, got %q", gone.Events[0].TaskID)
	}
}

// TestRunEditFlow verifies edit by row number and save by submit.
func TestRunEditFlow(t *testing.T) {
	res := replay(t, `
add first
add second
edit 2
draft  second, revised 
submit
settle
`)
	rows := res.Final.Rows
	if len(rows) != 2 || rows[1].Text != "second, revised" || rows[1].ID != "t-000002" {
		t.Fatalf("unexpected rows %#v", rows)
	}
	if res.Final.Mode != app.ModeComposing || res.Final.ButtonLabel != app.ButtonLabelAdd {
		t.Fatalf("expected composing with %q, got %#v", app.ButtonLabelAdd, res.Final)
	}
	if res.Entries[2].Mode != app.ModeEditing {
		t.Fatalf("expected editing after edit step, got %q", res.Entries[2].Mode)
	}
}

// TestRunLiteralIDs verifies refs that are not row numbers pass through as ids.
func TestRunLiteralIDs(t *testing.T) {
	res := replay(t, `
add one
toggle t-000001
toggle missing
`)
	if !res.Final.Rows[0].Completed {
		t.Fatalf("expected task toggled by id, got %#v", res.Final.Rows[0])
	}
}

// TestRunSettleAdvancesClock verifies settle moves the virtual clock past the animation.
func TestRunSettleAdvancesClock(t *testing.T) {
	res := replay(t, "add a\nadd b\nsettle\nsettle\n")
	if res.Elapsed < 300*time.Millisecond {
		t.Fatalf("expected elapsed >= 300ms, got %s", res.Elapsed)
	}
	if len(res.Entries[2].Events) != 2 {
		t.Fatalf("expected both adds to settle, got %#v", res.Entries[2].Events)
	}
	if len(res.Entries[3].Events) != 0 || res.Entries[3].At != res.Entries[2].At {
		t.Fatalf("idle settle should not move the clock: %#v", res.Entries[3])
	}
	for _, row := range res.Final.Rows {
		if row.Scale != 1 || row.Opacity != 1 {
			t.Fatalf("expected settled row, got %#v", row)
		}
	}
}

// TestRunRowOutOfRange verifies numeric refs past the list fail with the step line.
func TestRunRowOutOfRange(t *testing.T) {
	steps, err := Parse(strings.NewReader("add a\ndelete 3"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	_, err = NewRunner(replayStart, linearConfig()).Run(context.Background(), steps)
	if !errors.Is(err, ErrUnknownRef) {
		t.Fatalf("expected ErrUnknownRef, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line number in %q", err)
	}
}

// TestRunHonorsCanceledContext verifies a canceled context stops replay.
func TestRunHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(replayStart, linearConfig()).Run(ctx, []Step{{Line: 1, Op: OpSettle}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
