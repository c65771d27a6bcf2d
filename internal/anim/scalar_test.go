package anim

import (
	"math"
	"testing"
	"time"
)

func TestScalarAnimatesAndFinishesOnce(t *testing.T) {
	start := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	s := NewScalar(1)
	s.AnimateTo(0, 300*time.Millisecond, Linear, start)
	if !s.Active() {
		t.Fatal("expected active timeline")
	}

	v, done := s.Step(start.Add(150 * time.Millisecond))
	if done {
		t.Fatal("expected timeline still running at midpoint")
	}
	if math.Abs(v-0.5) > 1e-9 {
		t.Fatalf("midpoint value = %v, want 0.5", v)
	}

	v, done = s.Step(start.Add(400 * time.Millisecond))
	if !done || v != 0 {
		t.Fatalf("final step = (%v, %t), want (0, true)", v, done)
	}
	if s.Active() {
		t.Fatal("expected timeline cleared after completion")
	}
	if _, done := s.Step(start.Add(time.Second)); done {
		t.Fatal("resting scalar must not report completion again")
	}
}

func TestScalarRetargetContinuesFromCurrentValue(t *testing.T) {
	start := time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)
	s := NewScalar(1)
	s.AnimateTo(0, 100*time.Millisecond, Linear, start)
	s.Step(start.Add(50 * time.Millisecond))

	restart := start.Add(50 * time.Millisecond)
	s.AnimateTo(0, 100*time.Millisecond, Linear, restart)
	v, done := s.Step(restart.Add(50 * time.Millisecond))
	if done {
		t.Fatal("restarted timeline should still be running")
	}
	if math.Abs(v-0.25) > 1e-9 {
		t.Fatalf("value after retarget = %v, want 0.25", v)
	}
}

func TestScalarZeroDurationCompletesImmediately(t *testing.T) {
	now := time.Now()
	s := NewScalar(0)
	s.AnimateTo(1, 0, nil, now)
	v, done := s.Step(now)
	if !done || v != 1 {
		t.Fatalf("zero-duration step = (%v, %t), want (1, true)", v, done)
	}
}

func TestScalarStepBeforeStartHoldsOrigin(t *testing.T) {
	now := time.Now()
	s := NewScalar(0)
	s.AnimateTo(1, time.Second, EaseOut, now)
	if v, done := s.Step(now.Add(-time.Second)); done || v != 0 {
		t.Fatalf("early step = (%v, %t), want (0, false)", v, done)
	}
}
