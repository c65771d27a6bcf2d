package anim

import "time"

// timeline describes one in-flight transition of a Scalar.
type timeline struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	easing   Easing
}

// progress returns eased progress in [0,1] and whether the timeline has ended.
func (tl timeline) progress(now time.Time) (float64, bool) {
	if tl.duration <= 0 {
		return 1, true
	}
	elapsed := now.Sub(tl.start)
	if elapsed >= tl.duration {
		return 1, true
	}
	if elapsed <= 0 {
		return tl.easing(0), false
	}
	return tl.easing(float64(elapsed) / float64(tl.duration)), false
}

// Scalar is a numeric value that can be animated toward a target over time.
// It is sampled explicitly with Step; nothing runs in the background.
type Scalar struct {
	value float64
	tl    *timeline
}

// NewScalar returns a resting scalar holding v.
func NewScalar(v float64) *Scalar {
	return &Scalar{value: v}
}

// Value returns the value as of the most recent Step.
func (s *Scalar) Value() float64 {
	return s.value
}

// Active reports whether a timeline is in flight.
func (s *Scalar) Active() bool {
	return s.tl != nil
}

// AnimateTo starts a timeline from the current value to `to`.
// A timeline already in flight is replaced, continuing from where it was.
func (s *Scalar) AnimateTo(to float64, d time.Duration, easing Easing, now time.Time) {
	if easing == nil {
		easing = Linear
	}
	s.tl = &timeline{
		from:     s.value,
		to:       to,
		start:    now,
		duration: d,
		easing:   easing,
	}
}

// Step samples the timeline at now. finished is true only on the step
// that completes the timeline; later steps on a resting scalar report false.
func (s *Scalar) Step(now time.Time) (value float64, finished bool) {
	if s.tl == nil {
		return s.value, false
	}
	p, done := s.tl.progress(now)
	if done {
		s.value = s.tl.to
		s.tl = nil
		return s.value, true
	}
	s.value = s.tl.from + (s.tl.to-s.tl.from)*p
	return s.value, false
}
