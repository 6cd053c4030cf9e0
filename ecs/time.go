package ecs

import "time"

// Time is a resource tracking frame timing. The scheduler advances it once
// per frame when it has been added to the world. Scaled values apply the
// time scale factor (for slow motion or pause); real values always reflect
// wall-clock durations. The zero value has scale 1.
type Time struct {
	delta     time.Duration
	realDelta time.Duration
	total     time.Duration
	realTotal time.Duration
	scale     float64
	scaleSet  bool
}

// NewTime creates a Time resource with scale 1.
func NewTime() Time {
	return Time{}
}

// Advance records a new frame's real elapsed duration, updating scaled and
// accumulated values.
func (t *Time) Advance(real time.Duration) {
	t.realDelta = real
	t.delta = time.Duration(float64(real) * t.Scale())
	t.realTotal += t.realDelta
	t.total += t.delta
}

// Delta returns the scaled duration of the last frame.
func (t *Time) Delta() time.Duration { return t.delta }

// DeltaSeconds returns the scaled duration of the last frame in seconds.
func (t *Time) DeltaSeconds() float64 { return t.delta.Seconds() }

// RealDelta returns the wall-clock duration of the last frame.
func (t *Time) RealDelta() time.Duration { return t.realDelta }

// Total returns the scaled time accumulated since the start.
func (t *Time) Total() time.Duration { return t.total }

// RealTotal returns the wall-clock time accumulated since the start.
func (t *Time) RealTotal() time.Duration { return t.realTotal }

// Scale returns the current time scale factor.
func (t *Time) Scale() float64 {
	if !t.scaleSet {
		return 1
	}
	return t.scale
}

// SetScale sets the time scale factor. Zero pauses scaled time. Negative or
// non-finite scales are rejected by panic.
func (t *Time) SetScale(scale float64) {
	if scale < 0 || scale != scale || scale > 1e308 {
		panic("ecs: time scale must be finite and non-negative")
	}
	t.scale = scale
	t.scaleSet = true
}
