package ecs

import (
	"runtime"
	"time"
)

// FrameRateStrategy selects how FrameRateKeeper waits for the next frame.
type FrameRateStrategy uint8

const (
	// AsFastAsPossible yields once and starts the next frame immediately.
	AsFastAsPossible FrameRateStrategy = iota
	// Precise yields in a loop until the frame duration has elapsed. Most
	// accurate, burns a core.
	Precise
	// EqualOrSlower sleeps for the remaining frame duration. Cheapest,
	// may overshoot by the sleep granularity.
	EqualOrSlower
	// Rough sleeps until UntilLeft remains, then yields like Precise.
	Rough
)

// FrameRateKeeper paces a frame loop to a target frame rate.
type FrameRateKeeper struct {
	// Strategy selects the waiting behavior.
	Strategy FrameRateStrategy
	// UntilLeft is the spin margin used by the Rough strategy.
	UntilLeft time.Duration

	frameStart    time.Time
	frameDuration time.Duration
}

// NewFrameRateKeeper creates a keeper targeting the given frames per second,
// using the Rough strategy with a 1ms spin margin.
func NewFrameRateKeeper(fps int) *FrameRateKeeper {
	k := &FrameRateKeeper{
		Strategy:  Rough,
		UntilLeft: time.Millisecond,
	}
	k.SetFPS(fps)
	k.Reset()
	return k
}

// SetFPS sets the target frame rate.
func (k *FrameRateKeeper) SetFPS(fps int) {
	if fps < 1 {
		fps = 1
	}
	k.frameDuration = time.Second / time.Duration(fps)
}

// FrameDuration returns the target duration of a single frame.
func (k *FrameRateKeeper) FrameDuration() time.Duration {
	return k.frameDuration
}

// Reset marks the start of the current frame.
func (k *FrameRateKeeper) Reset() {
	k.frameStart = time.Now()
}

// WaitNextFrame blocks until the next frame should start, according to the
// configured strategy.
func (k *FrameRateKeeper) WaitNextFrame() {
	switch k.Strategy {
	case AsFastAsPossible:
		runtime.Gosched()
	case Precise:
		k.spinUntilNextFrame()
	case EqualOrSlower:
		k.sleepUntilLeft(0)
	case Rough:
		k.sleepUntilLeft(k.UntilLeft)
		k.spinUntilNextFrame()
	}
}

func (k *FrameRateKeeper) spinUntilNextFrame() {
	runtime.Gosched()
	for time.Since(k.frameStart) < k.frameDuration {
		runtime.Gosched()
	}
}

func (k *FrameRateKeeper) sleepUntilLeft(untilLeft time.Duration) {
	sleepFor := k.frameDuration - untilLeft
	for {
		elapsed := time.Since(k.frameStart)
		if elapsed >= sleepFor {
			return
		}
		time.Sleep(sleepFor - elapsed)
	}
}
