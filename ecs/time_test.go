package ecs_test

import (
	"math"
	"testing"
	"time"

	"github.com/prism-engine/prism/ecs"
	"github.com/stretchr/testify/assert"
)

func TestTimeAdvance(t *testing.T) {
	tm := ecs.NewTime()

	tm.Advance(16 * time.Millisecond)
	tm.Advance(32 * time.Millisecond)

	assert.Equal(t, 32*time.Millisecond, tm.Delta())
	assert.Equal(t, 32*time.Millisecond, tm.RealDelta())
	assert.Equal(t, 48*time.Millisecond, tm.Total())
	assert.Equal(t, 48*time.Millisecond, tm.RealTotal())
	assert.InDelta(t, 0.032, tm.DeltaSeconds(), 1e-9)
}

func TestTimeScale(t *testing.T) {
	var tm ecs.Time
	assert.Equal(t, 1.0, tm.Scale(), "zero value runs at full speed")

	tm.SetScale(0.5)
	tm.Advance(100 * time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, tm.Delta())
	assert.Equal(t, 100*time.Millisecond, tm.RealDelta())

	tm.SetScale(0)
	tm.Advance(100 * time.Millisecond)
	assert.Equal(t, time.Duration(0), tm.Delta(), "zero scale pauses scaled time")
	assert.Equal(t, 50*time.Millisecond, tm.Total())
	assert.Equal(t, 200*time.Millisecond, tm.RealTotal())
}

func TestTimeSetScaleRejectsInvalid(t *testing.T) {
	var tm ecs.Time
	assert.Panics(t, func() { tm.SetScale(-1) })
	assert.Panics(t, func() { tm.SetScale(math.NaN()) })
}
