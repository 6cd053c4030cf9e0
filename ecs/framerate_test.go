package ecs_test

import (
	"testing"
	"time"

	"github.com/prism-engine/prism/ecs"
	"github.com/stretchr/testify/assert"
)

func TestFrameRateKeeperFrameDuration(t *testing.T) {
	keeper := ecs.NewFrameRateKeeper(60)
	assert.Equal(t, time.Second/60, keeper.FrameDuration())
	assert.Equal(t, ecs.Rough, keeper.Strategy)

	keeper.SetFPS(30)
	assert.Equal(t, time.Second/30, keeper.FrameDuration())

	keeper.SetFPS(0)
	assert.Equal(t, time.Second, keeper.FrameDuration(), "fps is clamped to at least 1")
}

func TestFrameRateKeeperWaitsOutTheFrame(t *testing.T) {
	for _, strategy := range []ecs.FrameRateStrategy{ecs.Precise, ecs.EqualOrSlower, ecs.Rough} {
		keeper := ecs.NewFrameRateKeeper(100)
		keeper.Strategy = strategy

		keeper.Reset()
		start := time.Now()
		keeper.WaitNextFrame()
		elapsed := time.Since(start)

		assert.GreaterOrEqual(t, elapsed+time.Millisecond, keeper.FrameDuration(),
			"strategy %d returned too early", strategy)
	}
}

func TestFrameRateKeeperAsFastAsPossible(t *testing.T) {
	keeper := ecs.NewFrameRateKeeper(1)
	keeper.Strategy = ecs.AsFastAsPossible

	keeper.Reset()
	start := time.Now()
	keeper.WaitNextFrame()

	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
