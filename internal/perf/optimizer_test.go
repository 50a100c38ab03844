package perf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fill replaces the window contents with frames at the given FPS.
func fill(o *Optimizer, fps float64, frames int) {
	for i := 0; i < frames; i++ {
		o.RecordFrame(1.0 / fps)
	}
}

func TestEmptyWindowIsOptimistic(t *testing.T) {
	o := NewOptimizer(DefaultOptions())
	assert.Equal(t, 60.0, o.AverageFPS(), "empty window reads the ceiling")
	assert.Equal(t, 1.0, o.Level())
	assert.Equal(t, 0, o.RecommendedLOD())
	assert.False(t, o.SkipExpensive())
}

func TestRingBufferBound(t *testing.T) {
	o := NewOptimizer(DefaultOptions())
	fill(o, 60, 100)
	assert.LessOrEqual(t, o.GetStats().Samples, 60)

	// Oldest samples are evicted: 60 slow frames after 100 fast ones leave
	// only slow frames in the window.
	fill(o, 15, 60)
	assert.InDelta(t, 15.0, o.AverageFPS(), 0.01)
}

func TestLevelNormalization(t *testing.T) {
	o := NewOptimizer(DefaultOptions())
	fill(o, 45, 60)
	assert.InDelta(t, 0.5, o.Level(), 0.01, "45 FPS sits halfway between 30 and 60")

	o.Reset()
	fill(o, 20, 60)
	assert.Equal(t, 0.0, o.Level(), "below the floor clamps to 0")

	o.Reset()
	fill(o, 120, 60)
	assert.Equal(t, 1.0, o.Level(), "above the ceiling clamps to 1")
}

func TestLevelAndParticlesMonotone(t *testing.T) {
	o := NewOptimizer(DefaultOptions())
	prevLevel := -1.0
	prevCount := -1
	for _, fps := range []float64{20, 30, 45, 60} {
		o.Reset()
		fill(o, fps, 60)
		lvl := o.Level()
		count := o.AdjustParticleCount(10000)
		assert.GreaterOrEqual(t, lvl, prevLevel)
		assert.GreaterOrEqual(t, lvl, 0.0)
		assert.LessOrEqual(t, lvl, 1.0)
		assert.GreaterOrEqual(t, count, prevCount)
		assert.LessOrEqual(t, count, 10000)
		prevLevel, prevCount = lvl, count
	}
}

func TestParticleTiers(t *testing.T) {
	o := NewOptimizer(DefaultOptions())
	cases := []struct {
		fps  float64
		want int
	}{
		{20, 2500},  // level 0    -> 25%
		{40, 5000},  // level 0.33 -> 50%
		{51, 7500},  // level 0.7  -> 75%
		{60, 10000}, // level 1    -> 100%
	}
	for _, c := range cases {
		o.Reset()
		fill(o, c.fps, 60)
		assert.Equal(t, c.want, o.AdjustParticleCount(10000), "fps=%v", c.fps)
	}
}

func TestAdjustDeltaClamp(t *testing.T) {
	o := NewOptimizer(DefaultOptions())
	assert.InDelta(t, 1.0/60.0, o.AdjustDelta(1.0/60.0), 1e-12, "normal deltas pass through")
	assert.InDelta(t, 1.0/30.0, o.AdjustDelta(0.5), 1e-12, "hitches clamp to 1/30")
}

func TestQualityTiers(t *testing.T) {
	o := NewOptimizer(DefaultOptions())
	cases := []struct {
		fps    float64
		lod    int
		scale  float64
		shadow ShadowQuality
		skip   bool
	}{
		{20, 3, 0.5, ShadowNone, true},        // level 0
		{43.5, 2, 0.75, ShadowLow, false},     // level 0.45
		{52.5, 1, 1.0, ShadowMedium, false},   // level 0.75
		{58.5, 0, 1.0, ShadowHigh, false},     // level 0.95
	}
	for _, c := range cases {
		o.Reset()
		fill(o, c.fps, 60)
		assert.Equal(t, c.lod, o.RecommendedLOD(), "lod at fps=%v", c.fps)
		assert.Equal(t, c.scale, o.RenderScale(), "scale at fps=%v", c.fps)
		assert.Equal(t, c.shadow, o.Shadows(), "shadow at fps=%v", c.fps)
		assert.Equal(t, c.skip, o.SkipExpensive(), "skip at fps=%v", c.fps)
	}
}

func TestFifteenFPSScenario(t *testing.T) {
	o := NewOptimizer(DefaultOptions())
	fill(o, 15, 60)
	assert.InDelta(t, 15.0, o.AverageFPS(), 0.01)
	assert.Equal(t, 0.0, o.Level())
	assert.Equal(t, ShadowNone, o.Shadows())
}

func TestResetClearsWindow(t *testing.T) {
	o := NewOptimizer(DefaultOptions())
	fill(o, 15, 30)
	o.Reset()
	assert.Equal(t, 0, o.GetStats().Samples)
	assert.Equal(t, 60.0, o.AverageFPS())
}

func TestStatsSnapshot(t *testing.T) {
	o := NewOptimizer(DefaultOptions())
	o.RecordFrame(1.0 / 30.0)
	o.RecordFrame(1.0 / 60.0)
	st := o.GetStats()
	assert.Equal(t, 2, st.Samples)
	assert.InDelta(t, 45.0, st.AverageFPS, 0.01)
	assert.InDelta(t, 30.0, st.MinFPS, 0.01)
	assert.InDelta(t, 60.0, st.MaxFPS, 0.01)
	assert.InDelta(t, 0.5, st.Level, 0.01)
}

func TestNonPositiveDeltaIgnored(t *testing.T) {
	o := NewOptimizer(DefaultOptions())
	o.RecordFrame(0)
	o.RecordFrame(-1)
	assert.Equal(t, 0, o.GetStats().Samples)
}
