// Package perf derives quality settings from recent frame-rate history.
//
// The optimizer keeps a sliding window of instantaneous FPS samples,
// normalizes the average into a performance level in [0,1] between a
// configured floor and ceiling, and maps that level onto concrete knobs:
// particle-count multiplier, LOD tier, shadow quality, render scale, and a
// skip-expensive-work flag. The level is a raw linear normalization, not a
// smoothed signal; callers wanting hysteresis should filter it themselves.
package perf

import "math"

// ShadowQuality is the discrete shadow tier handed to the renderer.
type ShadowQuality string

const (
	ShadowNone   ShadowQuality = "none"
	ShadowLow    ShadowQuality = "low"
	ShadowMedium ShadowQuality = "medium"
	ShadowHigh   ShadowQuality = "high"
)

const defaultWindow = 60

// Options configures the optimizer's normalization band.
type Options struct {
	FloorFPS   float64 // level 0 at or below this average
	CeilingFPS float64 // level 1 at or above this average
	Window     int     // sample window capacity
}

// DefaultOptions targets 60 FPS with degradation starting below it and
// bottoming out at 30.
func DefaultOptions() Options {
	return Options{FloorFPS: 30, CeilingFPS: 60, Window: defaultWindow}
}

// Optimizer holds the FPS sample window. It performs no I/O and has no
// internal goroutines; RecordFrame is called once per frame by the loop
// that owns it.
type Optimizer struct {
	samples []float64 // ring buffer of instantaneous FPS
	head    int
	count   int
	opts    Options
}

// NewOptimizer builds an optimizer; zero-valued options fall back to
// defaults.
func NewOptimizer(opts Options) *Optimizer {
	def := DefaultOptions()
	if opts.FloorFPS <= 0 {
		opts.FloorFPS = def.FloorFPS
	}
	if opts.CeilingFPS <= opts.FloorFPS {
		opts.CeilingFPS = def.CeilingFPS
	}
	if opts.Window <= 0 {
		opts.Window = def.Window
	}
	return &Optimizer{samples: make([]float64, opts.Window), opts: opts}
}

// RecordFrame pushes one frame's instantaneous FPS (1/dt) into the window,
// evicting the oldest sample when full. Non-positive dt is ignored.
func (o *Optimizer) RecordFrame(dt float64) {
	if dt <= 0 {
		return
	}
	o.samples[o.head] = 1.0 / dt
	o.head = (o.head + 1) % len(o.samples)
	if o.count < len(o.samples) {
		o.count++
	}
}

// AverageFPS is the arithmetic mean of the window. An empty window reports
// the ceiling so nothing downgrades before real data arrives.
func (o *Optimizer) AverageFPS() float64 {
	if o.count == 0 {
		return o.opts.CeilingFPS
	}
	sum := 0.0
	for i := 0; i < o.count; i++ {
		sum += o.samples[i]
	}
	return sum / float64(o.count)
}

// Level normalizes the average FPS into [0,1] between floor and ceiling.
func (o *Optimizer) Level() float64 {
	lvl := (o.AverageFPS() - o.opts.FloorFPS) / (o.opts.CeilingFPS - o.opts.FloorFPS)
	if lvl < 0 {
		return 0
	}
	if lvl > 1 {
		return 1
	}
	return lvl
}

// AdjustParticleCount scales a requested particle budget by the current
// level tier: 25%, 50%, 75%, or the full request.
func (o *Optimizer) AdjustParticleCount(requested int) int {
	lvl := o.Level()
	switch {
	case lvl < 0.3:
		return int(math.Floor(float64(requested) * 0.25))
	case lvl < 0.6:
		return int(math.Floor(float64(requested) * 0.5))
	case lvl < 0.8:
		return int(math.Floor(float64(requested) * 0.75))
	default:
		return requested
	}
}

// AdjustDelta clamps a frame delta to at most 1/30 s so a hitch cannot feed
// a runaway step into simulation code. This is a stability guard, not a
// quality knob.
func (o *Optimizer) AdjustDelta(dt float64) float64 {
	const maxDT = 1.0 / 30.0
	if dt > maxDT {
		return maxDT
	}
	return dt
}

// RecommendedLOD returns a detail tier: 0 is highest detail, 3 lowest.
func (o *Optimizer) RecommendedLOD() int {
	lvl := o.Level()
	switch {
	case lvl < 0.3:
		return 3
	case lvl < 0.6:
		return 2
	case lvl < 0.8:
		return 1
	default:
		return 0
	}
}

// SkipExpensive reports whether optional heavy work should be skipped this
// frame.
func (o *Optimizer) SkipExpensive() bool { return o.Level() < 0.4 }

// RenderScale returns the render-resolution multiplier.
func (o *Optimizer) RenderScale() float64 {
	lvl := o.Level()
	switch {
	case lvl < 0.3:
		return 0.5
	case lvl < 0.6:
		return 0.75
	default:
		return 1.0
	}
}

// Shadows returns the shadow-quality tier.
func (o *Optimizer) Shadows() ShadowQuality {
	lvl := o.Level()
	switch {
	case lvl < 0.3:
		return ShadowNone
	case lvl < 0.5:
		return ShadowLow
	case lvl < 0.8:
		return ShadowMedium
	default:
		return ShadowHigh
	}
}

// Reset clears the sample window, used on scene transitions so stale
// measurements do not bias the next scene's first decisions.
func (o *Optimizer) Reset() {
	o.head = 0
	o.count = 0
}

// Stats is an aggregate snapshot for diagnostics surfaces.
type Stats struct {
	Samples       int           `json:"samples"`
	AverageFPS    float64       `json:"averageFPS"`
	MinFPS        float64       `json:"minFPS"`
	MaxFPS        float64       `json:"maxFPS"`
	Level         float64       `json:"level"`
	LOD           int           `json:"lod"`
	RenderScale   float64       `json:"renderScale"`
	ShadowQuality ShadowQuality `json:"shadowQuality"`
	SkipExpensive bool          `json:"skipExpensive"`
}

// GetStats snapshots the current window and derived settings.
func (o *Optimizer) GetStats() Stats {
	st := Stats{
		Samples:       o.count,
		AverageFPS:    o.AverageFPS(),
		Level:         o.Level(),
		LOD:           o.RecommendedLOD(),
		RenderScale:   o.RenderScale(),
		ShadowQuality: o.Shadows(),
		SkipExpensive: o.SkipExpensive(),
	}
	for i := 0; i < o.count; i++ {
		v := o.samples[i]
		if i == 0 || v < st.MinFPS {
			st.MinFPS = v
		}
		if v > st.MaxFPS {
			st.MaxFPS = v
		}
	}
	return st
}
