package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/lumenshow/internal/diagnostics"
	"github.com/example/lumenshow/internal/effects"
	"github.com/example/lumenshow/internal/perf"
	"github.com/example/lumenshow/internal/scene"
	"github.com/example/lumenshow/internal/sequence"
)

// Conductor owns the frame loop: every tick it records the frame time,
// advances the sequencer, and hands the combined outputs of the three cores
// to the renderer as one scene.Frame.
//
// All three cores are mutated only on the conductor's goroutine. External
// surfaces (the status server's control endpoints) submit mutations through
// Enqueue; they are drained at the top of the next tick.
type Conductor struct {
	Effects  *effects.Registry
	Seq      *sequence.Sequencer
	Perf     *perf.Optimizer
	Renderer scene.Renderer

	// BaseParticles is the full-quality particle budget the optimizer
	// scales down from.
	BaseParticles int

	// Publish, when set, receives each rendered frame and the optimizer
	// snapshot after the tick completes.
	Publish func(scene.Frame, perf.Stats)

	// OnDiagnostic, when set, receives quality-tier change records.
	OnDiagnostic func(diagnostics.Diagnostic)

	cmds    chan func()
	clock   float64
	lastLOD int
	log     zerolog.Logger
}

// NewConductor wires the three cores to a renderer.
func NewConductor(reg *effects.Registry, seq *sequence.Sequencer, opt *perf.Optimizer, r scene.Renderer) *Conductor {
	return &Conductor{
		Effects:       reg,
		Seq:           seq,
		Perf:          opt,
		Renderer:      r,
		BaseParticles: 10000,
		cmds:          make(chan func(), 64),
		log:           log.With().Str("component", "conductor").Logger(),
	}
}

// Enqueue schedules fn to run on the conductor goroutine before the next
// frame. It drops the command and returns false if the queue is full.
func (c *Conductor) Enqueue(fn func()) bool {
	select {
	case c.cmds <- fn:
		return true
	default:
		c.log.Warn().Msg("command queue full, dropping command")
		return false
	}
}

// Step executes one cooperative tick with the given raw frame delta.
func (c *Conductor) Step(dt float64) (scene.Frame, error) {
	c.drain()

	c.Perf.RecordFrame(dt)
	adjusted := c.Perf.AdjustDelta(dt)
	c.clock += adjusted

	seqFrame, playing := c.Seq.Update()

	f := scene.Frame{
		Time:            c.clock,
		Delta:           adjusted,
		Effects:         c.Effects.ActiveEffects(),
		GlobalIntensity: c.Effects.GlobalIntensity(),
		ParticleBudget:  c.Perf.AdjustParticleCount(c.BaseParticles),
		LOD:             c.Perf.RecommendedLOD(),
		RenderScale:     c.Perf.RenderScale(),
		Shadows:         c.Perf.Shadows(),
		SkipExpensive:   c.Perf.SkipExpensive(),
	}
	if playing {
		f.SequenceID = seqFrame.Sequence.ID
		f.Progress = seqFrame.Progress
		f.Tracks = seqFrame.Tracks
	} else if cur := c.Seq.Current(); cur != nil {
		f.SequenceID = cur.ID
		f.Progress = c.Seq.Progress()
	}

	c.noteQualityShift(f.LOD)

	var err error
	if c.Renderer != nil {
		err = c.Renderer.RenderFrame(f)
	}
	if c.Publish != nil {
		c.Publish(f, c.Perf.GetStats())
	}
	return f, err
}

// Run drives Step from a ticker until the context is canceled. Frame deltas
// are measured from the wall clock so the optimizer sees real frame cost,
// not the nominal tick interval.
func (c *Conductor) Run(ctx context.Context, fps int) {
	if fps <= 0 {
		fps = 60
	}
	tick := time.NewTicker(time.Second / time.Duration(fps))
	defer tick.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			dt := now.Sub(last).Seconds()
			last = now
			if _, err := c.Step(dt); err != nil {
				c.log.Error().Err(err).Msg("render frame failed")
			}
		}
	}
}

// PlaySequence resets the optimizer window alongside the sequence change so
// the new scene starts from a clean measurement.
func (c *Conductor) PlaySequence(id string) bool {
	if !c.Seq.Play(id) {
		return false
	}
	c.Perf.Reset()
	return true
}

func (c *Conductor) drain() {
	for {
		select {
		case fn := <-c.cmds:
			fn()
		default:
			return
		}
	}
}

func (c *Conductor) noteQualityShift(lod int) {
	if lod == c.lastLOD {
		return
	}
	st := c.Perf.GetStats()
	if lod > c.lastLOD {
		c.log.Warn().Int("lod", lod).Float64("avg_fps", st.AverageFPS).Msg("quality degraded")
		if c.OnDiagnostic != nil {
			c.OnDiagnostic(diagnostics.PerfDegraded(st.Level, lod, st.AverageFPS))
		}
	} else {
		c.log.Info().Int("lod", lod).Float64("avg_fps", st.AverageFPS).Msg("quality recovered")
		if c.OnDiagnostic != nil {
			c.OnDiagnostic(diagnostics.PerfRecovered(st.Level, lod, st.AverageFPS))
		}
	}
	c.lastLOD = lod
}
