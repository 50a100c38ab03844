// seqsim plays a sequence offline at a fixed tick rate and prints the
// resolved track values, for authoring timelines without a renderer.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/lumenshow/internal/app"
	"github.com/example/lumenshow/internal/effects"
	"github.com/example/lumenshow/internal/perf"
	"github.com/example/lumenshow/internal/scene/fake"
	"github.com/example/lumenshow/internal/sequence"
)

func main() {
	var (
		seqPath = flag.String("sequence", "", "path to a sequence YAML (empty: use built-ins)")
		seqID   = flag.String("id", "", "sequence id to play (default: first available)")
		fps     = flag.Int("fps", 30, "simulation frames per second")
		loops   = flag.Int("loops", 1, "stop a looping sequence after this many wraps")
		speed   = flag.Float64("speed", 1.0, "playback speed 0.1..5")
	)
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	seq := sequence.NewSequencer()
	if *seqPath != "" {
		s, err := sequence.LoadFile(*seqPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *seqPath).Msg("sequence load failed")
		}
		if err := seq.Add(s); err != nil {
			log.Fatal().Err(err).Msg("sequence rejected")
		}
		if *seqID == "" {
			*seqID = s.ID
		}
	} else {
		for _, s := range sequence.BuiltinSequences() {
			_ = seq.Add(s)
		}
		if *seqID == "" {
			ids := seq.SequenceIDs()
			if len(ids) == 0 {
				log.Fatal().Msg("no sequences available")
			}
			*seqID = ids[0]
		}
	}

	done := make(chan struct{})
	finish := func() {
		select {
		case <-done:
		default:
			close(done)
		}
	}
	wraps := 0
	seq.Subscribe(func(ev sequence.Event) {
		switch ev.Type {
		case sequence.EventLoop:
			wraps++
			log.Info().Int("wraps", wraps).Msg("loop")
			if wraps >= *loops {
				finish()
			}
		case sequence.EventComplete:
			log.Info().Msg("complete")
			finish()
		}
	})

	reg := effects.NewRegistry(effects.BuiltinCatalog())
	opt := perf.NewOptimizer(perf.DefaultOptions())
	cond := app.NewConductor(reg, seq, opt, fake.NewConsole(os.Stdout))

	seq.SetSpeed(*speed)
	if !cond.PlaySequence(*seqID) {
		log.Fatal().Str("sequence", *seqID).Msg("unknown sequence")
	}

	dt := 1.0 / float64(*fps)
	tick := time.NewTicker(time.Second / time.Duration(*fps))
	defer tick.Stop()
	for {
		select {
		case <-done:
			return
		case <-tick.C:
			if _, err := cond.Step(dt); err != nil {
				log.Error().Err(err).Msg("step failed")
			}
		}
	}
}
