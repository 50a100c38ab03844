package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/lumenshow/internal/app"
	"github.com/example/lumenshow/internal/config"
	"github.com/example/lumenshow/internal/effects"
	"github.com/example/lumenshow/internal/perf"
	"github.com/example/lumenshow/internal/scene"
	"github.com/example/lumenshow/internal/scene/fake"
	"github.com/example/lumenshow/internal/sequence"
	"github.com/example/lumenshow/internal/ws"
)

func main() {
	// ---- Flags (config.yaml can override most) ----
	var (
		fps        = flag.Int("fps", 60, "target frames per second")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		configPath = flag.String("config", "config.yaml", "path to config.yaml")
		autoplay   = flag.String("play", "", "sequence id to start at boot")
		preset     = flag.String("preset", "", "effect preset YAML, loaded at boot and saved at shutdown")
		intensity  = flag.Float64("intensity", 1.0, "global effect intensity 0..2")
		particles  = flag.Int("particles", 10000, "full-quality particle budget")
		quiet      = flag.Bool("quiet", false, "suppress per-frame console output")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	// ---- Effective settings: flags as the base, config.yaml overrides ----
	cfg := config.Default()
	cfg.FPS = *fps
	cfg.ListenAddr = *addr
	cfg.Autoplay = *autoplay
	cfg.PresetPath = *preset
	cfg.GlobalIntensity = *intensity
	cfg.BaseParticles = *particles
	if c, err := config.Load(*configPath); err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
	} else {
		if c.FPS > 0 {
			cfg.FPS = c.FPS
		}
		if c.ListenAddr != "" {
			cfg.ListenAddr = c.ListenAddr
		}
		if c.GlobalIntensity > 0 {
			cfg.GlobalIntensity = c.GlobalIntensity
		}
		if c.BaseParticles > 0 {
			cfg.BaseParticles = c.BaseParticles
		}
		if c.Autoplay != "" {
			cfg.Autoplay = c.Autoplay
		}
		if c.CatalogPath != "" {
			cfg.CatalogPath = c.CatalogPath
		}
		if c.PresetPath != "" {
			cfg.PresetPath = c.PresetPath
		}
		if len(c.Effects) > 0 {
			cfg.Effects = c.Effects
		}
		if len(c.SequenceFiles) > 0 {
			cfg.SequenceFiles = c.SequenceFiles
		}
		if c.Perf.FloorFPS > 0 {
			cfg.Perf.FloorFPS = c.Perf.FloorFPS
		}
		if c.Perf.CeilingFPS > 0 {
			cfg.Perf.CeilingFPS = c.Perf.CeilingFPS
		}
		if c.Perf.Window > 0 {
			cfg.Perf.Window = c.Perf.Window
		}
	}

	// ---- Effect catalog ----
	catalog := effects.BuiltinCatalog()
	if cfg.CatalogPath != "" {
		extra, err := effects.LoadCatalog(cfg.CatalogPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.CatalogPath).Msg("catalog load failed")
		} else {
			catalog = append(catalog, extra...)
		}
	}
	reg := effects.NewRegistry(catalog)
	reg.SetGlobalIntensity(cfg.GlobalIntensity)
	// A preset establishes the active set first; boot effects layer on top.
	if cfg.PresetPath != "" {
		if p, err := effects.LoadConfig(cfg.PresetPath); err != nil {
			log.Warn().Err(err).Str("path", cfg.PresetPath).Msg("preset load failed")
		} else {
			reg.ImportConfig(p)
		}
	}
	for _, id := range cfg.Effects {
		if !reg.Enable(id, 1.0) {
			log.Warn().Str("effect", id).Msg("boot effect not enabled")
		}
	}

	// ---- Sequencer ----
	seq := sequence.NewSequencer()
	for _, s := range sequence.BuiltinSequences() {
		if err := seq.Add(s); err != nil {
			log.Warn().Err(err).Str("sequence", s.ID).Msg("builtin sequence rejected")
		}
	}
	for _, path := range cfg.SequenceFiles {
		s, err := sequence.LoadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("sequence file load failed")
			continue
		}
		if err := seq.Add(s); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("sequence rejected")
		}
	}

	// ---- Optimizer ----
	opt := perf.NewOptimizer(perf.Options{
		FloorFPS:   cfg.Perf.FloorFPS,
		CeilingFPS: cfg.Perf.CeilingFPS,
		Window:     cfg.Perf.Window,
	})

	// ---- Renderer (console stand-in; real scenes attach out of process) ----
	var renderer scene.Renderer
	if !*quiet {
		renderer = fake.NewConsole(os.Stdout)
	}

	// ---- Conductor + status server ----
	cond := app.NewConductor(reg, seq, opt, renderer)
	cond.BaseParticles = cfg.BaseParticles
	state := ws.NewState(cond)
	cond.Publish = state.Publish
	cond.OnDiagnostic = state.PushDiag

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: state.Handler()}
	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Msg("status server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("status server failed")
		}
	}()

	if cfg.Autoplay != "" {
		if !cond.PlaySequence(cfg.Autoplay) {
			log.Warn().Str("sequence", cfg.Autoplay).Msg("autoplay sequence not found")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		cond.Run(ctx, cfg.FPS)
		close(loopDone)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info().Msg("shutting down")
	cancel()
	<-loopDone
	// The frame loop has exited, so the registry is safe to read here.
	if cfg.PresetPath != "" {
		if err := effects.SaveConfig(cfg.PresetPath, reg.ExportConfig()); err != nil {
			log.Warn().Err(err).Str("path", cfg.PresetPath).Msg("preset save failed")
		}
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
