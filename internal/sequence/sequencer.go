package sequence

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PlayerState enumerates sequencer states.
type PlayerState string

const (
	Stopped PlayerState = "stopped"
	Playing PlayerState = "playing"
	Paused  PlayerState = "paused"
)

// EventType tags sequencer notifications.
type EventType string

const (
	EventPlay         EventType = "play"
	EventPause        EventType = "pause"
	EventStop         EventType = "stop"
	EventLoop         EventType = "loop"
	EventComplete     EventType = "complete"
	EventUpdate       EventType = "update"
	EventSpeedChanged EventType = "speedChanged"
	EventSeek         EventType = "seek"
)

// Frame is the resolved output of one Update tick: every track's property
// bag evaluated at the current progress.
type Frame struct {
	Sequence *Sequence
	Progress float64
	Tracks   map[string]PropBag
}

// Event is delivered to subscribers on every state change and tick.
// Frame is non-nil only for EventUpdate.
type Event struct {
	Type     EventType
	Sequence *Sequence
	Progress float64
	Speed    float64
	Frame    *Frame
}

// Sequencer owns a catalog of sequences and a wall-clock-driven playback
// cursor over the selected one. It is single-threaded by contract: all
// methods are called from one frame loop.
//
// Time accounting: `played` accumulates sequence-seconds completed before
// the current anchor; while Playing, elapsed = played + (now-anchor)*speed.
// Pause folds the in-flight span into `played` and Play/Seek/SetSpeed
// re-anchor, so pausing and resuming never jumps progress.
type Sequencer struct {
	catalog map[string]*Sequence

	state    PlayerState
	current  *Sequence
	speed    float64
	played   float64 // sequence-seconds accumulated up to anchor
	anchor   time.Time
	progress float64

	listeners map[uuid.UUID]func(Event)
	now       func() time.Time
	log       zerolog.Logger
}

// NewSequencer returns an empty, stopped sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{
		catalog:   map[string]*Sequence{},
		state:     Stopped,
		speed:     1.0,
		listeners: map[uuid.UUID]func(Event){},
		now:       time.Now,
		log:       log.With().Str("component", "sequence").Logger(),
	}
}

// SetLogger replaces the sequencer's logger.
func (s *Sequencer) SetLogger(l zerolog.Logger) { s.log = l }

// SetClock overrides the time source; tests use a fake clock.
func (s *Sequencer) SetClock(now func() time.Time) { s.now = now }

// Add registers a sequence. Its id must be non-empty and its duration
// non-negative.
func (s *Sequencer) Add(seq *Sequence) error {
	if seq == nil || seq.ID == "" {
		return errors.New("sequence must have an id")
	}
	if seq.Duration < 0 {
		return errors.New("sequence duration must be >= 0")
	}
	s.catalog[seq.ID] = seq
	return nil
}

// Remove drops a sequence from the catalog. Removing the current sequence
// stops playback first.
func (s *Sequencer) Remove(id string) bool {
	seq, ok := s.catalog[id]
	if !ok {
		return false
	}
	if s.current == seq {
		s.Stop()
		s.current = nil
	}
	delete(s.catalog, id)
	return true
}

// Get looks a sequence up by id.
func (s *Sequencer) Get(id string) (*Sequence, bool) {
	seq, ok := s.catalog[id]
	return seq, ok
}

// SequenceIDs returns the catalog's ids sorted.
func (s *Sequencer) SequenceIDs() []string {
	out := make([]string, 0, len(s.catalog))
	for id := range s.catalog {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// State returns the playback state.
func (s *Sequencer) State() PlayerState { return s.state }

// Current returns the selected sequence, nil when none.
func (s *Sequencer) Current() *Sequence { return s.current }

// Progress returns the last computed progress in [0,1].
func (s *Sequencer) Progress() float64 { return s.progress }

// Speed returns the playback speed multiplier.
func (s *Sequencer) Speed() float64 { return s.speed }

// Play selects and starts a sequence. With a non-empty id the sequence must
// exist or the call is a logged no-op. An empty id resumes a paused
// sequence, or restarts the current one from the beginning.
func (s *Sequencer) Play(id string) bool {
	if id == "" {
		if s.current == nil {
			s.log.Warn().Msg("play: no sequence selected")
			return false
		}
		if s.state == Paused {
			s.anchor = s.now()
			s.state = Playing
			s.emit(Event{Type: EventPlay, Sequence: s.current, Progress: s.progress, Speed: s.speed})
			return true
		}
		return s.start(s.current)
	}
	seq, ok := s.catalog[id]
	if !ok {
		s.log.Warn().Str("sequence", id).Msg("play: unknown sequence")
		return false
	}
	return s.start(seq)
}

func (s *Sequencer) start(seq *Sequence) bool {
	s.current = seq
	s.played = 0
	s.anchor = s.now()
	s.progress = 0
	s.state = Playing
	if seq.OnStart != nil {
		seq.OnStart()
	}
	s.emit(Event{Type: EventPlay, Sequence: seq, Progress: 0, Speed: s.speed})
	return true
}

// Pause freezes playback, preserving progress.
func (s *Sequencer) Pause() {
	if s.state != Playing {
		return
	}
	s.played += s.now().Sub(s.anchor).Seconds() * s.speed
	s.state = Paused
	s.emit(Event{Type: EventPause, Sequence: s.current, Progress: s.progress, Speed: s.speed})
}

// Stop halts playback and resets progress to 0.
func (s *Sequencer) Stop() {
	if s.state == Stopped && s.progress == 0 {
		return
	}
	s.state = Stopped
	s.played = 0
	s.progress = 0
	s.emit(Event{Type: EventStop, Sequence: s.current, Progress: 0, Speed: s.speed})
}

// SetSpeed sets the playback speed multiplier, clamped to [0.1, 5]. The
// in-flight span is folded first so the new speed applies only forward.
func (s *Sequencer) SetSpeed(v float64) {
	if s.state == Playing {
		now := s.now()
		s.played += now.Sub(s.anchor).Seconds() * s.speed
		s.anchor = now
	}
	if v < 0.1 {
		v = 0.1
	}
	if v > 5 {
		v = 5
	}
	s.speed = v
	s.emit(Event{Type: EventSpeedChanged, Sequence: s.current, Progress: s.progress, Speed: s.speed})
}

// Seek repositions the cursor to the given progress, clamped to [0,1]. The
// anchor is recomputed so the next Update reads back the requested progress.
func (s *Sequencer) Seek(progress float64) {
	if s.current == nil {
		s.log.Warn().Msg("seek: no sequence selected")
		return
	}
	progress = clamp01(progress)
	s.played = progress * s.current.Duration
	s.anchor = s.now()
	s.progress = progress
	s.emit(Event{Type: EventSeek, Sequence: s.current, Progress: progress, Speed: s.speed})
}

// Update advances the cursor and resolves every track at the new progress.
// It is a no-op unless Playing with a selected sequence. On loop wrap one
// EventLoop fires per completed cycle; on non-loop completion progress
// clamps to 1, playback stops, and EventComplete fires without resolving
// tracks for that tick.
func (s *Sequencer) Update() (Frame, bool) {
	if s.state != Playing || s.current == nil {
		return Frame{}, false
	}
	seq := s.current
	now := s.now()
	elapsed := s.played + now.Sub(s.anchor).Seconds()*s.speed

	if seq.Duration <= 0 {
		return s.complete(seq)
	}

	progress := elapsed / seq.Duration
	if progress >= 1 {
		if !seq.Loop {
			return s.complete(seq)
		}
		wraps := int(progress)
		s.played = math.Mod(elapsed, seq.Duration)
		s.anchor = now
		progress = s.played / seq.Duration
		for i := 0; i < wraps; i++ {
			s.emit(Event{Type: EventLoop, Sequence: seq, Progress: progress, Speed: s.speed})
		}
	}

	s.progress = progress
	t := progress * seq.Duration
	frame := Frame{
		Sequence: seq,
		Progress: progress,
		Tracks:   make(map[string]PropBag, len(seq.Tracks)),
	}
	for _, tr := range seq.Tracks {
		frame.Tracks[tr.ID] = tr.Resolve(t)
	}
	if seq.OnUpdate != nil {
		seq.OnUpdate(progress)
	}
	s.emit(Event{Type: EventUpdate, Sequence: seq, Progress: progress, Speed: s.speed, Frame: &frame})
	return frame, true
}

func (s *Sequencer) complete(seq *Sequence) (Frame, bool) {
	s.progress = 1
	s.played = seq.Duration
	s.state = Stopped
	if seq.OnComplete != nil {
		seq.OnComplete()
	}
	s.emit(Event{Type: EventComplete, Sequence: seq, Progress: 1, Speed: s.speed})
	return Frame{}, false
}

// Subscribe registers an event listener and returns its handle.
func (s *Sequencer) Subscribe(fn func(Event)) uuid.UUID {
	id := uuid.New()
	s.listeners[id] = fn
	return id
}

// Unsubscribe removes a listener by handle.
func (s *Sequencer) Unsubscribe(id uuid.UUID) { delete(s.listeners, id) }

// emit fans an event out to a snapshot of the listener set, isolating each
// callback so a panicking subscriber cannot break the tick.
func (s *Sequencer) emit(ev Event) {
	if len(s.listeners) == 0 {
		return
	}
	handles := make([]uuid.UUID, 0, len(s.listeners))
	fns := make([]func(Event), 0, len(s.listeners))
	for h, fn := range s.listeners {
		handles = append(handles, h)
		fns = append(fns, fn)
	}
	for i, fn := range fns {
		s.deliver(handles[i], fn, ev)
	}
}

func (s *Sequencer) deliver(h uuid.UUID, fn func(Event), ev Event) {
	defer func() {
		if p := recover(); p != nil {
			s.log.Error().Str("listener", h.String()).Interface("panic", p).Msg("sequence listener panicked")
		}
	}()
	fn(ev)
}
