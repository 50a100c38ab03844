package effects

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State is the live record of one enabled effect. Intensity is clamped to
// [0,2]; Params start as a copy of the effect's defaults with overrides
// merged on top. Callers must treat returned States as read-only snapshots.
type State struct {
	Effect    Effect             `json:"effect"`
	Intensity float64            `json:"intensity"`
	Params    map[string]float64 `json:"params"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Listener receives the full active-effect snapshot after every mutation.
type Listener func([]State)

// Registry owns the effect catalog and the set of currently active effects.
// It is an explicitly constructed instance, not package state, and is meant
// to be driven from a single frame loop. Every mutating call fans out one
// synchronous notification to subscribers.
//
// All id-taking operations are soft-failing: unknown or inapplicable ids
// return false and log at warn level, they never panic. This API sits on the
// render hot path.
type Registry struct {
	catalog   map[string]Effect
	active    map[string]*State
	listeners map[uuid.UUID]Listener
	global    float64
	now       func() time.Time
	log       zerolog.Logger
}

// NewRegistry builds a registry over the given catalog. Duplicate ids keep
// the last entry. Global intensity starts at 1.
func NewRegistry(catalog []Effect) *Registry {
	r := &Registry{
		catalog:   make(map[string]Effect, len(catalog)),
		active:    map[string]*State{},
		listeners: map[uuid.UUID]Listener{},
		global:    1.0,
		now:       time.Now,
		log:       log.With().Str("component", "effects").Logger(),
	}
	for _, e := range catalog {
		r.catalog[e.ID] = e
	}
	return r
}

// SetLogger replaces the registry's logger.
func (r *Registry) SetLogger(l zerolog.Logger) { r.log = l }

// Catalog returns the known effects sorted by id.
func (r *Registry) Catalog() []Effect {
	out := make([]Effect, 0, len(r.catalog))
	for _, e := range r.catalog {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Enable activates an effect with the given intensity. It fails without side
// effects if the id is unknown or any dependency is inactive. Effects in the
// new effect's conflict list are disabled first; the cascade is one level
// deep on purpose, conflicts of the disabled effects are not re-examined.
// Subscribers get a single notification covering the whole mutation.
func (r *Registry) Enable(id string, intensity float64) bool {
	eff, ok := r.catalog[id]
	if !ok {
		r.log.Warn().Str("effect", id).Msg("enable: unknown effect")
		return false
	}
	for _, dep := range eff.DependsOn {
		if _, on := r.active[dep]; !on {
			r.log.Warn().Str("effect", id).Str("dependency", dep).Msg("enable: dependency not active")
			return false
		}
	}
	for _, c := range eff.ConflictsWith {
		delete(r.active, c)
	}
	params := make(map[string]float64, len(eff.Defaults))
	for k, v := range eff.Defaults {
		params[k] = v
	}
	r.active[id] = &State{
		Effect:    eff,
		Intensity: clamp(intensity, 0, 2),
		Params:    params,
		UpdatedAt: r.now(),
	}
	r.notify()
	return true
}

// Disable removes an active effect. Returns false if it was not active.
func (r *Registry) Disable(id string) bool {
	if _, on := r.active[id]; !on {
		return false
	}
	delete(r.active, id)
	r.notify()
	return true
}

// Toggle enables the effect if inactive, disables it otherwise.
func (r *Registry) Toggle(id string, intensity float64) bool {
	if _, on := r.active[id]; on {
		return r.Disable(id)
	}
	return r.Enable(id, intensity)
}

// IsActive reports whether the effect is currently enabled.
func (r *Registry) IsActive(id string) bool {
	_, on := r.active[id]
	return on
}

// SetIntensity updates a live effect's intensity, re-clamped to [0,2].
func (r *Registry) SetIntensity(id string, v float64) bool {
	st, on := r.active[id]
	if !on {
		return false
	}
	st.Intensity = clamp(v, 0, 2)
	st.UpdatedAt = r.now()
	r.notify()
	return true
}

// SetParams shallow-merges the given values over the effect's live params.
func (r *Registry) SetParams(id string, partial map[string]float64) bool {
	st, on := r.active[id]
	if !on {
		return false
	}
	for k, v := range partial {
		st.Params[k] = v
	}
	st.UpdatedAt = r.now()
	r.notify()
	return true
}

// SetGlobalIntensity stores the registry-wide multiplier, clamped to [0,2].
func (r *Registry) SetGlobalIntensity(v float64) {
	r.global = clamp(v, 0, 2)
	r.notify()
}

// GlobalIntensity returns the registry-wide multiplier.
func (r *Registry) GlobalIntensity() float64 { return r.global }

// EffectiveIntensity is the one value renderers should read to scale an
// effect's visuals: state intensity times global intensity, 0 when inactive.
func (r *Registry) EffectiveIntensity(id string) float64 {
	st, on := r.active[id]
	if !on {
		return 0
	}
	return st.Intensity * r.global
}

// ActiveEffects returns a snapshot of the active states sorted by effect id.
// The slice and contained param maps are copies; mutating them does not
// touch the registry.
func (r *Registry) ActiveEffects() []State {
	out := make([]State, 0, len(r.active))
	for _, st := range r.active {
		out = append(out, st.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Effect.ID < out[j].Effect.ID })
	return out
}

// EnableAll activates every catalog effect that can be enabled, honoring
// dependency order by retrying until a pass makes no progress.
func (r *Registry) EnableAll() {
	for {
		progressed := false
		for id, eff := range r.catalog {
			if _, on := r.active[id]; on {
				continue
			}
			if !r.depsMet(eff) {
				continue
			}
			for _, c := range eff.ConflictsWith {
				delete(r.active, c)
			}
			params := make(map[string]float64, len(eff.Defaults))
			for k, v := range eff.Defaults {
				params[k] = v
			}
			r.active[id] = &State{Effect: eff, Intensity: 1, Params: params, UpdatedAt: r.now()}
			progressed = true
		}
		if !progressed {
			break
		}
	}
	r.notify()
}

// DisableAll clears the active set unconditionally, skipping dependency
// checks since nothing remains that could depend on anything.
func (r *Registry) DisableAll() {
	r.active = map[string]*State{}
	r.notify()
}

// Subscribe registers a listener and returns its handle.
func (r *Registry) Subscribe(fn Listener) uuid.UUID {
	id := uuid.New()
	r.listeners[id] = fn
	return id
}

// Unsubscribe removes a listener by handle.
func (r *Registry) Unsubscribe(id uuid.UUID) { delete(r.listeners, id) }

func (r *Registry) depsMet(eff Effect) bool {
	for _, dep := range eff.DependsOn {
		if _, on := r.active[dep]; !on {
			return false
		}
	}
	return true
}

// notify fans the current snapshot out to every listener. The listener map
// is snapshotted first so a callback may subscribe or unsubscribe without
// corrupting the iteration; each callback runs under recover so one bad
// subscriber cannot starve the rest.
func (r *Registry) notify() {
	if len(r.listeners) == 0 {
		return
	}
	snap := r.ActiveEffects()
	handles := make([]uuid.UUID, 0, len(r.listeners))
	fns := make([]Listener, 0, len(r.listeners))
	for h, fn := range r.listeners {
		handles = append(handles, h)
		fns = append(fns, fn)
	}
	for i, fn := range fns {
		r.invoke(handles[i], fn, snap)
	}
}

func (r *Registry) invoke(h uuid.UUID, fn Listener, snap []State) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().Str("listener", h.String()).Interface("panic", p).Msg("effect listener panicked")
		}
	}()
	fn(snap)
}

func (s *State) snapshot() State {
	cp := *s
	cp.Params = make(map[string]float64, len(s.Params))
	for k, v := range s.Params {
		cp.Params[k] = v
	}
	return cp
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
