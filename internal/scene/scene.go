// Package scene is the boundary between the orchestration core and the
// presentation layer. Real renderers (GPU particle systems, geometry
// generators, shader rigs) live outside this module and implement Renderer;
// the fake subpackage provides in-process stand-ins for sims and tests.
package scene

import (
	"sort"

	"github.com/example/lumenshow/internal/effects"
	"github.com/example/lumenshow/internal/perf"
	"github.com/example/lumenshow/internal/sequence"
)

// Frame is everything the presentation layer needs for one tick: the
// sequencer's resolved track data, the active effect list, and the
// optimizer's quality settings. Renderers must treat the contents as
// read-only.
type Frame struct {
	Time  float64 `json:"time"`  // seconds since conductor start
	Delta float64 `json:"delta"` // clamped frame delta, seconds

	SequenceID string                      `json:"sequenceId,omitempty"`
	Progress   float64                     `json:"progress"`
	Tracks     map[string]sequence.PropBag `json:"tracks,omitempty"`

	Effects         []effects.State `json:"effects"`
	GlobalIntensity float64         `json:"globalIntensity"`

	ParticleBudget int                `json:"particleBudget"`
	LOD            int                `json:"lod"`
	RenderScale    float64            `json:"renderScale"`
	Shadows        perf.ShadowQuality `json:"shadows"`
	SkipExpensive  bool               `json:"skipExpensive"`
}

// Renderer consumes one Frame per tick.
type Renderer interface {
	Name() string
	RenderFrame(Frame) error
}

// Registry holds named renderers.
type Registry struct{ m map[string]Renderer }

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{m: map[string]Renderer{}} }

// Register adds a renderer under its own name; nil is ignored.
func (r *Registry) Register(rr Renderer) {
	if rr == nil {
		return
	}
	r.m[rr.Name()] = rr
}

// Get looks a renderer up by name.
func (r *Registry) Get(name string) (Renderer, bool) { rr, ok := r.m[name]; return rr, ok }

// List returns the registered names sorted.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
