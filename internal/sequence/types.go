package sequence

// PropBag is the property set carried by one keyframe or resolved for one
// track at a point in time.
type PropBag map[string]Value

// Keyframe anchors a property bag at time T (seconds within the sequence).
// Ease names the easing applied over the segment ENDING at this keyframe;
// empty means linear.
type Keyframe struct {
	T     float64 `yaml:"t"`
	Props PropBag `yaml:"props"`
	Ease  string  `yaml:"ease,omitempty"` // "linear","smooth","cubic","ease-in","ease-out"
}

// Track is one animated property stream: keyframes sorted by T ascending.
// Sorted order is a documented precondition, not validated at runtime.
// Loop and Duration are reserved per-track overrides; interpolation ignores
// them today.
type Track struct {
	ID       string     `yaml:"id"`
	Keys     []Keyframe `yaml:"keys"`
	Loop     bool       `yaml:"loop,omitempty"`
	Duration float64    `yaml:"duration,omitempty"`
}

// Sequence is a named, fixed-duration timeline of independent tracks.
// The lifecycle callbacks are code-only and not serialized.
type Sequence struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Duration    float64 `yaml:"duration"` // seconds
	Loop        bool    `yaml:"loop,omitempty"`
	Tracks      []Track `yaml:"tracks"`

	OnStart    func()                 `yaml:"-"`
	OnUpdate   func(progress float64) `yaml:"-"`
	OnComplete func()                 `yaml:"-"`
}

// Resolve evaluates the track at query time t (seconds).
//
// Outside the key range the endpoint bag is returned verbatim, no
// extrapolation. Inside a segment, numbers lerp and equal-length vectors
// lerp element-wise under the segment's easing; any other pairing hard-
// switches at the eased midpoint. The hard switch is the intended behavior
// for discrete properties (mode tags, enum-valued settings), not a missing
// feature. An empty track resolves to an empty bag.
func (tr Track) Resolve(t float64) PropBag {
	n := len(tr.Keys)
	if n == 0 {
		return PropBag{}
	}
	if n == 1 || t <= tr.Keys[0].T {
		return tr.Keys[0].Props.copy()
	}
	if t >= tr.Keys[n-1].T {
		return tr.Keys[n-1].Props.copy()
	}
	for i := 0; i < n-1; i++ {
		a := tr.Keys[i]
		b := tr.Keys[i+1]
		if t < a.T || t > b.T {
			continue
		}
		den := b.T - a.T
		if den <= 0 {
			return b.Props.copy()
		}
		u := clamp01((t - a.T) / den)
		eased := easeApply(b.Ease, u)
		return blend(a.Props, b.Props, eased)
	}
	return tr.Keys[n-1].Props.copy()
}

// blend interpolates every key of a's bag toward b's.
func blend(a, b PropBag, eased float64) PropBag {
	out := make(PropBag, len(a))
	for k, av := range a {
		bv, ok := b[k]
		switch {
		case ok && av.Kind == KindNum && bv.Kind == KindNum:
			out[k] = Num(av.Num + (bv.Num-av.Num)*eased)
		case ok && av.Kind == KindVec && bv.Kind == KindVec && len(av.Vec) == len(bv.Vec):
			vec := make([]float64, len(av.Vec))
			for i := range vec {
				vec[i] = av.Vec[i] + (bv.Vec[i]-av.Vec[i])*eased
			}
			out[k] = Value{Kind: KindVec, Vec: vec}
		case ok:
			// Mismatched shapes: hard switch at the midpoint.
			if eased < 0.5 {
				out[k] = av
			} else {
				out[k] = bv
			}
		case eased < 0.5:
			// Key vanishes in b: hold a's value through the first half.
			out[k] = av
		}
	}
	return out
}

func (p PropBag) copy() PropBag {
	out := make(PropBag, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
