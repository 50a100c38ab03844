package sequence

import "fmt"

// Kind discriminates the shapes a keyframe property can take. Keeping the
// union explicit lets the interpolator branch exhaustively instead of
// reflecting on arbitrary values.
type Kind int

const (
	KindNum Kind = iota // scalar float
	KindVec             // fixed-length float vector (colors, positions)
	KindRaw             // opaque, never interpolated (enum tags, names)
)

// Value is a tagged union: number, vector of numbers, or an opaque payload.
type Value struct {
	Kind Kind
	Num  float64
	Vec  []float64
	Raw  any
}

// Num builds a scalar value.
func Num(v float64) Value { return Value{Kind: KindNum, Num: v} }

// Vec builds a vector value.
func Vec(vs ...float64) Value { return Value{Kind: KindVec, Vec: vs} }

// Raw builds an opaque value that hard-switches instead of interpolating.
func Raw(v any) Value { return Value{Kind: KindRaw, Raw: v} }

// Equal compares two values structurally.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNum:
		return v.Num == o.Num
	case KindVec:
		if len(v.Vec) != len(o.Vec) {
			return false
		}
		for i := range v.Vec {
			if v.Vec[i] != o.Vec[i] {
				return false
			}
		}
		return true
	default:
		return v.Raw == o.Raw
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindNum:
		return fmt.Sprintf("%g", v.Num)
	case KindVec:
		return fmt.Sprintf("%v", v.Vec)
	default:
		return fmt.Sprintf("%v", v.Raw)
	}
}

// UnmarshalYAML decodes a scalar into KindNum, a sequence of numbers into
// KindVec, and anything else into KindRaw.
func (v *Value) UnmarshalYAML(unmarshal func(any) error) error {
	var f float64
	if err := unmarshal(&f); err == nil {
		*v = Num(f)
		return nil
	}
	var vec []float64
	if err := unmarshal(&vec); err == nil {
		*v = Vec(vec...)
		return nil
	}
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*v = Raw(raw)
	return nil
}

// MarshalYAML emits the underlying shape.
func (v Value) MarshalYAML() (any, error) {
	switch v.Kind {
	case KindNum:
		return v.Num, nil
	case KindVec:
		return v.Vec, nil
	default:
		return v.Raw, nil
	}
}

// MarshalJSON mirrors MarshalYAML for the status surface.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNum:
		return []byte(fmt.Sprintf("%g", v.Num)), nil
	case KindVec:
		b := []byte{'['}
		for i, x := range v.Vec {
			if i > 0 {
				b = append(b, ',')
			}
			b = append(b, []byte(fmt.Sprintf("%g", x))...)
		}
		return append(b, ']'), nil
	default:
		return []byte(fmt.Sprintf("%q", fmt.Sprintf("%v", v.Raw))), nil
	}
}
