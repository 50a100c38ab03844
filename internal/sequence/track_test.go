package sequence

import "testing"

func TestResolveEndpointClamp(t *testing.T) {
	tr := Track{ID: "x", Keys: []Keyframe{
		{T: 2, Props: PropBag{"v": Num(10), "tag": Raw("start")}},
		{T: 8, Props: PropBag{"v": Num(20), "tag": Raw("end")}},
	}}
	before := tr.Resolve(0)
	if before["v"].Num != 10 || before["tag"].Raw != "start" {
		t.Fatalf("query before first key must return it verbatim: %v", before)
	}
	after := tr.Resolve(9)
	if after["v"].Num != 20 || after["tag"].Raw != "end" {
		t.Fatalf("query after last key must return it verbatim: %v", after)
	}
}

func TestResolveLinearMidpoint(t *testing.T) {
	tr := Track{ID: "x", Keys: []Keyframe{
		{T: 0, Props: PropBag{"x": Num(0)}},
		{T: 10, Props: PropBag{"x": Num(100)}},
	}}
	got := tr.Resolve(5)["x"]
	if got.Num != 50 {
		t.Fatalf("expected x=50 at t=5, got %v", got)
	}
}

func TestResolveVectorLerp(t *testing.T) {
	tr := Track{ID: "c", Keys: []Keyframe{
		{T: 0, Props: PropBag{"color": Vec(0, 0, 1)}},
		{T: 4, Props: PropBag{"color": Vec(1, 0, 0)}},
	}}
	got := tr.Resolve(2)["color"]
	if got.Kind != KindVec || len(got.Vec) != 3 {
		t.Fatalf("expected a 3-vector, got %v", got)
	}
	if got.Vec[0] != 0.5 || got.Vec[1] != 0 || got.Vec[2] != 0.5 {
		t.Fatalf("expected element-wise lerp, got %v", got.Vec)
	}
}

func TestResolveHardSwitchOnMismatch(t *testing.T) {
	tr := Track{ID: "m", Keys: []Keyframe{
		{T: 0, Props: PropBag{"mode": Raw("orbit"), "len": Vec(1, 2)}},
		{T: 10, Props: PropBag{"mode": Raw("handheld"), "len": Vec(1, 2, 3)}},
	}}
	early := tr.Resolve(4)
	if early["mode"].Raw != "orbit" {
		t.Fatalf("before midpoint opaque values hold the left key: %v", early["mode"])
	}
	if len(early["len"].Vec) != 2 {
		t.Fatalf("unequal-length vectors must hard-switch, got %v", early["len"])
	}
	late := tr.Resolve(6)
	if late["mode"].Raw != "handheld" {
		t.Fatalf("after midpoint opaque values take the right key: %v", late["mode"])
	}
	if len(late["len"].Vec) != 3 {
		t.Fatalf("unequal-length vectors must hard-switch, got %v", late["len"])
	}
}

func TestResolveKeyAbsentInNext(t *testing.T) {
	tr := Track{ID: "m", Keys: []Keyframe{
		{T: 0, Props: PropBag{"fade": Num(1)}},
		{T: 10, Props: PropBag{}},
	}}
	if _, ok := tr.Resolve(3)["fade"]; !ok {
		t.Fatal("vanishing key should hold through the first half")
	}
	if _, ok := tr.Resolve(7)["fade"]; ok {
		t.Fatal("vanishing key should drop in the second half")
	}
}

func TestResolveEmptyAndSingle(t *testing.T) {
	empty := Track{ID: "e"}
	if bag := empty.Resolve(3); len(bag) != 0 {
		t.Fatalf("empty track resolves to an empty bag, got %v", bag)
	}
	single := Track{ID: "s", Keys: []Keyframe{{T: 5, Props: PropBag{"v": Num(7)}}}}
	for _, q := range []float64{0, 5, 99} {
		if single.Resolve(q)["v"].Num != 7 {
			t.Fatalf("single-key track returns its bag everywhere")
		}
	}
}

func TestEasingApplied(t *testing.T) {
	tr := Track{ID: "x", Keys: []Keyframe{
		{T: 0, Props: PropBag{"x": Num(0)}},
		{T: 10, Props: PropBag{"x": Num(100)}, Ease: "smooth"},
	}}
	// smoothstep(0.25) = 3(0.0625) - 2(0.015625) = 0.15625
	got := tr.Resolve(2.5)["x"].Num
	if got < 15.62 || got > 15.63 {
		t.Fatalf("expected eased value ~15.625, got %v", got)
	}
	// Unknown tags fall back to linear.
	tr.Keys[1].Ease = "bouncy"
	if v := tr.Resolve(5)["x"].Num; v != 50 {
		t.Fatalf("unknown easing must be linear, got %v", v)
	}
}

func TestResolveDoesNotAliasKeyframeBags(t *testing.T) {
	tr := Track{ID: "x", Keys: []Keyframe{{T: 0, Props: PropBag{"v": Num(1)}}}}
	bag := tr.Resolve(0)
	bag["v"] = Num(999)
	if tr.Keys[0].Props["v"].Num != 1 {
		t.Fatal("resolved bags must be copies of keyframe storage")
	}
}
