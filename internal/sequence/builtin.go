package sequence

// BuiltinSequences returns the stock showcase timelines. Track ids name the
// consumer ("camera", "intensity", "lighting"); property keys are read by
// the scene layer.
func BuiltinSequences() []*Sequence {
	return []*Sequence{
		{
			ID: "cosmic_journey", Name: "Cosmic Journey",
			Description: "slow orbit through the starfield with a nebula bloom",
			Duration:    45, Loop: true,
			Tracks: []Track{
				{ID: "camera", Keys: []Keyframe{
					{T: 0, Props: PropBag{"orbit_radius": Num(20), "height": Num(5), "target": Vec(0, 0, 0)}},
					{T: 20, Props: PropBag{"orbit_radius": Num(8), "height": Num(12), "target": Vec(0, 4, 0)}, Ease: "smooth"},
					{T: 45, Props: PropBag{"orbit_radius": Num(20), "height": Num(5), "target": Vec(0, 0, 0)}, Ease: "smooth"},
				}},
				{ID: "intensity", Keys: []Keyframe{
					{T: 0, Props: PropBag{"cosmic": Num(0.6), "nebula": Num(0.3)}},
					{T: 25, Props: PropBag{"cosmic": Num(1.4), "nebula": Num(1.0)}, Ease: "cubic"},
					{T: 45, Props: PropBag{"cosmic": Num(0.6), "nebula": Num(0.3)}, Ease: "smooth"},
				}},
				{ID: "lighting", Keys: []Keyframe{
					{T: 0, Props: PropBag{"color": Vec(0.2, 0.3, 0.8), "ambient": Num(0.15)}},
					{T: 45, Props: PropBag{"color": Vec(0.5, 0.2, 0.9), "ambient": Num(0.25)}, Ease: "smooth"},
				}},
			},
		},
		{
			ID: "fire_storm", Name: "Fire Storm",
			Description: "building firestorm with a hard cut to embers",
			Duration:    30,
			Tracks: []Track{
				{ID: "intensity", Keys: []Keyframe{
					{T: 0, Props: PropBag{"fire": Num(0.2)}},
					{T: 12, Props: PropBag{"fire": Num(1.8)}, Ease: "ease-in"},
					{T: 30, Props: PropBag{"fire": Num(0.4)}, Ease: "ease-out"},
				}},
				{ID: "camera", Keys: []Keyframe{
					{T: 0, Props: PropBag{"shake": Num(0), "mode": Raw("orbit")}},
					{T: 12, Props: PropBag{"shake": Num(0.8), "mode": Raw("handheld")}, Ease: "ease-in"},
					{T: 30, Props: PropBag{"shake": Num(0), "mode": Raw("orbit")}},
				}},
			},
		},
		{
			ID: "water_dream", Name: "Water Dream",
			Description: "gentle looping swell",
			Duration:    40, Loop: true,
			Tracks: []Track{
				{ID: "intensity", Keys: []Keyframe{
					{T: 0, Props: PropBag{"water": Num(0.5)}},
					{T: 20, Props: PropBag{"water": Num(1.2)}, Ease: "smooth"},
					{T: 40, Props: PropBag{"water": Num(0.5)}, Ease: "smooth"},
				}},
				{ID: "lighting", Keys: []Keyframe{
					{T: 0, Props: PropBag{"color": Vec(0.1, 0.4, 0.7), "caustics": Num(0.3)}},
					{T: 40, Props: PropBag{"color": Vec(0.1, 0.5, 0.6), "caustics": Num(0.8)}, Ease: "smooth"},
				}},
			},
		},
		{
			ID: "crystal_cave", Name: "Crystal Cave",
			Duration: 35, Loop: true,
			Tracks: []Track{
				{ID: "intensity", Keys: []Keyframe{
					{T: 0, Props: PropBag{"crystal": Num(0.4), "bloom": Num(0.5)}},
					{T: 18, Props: PropBag{"crystal": Num(1.5), "bloom": Num(1.2)}, Ease: "cubic"},
					{T: 35, Props: PropBag{"crystal": Num(0.4), "bloom": Num(0.5)}, Ease: "smooth"},
				}},
			},
		},
		{
			ID: "plasma_surge", Name: "Plasma Surge",
			Duration: 20,
			Tracks: []Track{
				{ID: "intensity", Keys: []Keyframe{
					{T: 0, Props: PropBag{"plasma": Num(0.3)}},
					{T: 8, Props: PropBag{"plasma": Num(2.0)}, Ease: "ease-in"},
					{T: 20, Props: PropBag{"plasma": Num(0)}, Ease: "ease-out"},
				}},
				{ID: "camera", Keys: []Keyframe{
					{T: 0, Props: PropBag{"fov": Num(60)}},
					{T: 8, Props: PropBag{"fov": Num(85)}, Ease: "ease-in"},
					{T: 20, Props: PropBag{"fov": Num(60)}, Ease: "smooth"},
				}},
			},
		},
	}
}
