package effects

// Category classifies an effect by the kind of scene element it drives.
type Category string

const (
	Particles      Category = "particles"
	Geometry       Category = "geometry"
	PostProcessing Category = "postprocessing"
	Environment    Category = "environment"
)

// Cost is a coarse performance-cost class used by quality heuristics and
// surfaced to operators; the registry itself does not act on it.
type Cost string

const (
	CostLow    Cost = "low"
	CostMedium Cost = "medium"
	CostHigh   Cost = "high"
)

// Effect is an immutable catalog entry describing one toggleable visual
// feature. DependsOn lists effect ids that must already be active before this
// one may be enabled; ConflictsWith lists ids that are force-disabled when
// this one turns on.
type Effect struct {
	ID            string             `yaml:"id" json:"id"`
	Name          string             `yaml:"name" json:"name"`
	Description   string             `yaml:"description,omitempty" json:"description,omitempty"`
	Category      Category           `yaml:"category" json:"category"`
	Cost          Cost               `yaml:"cost" json:"cost"`
	DependsOn     []string           `yaml:"depends_on,omitempty" json:"dependsOn,omitempty"`
	ConflictsWith []string           `yaml:"conflicts_with,omitempty" json:"conflictsWith,omitempty"`
	Defaults      map[string]float64 `yaml:"defaults,omitempty" json:"defaults,omitempty"`
}

// BuiltinCatalog returns the stock effects of the showcase. Sequences and the
// HTTP surface refer to these ids.
func BuiltinCatalog() []Effect {
	return []Effect{
		{
			ID: "fire", Name: "Fire Storm", Category: Particles, Cost: CostHigh,
			Description:   "ember and flame particle system",
			ConflictsWith: []string{"water", "snow"},
			Defaults:      map[string]float64{"emission": 1200, "turbulence": 0.6, "heat": 1.0},
		},
		{
			ID: "water", Name: "Ocean Flow", Category: Particles, Cost: CostHigh,
			Description:   "fluid droplet and spray particles",
			ConflictsWith: []string{"fire"},
			Defaults:      map[string]float64{"emission": 900, "viscosity": 0.4, "depth": 0.8},
		},
		{
			ID: "snow", Name: "Snowfall", Category: Particles, Cost: CostMedium,
			ConflictsWith: []string{"fire"},
			Defaults:      map[string]float64{"emission": 600, "drift": 0.3},
		},
		{
			ID: "cosmic", Name: "Cosmic Dust", Category: Particles, Cost: CostMedium,
			Description: "starfield and nebula dust motes",
			Defaults:    map[string]float64{"emission": 2000, "twinkle": 0.5},
		},
		{
			ID: "plasma", Name: "Plasma Arcs", Category: Particles, Cost: CostHigh,
			Defaults: map[string]float64{"emission": 400, "arc_speed": 2.0},
		},
		{
			ID: "crystal", Name: "Crystal Lattice", Category: Geometry, Cost: CostMedium,
			Description: "procedural crystal growth geometry",
			Defaults:    map[string]float64{"facets": 12, "growth": 0.5},
		},
		{
			ID: "fractal", Name: "Fractal Trees", Category: Geometry, Cost: CostHigh,
			Defaults: map[string]float64{"depth": 7, "branch_angle": 0.4},
		},
		{
			ID: "bloom", Name: "Bloom", Category: PostProcessing, Cost: CostLow,
			Defaults: map[string]float64{"threshold": 0.8, "radius": 4},
		},
		{
			ID: "glow_trails", Name: "Glow Trails", Category: PostProcessing, Cost: CostMedium,
			DependsOn: []string{"bloom"},
			Defaults:  map[string]float64{"decay": 0.92},
		},
		{
			ID: "nebula", Name: "Nebula Sky", Category: Environment, Cost: CostLow,
			Defaults: map[string]float64{"density": 0.5, "hue_shift": 0.1},
		},
		{
			ID: "aurora", Name: "Aurora Veil", Category: Environment, Cost: CostMedium,
			DependsOn: []string{"nebula"},
			Defaults:  map[string]float64{"bands": 3, "shimmer": 0.7},
		},
	}
}
