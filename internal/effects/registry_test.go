package effects

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() []Effect {
	return []Effect{
		{ID: "fire", Category: Particles, Cost: CostHigh,
			ConflictsWith: []string{"water"},
			Defaults:      map[string]float64{"emission": 1200}},
		{ID: "water", Category: Particles, Cost: CostHigh,
			ConflictsWith: []string{"fire"}},
		{ID: "bloom", Category: PostProcessing, Cost: CostLow},
		{ID: "glow", Category: PostProcessing, Cost: CostMedium,
			DependsOn: []string{"bloom"}},
	}
}

func TestEnableDisableToggle(t *testing.T) {
	r := NewRegistry(testCatalog())

	assert.True(t, r.Enable("fire", 1.0))
	assert.True(t, r.IsActive("fire"))
	assert.True(t, r.Disable("fire"))
	assert.False(t, r.IsActive("fire"))
	assert.False(t, r.Disable("fire"), "disable of inactive id is a soft failure")

	assert.True(t, r.Toggle("fire", 1.0))
	assert.True(t, r.IsActive("fire"))
	assert.True(t, r.Toggle("fire", 1.0))
	assert.False(t, r.IsActive("fire"))
}

func TestEnableUnknownID(t *testing.T) {
	r := NewRegistry(testCatalog())
	assert.False(t, r.Enable("nope", 1.0))
	assert.Empty(t, r.ActiveEffects())
}

func TestEnableUnmetDependency(t *testing.T) {
	r := NewRegistry(testCatalog())
	assert.False(t, r.Enable("glow", 1.0), "glow requires bloom")
	assert.Empty(t, r.ActiveEffects())

	assert.True(t, r.Enable("bloom", 1.0))
	assert.True(t, r.Enable("glow", 1.0))
}

func TestConflictCascade(t *testing.T) {
	r := NewRegistry(testCatalog())
	assert.True(t, r.Enable("water", 1.0))
	assert.True(t, r.Enable("fire", 1.0))
	assert.False(t, r.IsActive("water"), "enabling fire must disable conflicting water")
	assert.True(t, r.IsActive("fire"))
}

func TestIntensityClampAndEffective(t *testing.T) {
	r := NewRegistry(testCatalog())
	assert.Equal(t, 0.0, r.EffectiveIntensity("fire"), "inactive effect reads 0")

	r.Enable("fire", 1.5)
	assert.InDelta(t, 1.5, r.EffectiveIntensity("fire"), 1e-9)

	r.SetGlobalIntensity(0.5)
	assert.InDelta(t, 0.75, r.EffectiveIntensity("fire"), 1e-9)

	r.SetIntensity("fire", 5)
	assert.InDelta(t, 2*0.5, r.EffectiveIntensity("fire"), 1e-9, "intensity clamps to 2")

	r.SetGlobalIntensity(9)
	assert.InDelta(t, 2*2, r.EffectiveIntensity("fire"), 1e-9, "global clamps to 2")
}

func TestSetParamsMergesOverDefaults(t *testing.T) {
	r := NewRegistry(testCatalog())
	r.Enable("fire", 1.0)
	assert.True(t, r.SetParams("fire", map[string]float64{"turbulence": 0.9}))

	st := r.ActiveEffects()[0]
	assert.Equal(t, 1200.0, st.Params["emission"], "defaults survive the merge")
	assert.Equal(t, 0.9, st.Params["turbulence"])

	assert.False(t, r.SetParams("water", map[string]float64{"x": 1}), "inactive id is a no-op")
}

func TestListenerIsolationAndBatching(t *testing.T) {
	r := NewRegistry(testCatalog())
	calls := 0
	var lastSnap []State
	r.Subscribe(func([]State) { panic("bad subscriber") })
	r.Subscribe(func(snap []State) { calls++; lastSnap = snap })

	assert.True(t, r.Enable("fire", 1.0))
	assert.Equal(t, 1, calls, "one notification per call, even with the conflict cascade")
	assert.Len(t, lastSnap, 1)

	h := r.Subscribe(func([]State) { calls += 100 })
	r.Unsubscribe(h)
	r.Disable("fire")
	assert.Equal(t, 2, calls)
}

func TestBulkOps(t *testing.T) {
	r := NewRegistry(testCatalog())
	r.EnableAll()
	// fire/water conflict, so at most one of them survives; bloom and glow
	// (dependency-ordered) must both be on.
	assert.True(t, r.IsActive("bloom"))
	assert.True(t, r.IsActive("glow"))
	assert.False(t, r.IsActive("fire") && r.IsActive("water"))

	r.DisableAll()
	assert.Empty(t, r.ActiveEffects())
}

func TestSnapshotIsReadOnlyCopy(t *testing.T) {
	r := NewRegistry(testCatalog())
	r.Enable("fire", 1.0)
	snap := r.ActiveEffects()
	snap[0].Params["emission"] = -1

	fresh := r.ActiveEffects()
	assert.Equal(t, 1200.0, fresh[0].Params["emission"], "mutating a snapshot must not touch the registry")
}

func TestExportImportRoundTrip(t *testing.T) {
	r := NewRegistry(testCatalog())
	r.SetGlobalIntensity(0.8)
	r.Enable("bloom", 0.6)
	r.Enable("glow", 1.2)
	r.SetParams("bloom", map[string]float64{"radius": 7})

	cfg := r.ExportConfig()

	r2 := NewRegistry(testCatalog())
	r2.ImportConfig(cfg)

	assert.InDelta(t, 0.8, r2.GlobalIntensity(), 1e-9)
	assert.True(t, r2.IsActive("bloom"))
	assert.True(t, r2.IsActive("glow"), "import must satisfy dependency order")
	assert.InDelta(t, 0.6*0.8, r2.EffectiveIntensity("bloom"), 1e-9)

	st := r2.ActiveEffects()
	for _, s := range st {
		if s.Effect.ID == "bloom" {
			assert.Equal(t, 7.0, s.Params["radius"])
		}
	}
}

func TestPresetFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")

	r := NewRegistry(testCatalog())
	r.SetGlobalIntensity(0.8)
	r.Enable("fire", 1.2)
	r.SetParams("fire", map[string]float64{"turbulence": 0.4})
	if err := SaveConfig(path, r.ExportConfig()); err != nil {
		t.Fatalf("save: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	r2 := NewRegistry(testCatalog())
	r2.ImportConfig(cfg)

	assert.True(t, r2.IsActive("fire"))
	assert.InDelta(t, 0.8, r2.GlobalIntensity(), 1e-9)
	assert.InDelta(t, 1.2*0.8, r2.EffectiveIntensity("fire"), 1e-9)
	st := r2.ActiveEffects()[0]
	assert.Equal(t, 0.4, st.Params["turbulence"])
	assert.Equal(t, 1200.0, st.Params["emission"], "defaults rehydrate on import")
}

func TestImportSkipsUnknownAndUnsatisfied(t *testing.T) {
	r := NewRegistry(testCatalog())
	r.ImportConfig(Config{
		GlobalIntensity: 1,
		ActiveEffects: map[string]EffectConfig{
			"ghost": {Intensity: 1},
			"glow":  {Intensity: 1}, // bloom absent, cannot be satisfied
		},
	})
	assert.Empty(t, r.ActiveEffects())
}
