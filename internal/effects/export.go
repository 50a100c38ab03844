package effects

import (
	"os"

	"gopkg.in/yaml.v3"
)

// EffectConfig is the serialized form of one active effect.
type EffectConfig struct {
	Intensity  float64            `yaml:"intensity" json:"intensity"`
	Parameters map[string]float64 `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Config is the round-trippable snapshot of registry state, the only
// serialization contract the registry exposes.
type Config struct {
	GlobalIntensity float64                 `yaml:"global_intensity" json:"globalIntensity"`
	ActiveEffects   map[string]EffectConfig `yaml:"active_effects" json:"activeEffects"`
}

// ExportConfig captures the current global intensity and active effects.
func (r *Registry) ExportConfig() Config {
	cfg := Config{
		GlobalIntensity: r.global,
		ActiveEffects:   make(map[string]EffectConfig, len(r.active)),
	}
	for id, st := range r.active {
		params := make(map[string]float64, len(st.Params))
		for k, v := range st.Params {
			params[k] = v
		}
		cfg.ActiveEffects[id] = EffectConfig{Intensity: st.Intensity, Parameters: params}
	}
	return cfg
}

// ImportConfig replaces the active set with the snapshot's contents. Effects
// are enabled in dependency order; entries whose id is unknown or whose
// dependencies cannot be satisfied are skipped with a warning. One
// notification fires at the end.
func (r *Registry) ImportConfig(cfg Config) {
	r.global = clamp(cfg.GlobalIntensity, 0, 2)
	r.active = map[string]*State{}
	pending := make(map[string]EffectConfig, len(cfg.ActiveEffects))
	for id, ec := range cfg.ActiveEffects {
		if _, ok := r.catalog[id]; !ok {
			r.log.Warn().Str("effect", id).Msg("import: unknown effect skipped")
			continue
		}
		pending[id] = ec
	}
	for {
		progressed := false
		for id, ec := range pending {
			eff := r.catalog[id]
			if !r.depsMet(eff) {
				continue
			}
			params := make(map[string]float64, len(eff.Defaults))
			for k, v := range eff.Defaults {
				params[k] = v
			}
			for k, v := range ec.Parameters {
				params[k] = v
			}
			r.active[id] = &State{
				Effect:    eff,
				Intensity: clamp(ec.Intensity, 0, 2),
				Params:    params,
				UpdatedAt: r.now(),
			}
			delete(pending, id)
			progressed = true
		}
		if !progressed {
			break
		}
	}
	for id := range pending {
		r.log.Warn().Str("effect", id).Msg("import: dependencies unsatisfied, skipped")
	}
	r.notify()
}

// SaveConfig writes an exported snapshot to a YAML preset file.
func SaveConfig(path string, cfg Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// LoadConfig reads a YAML preset file written by SaveConfig.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadCatalog reads a list of effect definitions from a YAML file.
func LoadCatalog(path string) ([]Effect, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []Effect
	if err := yaml.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
