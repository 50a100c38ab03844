package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type PerfCfg struct {
	FloorFPS   float64 `yaml:"floor_fps"`   // performance level 0 at this average
	CeilingFPS float64 `yaml:"ceiling_fps"` // performance level 1 at this average
	Window     int     `yaml:"window"`      // FPS sample window size
}

type Config struct {
	FPS             int      `yaml:"fps"`
	ListenAddr      string   `yaml:"listen_addr"`
	GlobalIntensity float64  `yaml:"global_intensity"`
	BaseParticles   int      `yaml:"base_particles"`
	Autoplay        string   `yaml:"autoplay,omitempty"`       // sequence id started at boot
	Effects         []string `yaml:"effects,omitempty"`        // effect ids enabled at boot
	CatalogPath     string   `yaml:"catalog_path,omitempty"`   // extra effect catalog YAML
	PresetPath      string   `yaml:"preset_path,omitempty"`    // effect preset YAML, loaded at boot and saved at shutdown
	SequenceFiles   []string `yaml:"sequence_files,omitempty"` // extra sequence YAMLs
	Perf            PerfCfg  `yaml:"perf"`
}

func Default() *Config {
	return &Config{
		FPS:             60,
		ListenAddr:      ":8080",
		GlobalIntensity: 1.0,
		BaseParticles:   10000,
		Perf:            PerfCfg{FloorFPS: 30, CeilingFPS: 60, Window: 60},
	}
}

// Load reads a config file. Fields absent from the file stay zero so
// callers can overlay it over flag or default values.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
