package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/world"
)

const (
	DefaultDataDir  = ".physbox"
	DefaultFPS      = 30
	DefaultDuration = 10.0
)

// Config carries CLI-level defaults. World-affecting fields overlay the
// built-in settings when a simulation starts.
type Config struct {
	DataDir  string  `yaml:"data_dir"`
	FPS      int     `yaml:"fps"`
	Duration float64 `yaml:"duration"`

	World WorldConfig `yaml:"world"`
}

type WorldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Gravity     vec.Vec `yaml:"gravity"`
	AirFriction float64 `yaml:"air_friction"`
	TimeScale   float64 `yaml:"time_scale"`
	Substeps    int     `yaml:"substeps"`
	WallBounce  bool    `yaml:"wall_bounce"`
	ShowTrails  bool    `yaml:"show_trails"`
	TrailLength int     `yaml:"trail_length"`
}

func DefaultConfig() *Config {
	s := world.DefaultSettings()
	return &Config{
		DataDir:  DefaultDataDir,
		FPS:      DefaultFPS,
		Duration: DefaultDuration,
		World: WorldConfig{
			Width:       world.DefaultWidth,
			Height:      world.DefaultHeight,
			Gravity:     s.Gravity,
			AirFriction: s.AirFriction,
			TimeScale:   s.TimeScale,
			Substeps:    s.Substeps,
			WallBounce:  s.WallBounce,
			ShowTrails:  s.ShowTrails,
			TrailLength: s.TrailLength,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Apply overlays the configured world parameters onto w.
func (c *Config) Apply(w *world.World) {
	if c.World.Width > 0 {
		w.Width = c.World.Width
	}
	if c.World.Height > 0 {
		w.Height = c.World.Height
	}
	s := &w.Settings
	s.Gravity = c.World.Gravity
	s.AirFriction = c.World.AirFriction
	s.TimeScale = c.World.TimeScale
	s.Substeps = c.World.Substeps
	s.WallBounce = c.World.WallBounce
	s.ShowTrails = c.World.ShowTrails
	s.TrailLength = c.World.TrailLength
	s.Sanitize()
}
