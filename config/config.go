// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Solver    SolverConfig    `yaml:"solver"`
	Brush     BrushConfig     `yaml:"brush"`
	Display   DisplayConfig   `yaml:"display"`
	Tracers   TracersConfig   `yaml:"tracers"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds simulation grid dimensions.
// The grid can be coarser than the screen; presentation scales the texture.
type GridConfig struct {
	Width  int `yaml:"width"`  // Cells along x (0 = use screen width)
	Height int `yaml:"height"` // Cells along y (0 = use screen height)
}

// SolverConfig holds the numerical parameters of the solver.
//
// There is no stability validation here: a dt too large relative to the
// grid spacing makes the explicit advection/diffusion diverge. That is a
// documented limitation left to the caller's parameter choice.
type SolverConfig struct {
	DT               float64 `yaml:"dt"`
	Viscosity        float64 `yaml:"viscosity"`
	JacobiIterations int     `yaml:"jacobi_iterations"`
	EnableBoundary   bool    `yaml:"enable_boundary"` // No-slip walls on the domain edge
}

// BrushConfig holds pointer brush parameters.
type BrushConfig struct {
	Radius     float64 `yaml:"radius"`      // Brush radius in grid cells
	ForceScale float64 `yaml:"force_scale"` // Scales pointer delta into force
	InkAmount  float64 `yaml:"ink_amount"`  // Ink injected per frame at full weight
}

// DisplayConfig holds the initial presentation settings.
type DisplayConfig struct {
	Mode            string `yaml:"mode"`             // ink, velocity or image
	BackgroundImage string `yaml:"background_image"` // Path for image mode ("" = generated checker)
}

// TracersConfig holds flow tracer particle parameters.
type TracersConfig struct {
	Count    int     `yaml:"count"`     // Number of tracer entities (0 disables)
	MaxAge   float64 `yaml:"max_age"`   // Seconds before a tracer respawns
	MinSpeed float64 `yaml:"min_speed"` // Tracers slower than this respawn early
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Solver.DT as float32
	GridW     int     // Effective grid width
	GridH     int     // Effective grid height
	ScreenW32 float32
	ScreenH32 float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Solver.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Grid dimensions default to screen size if not specified
	gridW := c.Grid.Width
	if gridW == 0 {
		gridW = c.Screen.Width
	}
	gridH := c.Grid.Height
	if gridH == 0 {
		gridH = c.Screen.Height
	}
	c.Derived.GridW = gridW
	c.Derived.GridH = gridH
}

// Validate checks the structural constraints of the configuration.
// Numerical stability of dt/viscosity is not checked.
func (c *Config) Validate() error {
	if c.Derived.GridW <= 0 || c.Derived.GridH <= 0 {
		return fmt.Errorf("config: grid dimensions must be positive, got %dx%d",
			c.Derived.GridW, c.Derived.GridH)
	}
	if c.Solver.JacobiIterations < 1 {
		return fmt.Errorf("config: jacobi_iterations must be at least 1, got %d",
			c.Solver.JacobiIterations)
	}
	if c.Tracers.Count < 0 {
		return fmt.Errorf("config: tracer count must not be negative, got %d", c.Tracers.Count)
	}
	switch c.Display.Mode {
	case "ink", "velocity", "image":
	default:
		return fmt.Errorf("config: unknown display mode %q", c.Display.Mode)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
