// Package config provides configuration loading and access for the background effect.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all application configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Effect    EffectConfig    `yaml:"effect"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Debug     DebugConfig     `yaml:"debug"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"` // 0 = follow vsync only
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// EffectConfig holds the tunables of the faulty-terminal effect.
// Values are uploaded once as uniforms and never change during a session.
type EffectConfig struct {
	Scale             float64    `yaml:"scale"`
	GridMul           [2]float64 `yaml:"grid_mul"`   // Cell grid multiplier (x, y), scaled by 15 in the shader
	DigitSize         float64    `yaml:"digit_size"` // Glyph size inside a cell (>1 leaves gaps)
	TimeScale         float64    `yaml:"time_scale"`
	ScanlineIntensity float64    `yaml:"scanline_intensity"`
	GlitchAmount      float64    `yaml:"glitch_amount"`
	FlickerAmount     float64    `yaml:"flicker_amount"`
	NoiseAmp          float64    `yaml:"noise_amp"`
	Curvature         float64    `yaml:"curvature"` // Barrel distortion, 0 = flat
	Tint              [3]float64 `yaml:"tint"`      // RGB in [0,1]
	PointerReactive   bool       `yaml:"pointer_reactive"`
	PointerStrength   float64    `yaml:"pointer_strength"`
	Brightness        float64    `yaml:"brightness"`
	DPRCap            float64    `yaml:"dpr_cap"` // Upper bound on the device pixel ratio used for the backing buffer
}

// TelemetryConfig holds frame telemetry parameters.
type TelemetryConfig struct {
	WindowFrames      int     `yaml:"window_frames"`       // Rolling window for frame statistics
	ReportIntervalSec float64 `yaml:"report_interval_sec"` // 0 = never log
	OutputDir         string  `yaml:"output_dir"`          // Empty = no CSV output
}

// DebugConfig holds debug overlay settings.
type DebugConfig struct {
	ShowHUD bool `yaml:"show_hud"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	Aspect    float64 // Screen.Width / Screen.Height
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

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate reports every out-of-range field. Errors are joined so a bad
// file is fixed in one pass.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0, "screen.width must be positive, got %d", c.Screen.Width)
	check(c.Screen.Height > 0, "screen.height must be positive, got %d", c.Screen.Height)
	check(c.Screen.TargetFPS >= 0, "screen.target_fps must not be negative, got %d", c.Screen.TargetFPS)

	e := c.Effect
	check(e.Scale > 0, "effect.scale must be positive, got %g", e.Scale)
	check(e.GridMul[0] > 0 && e.GridMul[1] > 0, "effect.grid_mul must be positive, got %v", e.GridMul)
	check(e.DigitSize > 0, "effect.digit_size must be positive, got %g", e.DigitSize)
	check(e.TimeScale >= 0, "effect.time_scale must not be negative, got %g", e.TimeScale)
	check(e.ScanlineIntensity >= 0, "effect.scanline_intensity must not be negative, got %g", e.ScanlineIntensity)
	check(e.GlitchAmount >= 0, "effect.glitch_amount must not be negative, got %g", e.GlitchAmount)
	check(e.FlickerAmount >= 0, "effect.flicker_amount must not be negative, got %g", e.FlickerAmount)
	check(e.NoiseAmp >= 0, "effect.noise_amp must not be negative, got %g", e.NoiseAmp)
	for i, ch := range e.Tint {
		check(ch >= 0 && ch <= 1, "effect.tint[%d] must be within [0,1], got %g", i, ch)
	}
	check(e.PointerStrength >= 0, "effect.pointer_strength must not be negative, got %g", e.PointerStrength)
	check(e.Brightness >= 0, "effect.brightness must not be negative, got %g", e.Brightness)
	check(e.DPRCap > 0, "effect.dpr_cap must be positive, got %g", e.DPRCap)

	check(c.Telemetry.WindowFrames >= 0, "telemetry.window_frames must not be negative, got %d", c.Telemetry.WindowFrames)
	check(c.Telemetry.ReportIntervalSec >= 0, "telemetry.report_interval_sec must not be negative, got %g", c.Telemetry.ReportIntervalSec)

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.Aspect = float64(c.Screen.Width) / float64(c.Screen.Height)
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
