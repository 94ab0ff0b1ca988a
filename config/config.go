// Package config provides configuration loading and access for the pages.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pthm-cable/festive/surface"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// TargetLayout is the countdown target format, interpreted in local time.
const TargetLayout = "2006-01-02T15:04:05"

// Config holds all configuration parameters.
type Config struct {
	Screen        ScreenConfig        `yaml:"screen"`
	Page          string              `yaml:"page"`
	Backend       string              `yaml:"backend"`
	Starfield     StarfieldConfig     `yaml:"starfield"`
	Snow          SnowConfig          `yaml:"snow"`
	ReducedMotion ReducedMotionConfig `yaml:"reduced_motion"`
	Earth         EarthConfig         `yaml:"earth"`
	Globe         GlobeConfig         `yaml:"globe"`
	Parallax      ParallaxConfig      `yaml:"parallax"`
	Countdown     CountdownConfig     `yaml:"countdown"`
	Motion        MotionConfig        `yaml:"motion"`
	Telemetry     TelemetryConfig     `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds window settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	TargetFPS int     `yaml:"target_fps"`
	DPR       float64 `yaml:"dpr"` // 0 = query the window
	Title     string  `yaml:"title"`
}

// StarfieldConfig tunes the depth-projected starfield.
type StarfieldConfig struct {
	Count      int      `yaml:"count"`
	Speed      float64  `yaml:"speed"`
	SizeMin    float64  `yaml:"size_min"`
	SizeMax    float64  `yaml:"size_max"`
	OpacityMin float64  `yaml:"opacity_min"`
	OpacityMax float64  `yaml:"opacity_max"`
	TwinkleMin float64  `yaml:"twinkle_min"`
	TwinkleMax float64  `yaml:"twinkle_max"`
	Parallax   float64  `yaml:"parallax"`   // screen offset per pixel of pointer per unit depth
	SizeScale  float64  `yaml:"size_scale"` // projected size multiplier
	GlowThresh float64  `yaml:"glow_threshold"`
	GlowScale  float64  `yaml:"glow_scale"`
	GlowAlpha  float64  `yaml:"glow_alpha"`
	Palette    []string `yaml:"palette"`
}

// SnowConfig tunes the snowfall.
type SnowConfig struct {
	Count          int     `yaml:"count"`
	SizeMin        float64 `yaml:"size_min"`
	SizeMax        float64 `yaml:"size_max"`
	SpeedMin       float64 `yaml:"speed_min"`
	SpeedMax       float64 `yaml:"speed_max"`
	Wind           float64 `yaml:"wind"`
	OpacityMin     float64 `yaml:"opacity_min"`
	OpacityMax     float64 `yaml:"opacity_max"`
	WobbleSpeedMin float64 `yaml:"wobble_speed_min"`
	WobbleSpeedMax float64 `yaml:"wobble_speed_max"`
	WobbleAmp      float64 `yaml:"wobble_amplitude"`
	Margin         float64 `yaml:"margin"` // respawn distance outside the viewport
	GlowThresh     float64 `yaml:"glow_threshold"`
	GlowScale      float64 `yaml:"glow_scale"`
	GlowAlpha      float64 `yaml:"glow_alpha"`
}

// ReducedMotionConfig holds the policy mode and the caps applied when the
// preference is set.
type ReducedMotionConfig struct {
	Mode         string  `yaml:"mode"` // auto | on | off
	SnowCount    int     `yaml:"snow_count"`
	SnowMaxSpeed float64 `yaml:"snow_max_speed"`
	StarSpeed    float64 `yaml:"star_speed"`
}

// EarthConfig tunes the flat drag-to-spin earth.
type EarthConfig struct {
	Image       string  `yaml:"image"` // empty = procedural
	Radius      float64 `yaml:"radius"`
	Sensitivity float64 `yaml:"sensitivity"` // degrees per pixel
	Damping     float64 `yaml:"damping"`
	MinVelocity float64 `yaml:"min_velocity"`
}

// GlobeConfig tunes the 3D globe.
type GlobeConfig struct {
	Texture         string  `yaml:"texture"` // empty = procedural
	Radius          float64 `yaml:"radius"`
	Segments        int     `yaml:"segments"`
	FOV             float64 `yaml:"fov"`
	CameraZ         float64 `yaml:"camera_z"`
	Sensitivity     float64 `yaml:"sensitivity"` // radians per pixel
	Damping         float64 `yaml:"damping"`
	MinVelocity     float64 `yaml:"min_velocity"`
	AtmosphereScale float64 `yaml:"atmosphere_scale"`
	Ocean           string  `yaml:"ocean"`
	Land            string  `yaml:"land"`
}

// ParallaxConfig tunes the pointer smoother and its layers.
type ParallaxConfig struct {
	Smoothing float64   `yaml:"smoothing"`
	Strength  float64   `yaml:"strength"`
	Layers    []float64 `yaml:"layers"`
}

// CountdownConfig holds the countdown target.
type CountdownConfig struct {
	Target string `yaml:"target"`
}

// MotionConfig holds frame timing limits.
type MotionConfig struct {
	MaxDeltaMS float64 `yaml:"max_delta_ms"`
}

// TelemetryConfig holds timing collection parameters.
type TelemetryConfig struct {
	PerfWindow  int     `yaml:"perf_window"`
	LogInterval float64 `yaml:"log_interval"` // seconds
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	StarPalette []surface.Color
	Ocean       surface.Color
	Land        surface.Color
	Target      time.Time
	MaxDelta    time.Duration
	LogInterval time.Duration
}

var global *Config

// Init loads configuration from the given path (or embedded defaults if
// empty) and stores it as the process-wide config.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the process-wide config. Panics if Init has not been called.
func Cfg() *Config {
	if global == nil {
		panic("config not initialized: call config.Init() first")
	}
	return global
}

// Load reads configuration from a YAML file, using embedded defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg, err := parse(nil)
	if err != nil {
		return nil, err
	}

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

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse loads the embedded defaults overlaid with data.
func Parse(data []byte) (*Config, error) {
	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) finish() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.computeDerived(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0, "screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height)
	check(c.Page == "countdown" || c.Page == "message" || c.Page == "globe", "unknown page %q", c.Page)
	check(c.Backend == "raylib" || c.Backend == "terminal", "unknown backend %q", c.Backend)

	check(c.Starfield.Count >= 0, "starfield.count must not be negative")
	check(c.Starfield.Speed >= 0, "starfield.speed must not be negative")
	check(c.Starfield.SizeMin >= 0 && c.Starfield.SizeMin <= c.Starfield.SizeMax, "starfield size range [%g, %g] is invalid", c.Starfield.SizeMin, c.Starfield.SizeMax)
	check(opacityRange(c.Starfield.OpacityMin, c.Starfield.OpacityMax), "starfield opacity range [%g, %g] is invalid", c.Starfield.OpacityMin, c.Starfield.OpacityMax)
	check(len(c.Starfield.Palette) > 0, "starfield.palette must not be empty")

	check(c.Snow.Count >= 0, "snow.count must not be negative")
	check(c.Snow.SizeMin >= 0 && c.Snow.SizeMin <= c.Snow.SizeMax, "snow size range [%g, %g] is invalid", c.Snow.SizeMin, c.Snow.SizeMax)
	check(c.Snow.SpeedMin >= 0 && c.Snow.SpeedMin <= c.Snow.SpeedMax, "snow speed range [%g, %g] is invalid", c.Snow.SpeedMin, c.Snow.SpeedMax)
	check(opacityRange(c.Snow.OpacityMin, c.Snow.OpacityMax), "snow opacity range [%g, %g] is invalid", c.Snow.OpacityMin, c.Snow.OpacityMax)

	check(c.ReducedMotion.SnowCount >= 0, "reduced_motion.snow_count must not be negative")
	check(c.ReducedMotion.SnowMaxSpeed >= 0, "reduced_motion.snow_max_speed must not be negative")
	check(c.ReducedMotion.StarSpeed >= 0 && c.ReducedMotion.StarSpeed <= c.Starfield.Speed, "reduced_motion.star_speed must be in [0, starfield.speed]")

	check(damping(c.Earth.Damping), "earth.damping %g must be in [0, 1)", c.Earth.Damping)
	check(c.Earth.MinVelocity > 0, "earth.min_velocity must be positive")
	check(damping(c.Globe.Damping), "globe.damping %g must be in [0, 1)", c.Globe.Damping)
	check(c.Globe.MinVelocity > 0, "globe.min_velocity must be positive")
	check(c.Globe.Radius > 0 && c.Globe.CameraZ > c.Globe.Radius*c.Globe.AtmosphereScale, "globe camera must sit outside the atmosphere")
	check(c.Globe.FOV > 0 && c.Globe.FOV < 180, "globe.fov %g must be in (0, 180)", c.Globe.FOV)
	check(c.Globe.AtmosphereScale >= 1, "globe.atmosphere_scale must be at least 1")

	check(c.Parallax.Smoothing > 0 && c.Parallax.Smoothing <= 1, "parallax.smoothing %g must be in (0, 1]", c.Parallax.Smoothing)
	check(c.Motion.MaxDeltaMS > 0, "motion.max_delta_ms must be positive")

	return errors.Join(errs...)
}

func opacityRange(lo, hi float64) bool {
	return lo >= 0 && lo <= hi && hi <= 1
}

func damping(d float64) bool {
	return d >= 0 && d < 1
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	palette, err := surface.ParsePalette(c.Starfield.Palette)
	if err != nil {
		return fmt.Errorf("starfield.palette: %w", err)
	}
	c.Derived.StarPalette = palette

	if c.Derived.Ocean, err = surface.ParseHex(c.Globe.Ocean); err != nil {
		return fmt.Errorf("globe.ocean: %w", err)
	}
	if c.Derived.Land, err = surface.ParseHex(c.Globe.Land); err != nil {
		return fmt.Errorf("globe.land: %w", err)
	}

	target, err := time.ParseInLocation(TargetLayout, c.Countdown.Target, time.Local)
	if err != nil {
		return fmt.Errorf("countdown.target: %w", err)
	}
	c.Derived.Target = target

	c.Derived.MaxDelta = time.Duration(c.Motion.MaxDeltaMS * float64(time.Millisecond))
	c.Derived.LogInterval = time.Duration(c.Telemetry.LogInterval * float64(time.Second))
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
