package page

import (
	"github.com/pthm-cable/festive/config"
	"github.com/pthm-cable/festive/parallax"
	"github.com/pthm-cable/festive/particle"
	"github.com/pthm-cable/festive/rotate"
)

// StarConfig converts the starfield section.
func StarConfig(cfg *config.Config) particle.StarConfig {
	s := cfg.Starfield
	return particle.StarConfig{
		Count:         s.Count,
		Speed:         s.Speed,
		SizeMin:       s.SizeMin,
		SizeMax:       s.SizeMax,
		OpacityMin:    s.OpacityMin,
		OpacityMax:    s.OpacityMax,
		TwinkleMin:    s.TwinkleMin,
		TwinkleMax:    s.TwinkleMax,
		Palette:       cfg.Derived.StarPalette,
		Parallax:      s.Parallax,
		Smoothing:     cfg.Parallax.Smoothing,
		SizeScale:     s.SizeScale,
		GlowThreshold: s.GlowThresh,
		GlowScale:     s.GlowScale,
		GlowAlpha:     s.GlowAlpha,
		ReducedSpeed:  cfg.ReducedMotion.StarSpeed,
	}
}

// SnowConfig converts the snow section.
func SnowConfig(cfg *config.Config) particle.SnowConfig {
	s := cfg.Snow
	return particle.SnowConfig{
		Count:           s.Count,
		SizeMin:         s.SizeMin,
		SizeMax:         s.SizeMax,
		SpeedMin:        s.SpeedMin,
		SpeedMax:        s.SpeedMax,
		Wind:            s.Wind,
		OpacityMin:      s.OpacityMin,
		OpacityMax:      s.OpacityMax,
		WobbleSpeedMin:  s.WobbleSpeedMin,
		WobbleSpeedMax:  s.WobbleSpeedMax,
		WobbleAmplitude: s.WobbleAmp,
		Margin:          s.Margin,
		GlowThreshold:   s.GlowThresh,
		GlowScale:       s.GlowScale,
		GlowAlpha:       s.GlowAlpha,
		ReducedCount:    cfg.ReducedMotion.SnowCount,
		ReducedMaxSpeed: cfg.ReducedMotion.SnowMaxSpeed,
	}
}

// EarthTuning converts the flat earth section.
func EarthTuning(cfg *config.Config) rotate.Tuning {
	return rotate.Tuning{
		Sensitivity: cfg.Earth.Sensitivity,
		Damping:     cfg.Earth.Damping,
		MinVelocity: cfg.Earth.MinVelocity,
	}
}

// GlobeTuning converts the drag part of the globe section.
func GlobeTuning(cfg *config.Config) rotate.Tuning {
	return rotate.Tuning{
		Sensitivity: cfg.Globe.Sensitivity,
		Damping:     cfg.Globe.Damping,
		MinVelocity: cfg.Globe.MinVelocity,
	}
}

// ParallaxConfig converts the parallax section.
func ParallaxConfig(cfg *config.Config) parallax.Config {
	return parallax.Config{
		Smoothing: cfg.Parallax.Smoothing,
		Strength:  cfg.Parallax.Strength,
		Layers:    append([]float64(nil), cfg.Parallax.Layers...),
	}
}
