package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/runvoice/coach-engine/internal/engine"
)

// Config is the application configuration: athlete profile, workout defaults,
// logging and storage locations, and engine threshold overrides. Loaded once
// at startup; the engine config it produces is validated and immutable.
type Config struct {
	Athlete Athlete `mapstructure:"athlete"`
	Workout Workout `mapstructure:"workout"`
	Log     Log     `mapstructure:"log"`
	Store   Store   `mapstructure:"store"`
	Engine  Engine  `mapstructure:"engine"`
}

type Athlete struct {
	HRMax     float64 `mapstructure:"hr_max"`
	RestingHR float64 `mapstructure:"resting_hr"`
	Age       int     `mapstructure:"age"`
}

type Workout struct {
	Mode             string `mapstructure:"mode"`
	Style            string `mapstructure:"style"`
	IntervalTemplate string `mapstructure:"interval_template"`
}

type Log struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type Store struct {
	Path string `mapstructure:"path"`
}

// Engine holds the threshold overrides exposed in the config file. Anything
// not listed keeps the built-in default.
type Engine struct {
	HysteresisBPM        float64 `mapstructure:"hysteresis_bpm"`
	ZoneDwellSeconds     float64 `mapstructure:"zone_dwell_seconds"`
	MovementDwellSeconds float64 `mapstructure:"movement_dwell_seconds"`
	HRLostAfterSeconds   float64 `mapstructure:"hr_lost_after_seconds"`
	EasyRunSilenceBase   float64 `mapstructure:"easy_run_silence_base_seconds"`
	IntervalWorkSilence  float64 `mapstructure:"interval_work_silence_seconds"`
	SustainedRepeatSecs  float64 `mapstructure:"sustained_repeat_seconds"`
	UnifiedRouter        bool    `mapstructure:"unified_router"`
}

// DefaultDir is where the config file and data live by default.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".coach-engine")
}

// Load reads the config file (if present) over built-in defaults. An absent
// file is fine; a malformed one is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	dir := DefaultDir()
	base := engine.DefaultConfig()

	v.SetDefault("athlete.hr_max", 0)
	v.SetDefault("athlete.resting_hr", 0)
	v.SetDefault("athlete.age", 0)

	v.SetDefault("workout.mode", string(engine.ModeEasyRun))
	v.SetDefault("workout.style", string(engine.StyleStandard))
	v.SetDefault("workout.interval_template", "4x240/120")

	v.SetDefault("log.file", filepath.Join(dir, "coach-engine.log"))
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)

	v.SetDefault("store.path", filepath.Join(dir, "sessions.db"))

	v.SetDefault("engine.hysteresis_bpm", base.HysteresisBPM)
	v.SetDefault("engine.zone_dwell_seconds", base.ZoneDwellSeconds)
	v.SetDefault("engine.movement_dwell_seconds", base.MovementDwellSeconds)
	v.SetDefault("engine.hr_lost_after_seconds", base.HRLostAfterSeconds)
	v.SetDefault("engine.easy_run_silence_base_seconds", base.EasyRunSilenceBaseSeconds)
	v.SetDefault("engine.interval_work_silence_seconds", base.IntervalWorkSilenceSeconds)
	v.SetDefault("engine.sustained_repeat_seconds", base.SustainedRepeatSeconds)
	v.SetDefault("engine.unified_router", base.UnifiedRouter)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// EngineConfig applies the overrides onto the engine defaults and validates
// the result.
func (c *Config) EngineConfig() (engine.EngineConfig, error) {
	ec := engine.DefaultConfig()
	ec.HysteresisBPM = c.Engine.HysteresisBPM
	ec.ZoneDwellSeconds = c.Engine.ZoneDwellSeconds
	ec.MovementDwellSeconds = c.Engine.MovementDwellSeconds
	ec.HRLostAfterSeconds = c.Engine.HRLostAfterSeconds
	ec.EasyRunSilenceBaseSeconds = c.Engine.EasyRunSilenceBase
	ec.IntervalWorkSilenceSeconds = c.Engine.IntervalWorkSilence
	ec.SustainedRepeatSeconds = c.Engine.SustainedRepeatSecs
	ec.UnifiedRouter = c.Engine.UnifiedRouter
	if err := ec.Validate(); err != nil {
		return engine.EngineConfig{}, err
	}
	return ec, nil
}
