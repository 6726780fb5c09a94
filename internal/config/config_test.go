package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runvoice/coach-engine/internal/engine"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		// an explicit missing file is an error; defaults come from no path
		cfg, err = Load("")
	}
	require.NoError(t, err)

	assert.Equal(t, string(engine.ModeEasyRun), cfg.Workout.Mode)
	assert.Equal(t, string(engine.StyleStandard), cfg.Workout.Style)
	assert.Equal(t, "4x240/120", cfg.Workout.IntervalTemplate)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)

	ec, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultConfig(), ec)
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
athlete:
  hr_max: 190
  resting_hr: 55
workout:
  mode: interval
  style: aggressive
  interval_template: 6x180/60
engine:
  hysteresis_bpm: 5
  zone_dwell_seconds: 10
  unified_router: false
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 190.0, cfg.Athlete.HRMax)
	assert.Equal(t, "interval", cfg.Workout.Mode)
	assert.Equal(t, "6x180/60", cfg.Workout.IntervalTemplate)

	ec, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, 5.0, ec.HysteresisBPM)
	assert.Equal(t, 10.0, ec.ZoneDwellSeconds)
	assert.False(t, ec.UnifiedRouter)
	// untouched knobs keep the defaults
	assert.Equal(t, engine.DefaultConfig().MovementDwellSeconds, ec.MovementDwellSeconds)
}

func TestLoadInvalidOverridesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  zone_dwell_seconds: 0\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	_, err = cfg.EngineConfig()
	assert.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":: not yaml ::"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
