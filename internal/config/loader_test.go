package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10, cfg.Detection.ScanWindowSeconds)
	assert.Equal(t, 3, cfg.Detection.RecognitionToleranceSeconds)
	assert.Equal(t, 0.10, cfg.Detection.WeightTolerance)
	assert.Equal(t, 120, cfg.Detection.HeartbeatGapSeconds)
	assert.Equal(t, 5, cfg.Detection.QueueLengthThreshold)
	assert.Equal(t, 300, cfg.Detection.DwellTimeThresholdSeconds)
	assert.Equal(t, WeightGrams, cfg.Catalog.WeightUnit)
}

func TestParse_PartialOverridesKeepDefaults(t *testing.T) {
	cfg, err := Parse("sentinel.yaml", []byte(`
detection:
  queue_length_threshold: 8
catalog:
  weight_unit: kilograms
`))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Detection.QueueLengthThreshold)
	assert.Equal(t, WeightKilograms, cfg.Catalog.WeightUnit)
	// Untouched fields keep defaults.
	assert.Equal(t, 10, cfg.Detection.ScanWindowSeconds)
	assert.Equal(t, 0.10, cfg.Detection.WeightTolerance)
}

func TestParse_RejectsUnknownWeightUnit(t *testing.T) {
	_, err := Parse("sentinel.yaml", []byte(`
catalog:
  weight_unit: pounds
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weight_unit")
}

func TestParse_RejectsOutOfRangeTolerance(t *testing.T) {
	_, err := Parse("sentinel.yaml", []byte(`
detection:
  weight_tolerance: 1.5
`))
	assert.Error(t, err)
}

func TestParse_RejectsNonIntegerWindow(t *testing.T) {
	_, err := Parse("sentinel.yaml", []byte(`
detection:
  scan_window_seconds: ten
`))
	assert.Error(t, err)
}

func TestParse_RejectsMalformedYAML(t *testing.T) {
	_, err := Parse("sentinel.yaml", []byte("detection: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentinel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("detection:\n  heartbeat_gap_seconds: 60\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Detection.HeartbeatGapSeconds)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDetection_DurationAccessors(t *testing.T) {
	d := Default().Detection
	assert.Equal(t, 10*time.Second, d.ScanWindow())
	assert.Equal(t, 3*time.Second, d.RecognitionTolerance())
	assert.Equal(t, 2*time.Minute, d.HeartbeatGap())
}
