// Package config defines the run configuration for the detection
// pipeline: rule thresholds, correlation tolerances, and the catalog
// weight unit.
//
// Configuration is loaded once per run and passed explicitly into the
// engine; there is no ambient global state and no hot reload.
package config

import "time"

// WeightUnit is the unit the catalog's expected-weight column is
// expressed in. It is an explicit, validated value: assuming grams when
// a catalog ships kilograms would skew every weight-discrepancy result
// by a factor of 1000.
type WeightUnit string

const (
	WeightGrams     WeightUnit = "grams"
	WeightKilograms WeightUnit = "kilograms"
)

// Detection holds the per-rule thresholds and tolerances.
type Detection struct {
	// ScanWindowSeconds is the window after an RFID read within which a
	// matching POS scan clears the item (scanner avoidance). Inclusive
	// on both bounds.
	ScanWindowSeconds int `yaml:"scan_window_seconds"`

	// RecognitionToleranceSeconds is the maximum absolute distance
	// between a vision event and its nearest POS transaction (barcode
	// switching).
	RecognitionToleranceSeconds int `yaml:"recognition_tolerance_seconds"`

	// WeightTolerance is the relative deviation from the expected
	// weight that is still acceptable (0.10 = 10%).
	WeightTolerance float64 `yaml:"weight_tolerance"`

	// HeartbeatGapSeconds is the largest heartbeat gap that does not
	// count as downtime.
	HeartbeatGapSeconds int `yaml:"heartbeat_gap_seconds"`

	// QueueLengthThreshold is the largest acceptable customer count.
	// A count equal to the threshold does not fire.
	QueueLengthThreshold int `yaml:"queue_length_threshold"`

	// DwellTimeThresholdSeconds is the largest acceptable average dwell
	// time.
	DwellTimeThresholdSeconds int `yaml:"dwell_time_threshold_seconds"`
}

// CatalogConfig describes how to interpret the product catalog.
type CatalogConfig struct {
	WeightUnit WeightUnit `yaml:"weight_unit"`
}

// Config is the full run configuration.
type Config struct {
	Detection Detection     `yaml:"detection"`
	Catalog   CatalogConfig `yaml:"catalog"`
}

// Default returns the configuration used when no file is given. The
// values mirror the thresholds the recorded datasets were produced
// against.
func Default() Config {
	return Config{
		Detection: Detection{
			ScanWindowSeconds:           10,
			RecognitionToleranceSeconds: 3,
			WeightTolerance:             0.10,
			HeartbeatGapSeconds:         120,
			QueueLengthThreshold:        5,
			DwellTimeThresholdSeconds:   300,
		},
		Catalog: CatalogConfig{
			WeightUnit: WeightGrams,
		},
	}
}

// ScanWindow returns the scanner-avoidance window as a duration.
func (d Detection) ScanWindow() time.Duration {
	return time.Duration(d.ScanWindowSeconds) * time.Second
}

// RecognitionTolerance returns the barcode-switching tolerance as a
// duration.
func (d Detection) RecognitionTolerance() time.Duration {
	return time.Duration(d.RecognitionToleranceSeconds) * time.Second
}

// HeartbeatGap returns the downtime threshold as a duration.
func (d Detection) HeartbeatGap() time.Duration {
	return time.Duration(d.HeartbeatGapSeconds) * time.Second
}
