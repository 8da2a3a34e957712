package gaps

import (
	"errors"
	"time"
)

// ErrInvalidParameter is returned when a detector is called with a window
// below its documented minimum.
var ErrInvalidParameter = errors.New("invalid parameter")

// Series is an ordered sequence of sensor readings. Times is an opaque
// external index (original timestamps); it may be nil and is copied
// verbatim onto the returned Mask, never inspected or reordered.
type Series struct {
	Times  []time.Time
	Values []float64
}

// Mask is a per-point flag sequence aligned to the Series it was computed
// from. Flags[i] == true means point i is part of a flagged run.
type Mask struct {
	Times []time.Time
	Flags []bool
}

// Any reports whether at least one point is flagged.
func (m Mask) Any() bool {
	for _, f := range m.Flags {
		if f {
			return true
		}
	}
	return false
}

// All reports whether every point is flagged. True for an empty mask.
func (m Mask) All() bool {
	for _, f := range m.Flags {
		if !f {
			return false
		}
	}
	return true
}

// Count returns the number of flagged points.
func (m Mask) Count() int {
	n := 0
	for _, f := range m.Flags {
		if f {
			n++
		}
	}
	return n
}

// DiffConfig holds parameters for the tolerance-based detectors
type DiffConfig struct {
	// Window is the number of consecutive values which, if unchanged,
	// indicates stale data. Minimum 2 for StaleValuesDiff, 3 for
	// InterpolationDiff.
	Window int `yaml:"window"`

	// RTol is the relative tolerance for detecting a change in value.
	RTol float64 `yaml:"rtol"`

	// ATol is the absolute tolerance for detecting a change in value.
	ATol float64 `yaml:"atol"`
}

// RoundConfig holds parameters for the rounding-based stale detector
type RoundConfig struct {
	// Decimals is the number of decimal places to round to before
	// comparing values.
	Decimals int `yaml:"decimals"`

	// Window is the minimum run length of identical rounded values for
	// the run to be flagged. No minimum is enforced; see StaleValuesRound.
	Window int `yaml:"window"`
}

// DefaultDiffConfig returns the standard tolerances for StaleValuesDiff
// and InterpolationDiff
func DefaultDiffConfig() DiffConfig {
	return DiffConfig{
		Window: 3,
		RTol:   1e-5, // relative tolerance, matches common allclose defaults
		ATol:   1e-8, // absolute tolerance
	}
}

// DefaultRoundConfig returns the standard parameters for StaleValuesRound
func DefaultRoundConfig() RoundConfig {
	return RoundConfig{
		Decimals: 3, // millivolt-level resolution for typical telemetry
		Window:   4,
	}
}
