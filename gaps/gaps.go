// Package gaps flags suspect points in ordered telemetry series: readings
// stuck at a constant value (frozen sensor) and runs forming an
// artificially straight line (a gap filled by linear interpolation).
// Detectors return a boolean mask aligned to the input series; the data
// itself is never modified or repaired.
package gaps

import (
	"fmt"
	"math"
)

// StaleValuesDiff identifies stale values in the series.
//
// For a window of length N, the last value is flagged when every value in
// the window is within tolerance of the window's first value. Positions
// without a full window of history are never flagged. Returns
// ErrInvalidParameter if cfg.Window < 2.
func StaleValuesDiff(s Series, cfg DiffConfig) (Mask, error) {
	if cfg.Window < 2 {
		return Mask{}, fmt.Errorf("%w: window set to %d, must be at least 2", ErrInvalidParameter, cfg.Window)
	}
	return Mask{Times: s.Times, Flags: staleDiffMask(s.Values, cfg.Window, cfg.RTol, cfg.ATol)}, nil
}

// InterpolationDiff identifies sequences which appear to be linear.
//
// A sequence is linear when its first difference is constant within
// tolerance: the series is differenced and the stale-value check runs on
// the differences with a window one shorter. The returned mask is aligned
// to the original series; the leading position, which has no difference,
// is never flagged. Returns ErrInvalidParameter if cfg.Window < 3.
func InterpolationDiff(s Series, cfg DiffConfig) (Mask, error) {
	if cfg.Window < 3 {
		return Mask{}, fmt.Errorf("%w: window set to %d, must be at least 3", ErrInvalidParameter, cfg.Window)
	}

	// The leading difference is undefined; NaN keeps it out of any
	// tolerance-equal window.
	diffs := make([]float64, len(s.Values))
	if len(diffs) > 0 {
		diffs[0] = math.NaN()
	}
	for i := 1; i < len(s.Values); i++ {
		diffs[i] = s.Values[i] - s.Values[i-1]
	}

	// Window reduced by 1 because the check runs on first differences.
	return Mask{Times: s.Times, Flags: staleDiffMask(diffs, cfg.Window-1, cfg.RTol, cfg.ATol)}, nil
}

// StaleValuesRound identifies stale values by rounding.
//
// A value is flagged when it belongs to a run of at least cfg.Window
// consecutive values that are identical after rounding to cfg.Decimals
// decimal places. Unlike StaleValuesDiff, the entire run is flagged, not
// only its tail. No minimum window is enforced: window <= 1 degenerates
// to flagging every point, window > len(s.Values) flags nothing.
func StaleValuesRound(s Series, cfg RoundConfig) Mask {
	return Mask{Times: s.Times, Flags: roundedRunMask(s.Values, cfg.Decimals, cfg.Window)}
}

// staleDiffMask flags each position whose trailing window of `window`
// values is entirely within tolerance of the window's first value.
func staleDiffMask(x []float64, window int, rtol, atol float64) []bool {
	flags := make([]bool, len(x))
	for i := window - 1; i < len(x); i++ {
		flags[i] = allCloseToFirst(x[i-window+1:i+1], rtol, atol)
	}
	return flags
}

// allCloseToFirst tests whether every value in w satisfies
// |v - w[0]| <= atol + rtol*|w[0]|. The anchor is always the window's
// first element, not the previous value, so slow drift passes only while
// it stays within tolerance of the anchor. A non-finite anchor or member
// never compares equal.
func allCloseToFirst(w []float64, rtol, atol float64) bool {
	ref := w[0]
	if !isFinite(ref) {
		return false
	}
	tol := atol + rtol*math.Abs(ref)
	for _, v := range w[1:] {
		if !isFinite(v) || math.Abs(v-ref) > tol {
			return false
		}
	}
	return true
}

// roundedRunMask rounds the series to `decimals` places and flags every
// member of each maximal run of identical rounded values of length at
// least `window`. Runs are delimited by the first difference of the
// rounded series, so non-finite values never extend a run (Inf-Inf and
// NaN-NaN are not zero).
func roundedRunMask(x []float64, decimals, window int) []bool {
	flags := make([]bool, len(x))
	if len(x) == 0 {
		return flags
	}

	// Ties round to even, not away from zero.
	scale := math.Pow(10, float64(decimals))
	rounded := make([]float64, len(x))
	for i, v := range x {
		rounded[i] = math.RoundToEven(v*scale) / scale
	}

	runStart := 0
	for i := 1; i <= len(rounded); i++ {
		if i < len(rounded) && rounded[i]-rounded[i-1] == 0 {
			continue
		}
		if i-runStart >= window {
			for j := runStart; j < i; j++ {
				flags[j] = true
			}
		}
		runStart = i
	}
	return flags
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
