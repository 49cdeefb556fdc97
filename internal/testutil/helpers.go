// Package testutil provides reusable test helpers for bandpass transform tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance    = 1e-10
	GridTolerance       = 1e-9
	RoundTripTolerance  = 1e-9
	BackendTolerance    = 1e-8
	ReconstructionLoose = 5e-2
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertStrictlyIncreasing verifies that every element exceeds its predecessor.
func AssertStrictlyIncreasing(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			return assert.Fail(t, "not strictly increasing",
				"s[%d]=%f <= s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertUniformSpacing verifies that s starts at start and advances by step.
func AssertUniformSpacing(t *testing.T, s []float64, start, step, tolerance float64) bool {
	t.Helper()
	for i, v := range s {
		want := start + float64(i)*step
		if !assert.InDelta(t, want, v, tolerance, "grid point %d", i) {
			return false
		}
	}
	return true
}

// AssertSlicesInDelta verifies element-wise closeness of two equal-length slices.
func AssertSlicesInDelta(t *testing.T, expected, actual []float64, tolerance float64) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, expected[i], actual[i], tolerance, "index %d", i) {
			return false
		}
	}
	return true
}

// AssertComplexInDelta verifies element-wise closeness of two complex slices.
func AssertComplexInDelta(t *testing.T, expected, actual []complex128, tolerance float64) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, real(expected[i]), real(actual[i]), tolerance, "real part of index %d", i) {
			return false
		}
		if !assert.InDelta(t, imag(expected[i]), imag(actual[i]), tolerance, "imag part of index %d", i) {
			return false
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// MaxAbsDiff returns the largest absolute element difference of two equal-length slices.
func MaxAbsDiff(a, b []float64) float64 {
	var maxDiff float64
	for i := range a {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}
	return maxDiff
}
