// Package mathutil provides small numerical helpers for sampled curves.
package mathutil

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/integrate"
)

// medianDivisor splits an even-length sorted slice into its two middle elements.
const medianDivisor = 2

// Diffs returns the successive differences s[i+1]-s[i].
// The result has len(s)-1 elements; nil for fewer than two inputs.
func Diffs(s []float64) []float64 {
	if len(s) < 2 {
		return nil
	}
	out := make([]float64, len(s)-1)
	for i := range out {
		out[i] = s[i+1] - s[i]
	}
	return out
}

// Median returns the median of s without modifying it.
// For even lengths it is the mean of the two middle values. NaN for empty input.
func Median(s []float64) float64 {
	n := len(s)
	if n == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(s)
	slices.Sort(sorted)

	mid := n / medianDivisor
	if n%medianDivisor == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / medianDivisor
}

// StrictlyIncreasing reports whether every element exceeds its predecessor.
// It returns the index of the first offending element, or -1.
func StrictlyIncreasing(s []float64) (bool, int) {
	for i := 1; i < len(s); i++ {
		if !(s[i] > s[i-1]) {
			return false, i
		}
	}
	return true, -1
}

// AllFinite reports whether s has no NaN or Inf values.
// It returns the index of the first non-finite element, or -1.
func AllFinite(s []float64) (bool, int) {
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false, i
		}
	}
	return true, -1
}

// Trapezoid integrates f sampled at x with the trapezoidal rule.
func Trapezoid(x, f []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return integrate.Trapezoidal(x, f)
}
