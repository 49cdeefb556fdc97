package engine

import (
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// Peak returns the maximum of series. An empty series has peak 0.
func Peak(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return floats.Max(series)
}

// Normalize divides series by its peak in place and returns the peak.
// ok is false when the peak is not positive; series is left untouched then.
//
// Division (not multiplication by the reciprocal) keeps the peak sample at
// exactly 1.0.
func Normalize(series []float64) (peak float64, ok bool) {
	peak = Peak(series)
	if peak <= 0 {
		return peak, false
	}
	for i := range series {
		series[i] /= peak
	}
	return peak, true
}

// Scale multiplies series by s in place.
func Scale(series []float64, s float64) {
	f64.Scale(series, series, s)
}
