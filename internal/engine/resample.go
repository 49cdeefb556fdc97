// Package engine implements the numerical kernels behind the bandpass transforms:
// uniform grids, linear resampling, peak normalization and discrete Fourier transforms.
package engine

import (
	"errors"

	"gonum.org/v1/gonum/interp"
)

// ErrTooFewPoints is returned when fewer than two support points are given.
var ErrTooFewPoints = errors.New("engine: at least two support points required")

// LinearResampler evaluates a piecewise-linear curve at arbitrary abscissae.
// Points outside the fitted domain evaluate to a constant fill value instead of
// being extrapolated.
type LinearResampler struct {
	pl   interp.PiecewiseLinear
	lo   float64
	hi   float64
	fill float64
}

// NewLinearResampler fits xs/ys. xs must be strictly increasing; callers are
// expected to have validated this.
func NewLinearResampler(xs, ys []float64) (*LinearResampler, error) {
	if len(xs) < minGridPoints || len(xs) != len(ys) {
		return nil, ErrTooFewPoints
	}

	r := &LinearResampler{
		lo:   xs[0],
		hi:   xs[len(xs)-1],
		fill: outsideFill,
	}
	if err := r.pl.Fit(xs, ys); err != nil {
		return nil, err
	}
	return r, nil
}

// At returns the interpolated value at x.
func (r *LinearResampler) At(x float64) float64 {
	if x < r.lo || x > r.hi {
		return r.fill
	}
	return r.pl.Predict(x)
}

// Resample evaluates the curve at every point in grid.
// dst is reused when it has enough capacity.
func (r *LinearResampler) Resample(dst, grid []float64) []float64 {
	if cap(dst) < len(grid) {
		dst = make([]float64, len(grid))
	}
	dst = dst[:len(grid)]
	for i, x := range grid {
		dst[i] = r.At(x)
	}
	return dst
}

// Resample is a one-shot helper around LinearResampler.
func Resample(xs, ys, grid []float64) ([]float64, error) {
	r, err := NewLinearResampler(xs, ys)
	if err != nil {
		return nil, err
	}
	return r.Resample(nil, grid), nil
}
