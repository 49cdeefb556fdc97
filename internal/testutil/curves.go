package testutil

import (
	"math"
	"math/rand"
)

// UniformWavelengths returns n wavelengths starting at start spaced by step.
func UniformWavelengths(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// JitteredWavelengths returns a strictly increasing grid whose spacing varies
// by up to ±jitter*step around step. The seed makes it reproducible.
func JitteredWavelengths(seed int64, start, step, jitter float64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	x := start
	for i := range out {
		out[i] = x
		x += step * (1 + jitter*(2*rng.Float64()-1))
	}
	return out
}

// GaussianThroughput evaluates a Gaussian bandpass of the given peak, center
// and width at each wavelength.
func GaussianThroughput(wavelengths []float64, peak, center, sigma float64) []float64 {
	out := make([]float64, len(wavelengths))
	for i, w := range wavelengths {
		d := (w - center) / sigma
		out[i] = peak * math.Exp(-0.5*d*d)
	}
	return out
}

// TopHatThroughput evaluates a smoothed top-hat bandpass with cosine edges of
// width edge on both sides of [lo, hi].
func TopHatThroughput(wavelengths []float64, peak, lo, hi, edge float64) []float64 {
	out := make([]float64, len(wavelengths))
	for i, w := range wavelengths {
		switch {
		case w < lo-edge || w > hi+edge:
			out[i] = 0
		case w < lo:
			out[i] = peak * 0.5 * (1 + math.Cos(math.Pi*(lo-w)/edge))
		case w > hi:
			out[i] = peak * 0.5 * (1 + math.Cos(math.Pi*(w-hi)/edge))
		default:
			out[i] = peak
		}
	}
	return out
}

// Zeros returns a slice of n zeros.
func Zeros(n int) []float64 {
	return make([]float64, n)
}

// Sum returns the sum of s.
func Sum(s []float64) float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}
