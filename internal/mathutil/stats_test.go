package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffs(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, Diffs([]float64{0, 1, 3, 6}))
	assert.Nil(t, Diffs([]float64{1}))
	assert.Nil(t, Diffs(nil))
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"single", []float64{3}, 3},
		{"odd_unsorted", []float64{5, 1, 3}, 3},
		{"even_mean_of_middles", []float64{4, 1, 3, 2}, 2.5},
		{"robust_to_outlier", []float64{1, 1, 1, 1, 100}, 1},
		{"duplicates", []float64{2, 2, 2, 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Median(tt.in))
		})
	}
}

func TestMedian_DoesNotMutate(t *testing.T) {
	in := []float64{3, 1, 2}
	_ = Median(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestMedian_Empty(t *testing.T) {
	assert.True(t, math.IsNaN(Median(nil)))
}

func TestStrictlyIncreasing(t *testing.T) {
	ok, idx := StrictlyIncreasing([]float64{1, 2, 3})
	assert.True(t, ok)
	assert.Equal(t, -1, idx)

	ok, idx = StrictlyIncreasing([]float64{1, 2, 2, 3})
	assert.False(t, ok)
	assert.Equal(t, 2, idx)

	ok, idx = StrictlyIncreasing([]float64{1, math.NaN(), 3})
	assert.False(t, ok)
	assert.Equal(t, 1, idx)
}

func TestAllFinite(t *testing.T) {
	ok, idx := AllFinite([]float64{0, 1, -2})
	assert.True(t, ok)
	assert.Equal(t, -1, idx)

	ok, idx = AllFinite([]float64{0, math.Inf(1)})
	assert.False(t, ok)
	assert.Equal(t, 1, idx)

	ok, idx = AllFinite([]float64{math.NaN(), 0})
	assert.False(t, ok)
	assert.Equal(t, 0, idx)
}

func TestTrapezoid(t *testing.T) {
	// Triangle of base 2 and height 1.
	assert.InDelta(t, 1.0, Trapezoid([]float64{0, 1, 2}, []float64{0, 1, 0}), 1e-12)
	assert.Zero(t, Trapezoid([]float64{1}, []float64{1}))
}
