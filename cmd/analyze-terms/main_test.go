package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bandpass "github.com/tphakala/go-bandpass-fourier"
	"github.com/tphakala/go-bandpass-fourier/internal/testutil"
)

func TestParseTerms(t *testing.T) {
	terms, err := parseTerms(" 1, 5,10 ,,20")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 10, 20}, terms)

	for _, bad := range []string{"", ",", "a", "0", "-3"} {
		_, err := parseTerms(bad)
		require.Error(t, err, bad)
	}
}

func TestClampTerms(t *testing.T) {
	in := []int{1, 10, 100}
	assert.Equal(t, []int{1, 10}, clampTerms(in, 50))
	assert.Equal(t, []int{1, 10, 100}, in, "input must not change")
	assert.Equal(t, []int{5}, clampTerms([]int{10, 20}, 5))
}

func TestReport(t *testing.T) {
	wl := testutil.UniformWavelengths(5000, 2, 200)
	curve, err := bandpass.NewSampledFilter(wl, testutil.GaussianThroughput(wl, 0.4, wl[100], 30), bandpass.Angstrom)
	require.NoError(t, err)

	sweep, err := bandpass.SweepTerms(curve, []int{1, 10})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report(&buf, "g", curve, sweep))

	out := buf.String()
	assert.Contains(t, out, "=== g: 200 samples, 5000 Angstrom .. 5398 Angstrom ===")
	assert.Contains(t, out, "integral ratio")
	assert.Equal(t, 5, bytes.Count(buf.Bytes(), []byte("\n")))
}
