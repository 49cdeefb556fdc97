package bandpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-bandpass-fourier/internal/testutil"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{"Angstrom", Angstrom},
		{"AA", Angstrom},
		{" angstroms ", Angstrom},
		{"nm", Nanometer},
		{"NM", Nanometer},
		{"micron", Micrometer},
		{"um", Micrometer},
		{"m", Meter},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnit(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseUnit("parsec")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestUnit_Convert(t *testing.T) {
	v, err := Nanometer.Convert(500, Angstrom)
	require.NoError(t, err)
	assert.InDelta(t, 5000.0, v, 1e-9)

	v, err = Angstrom.Convert(5000, Micrometer)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v, 1e-12)

	v, err = Unit("").Convert(1, Angstrom)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	_, err = Unit("cubit").Convert(1, Angstrom)
	require.ErrorIs(t, err, ErrUnknownUnit)

	_, err = Angstrom.Convert(1, "cubit")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestQuantity_In(t *testing.T) {
	q := Quantity{Value: 5000, Unit: Angstrom}

	nm, err := q.In(Nanometer)
	require.NoError(t, err)
	assert.Equal(t, Nanometer, nm.Unit)
	assert.InDelta(t, 500.0, nm.Value, 1e-12)
	assert.Equal(t, "500 nm", nm.String())

	_, err = q.In("cubit")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestSampledFilter_In(t *testing.T) {
	wl := testutil.UniformWavelengths(4000, 10, 5)
	f, err := NewSampledFilter(wl, []float64{0, 0.5, 1, 0.5, 0}, Angstrom)
	require.NoError(t, err)

	nm, err := f.In(Nanometer)
	require.NoError(t, err)
	testutil.AssertSlicesInDelta(t, []float64{400, 401, 402, 403, 404}, nm.Wavelength, 1e-9)
	assert.Equal(t, f.Throughput, nm.Throughput)
	assert.Equal(t, Angstrom, f.Unit, "receiver must not change")

	lo, hi := nm.Range()
	assert.Equal(t, Nanometer, lo.Unit)
	assert.InDelta(t, 404.0, hi.Value, 1e-9)
}

func TestNewSampledFilter_CopiesInput(t *testing.T) {
	wl := []float64{1, 2, 3}
	tp := []float64{0, 1, 0}
	f, err := NewSampledFilter(wl, tp, "")
	require.NoError(t, err)

	wl[0], tp[1] = 0.5, 0.25
	assert.Equal(t, []float64{1, 2, 3}, f.Wavelength)
	assert.Equal(t, []float64{0, 1, 0}, f.Throughput)
	assert.Equal(t, Angstrom, f.WavelengthUnit())
}

func TestParameterSet_In(t *testing.T) {
	p := testParams(2)
	um, err := p.In(Micrometer)
	require.NoError(t, err)

	assert.InDelta(t, testLambda0*1e-4, um.Lambda0, 1e-12)
	assert.InDelta(t, testDeltaLambda*1e-4, um.DeltaLambda, 1e-15)
	assert.Equal(t, p.Coefficients, um.Coefficients)
	assert.Equal(t, Angstrom, p.Unit)

	end := p.GridEnd()
	assert.InDelta(t, testLambda0+63*testDeltaLambda, end.Value, 1e-9)
	assert.Equal(t, Angstrom, end.Unit)
	assert.Equal(t, Angstrom, p.DeltaLambdaQuantity().Unit)
}
