package bandpass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams(terms int) *ParameterSet {
	coeffs := make([]complex128, terms)
	for k := range coeffs {
		coeffs[k] = complex(float64(terms-k), float64(k))
	}
	return &ParameterSet{
		NLambda:      64,
		Lambda0:      testLambda0,
		DeltaLambda:  testDeltaLambda,
		TrMax:        testTrMax,
		Coefficients: coeffs,
		Unit:         Angstrom,
	}
}

func TestTable_Columns(t *testing.T) {
	table, err := NewTable(3, Angstrom)
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"filter", "n_lambda", "lambda_0", "delta_lambda", "tr_max", "fft_0", "fft_1", "fft_2"},
		table.Columns())
	assert.Equal(t, "fft_12", CoefficientColumn(12))
}

func TestNewTable_Invalid(t *testing.T) {
	_, err := NewTable(0, Angstrom)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewTable(3, "cubit")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestTable_Append(t *testing.T) {
	table, err := NewTable(3, Angstrom)
	require.NoError(t, err)

	require.NoError(t, table.Append("sdss_g", testParams(3)))
	require.NoError(t, table.Append("sdss_r", testParams(3)))

	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"sdss_g", "sdss_r"}, table.Names())

	err = table.Append("sdss_i", testParams(4))
	require.ErrorIs(t, err, ErrColumnMismatch)

	err = table.Append("sdss_g", testParams(3))
	require.ErrorIs(t, err, ErrInvalidInput)

	err = table.Append("", testParams(3))
	require.ErrorIs(t, err, ErrInvalidInput)

	err = table.Append("nil", nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	bad := testParams(3)
	bad.DeltaLambda = -1
	err = table.Append("bad", bad)
	require.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, 2, table.Len(), "failed appends must not add rows")
}

func TestTable_AppendConvertsUnits(t *testing.T) {
	table, err := NewTable(3, Angstrom)
	require.NoError(t, err)

	nm := testParams(3)
	nm.Unit = Nanometer
	nm.Lambda0 = 456.2
	nm.DeltaLambda = 0.05
	require.NoError(t, table.Append("nm_filter", nm))

	got, ok := table.Lookup("nm_filter")
	require.True(t, ok)
	assert.Equal(t, Angstrom, got.Unit)
	assert.InDelta(t, 4562.0, got.Lambda0, 1e-9)
	assert.InDelta(t, 0.5, got.DeltaLambda, 1e-12)
	assert.Equal(t, nm.Coefficients, got.Coefficients)
	assert.Equal(t, Nanometer, nm.Unit, "input must not be modified")
}

func TestTable_LookupReturnsCopy(t *testing.T) {
	table, err := NewTable(3, Angstrom)
	require.NoError(t, err)
	require.NoError(t, table.Append("f", testParams(3)))

	got, ok := table.Lookup("f")
	require.True(t, ok)
	got.Coefficients[0] = 0
	got.TrMax = 99

	again, ok := table.Lookup("f")
	require.True(t, ok)
	assert.Equal(t, complex(3, 0), again.Coefficients[0])
	assert.Equal(t, testTrMax, again.TrMax)

	_, ok = table.Lookup("missing")
	assert.False(t, ok)
}

func TestTable_Reconstruct(t *testing.T) {
	curve := gaussianFilter(t, testMidLen)
	table, err := newTestCollector(t, Config{}).Collect([]Entry{{Name: "g", Curve: curve}})
	require.NoError(t, err)

	rec, err := table.Reconstruct("g")
	require.NoError(t, err)

	params, err := Forward(curve, DefaultTerms)
	require.NoError(t, err)
	want, err := Inverse(params)
	require.NoError(t, err)
	assert.Equal(t, want, rec)

	_, err = table.Reconstruct("missing")
	require.ErrorIs(t, err, ErrNotFound)
}
