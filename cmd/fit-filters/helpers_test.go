package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bandpass "github.com/tphakala/go-bandpass-fourier"
	"github.com/tphakala/go-bandpass-fourier/internal/filterio"
	"github.com/tphakala/go-bandpass-fourier/internal/store"
	"github.com/tphakala/go-bandpass-fourier/internal/tableio"
	"github.com/tphakala/go-bandpass-fourier/internal/testutil"
)

func writeCurve(t *testing.T, dir, name string, start float64) string {
	t.Helper()
	wl := testutil.UniformWavelengths(start, 0.5, 400)
	curve, err := bandpass.NewSampledFilter(wl, testutil.GaussianThroughput(wl, 0.3, wl[200], 20), bandpass.Nanometer)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, filterio.WriteFile(path, curve))
	return path
}

func testOptions() options {
	return options{
		terms:       bandpass.DefaultTerms,
		inputUnit:   "Angstrom",
		tableUnit:   "Angstrom",
		backend:     string(bandpass.BackendGonum),
		parallel:    true,
		pattern:     "*",
		compression: tableio.CompressionSnappy,
		timeout:     time.Second,
	}
}

func TestOptionsConfig(t *testing.T) {
	opts := testOptions()
	opts.tableUnit = "nm"
	opts.workers = 4

	cfg, err := opts.config(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, bandpass.Nanometer, cfg.Unit)
	assert.Equal(t, 4, cfg.MaxWorkers)

	opts.terms = 0
	_, err = opts.config(zap.NewNop())
	require.ErrorIs(t, err, bandpass.ErrInvalidConfig)

	opts = testOptions()
	opts.backend = "fftw"
	_, err = opts.config(zap.NewNop())
	require.ErrorIs(t, err, bandpass.ErrInvalidConfig)

	opts = testOptions()
	opts.tableUnit = "league"
	_, err = opts.config(zap.NewNop())
	require.ErrorIs(t, err, bandpass.ErrUnknownUnit)
}

func TestOptionsEntries(t *testing.T) {
	dir := t.TempDir()
	writeCurve(t, dir, "b.dat", 500)
	writeCurve(t, dir, "a.dat", 400)
	extra := writeCurve(t, t.TempDir(), "z.dat", 700)

	opts := testOptions()
	opts.dir = dir
	opts.pattern = "*.dat"
	opts.paths = []string{extra}

	entries, err := opts.entries()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, "b", entries[1].Name)
	assert.Equal(t, "z", entries[2].Name)

	opts = testOptions()
	opts.dir = t.TempDir()
	_, err = opts.entries()
	require.Error(t, err)
}

func TestFit_WritesTable(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	opts := testOptions()
	opts.paths = []string{writeCurve(t, in, "sdss_g.dat", 400), writeCurve(t, in, "sdss_r.dat", 550)}
	opts.output = filepath.Join(out, "sdss.parquet")
	opts.terms = 12

	require.NoError(t, fit(context.Background(), opts, store.S3Config{}, zap.NewNop()))

	data, err := os.ReadFile(opts.output)
	require.NoError(t, err)
	table, err := tableio.Read(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, []string{"sdss_g", "sdss_r"}, table.Names())
	assert.Equal(t, 12, table.Terms())

	g, ok := table.Lookup("sdss_g")
	require.True(t, ok)
	// Curves declare nm; the table stores Angstrom.
	assert.InDelta(t, 4000.0, g.Lambda0, 1e-9)
	assert.InDelta(t, 5.0, g.DeltaLambda, 1e-9)
	assert.Equal(t, 400, g.NLambda)
}

func TestFit_PropagatesBatchFailure(t *testing.T) {
	in := t.TempDir()
	flat := filepath.Join(in, "flat.dat")
	require.NoError(t, os.WriteFile(flat, []byte("4000 0\n4001 0\n4002 0\n"), 0o600))

	opts := testOptions()
	// Few enough terms for the three-sample curve to reach the peak check.
	opts.terms = 2
	opts.paths = []string{writeCurve(t, in, "ok.dat", 400), flat}
	opts.output = filepath.Join(t.TempDir(), "t.parquet")

	err := fit(context.Background(), opts, store.S3Config{}, zap.NewNop())
	require.ErrorIs(t, err, bandpass.ErrBatch)
	require.ErrorIs(t, err, bandpass.ErrDegenerateFilter)
	assert.NoFileExists(t, opts.output)
}
