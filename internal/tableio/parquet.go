// Package tableio stores filter parameter tables as Parquet files.
//
// Each filter is one row. The coefficients are a repeated {real, imag} group
// whose element k is the table column fft_k, so tables of any truncation
// share a single schema. The wavelength unit and the coefficient count are
// kept in the file's key/value metadata.
package tableio

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	parquet "github.com/parquet-go/parquet-go"

	bandpass "github.com/tphakala/go-bandpass-fourier"
)

// Metadata keys.
const (
	MetaWavelengthUnit = "wavelength_unit"
	MetaTerms          = "n_terms"
)

const readBatchSize = 256

// ErrFormat indicates a file that is not a valid parameter table.
var ErrFormat = errors.New("invalid parameter table file")

// Compression names accepted by ParseCompression.
const (
	CompressionSnappy = "snappy"
	CompressionZstd   = "zstd"
	CompressionGzip   = "gzip"
	CompressionNone   = "none"
)

// Options configures Write.
type Options struct {
	// Compression is one of the Compression* names. Empty means snappy.
	Compression string
}

type coefficient struct {
	Real float64 `parquet:"real"`
	Imag float64 `parquet:"imag"`
}

type record struct {
	Filter      string        `parquet:"filter"`
	NLambda     int64         `parquet:"n_lambda"`
	Lambda0     float64       `parquet:"lambda_0"`
	DeltaLambda float64       `parquet:"delta_lambda"`
	TrMax       float64       `parquet:"tr_max"`
	FFT         []coefficient `parquet:"fft"`
}

// ParseCompression maps a compression name to a parquet writer option.
func ParseCompression(name string) (parquet.WriterOption, error) {
	switch strings.ToLower(name) {
	case "", CompressionSnappy:
		return parquet.Compression(&parquet.Snappy), nil
	case CompressionZstd:
		return parquet.Compression(&parquet.Zstd), nil
	case CompressionGzip, "gz":
		return parquet.Compression(&parquet.Gzip), nil
	case CompressionNone, "uncompressed":
		return parquet.Compression(&parquet.Uncompressed), nil
	default:
		return nil, fmt.Errorf("unknown compression %q", name)
	}
}

// Write encodes t as a Parquet file.
func Write(w io.Writer, t *bandpass.Table, opts Options) error {
	if t == nil {
		return fmt.Errorf("%w: table is nil", bandpass.ErrInvalidInput)
	}

	compression, err := ParseCompression(opts.Compression)
	if err != nil {
		return err
	}

	pw := parquet.NewGenericWriter[record](w,
		compression,
		parquet.KeyValueMetadata(MetaWavelengthUnit, t.Unit().String()),
		parquet.KeyValueMetadata(MetaTerms, strconv.Itoa(t.Terms())),
	)

	rows := make([]record, t.Len())
	for i, row := range t.Rows() {
		rows[i] = toRecord(row)
	}

	if _, err := pw.Write(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// Read decodes a table written by Write.
func Read(r io.ReaderAt, size int64) (*bandpass.Table, error) {
	f, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	unitName, ok := f.Lookup(MetaWavelengthUnit)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s metadata", ErrFormat, MetaWavelengthUnit)
	}
	unit, err := bandpass.ParseUnit(unitName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	termsText, ok := f.Lookup(MetaTerms)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s metadata", ErrFormat, MetaTerms)
	}
	terms, err := strconv.Atoi(termsText)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrFormat, MetaTerms, termsText)
	}

	table, err := bandpass.NewTable(terms, unit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	gr := parquet.NewGenericReader[record](r)
	defer gr.Close()

	batch := make([]record, readBatchSize)
	for {
		n, err := gr.Read(batch)
		for _, rec := range batch[:n] {
			if appendErr := table.Append(rec.Filter, fromRecord(rec, unit)); appendErr != nil {
				return nil, fmt.Errorf("%w: %w", ErrFormat, appendErr)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rows: %w", err)
		}
	}

	return table, nil
}

func toRecord(row bandpass.Row) record {
	p := row.Params
	fft := make([]coefficient, len(p.Coefficients))
	for k, c := range p.Coefficients {
		fft[k] = coefficient{Real: real(c), Imag: imag(c)}
	}
	return record{
		Filter:      row.Name,
		NLambda:     int64(p.NLambda),
		Lambda0:     p.Lambda0,
		DeltaLambda: p.DeltaLambda,
		TrMax:       p.TrMax,
		FFT:         fft,
	}
}

func fromRecord(rec record, unit bandpass.Unit) *bandpass.ParameterSet {
	coeffs := make([]complex128, len(rec.FFT))
	for k, c := range rec.FFT {
		coeffs[k] = complex(c.Real, c.Imag)
	}
	return &bandpass.ParameterSet{
		NLambda:      int(rec.NLambda),
		Lambda0:      rec.Lambda0,
		DeltaLambda:  rec.DeltaLambda,
		TrMax:        rec.TrMax,
		Coefficients: coeffs,
		Unit:         unit,
	}
}
