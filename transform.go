package bandpass

import (
	"fmt"

	"github.com/tphakala/go-bandpass-fourier/internal/engine"
	"github.com/tphakala/go-bandpass-fourier/internal/mathutil"
	"go.uber.org/zap"
)

// Transformer converts sampled filters to parameter sets and back.
//
// A Transformer holds only immutable configuration and is safe for
// concurrent use. Every call allocates its own working buffers.
type Transformer struct {
	config Config
}

// New creates a Transformer with the specified configuration.
func New(config *Config) (*Transformer, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Transformer{config: config.withDefaults()}, nil
}

// Terms returns the configured truncation count.
func (t *Transformer) Terms() int { return t.config.Terms }

// Config returns the effective configuration, defaults applied.
func (t *Transformer) Config() Config { return t.config }

// Resampled is a curve on its uniform transform grid, normalized to peak 1.
type Resampled struct {
	// Grid is Lambda0 + k*DeltaLambda for k = 0..len-1.
	Grid []float64

	// Normalized is the resampled throughput divided by TrMax.
	Normalized []float64

	Lambda0     float64
	DeltaLambda float64
	TrMax       float64
	Unit        Unit
}

// Resample performs the grid construction, interpolation and peak
// normalization steps of Forward without the Fourier transform.
func (t *Transformer) Resample(curve Curve) (*Resampled, error) {
	if curve == nil {
		return nil, fmt.Errorf("%w: curve is nil", ErrInvalidInput)
	}

	unit, err := t.unitOf(curve)
	if err != nil {
		return nil, err
	}

	wavelength, throughput := curve.Wavelengths(), curve.Throughputs()
	if err := validateSamples(wavelength, throughput); err != nil {
		return nil, err
	}

	// The grid keeps the input cardinality. The median spacing is robust to
	// irregular sampling where the mean is not.
	n := len(wavelength)
	lambda0 := wavelength[0]
	delta := mathutil.Median(mathutil.Diffs(wavelength))
	grid := engine.UniformGrid(lambda0, delta, n)

	series, err := engine.Resample(wavelength, throughput, grid)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	trMax, ok := engine.Normalize(series)
	if !ok {
		return nil, fmt.Errorf("%w (peak %v over %d samples from %v %s)", ErrDegenerateFilter, trMax, n, lambda0, unit)
	}

	return &Resampled{
		Grid:        grid,
		Normalized:  series,
		Lambda0:     lambda0,
		DeltaLambda: delta,
		TrMax:       trMax,
		Unit:        unit,
	}, nil
}

// Forward encodes curve using the configured number of terms.
func (t *Transformer) Forward(curve Curve) (*ParameterSet, error) {
	return t.ForwardTerms(curve, t.config.Terms)
}

// ForwardTerms encodes curve keeping the first terms DFT coefficients.
//
// It fails with ErrInvalidInput for malformed curves or terms < 1,
// ErrTruncationOutOfRange when terms exceeds the sample count and
// ErrDegenerateFilter when the resampled peak throughput is not positive.
func (t *Transformer) ForwardTerms(curve Curve, terms int) (*ParameterSet, error) {
	if terms < minTerms {
		return nil, fmt.Errorf("%w: terms must be at least %d, got %d", ErrInvalidInput, minTerms, terms)
	}

	if curve != nil {
		if n := len(curve.Wavelengths()); n >= minSamples && terms > n {
			return nil, fmt.Errorf("%w: %d terms requested for %d samples", ErrTruncationOutOfRange, terms, n)
		}
	}

	rs, err := t.Resample(curve)
	if err != nil {
		return nil, err
	}

	n := len(rs.Grid)
	dft, err := engine.NewDFT(string(t.config.Backend), n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	coeffs := engine.Truncate(dft.Forward(rs.Normalized), terms)

	t.config.Logger.Debug("forward transform",
		zap.Int("n_lambda", n),
		zap.Int("terms", terms),
		zap.Float64("lambda_0", rs.Lambda0),
		zap.Float64("delta_lambda", rs.DeltaLambda),
		zap.Float64("tr_max", rs.TrMax),
		zap.Stringer("unit", rs.Unit),
	)

	return &ParameterSet{
		NLambda:      n,
		Lambda0:      rs.Lambda0,
		DeltaLambda:  rs.DeltaLambda,
		TrMax:        rs.TrMax,
		Coefficients: coeffs,
		Unit:         rs.Unit,
	}, nil
}

// Inverse regenerates an approximate filter from params.
//
// The result is sampled on the uniform grid described by params. Negative
// throughput from truncation ringing is kept as is.
func (t *Transformer) Inverse(params *ParameterSet) (*SampledFilter, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: parameter set is nil", ErrInvalidInput)
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	n := params.NLambda
	grid := engine.UniformGrid(params.Lambda0, params.DeltaLambda, n)

	dft, err := engine.NewDFT(string(t.config.Backend), n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	throughput := dft.Inverse(engine.ZeroPad(params.Coefficients, n))
	engine.Scale(throughput, params.TrMax)

	t.config.Logger.Debug("inverse transform",
		zap.Int("n_lambda", n),
		zap.Int("terms", params.Terms()),
		zap.Float64("tr_max", params.TrMax),
	)

	return &SampledFilter{
		Wavelength: grid,
		Throughput: throughput,
		Unit:       params.Unit.orDefault(),
	}, nil
}

// unitOf returns the declared unit of curve, or the configured default.
func (t *Transformer) unitOf(curve Curve) (Unit, error) {
	uc, ok := curve.(UnitCurve)
	if !ok {
		return t.config.Unit, nil
	}
	u := uc.WavelengthUnit()
	if err := u.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return u.orDefault(), nil
}
