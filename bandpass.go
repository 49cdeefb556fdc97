package bandpass

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/tphakala/go-bandpass-fourier/internal/mathutil"
	"go.uber.org/zap"
)

// Curve is anything that can report a sampled bandpass: an ordered wavelength
// sequence and the throughput at each wavelength.
//
// Implementations must return slices of equal length. The transforms never
// modify the returned slices.
type Curve interface {
	Wavelengths() []float64
	Throughputs() []float64
}

// UnitCurve is implemented by curves that declare their wavelength unit.
// Curves without it are assumed to use [Config.Unit].
type UnitCurve interface {
	Curve
	WavelengthUnit() Unit
}

// SampledFilter is a bandpass sampled at discrete wavelengths.
type SampledFilter struct {
	// Wavelength holds strictly increasing, positive wavelengths.
	Wavelength []float64

	// Throughput holds the transmitted fraction at each wavelength.
	// Values are normally in [0, 1] but this is not enforced.
	Throughput []float64

	// Unit is the wavelength unit. Empty means Angstrom.
	Unit Unit
}

// NewSampledFilter copies the given samples into a new filter.
func NewSampledFilter(wavelength, throughput []float64, unit Unit) (*SampledFilter, error) {
	f := &SampledFilter{
		Wavelength: slices.Clone(wavelength),
		Throughput: slices.Clone(throughput),
		Unit:       unit,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Wavelengths implements Curve.
func (f *SampledFilter) Wavelengths() []float64 { return f.Wavelength }

// Throughputs implements Curve.
func (f *SampledFilter) Throughputs() []float64 { return f.Throughput }

// WavelengthUnit implements UnitCurve.
func (f *SampledFilter) WavelengthUnit() Unit { return f.Unit.orDefault() }

// Len returns the number of samples.
func (f *SampledFilter) Len() int { return len(f.Wavelength) }

// Range returns the first and last wavelength as unit-tagged quantities.
func (f *SampledFilter) Range() (lo, hi Quantity) {
	if len(f.Wavelength) == 0 {
		return Quantity{Unit: f.WavelengthUnit()}, Quantity{Unit: f.WavelengthUnit()}
	}
	return Quantity{Value: f.Wavelength[0], Unit: f.WavelengthUnit()},
		Quantity{Value: f.Wavelength[len(f.Wavelength)-1], Unit: f.WavelengthUnit()}
}

// In returns a copy of the filter with wavelengths expressed in unit.
func (f *SampledFilter) In(unit Unit) (*SampledFilter, error) {
	factor, err := f.WavelengthUnit().factorTo(unit)
	if err != nil {
		return nil, err
	}
	wl := make([]float64, len(f.Wavelength))
	for i, w := range f.Wavelength {
		wl[i] = w * factor
	}
	return &SampledFilter{
		Wavelength: wl,
		Throughput: slices.Clone(f.Throughput),
		Unit:       unit,
	}, nil
}

// Validate checks the sampled-curve invariants.
func (f *SampledFilter) Validate() error {
	if err := f.Unit.Validate(); err != nil {
		return err
	}
	return validateSamples(f.Wavelength, f.Throughput)
}

// validateSamples checks a wavelength/throughput pair for transform use.
func validateSamples(wavelength, throughput []float64) error {
	if len(wavelength) != len(throughput) {
		return fmt.Errorf("%w: %d wavelengths but %d throughputs", ErrInvalidInput, len(wavelength), len(throughput))
	}

	if len(wavelength) < minSamples {
		return fmt.Errorf("%w: need at least %d samples, got %d", ErrInvalidInput, minSamples, len(wavelength))
	}

	if ok, idx := mathutil.AllFinite(wavelength); !ok {
		return fmt.Errorf("%w: wavelength[%d] is not finite", ErrInvalidInput, idx)
	}

	if ok, idx := mathutil.AllFinite(throughput); !ok {
		return fmt.Errorf("%w: throughput[%d] is not finite", ErrInvalidInput, idx)
	}

	if wavelength[0] <= 0 {
		return fmt.Errorf("%w: wavelengths must be positive, got %v", ErrInvalidInput, wavelength[0])
	}

	if ok, idx := mathutil.StrictlyIncreasing(wavelength); !ok {
		return fmt.Errorf("%w: wavelengths not strictly increasing at index %d (%v after %v)",
			ErrInvalidInput, idx, wavelength[idx], wavelength[idx-1])
	}

	return nil
}

// ParameterSet is the compact Fourier encoding of a bandpass.
//
// It is a lossy encoding: Inverse regenerates a curve on the uniform grid
// Lambda0 + k*DeltaLambda, k = 0..NLambda-1, from the low-frequency
// Coefficients only.
type ParameterSet struct {
	// NLambda is the number of samples in the uniform grid.
	NLambda int

	// Lambda0 is the first grid wavelength.
	Lambda0 float64

	// DeltaLambda is the grid spacing: the median of successive differences
	// of the original wavelengths.
	DeltaLambda float64

	// TrMax is the peak resampled throughput used for normalization.
	TrMax float64

	// Coefficients are the lowest-index terms of the DFT of the normalized,
	// resampled throughput. Index 0 is the DC term.
	Coefficients []complex128

	// Unit is the unit of Lambda0 and DeltaLambda. Empty means Angstrom.
	Unit Unit
}

// Terms returns the number of stored coefficients.
func (p *ParameterSet) Terms() int { return len(p.Coefficients) }

// Lambda0Quantity returns Lambda0 tagged with its unit.
func (p *ParameterSet) Lambda0Quantity() Quantity {
	return Quantity{Value: p.Lambda0, Unit: p.Unit.orDefault()}
}

// DeltaLambdaQuantity returns DeltaLambda tagged with its unit.
func (p *ParameterSet) DeltaLambdaQuantity() Quantity {
	return Quantity{Value: p.DeltaLambda, Unit: p.Unit.orDefault()}
}

// GridEnd returns the last wavelength of the reconstruction grid.
func (p *ParameterSet) GridEnd() Quantity {
	return Quantity{
		Value: p.Lambda0 + float64(p.NLambda-1)*p.DeltaLambda,
		Unit:  p.Unit.orDefault(),
	}
}

// In returns a copy with the grid scalars expressed in unit.
// Coefficients are index-based and therefore unit-independent.
func (p *ParameterSet) In(unit Unit) (*ParameterSet, error) {
	factor, err := p.Unit.orDefault().factorTo(unit)
	if err != nil {
		return nil, err
	}
	out := p.clone()
	out.Lambda0 *= factor
	out.DeltaLambda *= factor
	out.Unit = unit
	return out, nil
}

func (p *ParameterSet) clone() *ParameterSet {
	out := *p
	out.Coefficients = slices.Clone(p.Coefficients)
	return &out
}

// Validate checks that the set can be inverted.
func (p *ParameterSet) Validate() error {
	if err := p.Unit.Validate(); err != nil {
		return err
	}

	if p.NLambda < minGridSamples {
		return fmt.Errorf("%w: n_lambda must be positive, got %d", ErrInvalidInput, p.NLambda)
	}

	if len(p.Coefficients) < minTerms {
		return fmt.Errorf("%w: at least %d coefficient required", ErrInvalidInput, minTerms)
	}

	if len(p.Coefficients) > p.NLambda {
		return fmt.Errorf("%w: %d coefficients exceed n_lambda %d", ErrTruncationOutOfRange, len(p.Coefficients), p.NLambda)
	}

	if !isFinite(p.Lambda0) || !isFinite(p.DeltaLambda) || !isFinite(p.TrMax) {
		return fmt.Errorf("%w: grid scalars must be finite", ErrInvalidInput)
	}

	if p.DeltaLambda <= 0 {
		return fmt.Errorf("%w: delta_lambda must be positive, got %v", ErrInvalidInput, p.DeltaLambda)
	}

	if p.TrMax < 0 {
		return fmt.Errorf("%w: tr_max must be non-negative, got %v", ErrInvalidInput, p.TrMax)
	}

	for k, c := range p.Coefficients {
		if !isFinite(real(c)) || !isFinite(imag(c)) {
			return fmt.Errorf("%w: coefficient %d is not finite", ErrInvalidInput, k)
		}
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Backend selects the discrete Fourier transform implementation.
type Backend string

const (
	// BackendGonum uses gonum.org/v1/gonum/dsp/fourier. This is the default.
	BackendGonum Backend = "gonum"

	// BackendGoDSP uses github.com/mjibson/go-dsp/fft. Results agree with
	// BackendGonum to within floating-point rounding.
	BackendGoDSP Backend = "godsp"
)

// Config holds transform and batch configuration.
type Config struct {
	// Terms is the number of coefficients kept by Forward.
	// Zero selects DefaultTerms.
	Terms int

	// Unit is assumed for curves that do not implement UnitCurve.
	// Empty means Angstrom.
	Unit Unit

	// Backend selects the DFT implementation. Empty means BackendGonum.
	Backend Backend

	// EnableParallel transforms batch entries concurrently.
	// Rows and reported errors are identical to sequential processing.
	EnableParallel bool

	// MaxWorkers bounds the number of concurrent transforms when
	// EnableParallel is set. Zero selects GOMAXPROCS.
	MaxWorkers int

	// Logger receives debug events. Nil disables logging.
	Logger *zap.Logger
}

// Common errors returned by the transforms.
var (
	// ErrInvalidInput indicates a malformed curve, parameter set or argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTruncationOutOfRange indicates more coefficients than grid samples.
	ErrTruncationOutOfRange = errors.New("truncation out of range")

	// ErrDegenerateFilter indicates a filter whose resampled peak throughput is
	// zero or negative.
	ErrDegenerateFilter = errors.New("degenerate filter: peak throughput is not positive")

	// ErrBatch wraps the failure that aborted a batch collection.
	ErrBatch = errors.New("batch collection failed")

	// ErrColumnMismatch indicates rows with different coefficient counts in one table.
	ErrColumnMismatch = errors.New("coefficient column mismatch")

	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid bandpass configuration")

	// ErrUnknownUnit indicates an unrecognized wavelength unit.
	ErrUnknownUnit = errors.New("unknown wavelength unit")

	// ErrNotFound indicates a filter name missing from a table.
	ErrNotFound = errors.New("filter not found")
)

// DefaultConfig returns the configuration used by the package-level functions.
func DefaultConfig() Config {
	return Config{
		Terms:   DefaultTerms,
		Unit:    Angstrom,
		Backend: BackendGonum,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Terms < 0 {
		return fmt.Errorf("%w: terms must be non-negative, got %d", ErrInvalidConfig, c.Terms)
	}

	if c.MaxWorkers < 0 || c.MaxWorkers > maxWorkers {
		return fmt.Errorf("%w: max workers must be 0-%d, got %d", ErrInvalidConfig, maxWorkers, c.MaxWorkers)
	}

	switch c.Backend {
	case "", BackendGonum, BackendGoDSP:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}

	if err := c.Unit.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// withDefaults returns a copy with zero values replaced by defaults.
func (c Config) withDefaults() Config {
	if c.Terms == 0 {
		c.Terms = DefaultTerms
	}
	if c.Unit == "" {
		c.Unit = Angstrom
	}
	if c.Backend == "" {
		c.Backend = BackendGonum
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}
