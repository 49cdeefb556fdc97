package bandpass

import (
	"fmt"
	"math"

	"github.com/tphakala/go-bandpass-fourier/internal/engine"
	"github.com/tphakala/go-bandpass-fourier/internal/mathutil"
)

// Fidelity summarizes how closely a reconstruction follows an original curve,
// measured at the original wavelengths.
type Fidelity struct {
	// MaxAbsError is the largest absolute throughput difference.
	MaxAbsError float64

	// RMSError is the root-mean-square throughput difference.
	RMSError float64

	// PeakRelativeError is MaxAbsError divided by the original peak.
	PeakRelativeError float64

	// IntegralRatio is the trapezoid integral of the reconstruction divided
	// by that of the original. 1 means equal total transmission.
	IntegralRatio float64
}

// TermsFidelity pairs a truncation count with its round-trip fidelity.
type TermsFidelity struct {
	Terms    int
	Fidelity Fidelity
}

// Compare evaluates reconstructed at the wavelengths of original (linear
// interpolation, zero outside its grid) and reports the differences.
// Both curves must use the same wavelength unit.
func Compare(original, reconstructed Curve) (Fidelity, error) {
	if original == nil || reconstructed == nil {
		return Fidelity{}, fmt.Errorf("%w: curve is nil", ErrInvalidInput)
	}

	ow, ot := original.Wavelengths(), original.Throughputs()
	if err := validateSamples(ow, ot); err != nil {
		return Fidelity{}, fmt.Errorf("original: %w", err)
	}

	rw, rt := reconstructed.Wavelengths(), reconstructed.Throughputs()
	if err := validateSamples(rw, rt); err != nil {
		return Fidelity{}, fmt.Errorf("reconstructed: %w", err)
	}

	if err := sameUnit(original, reconstructed); err != nil {
		return Fidelity{}, err
	}

	approx, err := engine.Resample(rw, rt, ow)
	if err != nil {
		return Fidelity{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var maxAbs, sumSq float64
	for i := range ot {
		d := math.Abs(approx[i] - ot[i])
		maxAbs = math.Max(maxAbs, d)
		sumSq += d * d
	}

	peak := engine.Peak(ot)
	area := mathutil.Trapezoid(ow, ot)
	if peak == 0 || area == 0 {
		return Fidelity{}, fmt.Errorf("original: %w", ErrDegenerateFilter)
	}

	return Fidelity{
		MaxAbsError:       maxAbs,
		RMSError:          math.Sqrt(sumSq / float64(len(ot))),
		PeakRelativeError: maxAbs / math.Abs(peak),
		IntegralRatio:     mathutil.Trapezoid(ow, approx) / area,
	}, nil
}

// SweepTerms round-trips curve at each truncation count and reports the
// fidelity of every reconstruction, in the order given.
func (t *Transformer) SweepTerms(curve Curve, terms []int) ([]TermsFidelity, error) {
	out := make([]TermsFidelity, 0, len(terms))
	for _, k := range terms {
		params, err := t.ForwardTerms(curve, k)
		if err != nil {
			return nil, fmt.Errorf("terms=%d: %w", k, err)
		}
		rec, err := t.Inverse(params)
		if err != nil {
			return nil, fmt.Errorf("terms=%d: %w", k, err)
		}
		// The reconstruction carries the resolved unit; compare in that unit.
		fid, err := Compare(withUnit(curve, rec.Unit), rec)
		if err != nil {
			return nil, fmt.Errorf("terms=%d: %w", k, err)
		}
		out = append(out, TermsFidelity{Terms: k, Fidelity: fid})
	}
	return out, nil
}

// SweepTerms is Transformer.SweepTerms with the default configuration.
func SweepTerms(curve Curve, terms []int) ([]TermsFidelity, error) {
	return defaultTransformer.SweepTerms(curve, terms)
}

// sameUnit fails when both curves declare different units.
func sameUnit(a, b Curve) error {
	ua, aok := a.(UnitCurve)
	ub, bok := b.(UnitCurve)
	if !aok || !bok {
		return nil
	}
	if ua.WavelengthUnit().orDefault() != ub.WavelengthUnit().orDefault() {
		return fmt.Errorf("%w: unit mismatch %s vs %s", ErrInvalidInput, ua.WavelengthUnit(), ub.WavelengthUnit())
	}
	return nil
}

// unitCurve attaches a unit to a plain Curve.
type unitCurve struct {
	Curve
	unit Unit
}

func (c unitCurve) WavelengthUnit() Unit { return c.unit }

func withUnit(c Curve, u Unit) Curve {
	if _, ok := c.(UnitCurve); ok {
		return c
	}
	return unitCurve{Curve: c, unit: u}
}
