package engine

import (
	"errors"
	"fmt"

	dspfft "github.com/mjibson/go-dsp/fft"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrUnknownBackend is returned by NewDFT for an unrecognized backend name.
var ErrUnknownBackend = errors.New("engine: unknown DFT backend")

// DFT computes full-length discrete Fourier transforms of a fixed size.
//
// Coefficients use the standard index ordering: index 0 is the DC term and
// increasing index is increasing frequency up to the Nyquist split.
// Implementations are not safe for concurrent use.
type DFT interface {
	// Len returns the transform length.
	Len() int

	// Forward returns all Len() complex coefficients of a real sequence.
	Forward(seq []float64) []complex128

	// Inverse returns the real part of the 1/n normalized inverse transform.
	// The imaginary residue is discarded.
	Inverse(coeffs []complex128) []float64
}

// NewDFT creates a transform of length n using the named backend.
// An empty backend selects gonum.
func NewDFT(backend string, n int) (DFT, error) {
	if n < 1 {
		return nil, fmt.Errorf("engine: invalid transform length %d", n)
	}
	switch backend {
	case "", BackendGonum:
		return newGonumDFT(n), nil
	case BackendGoDSP:
		return &goDSPDFT{n: n}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// gonumDFT wraps gonum's complex FFT.
// gonum does not normalize the inverse, so Inverse scales by 1/n.
type gonumDFT struct {
	fft   *fourier.CmplxFFT
	n     int
	scale float64

	// Working buffer for the complex-promoted input.
	work []complex128
}

func newGonumDFT(n int) *gonumDFT {
	return &gonumDFT{
		fft:   fourier.NewCmplxFFT(n),
		n:     n,
		scale: 1.0 / float64(n),
		work:  make([]complex128, n),
	}
}

func (d *gonumDFT) Len() int { return d.n }

func (d *gonumDFT) Forward(seq []float64) []complex128 {
	for i, v := range seq {
		d.work[i] = complex(v, 0)
	}
	return d.fft.Coefficients(nil, d.work)
}

func (d *gonumDFT) Inverse(coeffs []complex128) []float64 {
	seq := d.fft.Sequence(nil, coeffs)
	out := make([]float64, d.n)
	for i, v := range seq {
		out[i] = real(v)
	}
	f64.Scale(out, out, d.scale)
	return out
}

// goDSPDFT uses github.com/mjibson/go-dsp, whose IFFT is already normalized.
type goDSPDFT struct {
	n int
}

func (d *goDSPDFT) Len() int { return d.n }

func (d *goDSPDFT) Forward(seq []float64) []complex128 {
	return dspfft.FFTReal(seq[:d.n])
}

func (d *goDSPDFT) Inverse(coeffs []complex128) []float64 {
	seq := dspfft.IFFT(coeffs[:d.n])
	out := make([]float64, d.n)
	for i, v := range seq {
		out[i] = real(v)
	}
	return out
}

// Truncate returns a copy of the first terms coefficients.
func Truncate(coeffs []complex128, terms int) []complex128 {
	out := make([]complex128, terms)
	copy(out, coeffs[:terms])
	return out
}

// ZeroPad places coeffs at the start of a zeroed slice of length n.
func ZeroPad(coeffs []complex128, n int) []complex128 {
	out := make([]complex128, n)
	copy(out, coeffs)
	return out
}
