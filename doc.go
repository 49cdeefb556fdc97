// Package bandpass compresses astronomical bandpass filters into a handful of
// Fourier coefficients and regenerates approximate filters from them.
//
// Instead of storing thousands of (wavelength, throughput) pairs per filter,
// a [ParameterSet] keeps four scalars (sample count, first wavelength,
// wavelength step, peak throughput) plus a few complex DFT coefficients.
//
// # Quick Start
//
// Encode a sampled filter and decode it again:
//
//	curve, err := bandpass.NewSampledFilter(wavelengths, throughputs, bandpass.Angstrom)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	params, err := bandpass.Forward(curve, bandpass.DefaultTerms)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	approx, err := bandpass.Inverse(params)
//
// # Forward Transform
//
// [Transformer.Forward] resamples the curve onto a uniform grid with the same
// number of samples as the input. The grid starts at the first wavelength and
// is spaced by the median of successive wavelength differences, which is
// robust to irregular sampling. Throughput is linearly interpolated (zero
// outside the sampled range), divided by its peak, Fourier transformed, and
// truncated to the lowest-frequency terms.
//
// # Inverse Transform
//
// [Transformer.Inverse] rebuilds the same uniform grid, zero-pads the stored
// coefficients to full length, inverse transforms, keeps the real part and
// multiplies by the peak throughput. Ringing from truncation may produce
// small negative throughput; it is not clipped.
//
// # Batches
//
// A [Collector] encodes an ordered list of named filters into a [Table] whose
// columns are filter, n_lambda, lambda_0, delta_lambda, tr_max and
// fft_0 .. fft_{n-1}. Collection aborts on the first failing entry. Entries
// that resolve to different coefficient counts are rejected with
// [ErrColumnMismatch]. With [Config.EnableParallel] entries are transformed
// concurrently; rows and errors are identical to sequential processing.
//
// # Curves and Units
//
// Any type implementing [Curve] can be encoded. Types that also implement
// [UnitCurve] declare their wavelength unit; the unit is carried through to
// the parameter set and the reconstruction. Internal arithmetic is unit-free.
//
// # Errors
//
// Failures are reported with sentinel errors that can be tested with
// errors.Is: [ErrInvalidInput], [ErrTruncationOutOfRange],
// [ErrDegenerateFilter] and, for batches, [ErrBatch] via [*BatchError].
//
// # Thread Safety
//
// [Transformer] and [Collector] hold only immutable configuration and may be
// shared between goroutines. [Table] is not safe for concurrent mutation.
package bandpass
