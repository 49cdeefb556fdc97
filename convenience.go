package bandpass

// defaultTransformer backs the package-level functions. It is immutable.
var defaultTransformer = &Transformer{config: DefaultConfig().withDefaults()}

// Forward encodes curve keeping the first terms coefficients using the
// default configuration. Pass DefaultTerms for the conventional truncation.
func Forward(curve Curve, terms int) (*ParameterSet, error) {
	return defaultTransformer.ForwardTerms(curve, terms)
}

// Inverse regenerates an approximate filter from params using the default
// configuration.
func Inverse(params *ParameterSet) (*SampledFilter, error) {
	return defaultTransformer.Inverse(params)
}

// RoundTrip encodes curve with terms coefficients and immediately decodes it.
// It returns both the parameter set and the reconstruction.
func RoundTrip(curve Curve, terms int) (*ParameterSet, *SampledFilter, error) {
	params, err := Forward(curve, terms)
	if err != nil {
		return nil, nil, err
	}
	rec, err := Inverse(params)
	if err != nil {
		return nil, nil, err
	}
	return params, rec, nil
}

// FromSlices builds a filter from wavelength and throughput samples in Angstrom.
func FromSlices(wavelength, throughput []float64) (*SampledFilter, error) {
	return NewSampledFilter(wavelength, throughput, Angstrom)
}
