package engine

// Grid and resampling constants.
const (
	// minGridPoints is the smallest grid that defines a spacing.
	minGridPoints = 2

	// outsideFill is the value assigned to grid points outside the sampled domain.
	outsideFill = 0.0
)

// Backend names accepted by NewDFT.
const (
	BackendGonum = "gonum"
	BackendGoDSP = "godsp"
)
