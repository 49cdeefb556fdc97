package bandpass

// Transform defaults
const (
	// DefaultTerms is the number of Fourier coefficients kept when none is configured.
	DefaultTerms = 10

	// minSamples is the smallest curve that defines a wavelength grid.
	minSamples = 2

	// minGridSamples is the smallest grid an inverse transform accepts.
	minGridSamples = 1

	// minTerms is the smallest usable truncation (the DC term alone).
	minTerms = 1
)

// Batch processing constants
const (
	// defaultWorkersPerCPU scales GOMAXPROCS into the default worker bound.
	defaultWorkersPerCPU = 1

	// maxWorkers caps parallel fan-out regardless of configuration.
	maxWorkers = 256
)

// Table column names
const (
	ColumnFilter      = "filter"
	ColumnNLambda     = "n_lambda"
	ColumnLambda0     = "lambda_0"
	ColumnDeltaLambda = "delta_lambda"
	ColumnTrMax       = "tr_max"

	// coefficientColumnPrefix is followed by the coefficient index.
	coefficientColumnPrefix = "fft_"
)
