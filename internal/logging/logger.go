// Package logging builds the zap loggers used by the command-line tools.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats accepted by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Options configures a command logger.
type Options struct {
	// Verbose enables debug-level events from the transform library.
	Verbose bool

	// Format is FormatJSON (default) or FormatConsole.
	Format string

	// OutputPaths defaults to stderr so that stdout stays free for reports.
	OutputPaths []string
}

// New returns a production zap logger writing to stderr.
func New(verbose bool) (*zap.Logger, error) {
	return NewWithOptions(Options{Verbose: verbose})
}

// NewWithOptions returns a zap logger built from opts.
func NewWithOptions(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	switch opts.Format {
	case "", FormatJSON:
	case FormatConsole:
		config.Encoding = FormatConsole
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Sampling = nil
	config.DisableStacktrace = !opts.Verbose

	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	config.OutputPaths = []string{"stderr"}
	if len(opts.OutputPaths) > 0 {
		config.OutputPaths = opts.OutputPaths
	}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}
