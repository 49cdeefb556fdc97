package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	bandpass "github.com/tphakala/go-bandpass-fourier"
	"github.com/tphakala/go-bandpass-fourier/internal/filterio"
	"github.com/tphakala/go-bandpass-fourier/internal/store"
)

// options holds the parsed command line.
type options struct {
	terms       int
	inputUnit   string
	tableUnit   string
	backend     string
	parallel    bool
	workers     int
	dir         string
	pattern     string
	paths       []string
	output      string
	compression string
	timeout     time.Duration
}

// config builds the library configuration from the flags.
func (o options) config(logger *zap.Logger) (*bandpass.Config, error) {
	if o.terms < 1 {
		return nil, fmt.Errorf("%w: -terms must be at least 1, got %d", bandpass.ErrInvalidConfig, o.terms)
	}

	unit, err := bandpass.ParseUnit(o.tableUnit)
	if err != nil {
		return nil, fmt.Errorf("-table-unit: %w", err)
	}

	cfg := &bandpass.Config{
		Terms:          o.terms,
		Unit:           unit,
		Backend:        bandpass.Backend(o.backend),
		EnableParallel: o.parallel,
		MaxWorkers:     o.workers,
		Logger:         logger,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// entries reads the curve files named on the command line or in -dir.
func (o options) entries() ([]bandpass.Entry, error) {
	unit, err := bandpass.ParseUnit(o.inputUnit)
	if err != nil {
		return nil, fmt.Errorf("-unit: %w", err)
	}

	var entries []bandpass.Entry
	if o.dir != "" {
		entries, err = filterio.ReadDir(o.dir, o.pattern, unit)
		if err != nil {
			return nil, err
		}
	}

	more, err := filterio.ReadFiles(o.paths, unit)
	if err != nil {
		return nil, err
	}
	entries = append(entries, more...)

	if len(entries) == 0 {
		return nil, errors.New("no curve files found")
	}
	return entries, nil
}

// registerS3Flags adds the S3 connection flags to fs. Credentials default to
// the AWS provider chain (environment, shared config, instance role).
func registerS3Flags(fs *flag.FlagSet) *store.S3Config {
	cfg := &store.S3Config{
		AccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken: os.Getenv("AWS_SESSION_TOKEN"),
	}
	fs.StringVar(&cfg.Region, "s3-region", os.Getenv("AWS_REGION"), "S3 region")
	fs.StringVar(&cfg.Endpoint, "s3-endpoint", "", "S3 endpoint override (MinIO, LocalStack)")
	fs.BoolVar(&cfg.UsePathStyle, "s3-path-style", false, "Use path-style S3 addressing")
	fs.StringVar(&cfg.RoleARN, "s3-role-arn", "", "IAM role to assume through STS before uploading")
	fs.StringVar(&cfg.ExternalID, "s3-external-id", "", "External ID for -s3-role-arn")
	return cfg
}
