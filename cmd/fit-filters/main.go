// Command fit-filters encodes transmission curves as truncated Fourier
// parameter tables.
//
// Usage:
//
//	fit-filters -out sdss.parquet sdss_u.dat sdss_g.dat sdss_r.dat
//	fit-filters -dir filters/ -pattern '*.dat' -terms 20 -out sdss.parquet
//	fit-filters -unit nm -out s3://filters/survey/sdss.parquet -s3-endpoint http://localhost:9000 *.dat
//
// Curves are two-column text files (wavelength, throughput). Rows keep the
// order of the arguments, or lexical file order with -dir.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"go.uber.org/zap"

	bandpass "github.com/tphakala/go-bandpass-fourier"
	"github.com/tphakala/go-bandpass-fourier/internal/logging"
	"github.com/tphakala/go-bandpass-fourier/internal/store"
	"github.com/tphakala/go-bandpass-fourier/internal/tableio"
)

const defaultOutput = "filters.parquet"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	opts := options{}
	flag.IntVar(&opts.terms, "terms", bandpass.DefaultTerms, "Number of Fourier coefficients to keep per filter")
	flag.StringVar(&opts.inputUnit, "unit", "Angstrom", "Wavelength unit of curve files without a '# unit:' line")
	flag.StringVar(&opts.tableUnit, "table-unit", "Angstrom", "Wavelength unit of lambda_0 and delta_lambda in the table")
	flag.StringVar(&opts.backend, "backend", string(bandpass.BackendGonum), "DFT backend: gonum, godsp")
	flag.BoolVar(&opts.parallel, "parallel", true, "Encode filters in parallel")
	flag.IntVar(&opts.workers, "workers", 0, "Maximum parallel workers (0 = GOMAXPROCS)")
	flag.StringVar(&opts.dir, "dir", "", "Read every curve file in this directory")
	flag.StringVar(&opts.pattern, "pattern", "*", "File pattern used with -dir")
	flag.StringVar(&opts.output, "out", defaultOutput, "Output table: local path or s3://bucket/key")
	flag.StringVar(&opts.compression, "compression", tableio.CompressionSnappy, "Parquet compression: snappy, zstd, gzip, none")
	flag.DurationVar(&opts.timeout, "timeout", time.Minute, "Upload timeout")
	s3cfg := registerS3Flags(flag.CommandLine)
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	opts.paths = flag.Args()
	if len(opts.paths) == 0 && opts.dir == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] curve.dat [curve.dat ...]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -out sdss.parquet sdss_*.dat\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -dir filters -terms 20 -out s3://bucket/sdss.parquet\n", os.Args[0])
		return errors.New("insufficient arguments")
	}

	logger, err := logging.New(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return fit(ctx, opts, *s3cfg, logger)
}

func fit(ctx context.Context, opts options, s3cfg store.S3Config, logger *zap.Logger) error {
	start := time.Now()

	cfg, err := opts.config(logger)
	if err != nil {
		return err
	}

	entries, err := opts.entries()
	if err != nil {
		return err
	}
	logger.Info("curves loaded", zap.Int("filters", len(entries)))

	collector, err := bandpass.NewCollector(cfg)
	if err != nil {
		return err
	}

	table, err := collector.Collect(entries)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tableio.Write(&buf, table, tableio.Options{Compression: opts.compression}); err != nil {
		return err
	}

	loc, err := store.ParseLocation(opts.output)
	if err != nil {
		return err
	}
	sink, err := store.Open(ctx, loc, s3cfg)
	if err != nil {
		return err
	}

	putCtx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()
	if err := sink.Put(putCtx, loc.Key, buf.Bytes()); err != nil {
		return err
	}

	logger.Info("table written",
		zap.String("output", opts.output),
		zap.Int("filters", table.Len()),
		zap.Int("terms", table.Terms()),
		zap.Stringer("unit", table.Unit()),
		zap.Int("bytes", buf.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
