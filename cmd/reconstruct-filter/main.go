// Command reconstruct-filter rebuilds transmission curves from a Fourier
// parameter table.
//
// Usage:
//
//	reconstruct-filter -table sdss.parquet -out-dir curves/
//	reconstruct-filter -table s3://filters/sdss.parquet -filter sdss_g -unit nm -out-dir curves/
//	reconstruct-filter -table sdss.parquet -filter sdss_g -compare sdss_g.dat -plot sdss_g.png
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	bandpass "github.com/tphakala/go-bandpass-fourier"
	"github.com/tphakala/go-bandpass-fourier/internal/filterio"
	"github.com/tphakala/go-bandpass-fourier/internal/plotting"
	"github.com/tphakala/go-bandpass-fourier/internal/store"
	"github.com/tphakala/go-bandpass-fourier/internal/tableio"
)

const curveExt = ".dat"

type options struct {
	table   string
	filter  string
	unit    string
	outDir  string
	compare string
	plot    string
	timeout time.Duration
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var opts options
	flag.StringVar(&opts.table, "table", "", "Parameter table: local path or s3://bucket/key")
	flag.StringVar(&opts.filter, "filter", "", "Reconstruct only this filter (default: all)")
	flag.StringVar(&opts.unit, "unit", "", "Wavelength unit of the written curves (default: table unit)")
	flag.StringVar(&opts.outDir, "out-dir", ".", "Directory for reconstructed curve files")
	flag.StringVar(&opts.compare, "compare", "", "Original curve file to compare against (requires -filter)")
	flag.StringVar(&opts.plot, "plot", "", "Write a comparison plot (png, svg, pdf) (requires -compare)")
	flag.DurationVar(&opts.timeout, "timeout", time.Minute, "Download timeout")
	s3cfg := store.S3Config{
		AccessKey:    os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey:    os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken: os.Getenv("AWS_SESSION_TOKEN"),
	}
	flag.StringVar(&s3cfg.Region, "s3-region", os.Getenv("AWS_REGION"), "S3 region")
	flag.StringVar(&s3cfg.Endpoint, "s3-endpoint", "", "S3 endpoint override")
	flag.BoolVar(&s3cfg.UsePathStyle, "s3-path-style", false, "Use path-style S3 addressing")
	flag.Parse()

	if opts.table == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -table table.parquet [options]\n\n", os.Args[0])
		flag.PrintDefaults()
		return errors.New("missing -table")
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	table, err := loadTable(ctx, opts.table, s3cfg)
	if err != nil {
		return err
	}
	return reconstruct(table, opts, os.Stdout)
}

// loadTable fetches and decodes a parameter table.
func loadTable(ctx context.Context, location string, s3cfg store.S3Config) (*bandpass.Table, error) {
	loc, err := store.ParseLocation(location)
	if err != nil {
		return nil, err
	}
	sink, err := store.Open(ctx, loc, s3cfg)
	if err != nil {
		return nil, err
	}
	data, err := sink.Get(ctx, loc.Key)
	if err != nil {
		return nil, err
	}
	return tableio.Read(bytes.NewReader(data), int64(len(data)))
}

// reconstruct writes the requested curves and, with -compare, a fidelity
// report to w.
func reconstruct(table *bandpass.Table, opts options, w io.Writer) error {
	names := table.Names()
	if opts.filter != "" {
		names = []string{opts.filter}
	}
	if opts.compare != "" && opts.filter == "" {
		return errors.New("-compare requires -filter")
	}
	if opts.plot != "" && opts.compare == "" {
		return errors.New("-plot requires -compare")
	}

	unit := table.Unit()
	if opts.unit != "" {
		u, err := bandpass.ParseUnit(opts.unit)
		if err != nil {
			return fmt.Errorf("-unit: %w", err)
		}
		unit = u
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return err
	}

	for _, name := range names {
		rec, err := table.Reconstruct(name)
		if err != nil {
			return err
		}
		rec, err = rec.In(unit)
		if err != nil {
			return err
		}

		path := filepath.Join(opts.outDir, name+curveExt)
		if err := filterio.WriteFile(path, rec); err != nil {
			return err
		}
		lo, hi := rec.Range()
		fmt.Fprintf(w, "%-16s %6d samples  %s .. %s  -> %s\n", name, rec.Len(), lo, hi, path)

		if opts.compare != "" {
			if err := compare(name, rec, opts, w); err != nil {
				return err
			}
		}
	}
	return nil
}

func compare(name string, rec *bandpass.SampledFilter, opts options, w io.Writer) error {
	orig, err := filterio.ReadFile(opts.compare, rec.Unit)
	if err != nil {
		return err
	}
	orig, err = orig.In(rec.Unit)
	if err != nil {
		return err
	}

	fid, err := bandpass.Compare(orig, rec)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  max |err| %.3e  rms %.3e  peak-relative %.3e  integral ratio %.6f\n",
		fid.MaxAbsError, fid.RMSError, fid.PeakRelativeError, fid.IntegralRatio)

	if opts.plot == "" {
		return nil
	}
	p, err := plotting.Compare(orig, rec, name)
	if err != nil {
		return err
	}
	return plotting.Save(p, opts.plot, plotting.DefaultWidth, plotting.DefaultHeight)
}
