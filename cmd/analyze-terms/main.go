// Command analyze-terms reports how reconstruction fidelity depends on the
// number of retained Fourier coefficients.
//
// Usage:
//
//	analyze-terms sdss_g.dat
//	analyze-terms -terms 1,5,10,20,50,100 -unit nm sdss_g.dat
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	bandpass "github.com/tphakala/go-bandpass-fourier"
	"github.com/tphakala/go-bandpass-fourier/internal/filterio"
)

const defaultTermList = "1,2,3,5,10,20,50,100"

// Table layout
const (
	tabMinWidth = 0
	tabWidth    = 8
	tabPadding  = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	termList := flag.String("terms", defaultTermList, "Comma-separated coefficient counts to evaluate")
	unit := flag.String("unit", "Angstrom", "Wavelength unit of a curve file without a '# unit:' line")
	backend := flag.String("backend", string(bandpass.BackendGonum), "DFT backend: gonum, godsp")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] curve.dat\n\n", os.Args[0])
		flag.PrintDefaults()
		return errors.New("expected exactly one curve file")
	}

	terms, err := parseTerms(*termList)
	if err != nil {
		return err
	}
	u, err := bandpass.ParseUnit(*unit)
	if err != nil {
		return err
	}

	curve, err := filterio.ReadFile(flag.Arg(0), u)
	if err != nil {
		return err
	}

	tr, err := bandpass.New(&bandpass.Config{Unit: curve.Unit, Backend: bandpass.Backend(*backend)})
	if err != nil {
		return err
	}

	// Counts beyond the sample count are not representable.
	terms = clampTerms(terms, curve.Len())

	sweep, err := tr.SweepTerms(curve, terms)
	if err != nil {
		return err
	}
	return report(os.Stdout, filterio.Stem(flag.Arg(0)), curve, sweep)
}

// parseTerms parses a comma-separated list of positive integers.
func parseTerms(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	terms := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		k, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid term count %q: %w", p, err)
		}
		if k < 1 {
			return nil, fmt.Errorf("term count must be positive, got %d", k)
		}
		terms = append(terms, k)
	}
	if len(terms) == 0 {
		return nil, errors.New("no term counts given")
	}
	return terms, nil
}

func clampTerms(terms []int, n int) []int {
	out := terms[:0:0]
	for _, k := range terms {
		if k <= n {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		out = append(out, n)
	}
	return out
}

func report(w io.Writer, name string, curve *bandpass.SampledFilter, sweep []bandpass.TermsFidelity) error {
	lo, hi := curve.Range()
	fmt.Fprintf(w, "=== %s: %d samples, %s .. %s ===\n\n", name, curve.Len(), lo, hi)

	tw := tabwriter.NewWriter(w, tabMinWidth, tabWidth, tabPadding, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "terms\tmax |err|\trms\tpeak-rel\tintegral ratio\t")
	for _, s := range sweep {
		f := s.Fidelity
		fmt.Fprintf(tw, "%d\t%.3e\t%.3e\t%.3e\t%.6f\t\n",
			s.Terms, f.MaxAbsError, f.RMSError, f.PeakRelativeError, f.IntegralRatio)
	}
	return tw.Flush()
}
