// Package filterio reads and writes transmission curves as two-column text.
//
// Each non-blank line holds a wavelength and a throughput separated by
// whitespace or a comma. Lines starting with '#' are comments. A comment of
// the form "# unit: nm" declares the wavelength unit of the file.
package filterio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	bandpass "github.com/tphakala/go-bandpass-fourier"
)

const (
	commentPrefix   = "#"
	unitDirective   = "unit:"
	initialCapacity = 4096
	floatPrecision  = -1
)

// ErrSyntax indicates a malformed curve file.
var ErrSyntax = errors.New("malformed curve file")

// ReadASCII parses a curve. A unit directive in the file overrides unit.
func ReadASCII(r io.Reader, unit bandpass.Unit) (*bandpass.SampledFilter, error) {
	wl := make([]float64, 0, initialCapacity)
	tp := make([]float64, 0, initialCapacity)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, commentPrefix) {
			declared, ok, err := parseUnitDirective(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrSyntax, lineNo, err)
			}
			if ok {
				unit = declared
			}
			continue
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d: expected wavelength and throughput", ErrSyntax, lineNo)
		}

		w, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: wavelength: %w", ErrSyntax, lineNo, err)
		}
		t, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: throughput: %w", ErrSyntax, lineNo, err)
		}

		wl = append(wl, w)
		tp = append(tp, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read curve: %w", err)
	}

	return bandpass.NewSampledFilter(wl, tp, unit)
}

func parseUnitDirective(line string) (bandpass.Unit, bool, error) {
	body := strings.TrimSpace(strings.TrimPrefix(line, commentPrefix))
	if !strings.HasPrefix(strings.ToLower(body), unitDirective) {
		return "", false, nil
	}
	u, err := bandpass.ParseUnit(body[len(unitDirective):])
	if err != nil {
		return "", false, err
	}
	return u, true, nil
}

// WriteASCII writes curve with a unit directive when the curve declares one.
func WriteASCII(w io.Writer, curve bandpass.Curve) error {
	bw := bufio.NewWriter(w)

	if uc, ok := curve.(bandpass.UnitCurve); ok {
		if _, err := fmt.Fprintf(bw, "%s %s %s\n", commentPrefix, unitDirective, uc.WavelengthUnit()); err != nil {
			return err
		}
	}

	wl, tp := curve.Wavelengths(), curve.Throughputs()
	if len(wl) != len(tp) {
		return fmt.Errorf("%w: %d wavelengths, %d throughputs", bandpass.ErrInvalidInput, len(wl), len(tp))
	}

	for i := range wl {
		bw.WriteString(strconv.FormatFloat(wl[i], 'g', floatPrecision, 64))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(tp[i], 'g', floatPrecision, 64))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadFile reads a curve file.
func ReadFile(path string, unit bandpass.Unit) (*bandpass.SampledFilter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	curve, err := ReadASCII(f, unit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return curve, nil
}

// WriteFile writes curve to path.
func WriteFile(path string, curve bandpass.Curve) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteASCII(f, curve); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// ReadFiles reads every path into a batch entry named by the file stem,
// keeping the order of paths.
func ReadFiles(paths []string, unit bandpass.Unit) ([]bandpass.Entry, error) {
	entries := make([]bandpass.Entry, 0, len(paths))
	for _, path := range paths {
		curve, err := ReadFile(path, unit)
		if err != nil {
			return nil, err
		}
		entries = append(entries, bandpass.Entry{Name: Stem(path), Curve: curve})
	}
	return entries, nil
}

// ReadDir reads every regular file in dir matching pattern, in lexical order.
func ReadDir(dir, pattern string, unit bandpass.Unit) ([]bandpass.Entry, error) {
	if pattern == "" {
		pattern = "*"
	}
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}

	files := paths[:0]
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.Mode().IsRegular() {
			files = append(files, p)
		}
	}
	return ReadFiles(files, unit)
}

// Stem returns the file name without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
