// Package plotting renders original and reconstructed transmission curves.
package plotting

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	bandpass "github.com/tphakala/go-bandpass-fourier"
)

// Default image size.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Series is one labelled curve on a plot.
type Series struct {
	Label string
	Curve bandpass.Curve
}

// Compare plots the original curve and its reconstruction on shared axes.
func Compare(original, reconstructed bandpass.Curve, title string) (*plot.Plot, error) {
	return Lines(title, Series{Label: "original", Curve: original}, Series{Label: "reconstructed", Curve: reconstructed})
}

// Lines plots any number of curves. The x label carries the wavelength unit
// of the first curve that declares one.
func Lines(title string, series ...Series) (*plot.Plot, error) {
	if len(series) == 0 {
		return nil, errors.New("no series to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "wavelength"
	p.Y.Label.Text = "throughput"
	p.Add(plotter.NewGrid())

	for _, s := range series {
		if uc, ok := s.Curve.(bandpass.UnitCurve); ok {
			p.X.Label.Text = fmt.Sprintf("wavelength [%s]", uc.WavelengthUnit())
			break
		}
	}

	args := make([]any, 0, 2*len(series))
	for _, s := range series {
		xys, err := points(s.Curve)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Label, err)
		}
		args = append(args, s.Label, xys)
	}

	if err := plotutil.AddLines(p, args...); err != nil {
		return nil, fmt.Errorf("failed to add lines: %w", err)
	}
	p.Legend.Top = true
	return p, nil
}

// Save writes p to path. The format follows the file extension (png, svg, pdf, eps).
func Save(p *plot.Plot, path string, width, height vg.Length) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

func points(c bandpass.Curve) (plotter.XYs, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: curve is nil", bandpass.ErrInvalidInput)
	}
	wl, tp := c.Wavelengths(), c.Throughputs()
	if len(wl) != len(tp) {
		return nil, fmt.Errorf("%w: %d wavelengths, %d throughputs", bandpass.ErrInvalidInput, len(wl), len(tp))
	}
	xys := make(plotter.XYs, len(wl))
	for i := range xys {
		xys[i].X = wl[i]
		xys[i].Y = tp[i]
	}
	return xys, nil
}
