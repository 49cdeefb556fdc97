package bandpass

import (
	"fmt"
	"strings"
)

// Unit is a wavelength (length) unit.
type Unit string

// Supported wavelength units.
const (
	Angstrom   Unit = "Angstrom"
	Nanometer  Unit = "nm"
	Micrometer Unit = "um"
	Meter      Unit = "m"
)

// angstromsPer maps each unit to its length in Angstrom.
var angstromsPer = map[Unit]float64{
	Angstrom:   1,
	Nanometer:  1e1,
	Micrometer: 1e4,
	Meter:      1e10,
}

// unitAliases maps lower-cased spellings to canonical units.
var unitAliases = map[string]Unit{
	"angstrom":   Angstrom,
	"angstroms":  Angstrom,
	"aa":         Angstrom,
	"a":          Angstrom,
	"å":          Angstrom,
	"nm":         Nanometer,
	"nanometer":  Nanometer,
	"nanometers": Nanometer,
	"um":         Micrometer,
	"µm":         Micrometer,
	"micron":     Micrometer,
	"microns":    Micrometer,
	"micrometer": Micrometer,
	"m":          Meter,
	"meter":      Meter,
	"meters":     Meter,
}

// ParseUnit returns the canonical unit for a common spelling such as
// "Angstrom", "AA", "nm" or "micron".
func ParseUnit(s string) (Unit, error) {
	u, ok := unitAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// String returns the unit symbol.
func (u Unit) String() string { return string(u.orDefault()) }

// Validate reports ErrUnknownUnit for units outside the supported set.
// The empty unit is valid and means Angstrom.
func (u Unit) Validate() error {
	if u == "" {
		return nil
	}
	if _, ok := angstromsPer[u]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, string(u))
	}
	return nil
}

// Convert expresses v (in u) in the target unit.
func (u Unit) Convert(v float64, to Unit) (float64, error) {
	factor, err := u.orDefault().factorTo(to)
	if err != nil {
		return 0, err
	}
	return v * factor, nil
}

func (u Unit) orDefault() Unit {
	if u == "" {
		return Angstrom
	}
	return u
}

// factorTo returns the multiplier converting values in u into values in to.
func (u Unit) factorTo(to Unit) (float64, error) {
	from, ok := angstromsPer[u.orDefault()]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(u))
	}
	dst, ok := angstromsPer[to.orDefault()]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, string(to))
	}
	if from == dst {
		return 1, nil
	}
	return from / dst, nil
}

// Quantity is a scalar tagged with a wavelength unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// In converts the quantity to another unit.
func (q Quantity) In(to Unit) (Quantity, error) {
	v, err := q.Unit.Convert(q.Value, to)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: v, Unit: to.orDefault()}, nil
}

// String formats the quantity as "<value> <unit>".
func (q Quantity) String() string {
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}
