package bandpass

import (
	"fmt"
	"strconv"
)

// Row is one named filter in a Table.
type Row struct {
	Name   string
	Params ParameterSet
}

// Table is an ordered collection of parameter sets sharing one column layout:
// filter, n_lambda, lambda_0, delta_lambda, tr_max, fft_0 .. fft_{terms-1}.
//
// Every row has exactly Terms coefficients and grid scalars in Unit.
type Table struct {
	terms int
	unit  Unit
	rows  []Row
	index map[string]int
}

// NewTable creates an empty table for rows with the given coefficient count.
func NewTable(terms int, unit Unit) (*Table, error) {
	if terms < minTerms {
		return nil, fmt.Errorf("%w: table needs at least %d coefficient column, got %d", ErrInvalidInput, minTerms, terms)
	}
	if err := unit.Validate(); err != nil {
		return nil, err
	}
	return &Table{
		terms: terms,
		unit:  unit.orDefault(),
		index: make(map[string]int),
	}, nil
}

// Terms returns the number of coefficient columns.
func (t *Table) Terms() int { return t.terms }

// Unit returns the wavelength unit of lambda_0 and delta_lambda.
func (t *Table) Unit() Unit { return t.unit }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Row returns the i-th row in insertion order.
func (t *Table) Row(i int) Row { return t.rows[i] }

// Rows returns a copy of all rows in insertion order.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Names returns filter names in insertion order.
func (t *Table) Names() []string {
	names := make([]string, len(t.rows))
	for i, r := range t.rows {
		names[i] = r.Name
	}
	return names
}

// Columns returns the column names of the table layout.
func (t *Table) Columns() []string {
	cols := []string{ColumnFilter, ColumnNLambda, ColumnLambda0, ColumnDeltaLambda, ColumnTrMax}
	for k := range t.terms {
		cols = append(cols, CoefficientColumn(k))
	}
	return cols
}

// CoefficientColumn returns the column name of coefficient k.
func CoefficientColumn(k int) string {
	return coefficientColumnPrefix + strconv.Itoa(k)
}

// Append adds a row. Grid scalars are converted to the table unit.
//
// It fails with ErrColumnMismatch when params has a different number of
// coefficients than the table, and ErrInvalidInput for an empty or
// duplicate name or an invalid parameter set.
func (t *Table) Append(name string, params *ParameterSet) error {
	if name == "" {
		return fmt.Errorf("%w: filter name is empty", ErrInvalidInput)
	}

	if _, dup := t.index[name]; dup {
		return fmt.Errorf("%w: duplicate filter name %q", ErrInvalidInput, name)
	}

	if params == nil {
		return fmt.Errorf("%w: parameter set for %q is nil", ErrInvalidInput, name)
	}

	if params.Terms() != t.terms {
		return fmt.Errorf("%w: filter %q has %d coefficients, table has %d",
			ErrColumnMismatch, name, params.Terms(), t.terms)
	}

	if err := params.Validate(); err != nil {
		return fmt.Errorf("filter %q: %w", name, err)
	}

	converted, err := params.In(t.unit)
	if err != nil {
		return fmt.Errorf("filter %q: %w", name, err)
	}

	t.index[name] = len(t.rows)
	t.rows = append(t.rows, Row{Name: name, Params: *converted})
	return nil
}

// Lookup returns a copy of the parameter set stored under name.
func (t *Table) Lookup(name string) (*ParameterSet, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.rows[i].Params.clone(), true
}

// Reconstruct inverse-transforms the named row with the default configuration.
func (t *Table) Reconstruct(name string) (*SampledFilter, error) {
	params, ok := t.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return Inverse(params)
}
