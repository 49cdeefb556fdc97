package bandpass

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// Entry is one named filter submitted to a Collector.
type Entry struct {
	// Name identifies the row; it must be unique within a batch.
	Name string

	// Curve is the sampled filter to encode.
	Curve Curve

	// Terms overrides the collector's truncation count when positive.
	Terms int
}

// BatchError reports the entry that aborted a collection.
// It matches both ErrBatch and the underlying cause with errors.Is.
type BatchError struct {
	Index int
	Name  string
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%v: filter %q (entry %d): %v", ErrBatch, e.Name, e.Index, e.Err)
}

// Unwrap returns ErrBatch and the cause.
func (e *BatchError) Unwrap() []error {
	return []error{ErrBatch, e.Err}
}

// Collector applies Forward to a batch of named filters and assembles a Table.
//
// Collection aborts on the first failing entry in input order and returns no
// partial table. All entries must resolve to the same number of terms; mixed
// counts are rejected with ErrColumnMismatch rather than padded.
//
// Names and term counts are checked for the whole batch before any entry is
// transformed. An empty or duplicate name or a term mismatch at a later index
// is therefore reported ahead of a transform failure at an earlier index.
type Collector struct {
	transformer *Transformer
}

// NewCollector creates a Collector with the specified configuration.
func NewCollector(config *Config) (*Collector, error) {
	t, err := New(config)
	if err != nil {
		return nil, err
	}
	return &Collector{transformer: t}, nil
}

// Collect encodes every entry and returns the rows in input order.
func (c *Collector) Collect(entries []Entry) (*Table, error) {
	cfg := c.transformer.config

	terms, err := c.resolveTerms(entries)
	if err != nil {
		return nil, err
	}

	table, err := NewTable(terms, cfg.Unit)
	if err != nil {
		return nil, err
	}

	var results []*ParameterSet
	if cfg.EnableParallel && len(entries) > 1 {
		results, err = c.collectParallel(entries, terms)
	} else {
		results, err = c.collectSequential(entries, terms)
	}
	if err != nil {
		return nil, err
	}

	for i, params := range results {
		if err := table.Append(entries[i].Name, params); err != nil {
			return nil, &BatchError{Index: i, Name: entries[i].Name, Err: err}
		}
	}

	cfg.Logger.Debug("batch collected",
		zap.Int("filters", table.Len()),
		zap.Int("terms", terms),
		zap.Bool("parallel", cfg.EnableParallel),
	)

	return table, nil
}

// resolveTerms validates names and returns the single term count shared by
// all entries.
func (c *Collector) resolveTerms(entries []Entry) (int, error) {
	terms := c.transformer.config.Terms
	seen := make(map[string]struct{}, len(entries))

	for i, e := range entries {
		if e.Name == "" {
			return 0, &BatchError{Index: i, Err: fmt.Errorf("%w: filter name is empty", ErrInvalidInput)}
		}
		if _, dup := seen[e.Name]; dup {
			return 0, &BatchError{Index: i, Name: e.Name, Err: fmt.Errorf("%w: duplicate filter name", ErrInvalidInput)}
		}
		seen[e.Name] = struct{}{}

		if e.Terms < 0 {
			return 0, &BatchError{Index: i, Name: e.Name,
				Err: fmt.Errorf("%w: terms must be positive, got %d", ErrInvalidInput, e.Terms)}
		}

		want := c.entryTerms(e)
		if i == 0 {
			terms = want
			continue
		}
		if want != terms {
			return 0, &BatchError{Index: i, Name: e.Name,
				Err: fmt.Errorf("%w: entry requests %d terms, batch uses %d", ErrColumnMismatch, want, terms)}
		}
	}

	return terms, nil
}

func (c *Collector) entryTerms(e Entry) int {
	if e.Terms > 0 {
		return e.Terms
	}
	return c.transformer.config.Terms
}

// collectSequential transforms entries in order, stopping at the first failure.
func (c *Collector) collectSequential(entries []Entry, terms int) ([]*ParameterSet, error) {
	results := make([]*ParameterSet, len(entries))
	for i, e := range entries {
		params, err := c.transform(i, e, terms)
		if err != nil {
			return nil, err
		}
		results[i] = params
	}
	return results, nil
}

// collectParallel transforms entries concurrently. Results are stored by
// index so row order matches the input; the lowest-index failure is reported,
// which is the failure sequential processing would have stopped at.
func (c *Collector) collectParallel(entries []Entry, terms int) ([]*ParameterSet, error) {
	results := make([]*ParameterSet, len(entries))
	errs := make([]error, len(entries))
	sem := make(chan struct{}, c.workers(len(entries)))

	var wg sync.WaitGroup
	for i := range entries {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			results[idx], errs[idx] = c.transform(idx, entries[idx], terms)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func (c *Collector) transform(idx int, e Entry, terms int) (*ParameterSet, error) {
	params, err := c.transformer.ForwardTerms(e.Curve, terms)
	if err != nil {
		return nil, &BatchError{Index: idx, Name: e.Name, Err: err}
	}
	c.transformer.config.Logger.Debug("filter encoded",
		zap.String("filter", e.Name),
		zap.Int("index", idx),
		zap.Int("n_lambda", params.NLambda),
	)
	return params, nil
}

// workers returns the concurrency bound for n entries.
func (c *Collector) workers(n int) int {
	w := c.transformer.config.MaxWorkers
	if w == 0 {
		w = runtime.GOMAXPROCS(0) * defaultWorkersPerCPU
	}
	return max(1, min(w, n, maxWorkers))
}
