package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/molbatch/molbatch/internal/calc"
)

// DefaultWorkers is used when no worker count is configured.
const DefaultWorkers = 4

// ErrLengthMismatch is returned when explicit ids do not pair up 1:1 with
// the smiles list. It is the only error Analyze can return once the inputs
// are non-nil; everything else degrades into flagged records.
var ErrLengthMismatch = errors.New("batch: length of ids must match length of smiles")

// Orchestrator runs compound analysis batches over a Calculator.
type Orchestrator struct {
	calc       *calc.Calculator
	workers    int
	sequential bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithWorkers sets the requested worker count. Values below 1 fall back to
// DefaultWorkers. The effective count is additionally capped by CPU count
// and batch size at dispatch time.
func WithWorkers(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.workers = n
		}
	}
}

// Sequential forces strictly sequential processing. The result contract is
// identical to the parallel path; this exists for callers that cannot
// afford extra goroutines and as the fallback execution strategy.
func Sequential() Option {
	return func(o *Orchestrator) { o.sequential = true }
}

// New returns an Orchestrator using c for per-compound computation.
func New(c *calc.Calculator, opts ...Option) *Orchestrator {
	o := &Orchestrator{calc: c, workers: DefaultWorkers}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Analyze computes one record per input compound.
//
// When ids is nil, sequential ids of the form "CPND000001" are generated.
// ctx is checked once before dispatch; a batch that has started runs to
// completion.
//
// The returned slice is sorted ascending by compound id, independent of
// completion order.
func (o *Orchestrator) Analyze(ctx context.Context, smiles, ids []string) ([]calc.CompoundRecord, error) {
	if ids == nil {
		ids = SequentialIDs(0, len(smiles))
	}
	if len(ids) != len(smiles) {
		return nil, fmt.Errorf("%w: %d ids for %d compounds", ErrLengthMismatch, len(ids), len(smiles))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(smiles) == 0 {
		return []calc.CompoundRecord{}, nil
	}

	if !o.calc.Available() {
		slog.Warn("batch: chemistry toolkit unavailable, returning degraded records",
			"compounds", len(smiles))
		results := make([]calc.CompoundRecord, len(smiles))
		for i := range smiles {
			results[i] = calc.DegradedRecord(smiles[i], ids[i])
		}
		sortRecords(results)
		return results, nil
	}

	results := make([]calc.CompoundRecord, len(smiles))
	if workers := o.workerCount(len(smiles)); workers > 1 && !o.sequential {
		g := new(errgroup.Group)
		g.SetLimit(workers)
		for i := range smiles {
			i := i
			g.Go(func() error {
				results[i] = o.process(smiles[i], ids[i])
				return nil
			})
		}
		// Workers never return errors; failures are already records.
		_ = g.Wait()
	} else {
		for i := range smiles {
			results[i] = o.process(smiles[i], ids[i])
		}
	}

	sortRecords(results)
	return results, nil
}

// process runs one unit of work with its own recovery boundary, so a crash
// in one unit cannot abort the batch.
func (o *Orchestrator) process(smiles, id string) (rec calc.CompoundRecord) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("batch: unit of work crashed", "compound_id", id, "panic", r)
			rec = calc.UnhandledRecord(smiles, id, fmt.Sprint(r))
		}
	}()
	return o.calc.Calculate(smiles, id)
}

// workerCount clamps the configured worker count to the available
// parallelism and the batch size. Never below 1 for a non-empty batch.
func (o *Orchestrator) workerCount(batchSize int) int {
	n := o.workers
	if n < 1 {
		n = DefaultWorkers
	}
	if cpus := runtime.NumCPU(); n > cpus {
		n = cpus
	}
	if n > batchSize {
		n = batchSize
	}
	if n < 1 {
		n = 1
	}
	return n
}

func sortRecords(records []calc.CompoundRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].CompoundID < records[j].CompoundID
	})
}
