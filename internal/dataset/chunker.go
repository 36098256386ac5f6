package dataset

import (
	"context"
	"log/slog"
	"time"

	"github.com/molbatch/molbatch/internal/batch"
	"github.com/molbatch/molbatch/internal/calc"
)

// DefaultChunkSize is used when no chunk size is configured.
const DefaultChunkSize = 100

// Chunker processes large compound lists in fixed-size chunks through a
// batch.Orchestrator, concatenating results in chunk order.
type Chunker struct {
	orch *batch.Orchestrator
	size int
}

// NewChunker returns a Chunker dispatching chunks of size compounds.
// Sizes below 1 fall back to DefaultChunkSize.
func NewChunker(orch *batch.Orchestrator, size int) *Chunker {
	if size < 1 {
		size = DefaultChunkSize
	}
	return &Chunker{orch: orch, size: size}
}

// Process analyzes all compounds chunk by chunk and returns the
// concatenated results.
//
// When ids is nil, generated ids continue across chunk boundaries
// (chunk 2 of a 100-compound chunking starts at CPND000101). Supplied ids
// must pair 1:1 with smiles; batch.ErrLengthMismatch is returned before
// any work otherwise.
func (c *Chunker) Process(ctx context.Context, smiles, ids []string) ([]calc.CompoundRecord, error) {
	if ids != nil && len(ids) != len(smiles) {
		// Fail before the first chunk, not in the middle of the run.
		return nil, batch.ErrLengthMismatch
	}

	total := len(smiles)
	chunks := (total + c.size - 1) / c.size
	start := time.Now()
	slog.Info("dataset: processing compounds",
		"compounds", total, "chunk_size", c.size, "chunks", chunks)

	all := make([]calc.CompoundRecord, 0, total)
	for i := 0; i < total; i += c.size {
		end := i + c.size
		if end > total {
			end = total
		}

		chunkIDs := ids
		if chunkIDs == nil {
			chunkIDs = batch.SequentialIDs(i, end-i)
		} else {
			chunkIDs = ids[i:end]
		}

		chunkStart := time.Now()
		records, err := c.orch.Analyze(ctx, smiles[i:end], chunkIDs)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)

		elapsed := time.Since(chunkStart)
		slog.Info("dataset: chunk processed",
			"chunk", i/c.size+1,
			"of", chunks,
			"compounds", end-i,
			"elapsed", elapsed,
			"per_second", rate(end-i, elapsed))
	}

	elapsed := time.Since(start)
	slog.Info("dataset: processing complete",
		"compounds", total,
		"elapsed", elapsed,
		"per_second", rate(total, elapsed))
	return all, nil
}

// rate returns items/second, guarding the first-chunk case where elapsed
// rounds to zero.
func rate(n int, elapsed time.Duration) float64 {
	s := elapsed.Seconds()
	if s <= 0 {
		return 0
	}
	return float64(n) / s
}
