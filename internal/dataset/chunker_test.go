package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/molbatch/molbatch/internal/batch"
	"github.com/molbatch/molbatch/internal/calc"
	"github.com/molbatch/molbatch/internal/chem"
)

func testChunker(size int) *Chunker {
	orch := batch.New(calc.New(chem.Default()), batch.WithWorkers(2))
	return NewChunker(orch, size)
}

func TestChunker_IDsContinueAcrossChunks(t *testing.T) {
	smiles := []string{"C", "CC", "CCC", "CCCC", "CCCCC"}
	records, err := testChunker(2).Process(context.Background(), smiles, nil)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(records) != len(smiles) {
		t.Fatalf("got %d records for %d inputs", len(records), len(smiles))
	}
	// Three chunks (2+2+1); generated ids must continue globally instead
	// of restarting per chunk.
	want := []string{"CPND000001", "CPND000002", "CPND000003", "CPND000004", "CPND000005"}
	for i, r := range records {
		if r.CompoundID != want[i] {
			t.Errorf("records[%d].CompoundID = %q, want %q", i, r.CompoundID, want[i])
		}
	}
}

func TestChunker_SuppliedIDs(t *testing.T) {
	smiles := []string{"C", "CC", "CCC"}
	ids := []string{"A1", "B2", "C3"}
	records, err := testChunker(2).Process(context.Background(), smiles, ids)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	for i, r := range records {
		if r.CompoundID != ids[i] {
			t.Errorf("records[%d].CompoundID = %q, want %q", i, r.CompoundID, ids[i])
		}
	}
}

func TestChunker_LengthMismatch(t *testing.T) {
	_, err := testChunker(2).Process(context.Background(), []string{"C", "CC"}, []string{"A1"})
	if !errors.Is(err, batch.ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
}

func TestChunker_ChunkLargerThanInput(t *testing.T) {
	records, err := testChunker(100).Process(context.Background(), []string{"C"}, nil)
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
}
