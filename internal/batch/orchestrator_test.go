package batch

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/molbatch/molbatch/internal/calc"
	"github.com/molbatch/molbatch/internal/chem"
)

// mixedBatch is a fixed batch with valid, invalid and rule-violating
// compounds.
var mixedBatch = []string{
	"CC(=O)OC1=CC=CC=C1C(=O)O",      // aspirin
	"CN1C=NC2=C1C(=O)N(C(=O)N2C)C",  // caffeine
	"INVALID_SMILES",                // parse failure
	"C1=CC=CC",                      // unclosed ring
	"CC(C)CC1=CC=C(C=C1)C(C)C(=O)O", // ibuprofen
}

func newOrchestrator(opts ...Option) *Orchestrator {
	return New(calc.New(chem.Default()), opts...)
}

// --- Count preservation (P1) ---

func TestAnalyze_CountPreserved(t *testing.T) {
	o := newOrchestrator(WithWorkers(3))
	records, err := o.Analyze(context.Background(), mixedBatch, nil)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if len(records) != len(mixedBatch) {
		t.Fatalf("got %d records for %d inputs", len(records), len(mixedBatch))
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	o := newOrchestrator()
	records, err := o.Analyze(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", records)
	}
}

// --- ID matching (P2) and sort order (P3) ---

func TestAnalyze_IDsMatchAndSorted(t *testing.T) {
	// Deliberately unsorted ids: the output must come back sorted.
	ids := []string{"Z05", "A01", "M03", "B02", "X04"}
	o := newOrchestrator(WithWorkers(4))
	records, err := o.Analyze(context.Background(), mixedBatch, ids)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	var got []string
	for _, r := range records {
		got = append(got, r.CompoundID)
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("output ids not sorted: %v", got)
	}

	want := append([]string(nil), ids...)
	sort.Strings(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("id set mismatch (-want +got):\n%s", diff)
	}
}

// --- Validity implication (P4) ---

func TestAnalyze_InvalidImpliesNullFields(t *testing.T) {
	o := newOrchestrator()
	records, err := o.Analyze(context.Background(), mixedBatch, nil)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	for _, r := range records {
		if r.IsValid == nil {
			t.Fatalf("%s: IsValid nil outside degraded mode", r.CompoundID)
		}
		if *r.IsValid {
			continue
		}
		if r.MolecularWeight != nil || r.LogP != nil {
			t.Errorf("%s: invalid record has non-nil numeric fields", r.CompoundID)
		}
		if r.IsCompliant == nil || *r.IsCompliant {
			t.Errorf("%s: invalid record is marked compliant", r.CompoundID)
		}
	}
}

// --- Mismatch rejection (P5) ---

func TestAnalyze_LengthMismatch(t *testing.T) {
	o := newOrchestrator()
	records, err := o.Analyze(context.Background(), mixedBatch, []string{"ONLY_ONE"})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err = %v, want ErrLengthMismatch", err)
	}
	if records != nil {
		t.Errorf("got partial output %v, want none", records)
	}
}

// --- Generated ids (Scenario C) ---

func TestAnalyze_GeneratedIDs(t *testing.T) {
	o := newOrchestrator()
	records, err := o.Analyze(context.Background(),
		[]string{"CC(=O)OC1=CC=CC=C1C(=O)O", "INVALID_SMILES"}, nil)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	want := []string{"CPND000001", "CPND000002"}
	for i, r := range records {
		if r.CompoundID != want[i] {
			t.Errorf("records[%d].CompoundID = %q, want %q", i, r.CompoundID, want[i])
		}
	}
}

func TestSequentialIDs(t *testing.T) {
	tests := []struct {
		offset, n int
		first     string
		last      string
	}{
		{0, 2, "CPND000001", "CPND000002"},
		{100, 3, "CPND000101", "CPND000103"},
		{999998, 2, "CPND999999", "CPND1000000"},
	}
	for _, tt := range tests {
		ids := SequentialIDs(tt.offset, tt.n)
		if len(ids) != tt.n {
			t.Fatalf("SequentialIDs(%d, %d) returned %d ids", tt.offset, tt.n, len(ids))
		}
		if ids[0] != tt.first || ids[len(ids)-1] != tt.last {
			t.Errorf("SequentialIDs(%d, %d) = %v..%v, want %v..%v",
				tt.offset, tt.n, ids[0], ids[len(ids)-1], tt.first, tt.last)
		}
	}
}

// --- Sequential fallback parity (Scenario D) ---

func TestAnalyze_SequentialMatchesParallel(t *testing.T) {
	parallel, err := newOrchestrator(WithWorkers(4)).Analyze(context.Background(), mixedBatch, nil)
	if err != nil {
		t.Fatalf("parallel Analyze error: %v", err)
	}
	sequential, err := newOrchestrator(Sequential()).Analyze(context.Background(), mixedBatch, nil)
	if err != nil {
		t.Fatalf("sequential Analyze error: %v", err)
	}
	if diff := cmp.Diff(parallel, sequential); diff != "" {
		t.Errorf("sequential output differs from parallel (-parallel +sequential):\n%s", diff)
	}
}

// --- Degraded mode ---

func TestAnalyze_DegradedMode(t *testing.T) {
	o := New(calc.New(nil), WithWorkers(4))
	records, err := o.Analyze(context.Background(), mixedBatch, nil)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if len(records) != len(mixedBatch) {
		t.Fatalf("got %d records for %d inputs", len(records), len(mixedBatch))
	}
	for _, r := range records {
		if r.IsValid != nil || r.IsCompliant != nil {
			t.Errorf("%s: degraded record must leave validity unknown", r.CompoundID)
		}
		if len(r.RuleViolations) != 1 || r.RuleViolations[0] != calc.FlagDepsUnavailable {
			t.Errorf("%s: RuleViolations = %v, want [%s]",
				r.CompoundID, r.RuleViolations, calc.FlagDepsUnavailable)
		}
	}
}

// --- Worker clamping ---

func TestWorkerCount(t *testing.T) {
	o := newOrchestrator(WithWorkers(1000))
	if got := o.workerCount(2); got > 2 {
		t.Errorf("workerCount(2) = %d, want ≤ 2", got)
	}
	if got := o.workerCount(1); got != 1 {
		t.Errorf("workerCount(1) = %d, want 1", got)
	}

	o = newOrchestrator()
	if got := o.workerCount(1000); got < 1 {
		t.Errorf("workerCount(1000) = %d, want ≥ 1", got)
	}
}

// --- Cancelled context ---

func TestAnalyze_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newOrchestrator().Analyze(ctx, mixedBatch, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
