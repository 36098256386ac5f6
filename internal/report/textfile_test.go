package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/molbatch/molbatch/internal/calc"
	"github.com/molbatch/molbatch/internal/chem"
)

func TestCollectMetrics(t *testing.T) {
	c := calc.New(chem.Default())
	records := []calc.CompoundRecord{
		c.Calculate("CC(=O)OC1=CC=CC=C1C(=O)O", "ASP001"),
		c.Calculate("INVALID_SMILES", "INV001"),
		calc.DegradedRecord("CCO", "DEG001"),
	}

	m := CollectMetrics("run-1", 2*time.Second, records)
	if m.Processed[OutcomeValid] != 1 || m.Processed[OutcomeInvalid] != 1 || m.Processed[OutcomeDegraded] != 1 {
		t.Errorf("Processed = %v, want one of each outcome", m.Processed)
	}
	if m.Violations[calc.FlagInvalidSMILES] != 1 {
		t.Errorf("Violations = %v, want one invalid-SMILES flag", m.Violations)
	}
}

func TestWriteTextfile(t *testing.T) {
	m := Metrics{
		RunID:    "run-42",
		Duration: 1500 * time.Millisecond,
		Processed: map[string]int{
			OutcomeValid:   7,
			OutcomeInvalid: 2,
		},
		Violations: map[string]int{"MW > 500": 3},
	}

	var buf bytes.Buffer
	if err := WriteTextfile(&buf, m); err != nil {
		t.Fatalf("WriteTextfile error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# TYPE molbatch_compounds_processed_total counter",
		`molbatch_compounds_processed_total{outcome="valid",run_id="run-42"} 7`,
		`molbatch_compounds_processed_total{outcome="invalid",run_id="run-42"} 2`,
		`molbatch_rule_violations_total{rule="MW > 500",run_id="run-42"} 3`,
		"# TYPE molbatch_batch_duration_seconds gauge",
		`molbatch_batch_duration_seconds{run_id="run-42"} 1.5`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTextfile_SkipsEmptyFamilies(t *testing.T) {
	m := Metrics{RunID: "run-0", Processed: map[string]int{OutcomeValid: 1}}
	var buf bytes.Buffer
	if err := WriteTextfile(&buf, m); err != nil {
		t.Fatalf("WriteTextfile error: %v", err)
	}
	if strings.Contains(buf.String(), "molbatch_rule_violations_total") {
		t.Error("empty violations family should be omitted")
	}
}
