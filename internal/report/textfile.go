package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/molbatch/molbatch/internal/calc"
)

// Per-record outcome labels for the processed counter.
const (
	OutcomeValid    = "valid"
	OutcomeInvalid  = "invalid"
	OutcomeDegraded = "degraded"
)

// Metrics is one run's aggregate, ready for textfile export.
type Metrics struct {
	RunID    string
	Duration time.Duration

	// Processed counts records per outcome: valid | invalid | degraded.
	Processed map[string]int

	// Violations counts records per violation label.
	Violations map[string]int
}

// CollectMetrics aggregates records into exportable metrics.
func CollectMetrics(runID string, duration time.Duration, records []calc.CompoundRecord) Metrics {
	m := Metrics{
		RunID:      runID,
		Duration:   duration,
		Processed:  make(map[string]int),
		Violations: make(map[string]int),
	}
	for _, r := range records {
		switch {
		case r.IsValid == nil:
			m.Processed[OutcomeDegraded]++
		case *r.IsValid:
			m.Processed[OutcomeValid]++
		default:
			m.Processed[OutcomeInvalid]++
		}
		for _, v := range r.RuleViolations {
			m.Violations[v]++
		}
	}
	return m
}

// WriteTextfile encodes m in Prometheus text exposition format. The output
// is a complete scrape body: drop it into a node_exporter textfile
// collector directory to expose batch results.
func WriteTextfile(w io.Writer, m Metrics) error {
	families := []*dto.MetricFamily{
		counterFamily("molbatch_compounds_processed_total",
			"Compounds processed in the last run, by outcome.",
			"outcome", m.RunID, m.Processed),
		counterFamily("molbatch_rule_violations_total",
			"Rule violations flagged in the last run, by rule.",
			"rule", m.RunID, m.Violations),
		{
			Name: proto.String("molbatch_batch_duration_seconds"),
			Help: proto.String("Wall-clock duration of the last run."),
			Type: dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{
				Label: []*dto.LabelPair{labelPair("run_id", m.RunID)},
				Gauge: &dto.Gauge{Value: proto.Float64(m.Duration.Seconds())},
			}},
		},
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if len(mf.Metric) == 0 {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("report: encode metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteTextfilePath writes the metrics textfile at path.
func WriteTextfilePath(path string, m Metrics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteTextfile(f, m); err != nil {
		return err
	}
	return f.Close()
}

// counterFamily builds one labelled counter family from a count map, with
// label values in sorted order for deterministic output.
func counterFamily(name, help, labelName, runID string, counts map[string]int) *dto.MetricFamily {
	values := make([]string, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Strings(values)

	mf := &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	for _, v := range values {
		mf.Metric = append(mf.Metric, &dto.Metric{
			Label: []*dto.LabelPair{
				labelPair(labelName, v),
				labelPair("run_id", runID),
			},
			Counter: &dto.Counter{Value: proto.Float64(float64(counts[v]))},
		})
	}
	return mf
}

func labelPair(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: proto.String(name), Value: proto.String(value)}
}
