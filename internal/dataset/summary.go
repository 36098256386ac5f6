package dataset

import (
	"fmt"
	"io"
	"sort"

	"github.com/molbatch/molbatch/internal/calc"
)

// Summary aggregates one finished result set.
type Summary struct {
	Total     int
	Valid     int
	Invalid   int
	Compliant int

	// Averages over valid compounds only. Zero when none are valid.
	AvgMolWeight float64
	AvgLogP      float64

	// Violations counts records per violation label (rules and flags).
	Violations map[string]int
}

// Summarize computes aggregate statistics over records.
func Summarize(records []calc.CompoundRecord) Summary {
	s := Summary{Total: len(records), Violations: make(map[string]int)}

	var mwSum, logPSum float64
	for _, r := range records {
		switch {
		case r.IsValid == nil:
			// degraded record: neither valid nor invalid
		case *r.IsValid:
			s.Valid++
			if r.MolecularWeight != nil {
				mwSum += *r.MolecularWeight
			}
			if r.LogP != nil {
				logPSum += *r.LogP
			}
		default:
			s.Invalid++
		}
		if r.IsCompliant != nil && *r.IsCompliant {
			s.Compliant++
		}
		for _, v := range r.RuleViolations {
			s.Violations[v]++
		}
	}
	if s.Valid > 0 {
		s.AvgMolWeight = mwSum / float64(s.Valid)
		s.AvgLogP = logPSum / float64(s.Valid)
	}
	return s
}

// Print writes a human-readable summary block to w.
func (s Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "Total compounds:     %d\n", s.Total)
	fmt.Fprintf(w, "Valid compounds:     %d (%s)\n", s.Valid, pct(s.Valid, s.Total))
	fmt.Fprintf(w, "Invalid compounds:   %d (%s)\n", s.Invalid, pct(s.Invalid, s.Total))
	fmt.Fprintf(w, "Compliant compounds: %d (%s)\n", s.Compliant, pct(s.Compliant, s.Total))
	if s.Valid > 0 {
		fmt.Fprintf(w, "Average MW:          %.2f\n", s.AvgMolWeight)
		fmt.Fprintf(w, "Average logP:        %.2f\n", s.AvgLogP)
	}
	if len(s.Violations) == 0 {
		return
	}

	labels := make([]string, 0, len(s.Violations))
	for v := range s.Violations {
		labels = append(labels, v)
	}
	// Most frequent first; ties break alphabetically for stable output.
	sort.Slice(labels, func(i, j int) bool {
		if s.Violations[labels[i]] != s.Violations[labels[j]] {
			return s.Violations[labels[i]] > s.Violations[labels[j]]
		}
		return labels[i] < labels[j]
	})
	fmt.Fprintln(w, "Rule violations:")
	for _, v := range labels {
		fmt.Fprintf(w, "  %-22s %d (%s)\n", v+":", s.Violations[v], pct(s.Violations[v], s.Total))
	}
}

func pct(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)/float64(total)*100)
}
