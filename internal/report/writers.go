package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/molbatch/molbatch/internal/calc"
)

// Output formats accepted by Write.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// csvHeader is the fixed column set, matching the JSON field names.
var csvHeader = []string{
	"compound_id", "smiles", "is_valid", "molecular_weight",
	"logP", "is_compliant", "rule_violations",
}

// WriteJSON writes records as an indented JSON array. A nil violations
// slice serializes as [], never null.
func WriteJSON(w io.Writer, records []calc.CompoundRecord) error {
	out := make([]calc.CompoundRecord, len(records))
	copy(out, records)
	for i := range out {
		if out[i].RuleViolations == nil {
			out[i].RuleViolations = []string{}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}

// WriteCSV writes records as CSV with a header row. Null fields become
// empty cells; violations are joined with "; ".
func WriteCSV(w io.Writer, records []calc.CompoundRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("report: write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.CompoundID,
			r.SMILES,
			formatBool(r.IsValid),
			formatFloat(r.MolecularWeight),
			formatFloat(r.LogP),
			formatBool(r.IsCompliant),
			strings.Join(r.RuleViolations, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("report: write csv row %q: %w", r.CompoundID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report: flush csv: %w", err)
	}
	return nil
}

// Write dispatches on format and writes records to path.
func Write(path, format string, records []calc.CompoundRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case FormatJSON:
		err = WriteJSON(f, records)
	case FormatCSV:
		err = WriteCSV(f, records)
	default:
		err = fmt.Errorf("report: unknown format %q", format)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func formatFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
