package calc

// Violation flags outside the threshold rule set.
const (
	FlagInvalidSMILES   = "Invalid SMILES string"
	FlagDepsUnavailable = "Dependencies not available"

	prefixProcessingError = "Processing error: "
	prefixUnhandledError  = "Unhandled error: "
)

// CompoundRecord is the analysis result for one compound. It is created
// once per input item and never mutated after construction; the caller that
// receives it from the orchestrator owns it exclusively.
//
// IsValid, MolecularWeight, LogP and IsCompliant are pointers because null
// is meaningful: an invalid SMILES has no weight, and in degraded mode
// (no toolkit) validity itself is unknowable.
type CompoundRecord struct {
	CompoundID      string   `json:"compound_id"`
	SMILES          string   `json:"smiles"`
	IsValid         *bool    `json:"is_valid"`
	MolecularWeight *float64 `json:"molecular_weight"`
	LogP            *float64 `json:"logP"`
	IsCompliant     *bool    `json:"is_compliant"`
	RuleViolations  []string `json:"rule_violations"`
}

// InvalidRecord builds the record for a compound whose SMILES failed to
// parse.
func InvalidRecord(smiles, id string) CompoundRecord {
	return CompoundRecord{
		CompoundID:     id,
		SMILES:         smiles,
		IsValid:        boolPtr(false),
		IsCompliant:    boolPtr(false),
		RuleViolations: []string{FlagInvalidSMILES},
	}
}

// ErrorRecord builds the record for a compound whose computation failed
// unexpectedly inside the calculator.
func ErrorRecord(smiles, id, msg string) CompoundRecord {
	return CompoundRecord{
		CompoundID:     id,
		SMILES:         smiles,
		IsValid:        boolPtr(false),
		IsCompliant:    boolPtr(false),
		RuleViolations: []string{prefixProcessingError + msg},
	}
}

// UnhandledRecord builds the record for a unit of work that crashed outside
// the calculator's own recovery boundary.
func UnhandledRecord(smiles, id, msg string) CompoundRecord {
	return CompoundRecord{
		CompoundID:     id,
		SMILES:         smiles,
		IsValid:        boolPtr(false),
		IsCompliant:    boolPtr(false),
		RuleViolations: []string{prefixUnhandledError + msg},
	}
}

// DegradedRecord builds the record returned when no chemistry toolkit is
// available. Validity and compliance are unknown, not false.
func DegradedRecord(smiles, id string) CompoundRecord {
	return CompoundRecord{
		CompoundID:     id,
		SMILES:         smiles,
		RuleViolations: []string{FlagDepsUnavailable},
	}
}

func boolPtr(b bool) *bool { return &b }

func floatPtr(f float64) *float64 { return &f }
