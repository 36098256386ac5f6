package calc

import (
	"fmt"
	"log/slog"

	"github.com/molbatch/molbatch/internal/chem"
)

// Calculator computes CompoundRecords through a chem.Toolkit.
//
// A nil toolkit is the explicit "chemistry unavailable" state: Available
// reports false and the orchestrator produces degraded records instead of
// calling Calculate.
type Calculator struct {
	tk chem.Toolkit
}

// New returns a Calculator backed by tk. tk may be nil.
func New(tk chem.Toolkit) *Calculator {
	return &Calculator{tk: tk}
}

// Available reports whether a chemistry toolkit is present.
func (c *Calculator) Available() bool {
	return c != nil && c.tk != nil
}

// Calculate parses smiles and evaluates descriptors and rule compliance.
// It is total: every failure mode is encoded in the returned record.
func (c *Calculator) Calculate(smiles, id string) (rec CompoundRecord) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("calc: recovered panic while processing compound",
				"compound_id", id, "panic", r)
			rec = ErrorRecord(smiles, id, fmt.Sprint(r))
		}
	}()

	mol, err := c.tk.Parse(smiles)
	if err != nil || mol == nil {
		return InvalidRecord(smiles, id)
	}

	props := Properties{
		MolWeight:      mol.MolecularWeight(),
		LogP:           mol.LogP(),
		HBondDonors:    mol.HBondDonors(),
		HBondAcceptors: mol.HBondAcceptors(),
		RotatableBonds: mol.RotatableBonds(),
	}
	violations := CheckRules(props)

	return CompoundRecord{
		CompoundID:      id,
		SMILES:          smiles,
		IsValid:         boolPtr(true),
		MolecularWeight: floatPtr(props.MolWeight),
		LogP:            floatPtr(props.LogP),
		IsCompliant:     boolPtr(len(violations) == 0),
		RuleViolations:  violations,
	}
}
