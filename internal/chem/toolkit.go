package chem

// Toolkit is the chemistry capability consumed by the property calculator.
// Parse returns a nil Molecule and a descriptive error when the input is
// not valid SMILES; it never panics on malformed input.
type Toolkit interface {
	Parse(smiles string) (*Molecule, error)
}

// Default returns the built-in SMILES toolkit.
func Default() Toolkit { return builtin{} }

type builtin struct{}

func (builtin) Parse(smiles string) (*Molecule, error) {
	return parseSMILES(smiles)
}
