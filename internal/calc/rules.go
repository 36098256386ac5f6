package calc

// Thresholds for the five drug-likeness rules.
const (
	MaxMolWeight      = 500.0
	MaxLogP           = 5.0
	MaxHBondDonors    = 5
	MaxHBondAcceptors = 10
	MaxRotatableBonds = 10
)

// Properties holds the computed descriptors the rules are evaluated over.
type Properties struct {
	MolWeight      float64
	LogP           float64
	HBondDonors    int
	HBondAcceptors int
	RotatableBonds int
}

// rule pairs a violation label with its threshold predicate.
type rule struct {
	label    string
	violated func(Properties) bool
}

// rules is the fixed rule set. Order matters: violation lists are reported
// in this order.
var rules = []rule{
	{"MW > 500", func(p Properties) bool { return p.MolWeight > MaxMolWeight }},
	{"logP > 5", func(p Properties) bool { return p.LogP > MaxLogP }},
	{"H-donors > 5", func(p Properties) bool { return p.HBondDonors > MaxHBondDonors }},
	{"H-acceptors > 10", func(p Properties) bool { return p.HBondAcceptors > MaxHBondAcceptors }},
	{"Rotatable bonds > 10", func(p Properties) bool { return p.RotatableBonds > MaxRotatableBonds }},
}

// CheckRules returns the labels of every violated rule, in rule order.
// An empty result means the compound is compliant.
func CheckRules(p Properties) []string {
	var violations []string
	for _, r := range rules {
		if r.violated(p) {
			violations = append(violations, r.label)
		}
	}
	return violations
}
