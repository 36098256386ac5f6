package chem

import "math"

const massHydrogen = 1.008

// logPAtom holds the additive logP contribution per heavy atom, keyed by
// element symbol with separate aromatic entries. Values are a coarse
// lipophilicity scale: carbon and halogens push up, heteroatoms pull down.
var logPAtom = map[string]float64{
	"C": 0.20, "N": -0.60, "O": -0.40, "S": 0.40, "P": -0.50,
	"B": -0.10, "F": 0.20, "Cl": 0.60, "Br": 0.85, "I": 1.10,
	"Si": 0.30, "Se": 0.55,
}

// logPAromatic overrides logPAtom for atoms in aromatic form.
var logPAromatic = map[string]float64{
	"C": 0.30, "N": -0.45, "O": -0.30, "S": 0.45, "Se": 0.55,
}

const (
	logPHydrogen = 0.11  // per attached hydrogen
	logPCharge   = -0.80 // per unit of formal charge, either sign
)

// MolecularWeight returns the average molecular weight in g/mol, implicit
// hydrogens included. Isotope-labelled atoms use the mass number.
func (m *Molecule) MolecularWeight() float64 {
	var w float64
	for i, a := range m.atoms {
		if a.isotope > 0 {
			w += float64(a.isotope)
		} else {
			w += atomicMasses[a.symbol]
		}
		w += float64(m.hydrogens(i)) * massHydrogen
	}
	return w
}

// LogP returns an additive atom-contribution estimate of the octanol-water
// partition coefficient.
func (m *Molecule) LogP() float64 {
	var p float64
	for i, a := range m.atoms {
		contrib, aromatic := logPAromatic[a.symbol]
		if !a.aromatic || !aromatic {
			contrib = logPAtom[a.symbol]
		}
		p += contrib
		p += float64(m.hydrogens(i)) * logPHydrogen
		if a.charge != 0 {
			p += logPCharge * math.Abs(float64(a.charge))
		}
	}
	return p
}

// HBondDonors counts nitrogen and oxygen atoms bearing at least one
// hydrogen (the Lipinski donor definition).
func (m *Molecule) HBondDonors() int {
	var n int
	for i, a := range m.atoms {
		if (a.symbol == "N" || a.symbol == "O") && m.hydrogens(i) > 0 {
			n++
		}
	}
	return n
}

// HBondAcceptors counts nitrogen and oxygen atoms (the Lipinski acceptor
// definition).
func (m *Molecule) HBondAcceptors() int {
	var n int
	for _, a := range m.atoms {
		if a.symbol == "N" || a.symbol == "O" {
			n++
		}
	}
	return n
}

// RotatableBonds counts non-ring single bonds whose endpoints both connect
// to at least one other heavy atom.
func (m *Molecule) RotatableBonds() int {
	var n int
	for bi, b := range m.bonds {
		if b.order != orderSingle {
			continue
		}
		if len(m.adj[b.a]) < 2 || len(m.adj[b.b]) < 2 {
			continue
		}
		if m.isRingBond(bi) {
			continue
		}
		n++
	}
	return n
}

// hydrogens returns the total hydrogen count on atom i. Bracket atoms carry
// it explicitly; organic-subset atoms fill up to the smallest standard
// valence that accommodates the bond order sum.
func (m *Molecule) hydrogens(i int) int {
	a := m.atoms[i]
	if a.bracket {
		return a.hCount
	}
	var sum float64
	for _, bi := range m.adj[i] {
		sum += m.bonds[bi].order
	}
	used := int(math.Ceil(sum))
	for _, v := range valences[a.symbol] {
		if v >= used {
			return v - used
		}
	}
	return 0
}

// isRingBond reports whether bond bi lies on a cycle: its endpoints remain
// connected when the bond itself is removed.
func (m *Molecule) isRingBond(bi int) bool {
	target := m.bonds[bi].b
	seen := make([]bool, len(m.atoms))
	queue := []int{m.bonds[bi].a}
	seen[m.bonds[bi].a] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, ei := range m.adj[cur] {
			if ei == bi {
				continue
			}
			next := m.bonds[ei].a
			if next == cur {
				next = m.bonds[ei].b
			}
			if next == target {
				return true
			}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}
