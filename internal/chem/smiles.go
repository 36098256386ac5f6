package chem

import (
	"fmt"
	"strings"
)

// Bond orders. Aromatic bonds carry 1.5 so valence sums round up to the
// Kekulé equivalent.
const (
	orderSingle   = 1.0
	orderAromatic = 1.5
	orderDouble   = 2.0
	orderTriple   = 3.0
)

// atom is one node of the molecular graph.
type atom struct {
	symbol   string
	aromatic bool
	charge   int
	isotope  int
	bracket  bool // bracket atoms carry their hydrogen count explicitly
	hCount   int  // explicit H from a bracket expression
}

// bond is an undirected edge between two atom indices.
type bond struct {
	a, b  int
	order float64
}

// Molecule is a parsed SMILES structure. Descriptor methods live in
// descriptors.go.
type Molecule struct {
	atoms []atom
	bonds []bond
	adj   [][]int // adjacency: atom index -> incident bond indices
}

// NumAtoms returns the heavy (non-hydrogen) atom count.
func (m *Molecule) NumAtoms() int { return len(m.atoms) }

// NumBonds returns the bond count between heavy atoms.
func (m *Molecule) NumBonds() int { return len(m.bonds) }

// aliphaticSymbols are the organic-subset atoms writable without brackets.
// Two-letter symbols must be matched before their one-letter prefixes.
var aliphaticSymbols = []string{"Cl", "Br", "B", "C", "N", "O", "P", "S", "F", "I"}

// aromaticSymbols are the lowercase aromatic forms accepted outside brackets.
var aromaticSymbols = map[byte]string{
	'b': "B", 'c': "C", 'n': "N", 'o': "O", 'p': "P", 's': "S",
}

// valences lists the allowed valence states per element, smallest first.
var valences = map[string][]int{
	"B": {3}, "C": {4}, "N": {3, 5}, "O": {2}, "P": {3, 5},
	"S": {2, 4, 6}, "F": {1}, "Cl": {1}, "Br": {1}, "I": {1},
	"H": {1},
}

// atomicMasses holds standard atomic weights (g/mol). Beyond the organic
// subset it covers the counterions that show up in salt forms.
var atomicMasses = map[string]float64{
	"H": 1.008, "B": 10.811, "C": 12.011, "N": 14.007, "O": 15.999,
	"F": 18.998, "Si": 28.086, "P": 30.974, "S": 32.06, "Cl": 35.453,
	"Se": 78.971, "Br": 79.904, "I": 126.904,
	"Li": 6.94, "Na": 22.990, "K": 39.098, "Mg": 24.305, "Ca": 40.078,
	"Fe": 55.845, "Zn": 65.38,
}

// openRing tracks a pending ring-closure digit until its partner appears.
type openRing struct {
	atom  int
	order float64 // 0 until a bond symbol precedes one of the two digits
}

type parser struct {
	src     string
	pos     int
	mol     *Molecule
	prev    int // previous atom index, -1 at a fragment start
	stack   []int
	pending float64 // bond order forced by the last bond symbol, 0 = default
	rings   map[int]openRing
}

func parseSMILES(src string) (*Molecule, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("empty SMILES")
	}
	p := &parser{
		src:   src,
		mol:   &Molecule{},
		prev:  -1,
		rings: make(map[int]openRing),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.mol, nil
}

func (p *parser) run() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '[':
			if err := p.parseBracket(); err != nil {
				return err
			}

		case c >= 'A' && c <= 'Z':
			sym, ok := p.matchAliphatic()
			if !ok {
				return p.errf("unknown atom symbol %q", string(c))
			}
			p.addAtom(atom{symbol: sym})

		case aromaticSymbols[c] != "":
			p.pos++
			p.addAtom(atom{symbol: aromaticSymbols[c], aromatic: true})

		case c >= '0' && c <= '9':
			p.pos++
			if err := p.closeRing(int(c - '0')); err != nil {
				return err
			}

		case c == '%':
			if p.pos+2 >= len(p.src) || !isDigit(p.src[p.pos+1]) || !isDigit(p.src[p.pos+2]) {
				return p.errf("malformed %%nn ring closure")
			}
			n := int(p.src[p.pos+1]-'0')*10 + int(p.src[p.pos+2]-'0')
			p.pos += 3
			if err := p.closeRing(n); err != nil {
				return err
			}

		case c == '-':
			if err := p.setBond(orderSingle); err != nil {
				return err
			}
		case c == '=':
			if err := p.setBond(orderDouble); err != nil {
				return err
			}
		case c == '#':
			if err := p.setBond(orderTriple); err != nil {
				return err
			}
		case c == ':':
			if err := p.setBond(orderAromatic); err != nil {
				return err
			}
		case c == '/' || c == '\\':
			// Stereo bond markers: single bonds for our purposes.
			if err := p.setBond(orderSingle); err != nil {
				return err
			}

		case c == '(':
			if p.prev < 0 {
				return p.errf("branch opened before any atom")
			}
			p.stack = append(p.stack, p.prev)
			p.pos++
		case c == ')':
			if len(p.stack) == 0 {
				return p.errf("unmatched closing parenthesis")
			}
			p.prev = p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			p.pos++

		case c == '.':
			if p.pending != 0 {
				return p.errf("bond symbol before fragment separator")
			}
			p.prev = -1
			p.pos++

		default:
			return p.errf("unexpected character %q", string(c))
		}
	}

	if p.pending != 0 {
		return fmt.Errorf("dangling bond at end of SMILES")
	}
	if len(p.stack) != 0 {
		return fmt.Errorf("unclosed branch in SMILES")
	}
	if len(p.rings) != 0 {
		for n := range p.rings {
			return fmt.Errorf("unclosed ring bond %d", n)
		}
	}
	return nil
}

// setBond records a pending bond order from an explicit bond symbol.
func (p *parser) setBond(order float64) error {
	if p.pending != 0 {
		return p.errf("consecutive bond symbols")
	}
	p.pos++
	p.pending = order
	return nil
}

// matchAliphatic consumes an organic-subset uppercase symbol if present.
func (p *parser) matchAliphatic() (string, bool) {
	rest := p.src[p.pos:]
	for _, sym := range aliphaticSymbols {
		if strings.HasPrefix(rest, sym) {
			p.pos += len(sym)
			return sym, true
		}
	}
	return "", false
}

// addAtom appends the atom and bonds it to the previous one.
func (p *parser) addAtom(a atom) {
	idx := len(p.mol.atoms)
	p.mol.atoms = append(p.mol.atoms, a)
	p.mol.adj = append(p.mol.adj, nil)

	if p.prev >= 0 {
		order := p.pending
		if order == 0 {
			order = orderSingle
			if a.aromatic && p.mol.atoms[p.prev].aromatic {
				order = orderAromatic
			}
		}
		p.addBond(p.prev, idx, order)
	}
	p.pending = 0
	p.prev = idx
}

func (p *parser) addBond(a, b int, order float64) {
	bi := len(p.mol.bonds)
	p.mol.bonds = append(p.mol.bonds, bond{a: a, b: b, order: order})
	p.mol.adj[a] = append(p.mol.adj[a], bi)
	p.mol.adj[b] = append(p.mol.adj[b], bi)
}

// closeRing opens ring number n on first sight and closes it on the second.
func (p *parser) closeRing(n int) error {
	if p.prev < 0 {
		return p.errf("ring closure digit before any atom")
	}
	open, ok := p.rings[n]
	if !ok {
		p.rings[n] = openRing{atom: p.prev, order: p.pending}
		p.pending = 0
		return nil
	}
	delete(p.rings, n)

	if open.atom == p.prev {
		return p.errf("ring bond %d closes on its own atom", n)
	}
	order := p.pending
	if order == 0 {
		order = open.order
	} else if open.order != 0 && open.order != order {
		return p.errf("conflicting bond orders on ring closure %d", n)
	}
	if order == 0 {
		order = orderSingle
		if p.mol.atoms[open.atom].aromatic && p.mol.atoms[p.prev].aromatic {
			order = orderAromatic
		}
	}
	p.addBond(open.atom, p.prev, order)
	p.pending = 0
	return nil
}

// parseBracket parses one [isotope symbol chirality Hn charge class] atom.
func (p *parser) parseBracket() error {
	p.pos++ // consume '['
	a := atom{bracket: true}

	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		a.isotope = a.isotope*10 + int(p.src[p.pos]-'0')
		p.pos++
	}

	if p.pos >= len(p.src) {
		return fmt.Errorf("unterminated bracket atom")
	}
	switch c := p.src[p.pos]; {
	case c >= 'A' && c <= 'Z':
		sym := string(c)
		p.pos++
		if p.pos < len(p.src) && p.src[p.pos] >= 'a' && p.src[p.pos] <= 'z' {
			two := sym + string(p.src[p.pos])
			if _, ok := atomicMasses[two]; ok {
				sym = two
				p.pos++
			}
		}
		if _, ok := atomicMasses[sym]; !ok {
			return p.errf("unknown element %q in bracket atom", sym)
		}
		a.symbol = sym
	case aromaticSymbols[c] != "":
		a.symbol = aromaticSymbols[c]
		a.aromatic = true
		p.pos++
	case c == 's' && strings.HasPrefix(p.src[p.pos:], "se"):
		a.symbol = "Se"
		a.aromatic = true
		p.pos += 2
	default:
		return p.errf("missing element symbol in bracket atom")
	}

	for p.pos < len(p.src) && p.src[p.pos] != ']' {
		switch c := p.src[p.pos]; c {
		case '@':
			p.pos++ // chirality is irrelevant to every descriptor we compute
		case 'H':
			p.pos++
			if p.pos < len(p.src) && isDigit(p.src[p.pos]) {
				a.hCount = 0
				for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
					a.hCount = a.hCount*10 + int(p.src[p.pos]-'0')
					p.pos++
				}
			} else {
				a.hCount = 1
			}
		case '+', '-':
			sign := 1
			if c == '-' {
				sign = -1
			}
			p.pos++
			if p.pos < len(p.src) && isDigit(p.src[p.pos]) {
				n := 0
				for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
					n = n*10 + int(p.src[p.pos]-'0')
					p.pos++
				}
				a.charge += sign * n
			} else {
				a.charge += sign
				for p.pos < len(p.src) && p.src[p.pos] == c {
					a.charge += sign
					p.pos++
				}
			}
		case ':':
			p.pos++
			for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
				p.pos++ // atom-map class, ignored
			}
		default:
			return p.errf("unexpected %q in bracket atom", string(c))
		}
	}
	if p.pos >= len(p.src) {
		return fmt.Errorf("unterminated bracket atom")
	}
	p.pos++ // consume ']'

	p.addAtom(a)
	return nil
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("position %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
