// Package chem is the built-in chemistry toolkit: a SMILES parser and the
// molecular descriptor calculators the property rules run on.
//
// Top-level types:
//   - Toolkit — the capability boundary consumed by calc. A nil Toolkit is
//     the "chemistry unavailable" signal; callers degrade instead of failing.
//   - Molecule — parsed atom/bond graph with descriptor methods:
//     MolecularWeight, LogP, HBondDonors, HBondAcceptors, RotatableBonds.
//
// The parser covers the organic subset (B C N O P S F Cl Br I), bracket
// atoms with isotope/charge/explicit hydrogens, branches, ring closures
// (including %nn), dot-separated fragments and lowercase aromatic atoms.
// Aromatic bonds are tracked at order 1.5; implicit hydrogen counts follow
// standard SMILES valence rules.
//
// LogP is an additive atom-contribution estimate, not a Crippen
// reimplementation. It preserves sign and ordering for typical drug-like
// molecules, which is all the rule engine needs.
package chem
