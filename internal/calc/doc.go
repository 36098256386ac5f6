// Package calc computes per-compound property records and evaluates the
// rule-of-five style compliance checks.
//
// Top-level types:
//   - CompoundRecord — one compound's descriptors, compliance flag and
//     violation list. Nullable fields are pointers; serialized field names
//     are part of the output contract.
//   - Calculator — wraps a chem.Toolkit. Calculate is a total function:
//     parse failures, computation panics and a missing toolkit are all
//     encoded in the returned record, never raised.
//
// The five threshold rules run in a fixed order (MW, logP, H-donors,
// H-acceptors, rotatable bonds) so violation lists are deterministic.
package calc
