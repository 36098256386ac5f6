// Package report serializes finished result sets: JSON and CSV dumps with
// the fixed output field names, and a Prometheus text-exposition metrics
// file suitable for a node_exporter textfile collector.
//
// Field name order (compound_id, smiles, is_valid, molecular_weight, logP,
// is_compliant, rule_violations) is part of the output contract.
package report
