// Package batch fans compound analysis out across a bounded worker pool
// and collects a complete, deterministically ordered result set.
//
// Contract highlights:
//   - output count always equals input count; per-unit failures become
//     flagged records, never missing entries
//   - results are sorted ascending by compound_id before return
//   - a missing chemistry toolkit degrades the whole batch to
//     "Dependencies not available" records instead of failing
//   - only an ids/smiles length mismatch (ErrLengthMismatch) aborts the
//     call before any work starts
//
// Units of work share no mutable state: each goroutine writes its own
// result slot, so the pool needs no locking beyond errgroup's own
// synchronization.
package batch
