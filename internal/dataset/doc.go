// Package dataset is the caller-level orchestration around batch: it reads
// SMILES input files, splits large inputs into fixed-size chunks with
// globally continuing ids, and summarizes finished result sets.
//
// Chunking adds no retry or deduplication — per-compound failures are
// already isolated inside the orchestrator. The chunker only sequences
// batches and logs throughput.
package dataset
