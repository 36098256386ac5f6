// Package config loads the molbatch configuration file (config.yaml).
//
// Top-level types:
//   - Config — workers, batch_size, log_level, sequential, output, watch
//   - OutputConfig — format (json|csv), path, metrics_path
//   - WatchConfig — dir, pattern for drop-directory mode
//
// Load(path) reads the YAML file, applies defaults (4 workers, batch size
// 100, json output, *.smi pattern), then validates enums and positivity
// constraints. CLI flags override loaded values in cmd/molbatch.
package config
