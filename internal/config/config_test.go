package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a temp config file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "output:\n  path: results.json\n"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want default %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want default %d", cfg.BatchSize, DefaultBatchSize)
	}
	if cfg.Output.Format != DefaultFormat {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, DefaultFormat)
	}
	if cfg.Watch.Pattern != DefaultPattern {
		t.Errorf("Watch.Pattern = %q, want %q", cfg.Watch.Pattern, DefaultPattern)
	}
	if cfg.Output.Path != "results.json" {
		t.Errorf("Output.Path = %q, want results.json", cfg.Output.Path)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
workers: 8
batch_size: 250
log_level: debug
sequential: true
output:
  format: csv
  path: out.csv
  metrics_path: metrics.prom
watch:
  dir: /var/spool/molbatch
  pattern: "*.smiles"
`))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Workers != 8 || cfg.BatchSize != 250 || !cfg.Sequential {
		t.Errorf("unexpected core settings: %+v", cfg)
	}
	if cfg.Output.Format != "csv" || cfg.Output.MetricsPath != "metrics.prom" {
		t.Errorf("unexpected output settings: %+v", cfg.Output)
	}
	if cfg.Watch.Dir != "/var/spool/molbatch" || cfg.Watch.Pattern != "*.smiles" {
		t.Errorf("unexpected watch settings: %+v", cfg.Watch)
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"zero workers", "workers: 0\n", "workers must be positive"},
		{"negative batch size", "batch_size: -1\n", "batch_size must be positive"},
		{"unknown format", "output:\n  format: xml\n", "unknown format"},
		{"unknown log level", "log_level: loud\n", "unknown log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("Load of missing file succeeded")
	}
}
