package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/molbatch/molbatch/internal/batch"
	"github.com/molbatch/molbatch/internal/calc"
	"github.com/molbatch/molbatch/internal/chem"
	"github.com/molbatch/molbatch/internal/config"
	"github.com/molbatch/molbatch/internal/dataset"
	"github.com/molbatch/molbatch/internal/report"
)

var (
	runInput       string
	runOutput      string
	runFormat      string
	runMetricsFile string
	runWorkers     int
	runBatchSize   int
	runSequential  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyze one SMILES input file and write reports",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "input .smi file (one SMILES per line, optional id)")
	runCmd.Flags().StringVar(&runOutput, "output", "", "report file path (default: none)")
	runCmd.Flags().StringVar(&runFormat, "format", "", "report format: json | csv")
	runCmd.Flags().StringVar(&runMetricsFile, "metrics-file", "", "Prometheus textfile path (default: none)")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "worker pool size")
	runCmd.Flags().IntVar(&runBatchSize, "batch-size", 0, "compounds per chunk")
	runCmd.Flags().BoolVar(&runSequential, "sequential", false, "process compounds sequentially")
	_ = runCmd.MarkFlagRequired("input")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)
	setupLogging(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	records, err := runPipeline(ctx, cfg, runInput, cfg.Output.Path)
	if err != nil {
		return err
	}

	dataset.Summarize(records).Print(os.Stdout)
	return nil
}

// applyRunFlags copies explicitly set flags over the loaded config.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("workers") {
		cfg.Workers = runWorkers
	}
	if cmd.Flags().Changed("batch-size") {
		cfg.BatchSize = runBatchSize
	}
	if cmd.Flags().Changed("sequential") {
		cfg.Sequential = runSequential
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = runFormat
	}
	if cmd.Flags().Changed("output") {
		cfg.Output.Path = runOutput
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.Output.MetricsPath = runMetricsFile
	}
}

// runPipeline reads input, analyzes it chunk by chunk and writes the
// configured outputs. outPath overrides cfg.Output.Path when non-empty.
func runPipeline(ctx context.Context, cfg *config.Config, inputPath, outPath string) ([]calc.CompoundRecord, error) {
	smiles, ids, err := dataset.ReadSMILESFile(inputPath)
	if err != nil {
		return nil, err
	}
	if len(smiles) == 0 {
		return nil, fmt.Errorf("no compounds in %s", inputPath)
	}

	opts := []batch.Option{batch.WithWorkers(cfg.Workers)}
	if cfg.Sequential {
		opts = append(opts, batch.Sequential())
	}
	orch := batch.New(calc.New(chem.Default()), opts...)
	chunker := dataset.NewChunker(orch, cfg.BatchSize)

	runID := uuid.NewString()
	slog.Info("run starting",
		"run_id", runID,
		"input", inputPath,
		"compounds", len(smiles),
		"workers", cfg.Workers,
		"batch_size", cfg.BatchSize,
		"sequential", cfg.Sequential,
	)

	start := time.Now()
	records, err := chunker.Process(ctx, smiles, ids)
	if err != nil {
		return nil, err
	}
	duration := time.Since(start)

	if outPath != "" {
		if err := report.Write(outPath, cfg.Output.Format, records); err != nil {
			return nil, err
		}
		slog.Info("report written", "run_id", runID, "path", outPath, "format", cfg.Output.Format)
	}
	if cfg.Output.MetricsPath != "" {
		m := report.CollectMetrics(runID, duration, records)
		if err := report.WriteTextfilePath(cfg.Output.MetricsPath, m); err != nil {
			return nil, err
		}
		slog.Info("metrics textfile written", "run_id", runID, "path", cfg.Output.MetricsPath)
	}

	slog.Info("run complete", "run_id", runID, "compounds", len(records), "elapsed", duration)
	return records, nil
}
