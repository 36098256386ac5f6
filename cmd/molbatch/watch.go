package main

import (
	"context"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/molbatch/molbatch/internal/watch"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and analyze input files as they are dropped",
	Long: `watch monitors a directory for new SMILES input files matching the
configured pattern. Each settled file is run through the analysis pipeline
and its report is written next to it.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "directory to watch for input files")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("dir") {
		cfg.Watch.Dir = watchDir
	}
	if cfg.Watch.Dir == "" {
		return cmd.Help()
	}
	setupLogging(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	handle := func(path string) {
		out := reportPath(path, cfg.Output.Format)
		if _, err := runPipeline(ctx, cfg, path, out); err != nil {
			slog.Error("watch: processing failed", "input", path, "err", err)
			return
		}
		slog.Info("watch: input processed", "input", path, "report", out)
	}

	err = watch.Run(ctx, cfg.Watch.Dir, cfg.Watch.Pattern, handle)
	slog.Info("watch: shutting down")
	return err
}

// reportPath derives the report filename from the input filename:
// compounds.smi -> compounds.results.json.
func reportPath(input, format string) string {
	base := strings.TrimSuffix(input, ".smi")
	return base + ".results." + format
}
