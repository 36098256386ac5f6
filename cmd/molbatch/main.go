package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/molbatch/molbatch/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "molbatch",
	Short: "Batch molecular property screening over SMILES inputs",
	Long: `molbatch computes molecular weight, logP and Lipinski-style rule
compliance for batches of SMILES strings, fanning work across a bounded
worker pool and writing deterministic, ID-sorted JSON/CSV reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
}

// loadConfig returns the file config when --config was given, defaults
// otherwise.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Defaults(), nil
	}
	return config.Load(configPath)
}

// setupLogging installs the process-wide JSON logger.
func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
	slog.SetDefault(logger)
}
