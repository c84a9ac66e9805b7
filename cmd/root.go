package cmd

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"finsight/internal/config"
	"finsight/internal/ingest"
	"finsight/internal/pipeline"
)

var (
	flagConfig  string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "finsight CSV [CSV...]",
	Short: "Credit-card statement analytics",
	Long: "Analyze credit-card transaction CSVs: normalized categories, anomaly flags,\n" +
		"monthly data-quality scores, an expense forecast, and an insight report.",
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "TOML config file overriding the defaults")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log per-stage details")
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	if flagQuiet {
		level = zerolog.WarnLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// runPipeline is the shared load-and-analyze path used by all commands.
func runPipeline(args []string) (*pipeline.Artifacts, config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, cfg, err
	}

	raw, err := ingest.ReadAll(args, cfg)
	if err != nil {
		return nil, cfg, err
	}

	art, err := pipeline.Run(context.Background(), newLogger(), cfg, raw)
	if err != nil {
		return nil, cfg, err
	}
	return art, cfg, nil
}
