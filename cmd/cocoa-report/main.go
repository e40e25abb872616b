package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gatei-njuri/cocoa-analysis/internal/config"
	"github.com/gatei-njuri/cocoa-analysis/internal/infrastructure"
	"github.com/gatei-njuri/cocoa-analysis/internal/operations"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   config.AppName + " <file>",
		Short: "Cocoa production data processor",
		Long: `Builds per-country cocoa tables and charts from a long-format
agricultural dataset (Area, Year, Element, Value).

For Ghana and Côte d'Ivoire it writes a cleaned table, a Yield scatter plot
and an Area harvested bar chart, then a combined multi-panel PDF.

Environment: COCOA_LOGGING_LEVEL, COCOA_LOGGING_OUTPUT, COCOA_LOGGING_FILE_PATH,
COCOA_TELEMETRY_ENABLED, COCOA_TELEMETRY_EXPORTER, COCOA_REPORT_FILE.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], outputDir, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", config.DefaultOutputDir, "Output directory for results")
	return cmd
}

// run executes one report. Notices go to stdout; logs and trace spans go to
// stderr unless the logging config sends them to a file.
func run(ctx context.Context, input, outputDir string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	report, err := config.LoadReport(cfg.ReportFile)
	if err != nil {
		return err
	}

	tracing, err := infrastructure.InitializeTracing(cfg.Telemetry, stderr, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := tracing.Shutdown(context.Background()); err != nil {
			logger.Warn("Failed to shut down tracing", slog.String("error", err.Error()))
		}
	}()

	pipeline, err := operations.NewPipeline(report, operations.Options{
		Notices: stdout,
		Logger:  logger,
		Tracer:  tracing.Tracer,
	})
	if err != nil {
		return err
	}

	ctx = infrastructure.WithRunID(ctx, infrastructure.GenerateRunID())
	_, err = pipeline.Run(ctx, input, outputDir)
	return err
}
