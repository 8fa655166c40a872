package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	service "github.com/okian/paysheet/internal/app"
	"github.com/okian/paysheet/internal/config"
	"github.com/okian/paysheet/internal/domain/report"
	"github.com/okian/paysheet/pkg/logger"
	"github.com/okian/paysheet/pkg/metrics"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
)

func main() {
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(exitError)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err := logger.Sync(); err != nil {
		os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
	}
	os.Exit(code)
}

// execute runs the root command with args and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	return exitOK
}

func newRootCommand() *cobra.Command {
	var req service.Request

	cmd := &cobra.Command{
		Use:   "paysheet FILE...",
		Short: "Generate department payout reports from employee timesheet files",
		Long: `Reads one or more comma-separated timesheet files, combines their records
and prints the selected report. Each file needs the columns id, email, name,
department, hours_worked and one rate column (hourly_rate, rate or salary).`,
		Example:       "  paysheet --report payout jan.csv feb.csv\n  paysheet --report payout --output q1 jan.csv",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Files = args
			return runReport(cmd.Context(), cmd.OutOrStdout(), req)
		},
	}

	cmd.Flags().StringVar(&req.Report, "report", "", "report type to generate (required)")
	cmd.Flags().StringVar(&req.Output, "output", "", "write the report to <output>.csv instead of stdout")
	_ = cmd.MarkFlagRequired("report")

	return cmd
}

// runReport loads configuration, runs the report and renders the soft
// outcomes (unknown report, no data) as messages on stdout.
func runReport(ctx context.Context, stdout io.Writer, req service.Request) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	metrics.SetEnabled(cfg.MetricsEnabled)

	svc := service.New(
		service.WithLogger(logger.Named("paysheet")),
		service.WithRateAliases(cfg.RateAliases),
		service.WithOutputSuffix(cfg.OutputSuffix),
	)
	defer writeMetrics(ctx, cfg.MetricsFile)

	out, err := svc.Run(ctx, req, stdout)
	var unknown *report.UnknownReportError
	switch {
	case errors.As(err, &unknown):
		fmt.Fprintf(stdout, "available reports: %s\n", strings.Join(unknown.Available, ", "))
		return nil
	case errors.Is(err, service.ErrNoData):
		fmt.Fprintln(stdout, service.ErrNoData.Error())
		return nil
	case err != nil:
		return err
	}

	if out.OutputPath != "" {
		fmt.Fprintf(stdout, "report saved to %s\n", out.OutputPath)
	}
	return nil
}

// writeMetrics dumps the metrics registry when a textfile path is configured.
func writeMetrics(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Get().Error(ctx, "failed to write metrics", logger.String("path", path), logger.Error(err))
	}
}
