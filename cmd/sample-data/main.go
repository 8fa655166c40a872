package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/paysheet/internal/sampledata"
	"github.com/okian/paysheet/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newCommand()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("sample-data: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	cfg := sampledata.DefaultConfig("")
	var verbose bool

	cmd := &cobra.Command{
		Use:   "sample-data DIR",
		Short: "Write synthetic timesheet files for manual paysheet runs",
		Example: "  sample-data ./testdata --files 5 --rows 100 --seed 7\n" +
			"  sample-data ./testdata --malformed-every 10",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Dir = args[0]
			if verbose {
				_ = logger.SetLevelString("debug")
			}
			// An unset seed still yields a reproducible run once logged.
			if !cmd.Flags().Changed("seed") {
				cfg.Seed = uint64(time.Now().UnixNano())
			}
			return generate(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "file name prefix")
	flags.IntVar(&cfg.Files, "files", cfg.Files, "number of files to write")
	flags.IntVar(&cfg.Rows, "rows", cfg.Rows, "data rows per file")
	flags.IntVar(&cfg.MalformedEvery, "malformed-every", 0, "drop the last field of every Nth row (0 disables)")
	flags.Uint64Var(&cfg.Seed, "seed", 0, "random seed (default: derived from the clock)")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of concurrent writers")
	flags.StringSliceVar(&cfg.Departments, "departments", cfg.Departments, "department pool")
	flags.StringSliceVar(&cfg.RateAliases, "rate-aliases", cfg.RateAliases, "rate column names to choose from")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func generate(ctx context.Context, out io.Writer, cfg sampledata.Config) error {
	files, stats, err := sampledata.Generate(ctx, cfg)
	if err != nil {
		return err
	}

	for _, f := range files {
		fmt.Fprintf(out, "%s\t%s\t%d rows\t%d malformed\n", f.Path, f.RateColumn, f.Rows, f.Malformed)
	}
	fmt.Fprintf(out, "wrote %d files (%d rows) in %s with seed %d\n",
		stats.Files, stats.Rows, stats.Duration.Round(time.Millisecond), cfg.Seed)
	return nil
}
