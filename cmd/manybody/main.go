// Command manybody runs exact computations on quantum lattice models from a
// JSON input document.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/qubitlab/manybody"
	"github.com/qubitlab/manybody/output"
	"github.com/qubitlab/manybody/params"
)

// envConfig holds settings that can be overridden from the environment.
type envConfig struct {
	OutputDir string `env:"MANYBODY_OUTPUT_DIR"`
	LogLevel  string `env:"MANYBODY_LOG_LEVEL"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "manybody",
		Short:         "Exact diagonalization and time evolution for quantum lattice models",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(newRunCmd())

	return cmd
}

func newRunCmd() *cobra.Command {
	var (
		outputDir string
		logLevel  string
		compress  bool
	)

	cmd := &cobra.Command{
		Use:   "run <input.json>",
		Short: "Run the computation described by an input document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg envConfig
			if err := env.Parse(&cfg); err != nil {
				return fmt.Errorf("parse environment: %w", err)
			}
			if cfg.OutputDir != "" {
				outputDir = cfg.OutputDir
			}
			if cfg.LogLevel != "" {
				logLevel = cfg.LogLevel
			}

			level, err := parseLevel(logLevel)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			p, err := params.Decode(f)
			if err != nil {
				return err
			}

			store, err := output.NewLocalStore(outputDir)
			if err != nil {
				return err
			}

			opts := []manybody.Option{
				manybody.WithStore(store),
				manybody.WithLogLevel(level),
			}
			if compress {
				opts = append(opts, manybody.WithCompressedLogs())
			}

			result, err := manybody.Run(cmd.Context(), p, opts...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "run %s completed\n", result.RunID)
			if result.Eigenvalues != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "ground state energy: %.12g\n", result.GroundStateEnergy)
			} else if n := len(result.Records); n > 0 {
				last := result.Records[n-1]
				fmt.Fprintf(cmd.OutOrStdout(), "final energy at t=%g: %.12g\n", last.Time, last.Observables["Energy"])
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory artifacts are written to")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&compress, "compress", false, "gzip-compress the run log")

	return cmd
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}
