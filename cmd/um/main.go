// Command um runs and benchmarks Universal Machine scrolls.
package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scrollum/um/pkg/um"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialise logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := newRootCmd(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "um",
		Short: "Universal Machine interpreter for ICFP 2006 scrolls",
	}
	root.AddCommand(newRunCmd(logger), newBenchCmd(logger))
	return root
}

func newRunCmd(logger *zap.Logger) *cobra.Command {
	var inputPrefix string
	var lenientOutput bool

	cmd := &cobra.Command{
		Use:   "run <scroll>",
		Short: "Load and execute a scroll against stdin/stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scrollPath := args[0]

			f, err := os.Open(scrollPath)
			if err != nil {
				return errors.Wrap(err, "opening scroll")
			}
			defer f.Close()

			program, err := um.LoadScroll(f)
			if err != nil {
				logger.Error("failed to load scroll", zap.String("scroll", scrollPath), zap.Error(err))
				return err
			}

			var opts []um.Option
			if lenientOutput {
				opts = append(opts, um.WithLenientOutput())
			}

			in := um.NewPrefixedReaderInput(inputPrefix, cmd.InOrStdin())
			out := um.NewWriterOutput(cmd.OutOrStdout())
			machine := um.New(program, in, out, opts...)

			report, err := machine.Run(cmd.Context(), 0)
			if err != nil {
				logger.Error("scroll faulted",
					zap.String("scroll", scrollPath),
					zap.Int("ip", machine.IP()),
					zap.Uint64("steps", report.Steps),
					zap.Error(err),
				)
				return err
			}
			logger.Info("scroll finished",
				zap.String("scroll", scrollPath),
				zap.Uint64("steps", report.Steps),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&inputPrefix, "input", "", "literal bytes to feed the scroll before falling through to stdin")
	cmd.Flags().BoolVar(&lenientOutput, "lenient-output", false, "mask Output operands to 8 bits instead of faulting")
	return cmd
}

func newBenchCmd(logger *zap.Logger) *cobra.Command {
	var maxSteps uint64

	cmd := &cobra.Command{
		Use:   "bench <scroll>",
		Short: "Run a scroll with GC tuned for the hot dispatch loop, reporting throughput",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scrollPath := args[0]

			f, err := os.Open(scrollPath)
			if err != nil {
				return errors.Wrap(err, "opening scroll")
			}
			defer f.Close()

			program, err := um.LoadScroll(f)
			if err != nil {
				return err
			}

			machine := um.New(program, um.NewReaderInput(os.Stdin), um.NewWriterOutput(os.Stdout))

			restoreGC := disableGC()
			defer restoreGC()

			start := time.Now()
			report, err := machine.Run(cmd.Context(), maxSteps)
			elapsed := time.Since(start)
			if err != nil {
				return err
			}

			plattersPerSec := float64(report.Steps) / elapsed.Seconds()
			logger.Info("benchmark complete",
				zap.String("scroll", scrollPath),
				zap.Uint64("steps", report.Steps),
				zap.Duration("elapsed", elapsed),
				zap.Float64("platters_per_sec", plattersPerSec),
			)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&maxSteps, "max-steps", 0, "stop after this many platters (0 = unbounded)")
	return cmd
}

// disableGC mirrors the GOGC tuning idiom of turning the collector off
// for a tight hot loop and restoring whatever GOGC was before.
func disableGC() func() {
	prior := 100
	if v, ok := os.LookupEnv("GOGC"); ok {
		if v == "off" {
			prior = -1
		} else if parsed, err := strconv.Atoi(v); err == nil {
			prior = parsed
		}
	}
	debug.SetGCPercent(-1)
	return func() { debug.SetGCPercent(prior) }
}
