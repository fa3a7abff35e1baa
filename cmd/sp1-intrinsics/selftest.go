package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scroll-tech/sp1-intrinsics/api/conformance"
	"github.com/scroll-tech/sp1-intrinsics/api/emulator"
	"github.com/scroll-tech/sp1-intrinsics/api/memory"
	"github.com/scroll-tech/sp1-intrinsics/api/syscall"
)

func newSelftestCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the conformance vectors on the emulator and, in zkvm builds, the native host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			reg := prometheus.NewRegistry()
			host, err := emulator.New(
				emulator.WithNumbering(cfg.Numbering),
				emulator.WithLogger(logger.Named("emulator")),
				emulator.WithRegisterer(reg),
			)
			if err != nil {
				return err
			}

			var backends []conformance.Backend
			for _, mode := range []memory.Mode{memory.ModeNative, memory.ModeLocal} {
				b, err := conformance.NewBackend("emulator/"+mode.String(), host, host.Table(), mode)
				if err != nil {
					return err
				}
				backends = append(backends, b)
			}
			if syscall.NativeAvailable {
				b, err := conformance.NewBackend("native/"+cfg.Memcpy.String(), syscall.Native(), syscall.ActiveTable(), cfg.Memcpy)
				if err != nil {
					return err
				}
				backends = append(backends, b)
			} else {
				logger.Info("native host not available in this build, checking the emulator only")
			}

			runner, err := conformance.NewRunner(logger.Named("conformance"), backends...)
			if err != nil {
				return err
			}
			cases := conformance.Vectors()
			report, err := runner.Run(cmd.Context(), cases)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, f := range report.Failures() {
				fmt.Fprintf(out, "FAIL %s %s: %v\n", f.Backend, f.Case, f.Err)
			}
			for _, m := range report.Mismatches {
				fmt.Fprintf(out, "DIFF %s: %s and %s differ at word %d\n", m.Case, m.Backends[0], m.Backends[1], m.Word)
			}
			if err := printDispatches(out, reg, logger); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d cases on %d backends, %d failures, %d mismatches\n",
				len(cases), len(backends), len(report.Failures()), len(report.Mismatches))

			if report.Failed() {
				return errors.New("conformance check failed")
			}
			return nil
		},
	}
}

// printDispatches writes the emulator dispatch counters gathered from reg.
func printDispatches(out io.Writer, reg *prometheus.Registry, logger *zap.Logger) error {
	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering emulator metrics")
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			op := ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "op" {
					op = lp.GetValue()
				}
			}
			logger.Debug("emulator dispatches", zap.String("op", op), zap.Float64("count", m.GetCounter().GetValue()))
			fmt.Fprintf(out, "emulated %-18s %6.0f\n", op, m.GetCounter().GetValue())
		}
	}
	return nil
}
