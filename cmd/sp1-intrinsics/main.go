// Command sp1-intrinsics inspects the zkVM accelerated operation catalog and
// checks hosts against the conformance vectors.
//
//	sp1-intrinsics ids --numbering legacy
//	sp1-intrinsics decode 0x00010181
//	sp1-intrinsics selftest --log-level debug
//
// Settings come from flags, SP1_INTRINSICS_* environment variables or a YAML
// file given with --config, in that order of precedence.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scroll-tech/sp1-intrinsics/internal/config"
)

type loader func() (*config.Config, *zap.Logger, error)

func newRootCommand() *cobra.Command {
	v := config.New()
	var cfgFile string

	root := &cobra.Command{
		Use:          "sp1-intrinsics",
		Short:        "Inspect and check the zkVM accelerated operation catalog",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "YAML config file")
	flags.String(config.KeyNumbering, v.GetString(config.KeyNumbering), "identifier numbering: current or legacy")
	flags.String(config.KeyMemcpy, v.GetString(config.KeyMemcpy), "memcpy strategy on the native host: native or local")
	flags.String(config.KeyLogLevel, v.GetString(config.KeyLogLevel), "log level: debug, info, warn or error")
	for _, key := range []string{config.KeyNumbering, config.KeyMemcpy, config.KeyLogLevel} {
		if err := v.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}

	load := func() (*config.Config, *zap.Logger, error) {
		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			return nil, nil, err
		}
		logger, err := config.NewLogger(cfg.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		return cfg, logger, nil
	}

	root.AddCommand(
		newIDsCommand(load),
		newDecodeCommand(load),
		newSelftestCommand(load),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
