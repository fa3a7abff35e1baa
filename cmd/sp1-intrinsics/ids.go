package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/scroll-tech/sp1-intrinsics/api/syscall"
)

func newIDsCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "ids",
		Short: "List the operation identifiers of a numbering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := load()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			table, err := syscall.NewTable(cfg.Numbering)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "# numbering: %s\n", table.Numbering())
			fmt.Fprintln(w, "OP\tID\tDOMAIN\tCODE")
			for _, e := range table.Entries() {
				fmt.Fprintf(w, "%s\t0x%08x\t%s\t0x%02x\n",
					e.Op, uint32(e.ID), syscall.DomainName(e.ID.Domain()), e.ID.Code())
			}
			return w.Flush()
		},
	}
}

func newDecodeCommand(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <id>",
		Short: "Decode an operation identifier (hex with 0x prefix, or decimal)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := load()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			raw, err := strconv.ParseUint(args[0], 0, 32)
			if err != nil {
				return errors.Wrapf(err, "parsing identifier %q", args[0])
			}
			id := syscall.ID(raw)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "id:     0x%08x\n", uint32(id))
			fmt.Fprintf(out, "domain: 0x%08x (%s)\n", uint32(id.Domain()), syscall.DomainName(id.Domain()))
			fmt.Fprintf(out, "code:   0x%02x\n", id.Code())

			found := false
			for _, n := range []syscall.Numbering{syscall.NumberingCurrent, syscall.NumberingLegacy} {
				table, err := syscall.NewTable(n)
				if err != nil {
					return err
				}
				if op, ok := table.Op(id); ok {
					fmt.Fprintf(out, "op:     %s (%s numbering)\n", op, n)
					found = true
				}
			}
			if !found {
				fmt.Fprintln(out, "op:     unknown")
			}
			return nil
		},
	}
}
