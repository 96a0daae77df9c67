/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package commands

import (
	"strconv"

	"github.com/TiberoClient/sqlmx-tibero"
	"github.com/spf13/cobra"
)

// NewDialectsCommand lists the registered dialects.
func NewDialectsCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := [][]string{{"NAME", "DRIVER", "SEQUENCES", "HINTS", "CURRENT"}}
			for _, name := range sqlmx.DialectNames() {
				d, err := sqlmx.LookupDialect(name)
				if err != nil {
					return err
				}
				current := ""
				if opts.Dialect != nil && opts.Dialect.Name == d.Name {
					current = "*"
				}
				rows = append(rows, []string{name, d.Driver(),
					strconv.FormatBool(d.Sequences != nil), strconv.FormatBool(d.Capabilities.QueryHints), current})
			}
			return printTable(cmd.OutOrStdout(), rows)
		},
	}
}
